// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

// Package logging sets up zerolog for the dashboard. The TUI owns the
// terminal, so log output goes to a file under the config directory.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

const logFileName = "cloud-scout.log"

// Setup opens the log file under dir and returns a logger writing to it,
// plus a close func for shutdown. Log level comes from CLOUD_SCOUT_LOG
// (debug, info, warn, error), defaulting to info.
func Setup(dir string) (zerolog.Logger, func() error, error) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(levelFromEnv())

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, logFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file %s: %w", path, err)
	}

	logger := zerolog.New(f).With().Timestamp().Logger()
	return logger, f.Close, nil
}

func levelFromEnv() zerolog.Level {
	switch strings.ToLower(os.Getenv("CLOUD_SCOUT_LOG")) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
