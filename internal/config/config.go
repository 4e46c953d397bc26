// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

// Package config loads cloud-scout configuration from
// ~/.cloud-scout/config.yaml, with environment-variable overrides for the
// settings that change most often.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full configuration tree.
type Config struct {
	Providers ProvidersConfig `yaml:"providers"`
	UI        UIConfig        `yaml:"ui"`
	Cache     CacheConfig     `yaml:"cache"`
	Refresh   RefreshConfig   `yaml:"refresh"`
}

// ProvidersConfig holds per-cloud credentials. A nil entry means the provider
// is not configured.
type ProvidersConfig struct {
	AWS   *AWSConfig   `yaml:"aws,omitempty"`
	GCP   *GCPConfig   `yaml:"gcp,omitempty"`
	Azure *AzureConfig `yaml:"azure,omitempty"`
}

type AWSConfig struct {
	Profile         string `yaml:"profile,omitempty"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id,omitempty"`
	SecretAccessKey string `yaml:"secret_access_key,omitempty"`
}

type GCPConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file,omitempty"`
	Region          string `yaml:"region"`
}

type AzureConfig struct {
	SubscriptionID string `yaml:"subscription_id"`
	TenantID       string `yaml:"tenant_id,omitempty"`
	ClientID       string `yaml:"client_id,omitempty"`
	ClientSecret   string `yaml:"client_secret,omitempty"`
}

type UIConfig struct {
	DefaultTab                string `yaml:"default_tab"`
	AutoRefresh               bool   `yaml:"auto_refresh"`
	ConfirmDestructiveActions bool   `yaml:"confirm_destructive_actions"`
}

type CacheConfig struct {
	Enabled     bool   `yaml:"enabled"`
	MaxAgeHours int    `yaml:"max_age_hours"`
	DBPath      string `yaml:"db_path,omitempty"`
}

type RefreshConfig struct {
	IntervalSeconds    int  `yaml:"interval_seconds"`
	AutoRefreshOnFocus bool `yaml:"auto_refresh_on_focus"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		UI: UIConfig{
			DefaultTab:                "aws",
			AutoRefresh:               true,
			ConfirmDestructiveActions: true,
		},
		Cache: CacheConfig{
			Enabled:     true,
			MaxAgeHours: 24,
		},
		Refresh: RefreshConfig{
			IntervalSeconds:    300,
			AutoRefreshOnFocus: true,
		},
	}
}

// Load reads the config file if present, otherwise builds a config from
// defaults. Environment overrides are applied in both cases.
func Load() (*Config, error) {
	cfg := Default()

	if path, err := FilePath(); err == nil {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadFile reads configuration from an explicit path, with env overrides.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if profile := os.Getenv("CLOUD_SCOUT_AWS_PROFILE"); profile != "" {
		if c.Providers.AWS == nil {
			c.Providers.AWS = &AWSConfig{Region: "us-east-1"}
		}
		c.Providers.AWS.Profile = profile
	}
	if region := os.Getenv("CLOUD_SCOUT_AWS_REGION"); region != "" {
		if c.Providers.AWS == nil {
			c.Providers.AWS = &AWSConfig{}
		}
		c.Providers.AWS.Region = region
	}
	if enabled := os.Getenv("CLOUD_SCOUT_CACHE_ENABLED"); enabled != "" {
		if v, err := strconv.ParseBool(enabled); err == nil {
			c.Cache.Enabled = v
		}
	}
}

// Validate checks that the configuration is usable at all.
func (c *Config) Validate() error {
	if c.Providers.AWS == nil && c.Providers.GCP == nil && c.Providers.Azure == nil {
		return errors.New("at least one cloud provider must be configured")
	}
	if c.Providers.AWS != nil && c.Providers.AWS.Region == "" {
		c.Providers.AWS.Region = "us-east-1"
	}
	if c.Cache.MaxAgeHours <= 0 {
		c.Cache.MaxAgeHours = 24
	}
	if c.Refresh.IntervalSeconds <= 0 {
		c.Refresh.IntervalSeconds = 300
	}
	return nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("serialize config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// CacheMaxAge returns the configured cache expiry as a duration.
func (c *Config) CacheMaxAge() time.Duration {
	return time.Duration(c.Cache.MaxAgeHours) * time.Hour
}

// CacheDBPath returns the configured cache path, defaulting to
// ~/.cloud-scout/cache.db.
func (c *Config) CacheDBPath() string {
	if c.Cache.DBPath != "" {
		return c.Cache.DBPath
	}
	dir, err := Dir()
	if err != nil {
		return "cache.db"
	}
	return filepath.Join(dir, "cache.db")
}

// Dir returns the cloud-scout config directory, ~/.cloud-scout.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine home directory: %w", err)
	}
	return filepath.Join(home, ".cloud-scout"), nil
}

// FilePath returns the default config file location.
func FilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
