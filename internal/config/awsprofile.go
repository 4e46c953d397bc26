// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ProfileCredentials are the values extracted from one section of the shared
// AWS credentials file.
type ProfileCredentials struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
}

// DetectAWSProfiles lists the profile names in ~/.aws/credentials. A missing
// file yields just "default" so the caller can still try the SDK's own chain.
func DetectAWSProfiles() ([]string, error) {
	path, err := awsCredentialsPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{"default"}, nil
		}
		return nil, fmt.Errorf("read AWS credentials: %w", err)
	}

	profiles := parseProfileNames(string(data))
	if len(profiles) == 0 {
		return []string{"default"}, nil
	}
	return profiles, nil
}

// AWSProfileCredentials parses the named profile out of ~/.aws/credentials.
func AWSProfileCredentials(profile string) (*ProfileCredentials, error) {
	path, err := awsCredentialsPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read AWS credentials: %w", err)
	}
	return parseProfileCredentials(string(data), profile)
}

func awsCredentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine home directory: %w", err)
	}
	return filepath.Join(home, ".aws", "credentials"), nil
}

func parseProfileNames(contents string) []string {
	var profiles []string
	for _, line := range strings.Split(contents, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			profiles = append(profiles, line[1:len(line)-1])
		}
	}
	return profiles
}

func parseProfileCredentials(contents, profile string) (*ProfileCredentials, error) {
	header := "[" + profile + "]"
	inProfile := false
	creds := &ProfileCredentials{}

	for _, line := range strings.Split(contents, "\n") {
		line = strings.TrimSpace(line)
		if line == header {
			inProfile = true
			continue
		}
		if strings.HasPrefix(line, "[") {
			inProfile = false
			continue
		}
		if !inProfile {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "aws_access_key_id":
			creds.AccessKeyID = strings.TrimSpace(val)
		case "aws_secret_access_key":
			creds.SecretAccessKey = strings.TrimSpace(val)
		case "region":
			creds.Region = strings.TrimSpace(val)
		}
	}

	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return nil, fmt.Errorf("profile %q is missing required credentials", profile)
	}
	return creds, nil
}
