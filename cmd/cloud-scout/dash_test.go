// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/confighub/cloud-scout/internal/config"
	"github.com/confighub/cloud-scout/internal/dashsvc"
)

func writeCredentialsFile(t *testing.T, contents string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".aws")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "credentials"), []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestAWSOptionsDetectsProfile(t *testing.T) {
	writeCredentialsFile(t, `[work]
aws_access_key_id = AKIAWORK
aws_secret_access_key = secret
region = eu-central-1
`)

	opts := awsOptions(&config.AWSConfig{}, zerolog.Nop())
	if opts.Profile != "work" {
		t.Errorf("Profile = %q, expected the first detected profile", opts.Profile)
	}
	if opts.Region != "eu-central-1" {
		t.Errorf("Region = %q, expected the profile's region", opts.Region)
	}
}

func TestAWSOptionsExplicitConfigWins(t *testing.T) {
	writeCredentialsFile(t, `[work]
aws_access_key_id = AKIAWORK
aws_secret_access_key = secret
region = eu-central-1
`)

	opts := awsOptions(&config.AWSConfig{Profile: "prod", Region: "us-west-2"}, zerolog.Nop())
	if opts.Profile != "prod" || opts.Region != "us-west-2" {
		t.Errorf("explicit config must win, got profile %q region %q", opts.Profile, opts.Region)
	}
}

func TestAWSOptionsStaticKeysSkipDetection(t *testing.T) {
	writeCredentialsFile(t, `[work]
aws_access_key_id = AKIAWORK
aws_secret_access_key = secret
`)

	opts := awsOptions(&config.AWSConfig{
		AccessKeyID:     "AKIASTATIC",
		SecretAccessKey: "secret",
		Region:          "us-east-1",
	}, zerolog.Nop())
	if opts.Profile != "" {
		t.Errorf("static keys configured, detection must not run, got profile %q", opts.Profile)
	}
}

func TestAWSOptionsMissingCredentialsFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	opts := awsOptions(&config.AWSConfig{}, zerolog.Nop())
	if opts.Profile != "default" {
		t.Errorf("Profile = %q, expected the default fallback", opts.Profile)
	}
	// No file to read a region from; the provider applies its own default.
	if opts.Region != "" {
		t.Errorf("Region = %q, expected empty", opts.Region)
	}
}

func TestDefaultTabMapping(t *testing.T) {
	tests := []struct {
		name     string
		expected dashsvc.TabIndex
	}{
		{"aws", dashsvc.TabAWS},
		{"gcp", dashsvc.TabGCP},
		{"azure", dashsvc.TabAzure},
		{"all", dashsvc.TabAllClouds},
		{"", dashsvc.TabAWS},
		{"nonsense", dashsvc.TabAWS},
	}
	for _, tt := range tests {
		if got := defaultTab(tt.name); got != tt.expected {
			t.Errorf("defaultTab(%q) = %v, want %v", tt.name, got, tt.expected)
		}
	}
}
