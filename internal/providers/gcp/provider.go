// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

// Package gcp holds the Google Cloud provider. The integration is not built
// yet: Authenticate reports core.ErrNotImplemented and the wiring layer skips
// the provider while keeping its config section valid.
package gcp

import (
	"context"
	"fmt"

	"github.com/confighub/cloud-scout/internal/core"
)

// Options configures the provider.
type Options struct {
	ProjectID       string
	CredentialsFile string
	Region          string
}

// Provider is a placeholder core.CloudProvider for GCP.
type Provider struct {
	opts Options
}

// New returns an unauthenticated GCP provider.
func New(opts Options) *Provider {
	if opts.Region == "" {
		opts.Region = "us-central1"
	}
	return &Provider{opts: opts}
}

func (p *Provider) Name() string                    { return "GCP" }
func (p *Provider) ProviderType() core.ProviderKind { return core.ProviderGCP }

func (p *Provider) Authenticate(ctx context.Context) error {
	return fmt.Errorf("GCP: %w", core.ErrNotImplemented)
}

func (p *Provider) TestConnection(ctx context.Context) (bool, error) {
	return false, fmt.Errorf("GCP: %w", core.ErrNotImplemented)
}

func (p *Provider) ListAllResources(ctx context.Context) ([]core.Resource, error) {
	return nil, fmt.Errorf("GCP: %w", core.ErrNotImplemented)
}

func (p *Provider) ExecuteAction(ctx context.Context, resourceID string, action core.Action) error {
	return fmt.Errorf("GCP: %w", core.ErrNotImplemented)
}

func (p *Provider) Regions() []string {
	return []string{"us-central1", "us-east1", "us-west1", "europe-west1", "asia-east1"}
}

func (p *Provider) CurrentRegion() string { return p.opts.Region }
