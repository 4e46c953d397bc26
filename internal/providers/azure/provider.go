// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

// Package azure holds the Microsoft Azure provider. Like gcp, it is a
// placeholder whose Authenticate reports core.ErrNotImplemented.
package azure

import (
	"context"
	"fmt"

	"github.com/confighub/cloud-scout/internal/core"
)

// Options configures the provider.
type Options struct {
	SubscriptionID string
	TenantID       string
	ClientID       string
	ClientSecret   string
}

// Provider is a placeholder core.CloudProvider for Azure.
type Provider struct {
	opts Options
}

// New returns an unauthenticated Azure provider.
func New(opts Options) *Provider {
	return &Provider{opts: opts}
}

func (p *Provider) Name() string                    { return "Azure" }
func (p *Provider) ProviderType() core.ProviderKind { return core.ProviderAzure }

func (p *Provider) Authenticate(ctx context.Context) error {
	return fmt.Errorf("Azure: %w", core.ErrNotImplemented)
}

func (p *Provider) TestConnection(ctx context.Context) (bool, error) {
	return false, fmt.Errorf("Azure: %w", core.ErrNotImplemented)
}

func (p *Provider) ListAllResources(ctx context.Context) ([]core.Resource, error) {
	return nil, fmt.Errorf("Azure: %w", core.ErrNotImplemented)
}

func (p *Provider) ExecuteAction(ctx context.Context, resourceID string, action core.Action) error {
	return fmt.Errorf("Azure: %w", core.ErrNotImplemented)
}

func (p *Provider) Regions() []string {
	return []string{"eastus", "eastus2", "westus2", "westeurope", "southeastasia"}
}

func (p *Provider) CurrentRegion() string { return "eastus" }
