// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package core

import (
	"context"
	"errors"
	"fmt"
)

// CloudProvider is the capability contract a cloud vendor integration must
// implement. The orchestration layer only ever talks to providers through
// this interface.
type CloudProvider interface {
	// Name returns the human-readable provider name, e.g. "AWS".
	Name() string
	// ProviderType identifies which cloud this provider serves. At most one
	// provider per kind may be registered.
	ProviderType() ProviderKind

	// Authenticate establishes credentials and verifies them with a cheap
	// remote call. Must be called before any listing or action.
	Authenticate(ctx context.Context) error
	// TestConnection verifies the provider is still reachable.
	TestConnection(ctx context.Context) (bool, error)

	// ListAllResources returns the provider's full resource inventory.
	ListAllResources(ctx context.Context) ([]Resource, error)
	// ExecuteAction performs a lifecycle action on a single resource.
	ExecuteAction(ctx context.Context, resourceID string, action Action) error

	// Regions returns the regions this provider can operate in.
	Regions() []string
	// CurrentRegion returns the region the provider is scoped to.
	CurrentRegion() string
}

// CostPeriod selects the window for a cost query.
type CostPeriod int

const (
	CostToday CostPeriod = iota
	CostThisWeek
	CostThisMonth
	CostLast30Days
)

// CostBreakdown aggregates spend by service and region for one provider.
type CostBreakdown struct {
	Total     float64
	ByService map[string]float64
	ByRegion  map[string]float64
	// TrendPercent compares this period against the previous one; positive
	// means spend is growing.
	TrendPercent float64
}

// NewCostBreakdown returns an empty breakdown with initialized maps.
func NewCostBreakdown() *CostBreakdown {
	return &CostBreakdown{
		ByService: map[string]float64{},
		ByRegion:  map[string]float64{},
	}
}

// CostReporter is implemented by providers that can report actual spend.
// Optional: the dashboard falls back to per-resource estimates when a
// provider does not implement it.
type CostReporter interface {
	TotalCost(ctx context.Context, period CostPeriod) (float64, error)
	CostBreakdown(ctx context.Context) (*CostBreakdown, error)
}

// ErrNotFound indicates a resource no longer exists on the provider side,
// e.g. an action raced with a deletion elsewhere.
var ErrNotFound = errors.New("resource not found")

// ErrNotImplemented is returned by stub providers (GCP, Azure) whose
// integrations are not built yet.
var ErrNotImplemented = errors.New("provider not implemented")

// ProviderError wraps a failure from a provider's remote API, tagged with
// the provider name so the message surface can attribute it.
type ProviderError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewProviderError wraps err as a provider failure.
func NewProviderError(provider, op string, err error) error {
	return &ProviderError{Provider: provider, Op: op, Err: err}
}

// AuthError indicates credential establishment or verification failed.
type AuthError struct {
	Provider ProviderKind
	Reason   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed for %s: %s", e.Provider.Label(), e.Reason)
}
