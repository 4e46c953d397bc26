// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package dashsvc

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/confighub/cloud-scout/internal/core"
)

// ResourceCache is the persistent cache capability the orchestrator writes
// through to. Optional: a nil cache disables hydration and write-through,
// nothing else.
type ResourceCache interface {
	// WriteThrough persists a full snapshot.
	WriteThrough(resources []core.Resource) error
	// AllUnexpired returns the cached snapshot and its newest timestamp.
	AllUnexpired() ([]core.Resource, time.Time, error)
}

// Orchestrator coordinates refreshes and actions across the registered
// providers, the shared store, and the optional persistent cache.
type Orchestrator struct {
	providers []core.CloudProvider
	cache     ResourceCache
	log       zerolog.Logger
}

// NewOrchestrator returns an orchestrator over the given providers. cache
// may be nil.
func NewOrchestrator(providers []core.CloudProvider, cache ResourceCache, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{providers: providers, cache: cache, log: log}
}

// Providers returns the registered providers in registration order.
func (o *Orchestrator) Providers() []core.CloudProvider { return o.providers }

// FetchAll queries every registered provider sequentially for its full
// inventory. All-or-nothing: the first provider failure aborts the remaining
// queries and discards anything already fetched.
func (o *Orchestrator) FetchAll(ctx context.Context) ([]core.Resource, error) {
	var all []core.Resource
	for _, p := range o.providers {
		resources, err := p.ListAllResources(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load resources: %w", err)
		}
		all = append(all, resources...)
	}
	return all, nil
}

// Refresh runs a full refresh cycle against st: loading flag up, fetch,
// write-through, snapshot install. On a provider failure the store is left
// exactly as it was and the failure lands in the message state. No automatic
// retry; the user repeats the command.
func (o *Orchestrator) Refresh(ctx context.Context, st *State) error {
	st.StartLoading()

	resources, err := o.FetchAll(ctx)
	if err != nil {
		st.SetError(err.Error())
		return err
	}

	o.WriteThrough(resources)
	st.CompleteRefresh(resources, time.Now())
	o.log.Info().Int("resources", len(resources)).Msg("refresh complete")
	return nil
}

// WriteThrough persists a snapshot to the cache. Best-effort: failures are
// logged and never fail the refresh that produced the snapshot.
func (o *Orchestrator) WriteThrough(resources []core.Resource) {
	if o.cache == nil {
		return
	}
	if err := o.cache.WriteThrough(resources); err != nil {
		o.log.Warn().Err(err).Msg("cache write-through failed")
	}
}

// HydrateFromCache installs unexpired cached resources into st instead of
// querying providers, stamping the cache's own timestamp as the last-refresh
// time so staleness can be displayed. Returns how many resources were
// loaded; zero means the caller should fall back to a live refresh.
func (o *Orchestrator) HydrateFromCache(st *State) (int, error) {
	if o.cache == nil {
		return 0, nil
	}
	resources, cachedAt, err := o.cache.AllUnexpired()
	if err != nil {
		return 0, fmt.Errorf("load cache: %w", err)
	}
	if len(resources) == 0 {
		return 0, nil
	}
	st.CompleteRefresh(resources, cachedAt)
	o.log.Info().Int("resources", len(resources)).Time("cached_at", cachedAt).Msg("hydrated from cache")
	return len(resources), nil
}
