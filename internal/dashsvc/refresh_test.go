// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package dashsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/confighub/cloud-scout/internal/core"
)

// fakeProvider implements core.CloudProvider against canned data.
type fakeProvider struct {
	kind      core.ProviderKind
	resources []core.Resource
	listErr   error
	execErr   error

	listCalls int
	executed  []string // "<id>:<action>"
}

func (f *fakeProvider) Name() string                    { return f.kind.Label() }
func (f *fakeProvider) ProviderType() core.ProviderKind { return f.kind }

func (f *fakeProvider) Authenticate(ctx context.Context) error { return nil }

func (f *fakeProvider) TestConnection(ctx context.Context) (bool, error) { return true, nil }

func (f *fakeProvider) ListAllResources(ctx context.Context) ([]core.Resource, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.resources, nil
}

func (f *fakeProvider) ExecuteAction(ctx context.Context, resourceID string, action core.Action) error {
	f.executed = append(f.executed, resourceID+":"+action.Label())
	return f.execErr
}

func (f *fakeProvider) Regions() []string     { return []string{"us-east-1"} }
func (f *fakeProvider) CurrentRegion() string { return "us-east-1" }

// fakeCache implements ResourceCache in memory.
type fakeCache struct {
	stored   []core.Resource
	cachedAt time.Time
	writeErr error
	readErr  error
	writes   int
}

func (f *fakeCache) WriteThrough(resources []core.Resource) error {
	f.writes++
	if f.writeErr != nil {
		return f.writeErr
	}
	f.stored = resources
	f.cachedAt = time.Now()
	return nil
}

func (f *fakeCache) AllUnexpired() ([]core.Resource, time.Time, error) {
	if f.readErr != nil {
		return nil, time.Time{}, f.readErr
	}
	return f.stored, f.cachedAt, nil
}

func awsResources() []core.Resource {
	return []core.Resource{
		{ID: "i-1", Name: "web-1", Type: core.TypeCompute, Provider: core.ProviderAWS, State: core.StateRunning},
		{ID: "i-2", Name: "web-2", Type: core.TypeCompute, Provider: core.ProviderAWS, State: core.StateStopped},
	}
}

func newTestOrchestrator(providers []core.CloudProvider, cache ResourceCache) *Orchestrator {
	return NewOrchestrator(providers, cache, zerolog.Nop())
}

func TestRefreshMergesAllProviders(t *testing.T) {
	p1 := &fakeProvider{kind: core.ProviderAWS, resources: awsResources()}
	p2 := &fakeProvider{kind: core.ProviderGCP, resources: []core.Resource{
		{ID: "vm-1", Name: "gcp-vm", Type: core.TypeCompute, Provider: core.ProviderGCP, State: core.StateRunning},
	}}
	o := newTestOrchestrator([]core.CloudProvider{p1, p2}, nil)
	st := NewState(NewStore())

	if err := o.Refresh(context.Background(), st); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if st.Store().Count() != 3 {
		t.Errorf("store count = %d, want 3", st.Store().Count())
	}
	if len(st.Filtered()) != 3 {
		t.Errorf("filtered view should cover the merged snapshot, got %d", len(st.Filtered()))
	}
	if st.LastRefresh().IsZero() {
		t.Error("last refresh should be stamped")
	}
	if st.Loading() {
		t.Error("loading flag should be down after refresh")
	}
}

func TestRefreshAllOrNothing(t *testing.T) {
	// P1 succeeds with 2 resources, P2 fails: the store must be left exactly
	// as before the call, no partial write.
	before := testSnapshot()
	store := NewStore()
	store.Replace(before)
	st := NewState(store)
	st.ApplyFilter()

	p1 := &fakeProvider{kind: core.ProviderAWS, resources: awsResources()}
	p2 := &fakeProvider{kind: core.ProviderGCP, listErr: errors.New("gcp quota exceeded")}
	o := newTestOrchestrator([]core.CloudProvider{p1, p2}, nil)

	err := o.Refresh(context.Background(), st)
	if err == nil {
		t.Fatal("refresh should fail when any provider fails")
	}
	if store.Count() != len(before) {
		t.Errorf("store must be unchanged on failure: count %d, want %d", store.Count(), len(before))
	}
	if snap := store.Snapshot(); snap[0].ID != before[0].ID {
		t.Error("store contents must be unchanged on failure")
	}
	if st.Error() == "" {
		t.Error("failure must land in the message state")
	}
	if st.Loading() {
		t.Error("loading flag must be cleared on the error path")
	}
}

func TestRefreshAbortsAfterFirstFailure(t *testing.T) {
	p1 := &fakeProvider{kind: core.ProviderAWS, listErr: errors.New("expired token")}
	p2 := &fakeProvider{kind: core.ProviderGCP, resources: awsResources()}
	o := newTestOrchestrator([]core.CloudProvider{p1, p2}, nil)
	st := NewState(NewStore())

	if err := o.Refresh(context.Background(), st); err == nil {
		t.Fatal("refresh should fail")
	}
	if p2.listCalls != 0 {
		t.Error("remaining providers must not be queried after the first failure")
	}
}

func TestRefreshWritesThroughCache(t *testing.T) {
	cache := &fakeCache{}
	p := &fakeProvider{kind: core.ProviderAWS, resources: awsResources()}
	o := newTestOrchestrator([]core.CloudProvider{p}, cache)
	st := NewState(NewStore())

	if err := o.Refresh(context.Background(), st); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if cache.writes != 1 || len(cache.stored) != 2 {
		t.Errorf("snapshot should be written through: writes=%d stored=%d", cache.writes, len(cache.stored))
	}
}

func TestCacheWriteFailureDoesNotFailRefresh(t *testing.T) {
	cache := &fakeCache{writeErr: errors.New("disk full")}
	p := &fakeProvider{kind: core.ProviderAWS, resources: awsResources()}
	o := newTestOrchestrator([]core.CloudProvider{p}, cache)
	st := NewState(NewStore())

	if err := o.Refresh(context.Background(), st); err != nil {
		t.Fatalf("cache write failure must not fail the refresh: %v", err)
	}
	if st.Error() != "" {
		t.Error("cache write failure must not surface as the primary error")
	}
	if st.Store().Count() != 2 {
		t.Error("snapshot should still be installed")
	}
}

func TestRefreshFailureDoesNotTouchCache(t *testing.T) {
	cache := &fakeCache{}
	p := &fakeProvider{kind: core.ProviderAWS, listErr: errors.New("boom")}
	o := newTestOrchestrator([]core.CloudProvider{p}, cache)
	st := NewState(NewStore())

	_ = o.Refresh(context.Background(), st)
	if cache.writes != 0 {
		t.Error("failed refresh must not write the cache")
	}
}

func TestHydrateFromCache(t *testing.T) {
	cachedAt := time.Now().Add(-2 * time.Hour)
	cache := &fakeCache{stored: awsResources(), cachedAt: cachedAt}
	p := &fakeProvider{kind: core.ProviderAWS}
	o := newTestOrchestrator([]core.CloudProvider{p}, cache)
	st := NewState(NewStore())
	st.SetCacheEnabled(true)

	n, err := o.HydrateFromCache(st)
	if err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	if n != 2 {
		t.Errorf("hydrated %d resources, want 2", n)
	}
	if p.listCalls != 0 {
		t.Error("hydration must not query providers")
	}
	if !st.LastRefresh().Equal(cachedAt) {
		t.Error("hydration must stamp the cache's timestamp, not now")
	}
	if st.CacheAge(time.Now()) != "2h ago" {
		t.Errorf("cache age = %q, want 2h ago", st.CacheAge(time.Now()))
	}
}

func TestHydrateFromEmptyOrMissingCache(t *testing.T) {
	o := newTestOrchestrator(nil, nil)
	st := NewState(NewStore())
	if n, err := o.HydrateFromCache(st); n != 0 || err != nil {
		t.Errorf("nil cache: n=%d err=%v, want 0 nil", n, err)
	}

	o = newTestOrchestrator(nil, &fakeCache{})
	if n, err := o.HydrateFromCache(st); n != 0 || err != nil {
		t.Errorf("empty cache: n=%d err=%v, want 0 nil", n, err)
	}

	o = newTestOrchestrator(nil, &fakeCache{readErr: errors.New("corrupt db")})
	if _, err := o.HydrateFromCache(st); err == nil {
		t.Error("cache read failure should be reported so the caller can fall back")
	}
}
