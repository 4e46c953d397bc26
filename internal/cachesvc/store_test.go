// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package cachesvc

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confighub/cloud-scout/internal/core"
)

func testStore(t *testing.T, maxAge time.Duration) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"), maxAge)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResources() []core.Resource {
	cost := 8.47
	return []core.Resource{
		{ID: "i-web1", Name: "web-1", Type: core.TypeCompute, Provider: core.ProviderAWS, Region: "us-east-1", State: core.StateRunning, MonthlyCost: &cost},
		{ID: "db-orders", Name: "orders", Type: core.TypeDatabase, Provider: core.ProviderAWS, Region: "us-east-1", State: core.StateRunning},
		{ID: "vm-gcp1", Name: "gcp-vm", Type: core.TypeCompute, Provider: core.ProviderGCP, Region: "us-central1", State: core.StateStopped},
	}
}

func TestWriteThroughAndReadBack(t *testing.T) {
	s := testStore(t, 24*time.Hour)

	require.NoError(t, s.WriteThrough(sampleResources()))

	got, cachedAt, err := s.AllUnexpired()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.WithinDuration(t, time.Now(), cachedAt, 5*time.Second)

	byID := map[string]core.Resource{}
	for _, r := range got {
		byID[r.ID] = r
	}
	web := byID["i-web1"]
	assert.Equal(t, core.TypeCompute, web.Type)
	assert.Equal(t, core.ProviderAWS, web.Provider)
	assert.Equal(t, core.StateRunning, web.State)
	require.NotNil(t, web.MonthlyCost)
	assert.InDelta(t, 8.47, *web.MonthlyCost, 0.001)
	assert.Equal(t, core.ProviderGCP, byID["vm-gcp1"].Provider)
}

func TestWriteThroughReplacesExisting(t *testing.T) {
	s := testStore(t, 24*time.Hour)

	require.NoError(t, s.WriteThrough(sampleResources()))

	updated := sampleResources()
	updated[0].State = core.StateStopped
	require.NoError(t, s.WriteThrough(updated))

	got, _, err := s.AllUnexpired()
	require.NoError(t, err)
	require.Len(t, got, 3, "upsert must not duplicate rows")
	for _, r := range got {
		if r.ID == "i-web1" {
			assert.Equal(t, core.StateStopped, r.State)
		}
	}
}

func TestExpiredEntriesAreInvisible(t *testing.T) {
	s := testStore(t, 1*time.Millisecond)

	require.NoError(t, s.WriteThrough(sampleResources()))
	time.Sleep(1100 * time.Millisecond) // cached_at has second granularity

	got, cachedAt, err := s.AllUnexpired()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.True(t, cachedAt.IsZero())

	// Expired rows still exist until pruned.
	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestLastSyncPerProvider(t *testing.T) {
	s := testStore(t, 24*time.Hour)

	last, err := s.LastSync(core.ProviderAWS)
	require.NoError(t, err)
	assert.True(t, last.IsZero(), "never-cached provider reports zero time")

	require.NoError(t, s.WriteThrough(sampleResources()))

	last, err = s.LastSync(core.ProviderAWS)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), last, 5*time.Second)

	last, err = s.LastSync(core.ProviderAzure)
	require.NoError(t, err)
	assert.True(t, last.IsZero())
}

func TestClearScopedToProvider(t *testing.T) {
	s := testStore(t, 24*time.Hour)
	require.NoError(t, s.WriteThrough(sampleResources()))

	require.NoError(t, s.Clear(core.ProviderAWS))

	got, _, err := s.AllUnexpired()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, core.ProviderGCP, got[0].Provider)

	require.NoError(t, s.ClearAll())
	n, err := s.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestClearWithLowercaseArg(t *testing.T) {
	s := testStore(t, 24*time.Hour)
	require.NoError(t, s.WriteThrough(sampleResources()))

	// The CLI hands the lowercase argument straight to the parser; it must
	// scope the clear to GCP, never fall back to AWS.
	require.NoError(t, s.Clear(core.ParseProviderKind("gcp")))

	got, _, err := s.AllUnexpired()
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, core.ProviderAWS, r.Provider)
	}
}

func TestPruneRemovesOnlyOldRows(t *testing.T) {
	s := testStore(t, 24*time.Hour)
	require.NoError(t, s.WriteThrough(sampleResources()))

	// Nothing is older than an hour yet.
	pruned, err := s.Prune(time.Hour)
	require.NoError(t, err)
	assert.Zero(t, pruned)

	// Everything is older than zero.
	pruned, err = s.Prune(-time.Second)
	require.NoError(t, err)
	assert.EqualValues(t, 3, pruned)
}

func TestIsStale(t *testing.T) {
	s := testStore(t, 24*time.Hour)

	stale, err := s.IsStale(core.ProviderAWS)
	require.NoError(t, err)
	assert.True(t, stale, "absent provider is stale")

	require.NoError(t, s.WriteThrough(sampleResources()))
	stale, err = s.IsStale(core.ProviderAWS)
	require.NoError(t, err)
	assert.False(t, stale)
}

func TestOpenCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "cache.db")
	s, err := Open(path, time.Hour)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.WriteThrough(sampleResources()))
	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
