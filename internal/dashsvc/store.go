// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

// Package dashsvc holds the dashboard's application state core: the shared
// resource store, the filter engine, selection and tab state, the view/input
// state machine, the refresh orchestrator, and the action executor. It has no
// rendering dependencies; the TUI in cmd/cloud-scout consumes it.
package dashsvc

import (
	"sync"

	"github.com/confighub/cloud-scout/internal/core"
)

// Store holds the last-fetched resource snapshot. It is the only state shared
// between the render path and the refresh path, so it carries the only lock
// in the package. Snapshots are immutable: a refresh builds a fresh slice and
// swaps it in, readers never observe a partial write.
type Store struct {
	mu        sync.RWMutex
	resources []core.Resource
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Replace atomically swaps in a new snapshot. The lock covers only the swap,
// never the fetch that produced the slice.
func (s *Store) Replace(resources []core.Resource) {
	s.mu.Lock()
	s.resources = resources
	s.mu.Unlock()
}

// Snapshot returns the current snapshot. The returned slice must be treated
// as read-only.
func (s *Store) Snapshot() []core.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resources
}

// TrySnapshot is the render-path read: it never blocks. When a swap is in
// progress it reports false and the renderer shows a loading indicator
// instead of stalling the frame.
func (s *Store) TrySnapshot() ([]core.Resource, bool) {
	if !s.mu.TryRLock() {
		return nil, false
	}
	defer s.mu.RUnlock()
	return s.resources, true
}

// Count returns the number of resources in the current snapshot.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.resources)
}

// Get returns the resource at index i of the current snapshot.
func (s *Store) Get(i int) (core.Resource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.resources) {
		return core.Resource{}, false
	}
	return s.resources[i], true
}
