// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

// Package cachesvc persists resource snapshots to a local SQLite database so
// the dashboard can start from recent data without hitting the cloud APIs.
// Every operation is best-effort from the caller's perspective: cache errors
// are logged and the dashboard keeps working.
package cachesvc

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/confighub/cloud-scout/internal/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS resources (
	id            TEXT PRIMARY KEY,
	provider      TEXT NOT NULL,
	resource_type TEXT NOT NULL,
	region        TEXT NOT NULL,
	data          TEXT NOT NULL,
	cached_at     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_resources_provider ON resources(provider);
CREATE INDEX IF NOT EXISTS idx_resources_cached_at ON resources(cached_at);
`

// Store is a write-through cache of resource snapshots backed by SQLite.
type Store struct {
	db     *sql.DB
	maxAge time.Duration
}

// Open creates or opens the cache database at path, creating parent
// directories as needed. Entries older than maxAge are treated as expired on
// read.
func Open(path string, maxAge time.Duration) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize cache schema: %w", err)
	}

	return &Store{db: db, maxAge: maxAge}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// WriteThrough upserts a full snapshot in a single transaction.
func (s *Store) WriteThrough(resources []core.Resource) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin cache tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO resources (id, provider, resource_type, region, data, cached_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare cache insert: %w", err)
	}
	defer stmt.Close()

	cachedAt := time.Now().Unix()
	for i := range resources {
		r := resources[i]
		r.Normalize()
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("serialize resource %s: %w", r.ID, err)
		}
		if _, err := stmt.Exec(r.ID, r.ProviderLabel, r.TypeLabel, r.Region, string(data), cachedAt); err != nil {
			return fmt.Errorf("cache resource %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// AllUnexpired returns every cached resource younger than the store's max
// age, in insertion-id order, along with the newest cached-at timestamp.
func (s *Store) AllUnexpired() ([]core.Resource, time.Time, error) {
	cutoff := time.Now().Add(-s.maxAge).Unix()

	rows, err := s.db.Query(`
		SELECT data, cached_at FROM resources
		WHERE cached_at > ?
		ORDER BY id`, cutoff)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("query cache: %w", err)
	}
	defer rows.Close()

	var resources []core.Resource
	var newest int64
	for rows.Next() {
		var data string
		var cachedAt int64
		if err := rows.Scan(&data, &cachedAt); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan cache row: %w", err)
		}
		var r core.Resource
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			// A single corrupt row does not poison the whole cache.
			continue
		}
		r.Denormalize()
		resources = append(resources, r)
		if cachedAt > newest {
			newest = cachedAt
		}
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("iterate cache rows: %w", err)
	}

	if len(resources) == 0 {
		return nil, time.Time{}, nil
	}
	return resources, time.Unix(newest, 0), nil
}

// LastSync returns the newest cached-at time for a provider, or zero when
// the provider has never been cached.
func (s *Store) LastSync(kind core.ProviderKind) (time.Time, error) {
	var ts sql.NullInt64
	err := s.db.QueryRow(
		`SELECT MAX(cached_at) FROM resources WHERE provider = ?`,
		kind.Label()).Scan(&ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("query last sync: %w", err)
	}
	if !ts.Valid {
		return time.Time{}, nil
	}
	return time.Unix(ts.Int64, 0), nil
}

// Count returns the number of cached resources, expired ones included.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM resources`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cache: %w", err)
	}
	return n, nil
}

// Clear deletes all cached resources for one provider.
func (s *Store) Clear(kind core.ProviderKind) error {
	if _, err := s.db.Exec(`DELETE FROM resources WHERE provider = ?`, kind.Label()); err != nil {
		return fmt.Errorf("clear cache for %s: %w", kind.Label(), err)
	}
	return nil
}

// ClearAll deletes every cached resource.
func (s *Store) ClearAll() error {
	if _, err := s.db.Exec(`DELETE FROM resources`); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// Prune deletes entries older than maxAge and reports how many went.
func (s *Store) Prune(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge).Unix()
	res, err := s.db.Exec(`DELETE FROM resources WHERE cached_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune cache: %w", err)
	}
	return res.RowsAffected()
}

// IsStale reports whether a provider's cached data is older than the
// store's max age (or absent entirely).
func (s *Store) IsStale(kind core.ProviderKind) (bool, error) {
	last, err := s.LastSync(kind)
	if err != nil {
		return true, err
	}
	if last.IsZero() {
		return true, nil
	}
	return time.Since(last) > s.maxAge, nil
}
