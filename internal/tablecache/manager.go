// Package tablecache caches syntax-table documents fetched from a remote
// registry URL (`synlex table fetch`), keyed content-addressably by the
// fetch URL, so offline runs of `synlex` can reuse the last table they saw.
//
// Adapted from drun's internal/cache.Manager (remote-include caching over
// SoloDB): same storage engine and expiration model, repointed at syntax
// tables instead of remote drun includes.
package tablecache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	solodb "github.com/phillarmonic/SoloDB"
)

// Manager caches syntax-table documents with expiration, backed by an
// embedded SoloDB database under ~/.synlex/tables.solo.
type Manager struct {
	db         *solodb.DB
	expiration time.Duration
	disabled   bool
}

// Stats reports cache occupancy, mirroring SoloDB's own accounting.
type Stats struct {
	Keys        int
	FileBytes   int64
	LiveRecords int64
}

// NewManager opens (or creates) the syntax-table cache database. Passing
// disabled=true yields a Manager that always misses, for `--no-cache` runs.
func NewManager(expiration time.Duration, disabled bool) (*Manager, error) {
	if disabled {
		return &Manager{disabled: true, expiration: expiration}, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	synlexDir := filepath.Join(homeDir, ".synlex")
	if err := os.MkdirAll(synlexDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .synlex directory: %w", err)
	}

	dbPath := filepath.Join(synlexDir, "tables.solo")
	db, err := solodb.Open(solodb.Options{
		Path:       dbPath,
		Durability: solodb.SyncBatch,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open table cache database: %w", err)
	}

	return &Manager{db: db, expiration: expiration}, nil
}

// KeyForURL derives the cache key for a syntax-table document fetched from
// url, content-addressed so re-fetching the same URL overwrites in place.
func KeyForURL(url string) string {
	h := sha256.New()
	h.Write([]byte(url))
	return "table:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// Get retrieves a cached syntax-table document. The second return value is
// true only on a live (non-expired) hit.
func (m *Manager) Get(key string) ([]byte, bool, error) {
	if m.disabled {
		return nil, false, nil
	}

	rc, _, _, err := m.db.GetBlob(key)
	if err == solodb.ErrNotFound || err == solodb.ErrExpired {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("table cache read error: %w", err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, false, fmt.Errorf("table cache read error: %w", err)
	}
	return content, true, nil
}

// Set stores a fetched syntax-table document, expiring after m.expiration.
func (m *Manager) Set(key string, content []byte) error {
	if m.disabled {
		return nil
	}
	expiryTime := time.Now().Add(m.expiration)
	if err := m.db.SetBlob(key, bytes.NewReader(content), int64(len(content)), expiryTime); err != nil {
		return fmt.Errorf("table cache write error: %w", err)
	}
	return nil
}

// Delete drops a single cached table (`synlex table forget <url>`).
func (m *Manager) Delete(key string) error {
	if m.disabled {
		return nil
	}
	return m.db.Delete(key)
}

// Stats reports current cache occupancy.
func (m *Manager) Stats() Stats {
	if m.disabled || m.db == nil {
		return Stats{}
	}
	dbStats := m.db.Stats()
	return Stats{
		Keys:        dbStats.Keys,
		FileBytes:   dbStats.FileBytes,
		LiveRecords: int64(dbStats.LiveRecords),
	}
}

// Compact reclaims disk space after many table fetches/evictions.
func (m *Manager) Compact() error {
	if m.disabled || m.db == nil {
		return nil
	}
	return m.db.Compact()
}

// Close closes the underlying database.
func (m *Manager) Close() error {
	if m.disabled || m.db == nil {
		return nil
	}
	return m.db.Close()
}
