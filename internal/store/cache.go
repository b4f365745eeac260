// Package store provides a SQLite-backed cache for computed reports and narratives.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cached payload kinds
const (
	KindReport    = "report"
	KindBudgets   = "budgets"
	KindNarrative = "narrative"
)

// Key identifies one cached payload. DataVersion is the ledger fingerprint and
// SettingsVersion the engine tuning fingerprint, so a change to either the records or
// the weights and thresholds produces a different key.
type Key struct {
	WorkspaceID     string
	Month           string
	AsOf            string
	DataVersion     string
	SettingsVersion string
	Kind            string
}

func (k Key) String() string {
	return strings.Join([]string{k.WorkspaceID, k.Month, k.AsOf, k.DataVersion, k.SettingsVersion, k.Kind}, "|")
}

// ReportCache stores marshalled payloads in SQLite.
type ReportCache struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*ReportCache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &ReportCache{db: db, now: time.Now}, nil
}

// Close closes the cache database.
func (c *ReportCache) Close() error {
	return c.db.Close()
}

// Get returns the payload stored under key. The boolean is false on a miss.
func (c *ReportCache) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	var payload []byte
	err := c.db.QueryRowContext(ctx, "SELECT payload FROM report_cache WHERE cache_key = ?", key.String()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}
	return payload, true, nil
}

// Put stores payload under key, replacing any previous entry.
func (c *ReportCache) Put(ctx context.Context, key Key, payload []byte) error {
	_, err := c.db.ExecContext(ctx, `INSERT OR REPLACE INTO report_cache
		(cache_key, workspace_id, month, as_of, data_version, kind, payload, stored_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		key.String(), key.WorkspaceID, key.Month, key.AsOf, key.DataVersion, key.Kind,
		payload, c.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Prune deletes entries stored before the cutoff and returns how many were removed.
func (c *ReportCache) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := c.db.ExecContext(ctx, "DELETE FROM report_cache WHERE stored_at < ?", before.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	return res.RowsAffected()
}
