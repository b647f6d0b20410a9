// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package linker resolves canonical symbols to protein-database accessions,
// caching results for the process lifetime.
package linker

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/target-screener/pkg/types"
)

// Cache is the symbol→AccessionRecord cache, shared across concurrent runs.
// Entries live in memory and are mirrored to SQLite so overlapping target
// sets across process restarts skip the external lookup. Entries never
// expire; invalidation is manual (delete the database file).
type Cache struct {
	db *sql.DB

	mu  sync.RWMutex
	mem map[string]types.AccessionRecord
}

// OpenCache opens or creates the cache database at path, creating parent
// directories as needed. ":memory:" yields an ephemeral cache.
func OpenCache(path string) (*Cache, error) {
	dsn := path
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating cache directory: %w", err)
			}
		}
		dsn = path + "?_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	c := &Cache{db: db, mem: make(map[string]types.AccessionRecord)}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	if err := c.warm(); err != nil {
		db.Close()
		return nil, fmt.Errorf("loading cache: %w", err)
	}
	return c, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) createSchema() error {
	_, err := c.db.Exec(`CREATE TABLE IF NOT EXISTS accessions (
		symbol      TEXT PRIMARY KEY,
		accession   TEXT NOT NULL,
		name        TEXT NOT NULL,
		found       INTEGER NOT NULL,
		resolved_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// warm loads all persisted records into memory.
func (c *Cache) warm() error {
	rows, err := c.db.Query(`SELECT symbol, accession, name, found FROM accessions`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var rec types.AccessionRecord
		var found int
		if err := rows.Scan(&rec.Symbol, &rec.Accession, &rec.Name, &found); err != nil {
			return err
		}
		rec.Found = found != 0
		c.mem[rec.Symbol] = rec
	}
	return rows.Err()
}

// Get returns the cached record for symbol. Both hits and definitive misses
// (Found false) are cacheable outcomes.
func (c *Cache) Get(symbol string) (types.AccessionRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.mem[symbol]
	return rec, ok
}

// Put stores a record, overwriting any existing entry for the symbol.
// Last writer wins on a race: records are idempotent per symbol.
func (c *Cache) Put(ctx context.Context, rec types.AccessionRecord) error {
	c.mu.Lock()
	c.mem[rec.Symbol] = rec
	c.mu.Unlock()

	found := 0
	if rec.Found {
		found = 1
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO accessions (symbol, accession, name, found, resolved_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(symbol) DO UPDATE SET
			accession=excluded.accession, name=excluded.name,
			found=excluded.found, resolved_at=excluded.resolved_at`,
		rec.Symbol, rec.Accession, rec.Name, found,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("persisting accession for %s: %w", rec.Symbol, err)
	}
	return nil
}

// Len returns the number of cached symbols.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.mem)
}
