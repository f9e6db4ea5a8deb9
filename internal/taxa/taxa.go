// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package taxa caches taxonomy lookups in a local SQLite database.
// The cache is opaque to the rest of the pipeline: callers only use the
// Get(id) contract and never talk to the upstream taxonomy service.
package taxa

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Taxonomy describes one organism.
type Taxonomy struct {
	TaxID   int64    `json:"tax_id"`
	Name    string   `json:"name"`
	Lineage []string `json:"lineage"`
}

// Cache is a SQLite-backed taxonomy store.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the taxonomy cache database at path, creating
// the schema if it does not exist.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening taxonomy cache: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS taxa (
		tax_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		lineage TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating taxonomy schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached taxonomy for an NCBI taxonomy id.
func (c *Cache) Get(taxID int64) (Taxonomy, error) {
	var (
		t       Taxonomy
		lineage string
	)
	err := c.db.QueryRow(
		`SELECT tax_id, name, lineage FROM taxa WHERE tax_id = ?`, taxID,
	).Scan(&t.TaxID, &t.Name, &lineage)
	if errors.Is(err, sql.ErrNoRows) {
		return Taxonomy{}, fmt.Errorf("no taxonomy cached for id %d", taxID)
	}
	if err != nil {
		return Taxonomy{}, fmt.Errorf("querying taxonomy cache: %w", err)
	}

	if err := json.Unmarshal([]byte(lineage), &t.Lineage); err != nil {
		return Taxonomy{}, fmt.Errorf("parsing lineage for id %d: %w", taxID, err)
	}
	return t, nil
}

// Add upserts a taxonomy record.
func (c *Cache) Add(t Taxonomy) error {
	lineage, err := json.Marshal(t.Lineage)
	if err != nil {
		return fmt.Errorf("marshaling lineage: %w", err)
	}
	_, err = c.db.Exec(
		`INSERT INTO taxa (tax_id, name, lineage) VALUES (?, ?, ?)
		 ON CONFLICT(tax_id) DO UPDATE SET name=excluded.name, lineage=excluded.lineage`,
		t.TaxID, t.Name, string(lineage),
	)
	if err != nil {
		return fmt.Errorf("storing taxonomy %d: %w", t.TaxID, err)
	}
	return nil
}
