// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package references resolves and caches bibliographic citations for
// annotation entries. Two persistent caches exist per run, one keyed by
// PubMed id and one by DOI, each with its own external fetch client.
package references

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Entry is one cached bibliographic record. Entries are created on a
// successful external fetch or loaded from the cache file, and never
// mutated afterwards.
type Entry struct {
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	Year       string   `json:"year"`
	Journal    string   `json:"journal"`
	Identifier string   `json:"identifier"`
}

// Info returns the short bibliographic summary line, e.g.
// "Smith J et al., Nat Chem Biol (2019) PMID:12345678".
func (e Entry) Info(label string) string {
	first := ""
	if len(e.Authors) > 0 {
		first = e.Authors[0]
	}
	return fmt.Sprintf("%s et al., %s (%s) %s:%s", first, e.Journal, e.Year, label, e.Identifier)
}

// Cache is a persistent identifier-to-entry store. It is loaded fully
// from its file at construction and rewritten fully on Save; additions
// in between live only in memory. A key present in the cache always has
// a complete entry behind it.
type Cache struct {
	label   string
	path    string
	entries map[string]Entry
}

// NewPubmedCache loads the PubMed-keyed cache from path. A missing file
// yields an empty cache.
func NewPubmedCache(path string) (*Cache, error) {
	return newCache("PMID", path)
}

// NewDoiCache loads the DOI-keyed cache from path. A missing file
// yields an empty cache.
func NewDoiCache(path string) (*Cache, error) {
	return newCache("DOI", path)
}

func newCache(label, path string) (*Cache, error) {
	c := &Cache{label: label, path: path, entries: make(map[string]Entry)}
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("reading reference cache %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		return nil, fmt.Errorf("parsing reference cache %s: %w", path, err)
	}
	return c, nil
}

// Label returns the identifier label used in Info strings ("PMID" or "DOI").
func (c *Cache) Label() string {
	return c.label
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Get returns the cached entry for an identifier. Asking for an
// identifier that was never fetched is a contract violation by the
// caller; resolvers must check GetMissing and fetch first.
func (c *Cache) Get(id string) (Entry, error) {
	entry, ok := c.entries[id]
	if !ok {
		return Entry{}, fmt.Errorf("no cached entry for %s:%s", c.label, id)
	}
	return entry, nil
}

// Add stores an entry under its identifier. The cache only ever grows.
func (c *Cache) Add(e Entry) {
	c.entries[e.Identifier] = e
}

// GetMissing returns the sorted subset of wanted identifiers not yet
// present in the cache. Duplicates in the input collapse to one.
func (c *Cache) GetMissing(wanted []string) []string {
	seen := make(map[string]bool, len(wanted))
	var missing []string
	for _, id := range wanted {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := c.entries[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return missing
}

// Save rewrites the whole cache file. Save cost grows with cache size,
// so callers save at batch granularity rather than per entry.
func (c *Cache) Save() error {
	if c.path == "" {
		return fmt.Errorf("reference cache has no backing file")
	}
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating cache directory %s: %w", dir, err)
		}
	}
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling reference cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("writing reference cache %s: %w", c.path, err)
	}
	return nil
}
