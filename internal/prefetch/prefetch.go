// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prefetch warms the reference caches from a directory of
// annotation documents ahead of a full pipeline run.
package prefetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/kblin/mibig-html/internal/references"
	"github.com/kblin/mibig-html/pkg/types"
)

// specialDois maps identifiers whose canonical resolver cannot serve
// metadata to hand-curated entries injected instead of fetched.
var specialDois = map[string]references.Entry{
	// times out for anything but HTML
	"10.12211/2096-8280.2021-024": {
		Title:      "Genome mining for novel natural products in Sorangium cellulosum So0157-2 by heterologous expression",
		Authors:    []string{"Zhou, H", "Shen, Q", "Chen, H", "Wang, Z", "Li, Y", "Zhang, Y", "Bian, X"},
		Year:       "2021",
		Journal:    "Synthetic Biology Journal",
		Identifier: "10.12211/2096-8280.2021-024",
	},
}

// Scan reads every JSON document in dir and collects the unique
// citation identifiers of one database, sorted. It returns the
// identifiers and the number of files scanned.
func Scan(dir string, db types.Database) ([]string, int, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, 0, fmt.Errorf("scanning %s: %w", dir, err)
	}
	sort.Strings(files)

	pred := references.TagPredicate(db)
	unique := make(map[string]bool)

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, 0, fmt.Errorf("reading %s: %w", file, err)
		}
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, 0, fmt.Errorf("parsing %s: %w", file, err)
		}
		for _, citation := range references.GatherCitations(doc, pred) {
			unique[citation.Value] = true
		}
	}

	ids := make([]string, 0, len(unique))
	for id := range unique {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, len(files), nil
}

// Warm fetches every identifier missing from the cache and saves the
// cache afterwards. It loops on GetMissing until the cache covers the
// whole wanted set, which re-attempts identifiers a still-partial
// response left unresolved; a service that never satisfies the request
// keeps it looping. It returns the number of entries fetched.
func Warm(ctx context.Context, cache *references.Cache, fetcher references.Fetcher, ids []string, w io.Writer) (int, error) {
	kept := ids[:0:0]
	for _, id := range ids {
		if entry, ok := specialDois[id]; ok && cache.Label() == "DOI" {
			cache.Add(entry)
			continue
		}
		kept = append(kept, id)
	}

	fetched := 0
	for missing := cache.GetMissing(kept); len(missing) > 0; missing = cache.GetMissing(kept) {
		fmt.Fprintf(w, "fetching %d missing %s entries\n", len(missing), cache.Label())
		entries, err := fetcher.Fetch(ctx, missing)
		if err != nil {
			return fetched, fmt.Errorf("fetching %s entries: %w", cache.Label(), err)
		}
		for _, entry := range entries {
			cache.Add(entry)
		}
		fetched += len(entries)
	}

	if err := cache.Save(); err != nil {
		return fetched, err
	}
	return fetched, nil
}
