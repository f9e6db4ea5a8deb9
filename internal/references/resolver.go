// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package references

import (
	"context"

	"github.com/kblin/mibig-html/pkg/types"
)

// nullPubmedID marks a placeholder citation that must never be looked
// up or rendered.
const nullPubmedID = "0"

// Link is one display-ready resolved reference.
type Link struct {
	Citation types.Citation
	Title    string
	Info     string
}

// Category returns the database kind for grouping in output.
func (l Link) Category() string {
	return string(l.Citation.Database)
}

// Ref returns the canonical URL for the reference.
func (l Link) Ref() string {
	return l.Citation.URL()
}

// Fetcher retrieves bibliographic entries for a batch of identifiers
// from an external service. A failed call surfaces to the caller
// unmodified; there is no retry at this level.
type Fetcher interface {
	Fetch(ctx context.Context, ids []string) ([]Entry, error)
}

// Resolver turns the citation list of one annotation entry into
// resolved links, fetching cache misses in batches.
type Resolver struct {
	Pubmed        *Cache
	Doi           *Cache
	PubmedFetcher Fetcher
	DoiFetcher    Fetcher
}

// Resolve produces resolved links preserving citation encounter order.
// Citations carrying the PubMed null sentinel id are dropped entirely.
// Per database kind, only the identifiers missing from the cache are
// fetched, in a single batched call; already-cached identifiers are
// never refetched. A citation absent from the fetch response fails the
// final cache lookup rather than getting a placeholder entry.
func (r *Resolver) Resolve(ctx context.Context, citations []types.Citation) ([]Link, error) {
	links := make(map[string]*Link)
	var order []string
	var pmids, dois []string

	for _, citation := range citations {
		switch citation.Database {
		case types.DatabasePubmed:
			if citation.Value == nullPubmedID {
				continue
			}
			pmids = append(pmids, citation.Value)
		case types.DatabaseDOI:
			dois = append(dois, citation.Value)
		}
		if _, ok := links[citation.Value]; !ok {
			links[citation.Value] = &Link{Citation: citation}
			order = append(order, citation.Value)
		}
	}

	if err := r.resolveKind(ctx, r.Pubmed, r.PubmedFetcher, pmids, links); err != nil {
		return nil, err
	}
	if err := r.resolveKind(ctx, r.Doi, r.DoiFetcher, dois, links); err != nil {
		return nil, err
	}

	resolved := make([]Link, 0, len(order))
	for _, value := range order {
		resolved = append(resolved, *links[value])
	}
	return resolved, nil
}

func (r *Resolver) resolveKind(ctx context.Context, cache *Cache, fetcher Fetcher, ids []string, links map[string]*Link) error {
	if len(ids) == 0 {
		return nil
	}

	if missing := cache.GetMissing(ids); len(missing) > 0 {
		entries, err := fetcher.Fetch(ctx, missing)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			cache.Add(entry)
		}
	}

	for _, id := range ids {
		entry, err := cache.Get(id)
		if err != nil {
			return err
		}
		links[id].Title = entry.Title
		links[id].Info = entry.Info(cache.Label())
	}
	return nil
}
