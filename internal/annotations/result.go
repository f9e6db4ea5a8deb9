// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package annotations

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/kblin/mibig-html/internal/genome"
	"github.com/kblin/mibig-html/internal/references"
	"github.com/kblin/mibig-html/internal/taxa"
	"github.com/kblin/mibig-html/pkg/types"
)

// Result is the final reconciliation artifact handed to the page
// assembly layer. It is created once per run and consumed read-only.
type Result struct {
	RecordID string
	Area     genome.SubRegion
	Data     *Snapshot
	Taxonomy taxa.Taxonomy

	PubmedCache *references.Cache
	DoiCache    *references.Cache
}

// newResult instantiates the reference caches from their configured
// file paths and looks up the cluster's taxonomy.
func newResult(recordID string, area genome.SubRegion, snap *Snapshot, caches types.CacheConfig) (*Result, error) {
	taxID, err := strconv.ParseInt(snap.TaxID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid taxonomy id %q: %w", snap.TaxID, err)
	}

	taxaCache, err := taxa.Open(caches.TaxaFile)
	if err != nil {
		return nil, err
	}
	defer taxaCache.Close()

	taxonomy, err := taxaCache.Get(taxID)
	if err != nil {
		return nil, err
	}

	pubmed, err := references.NewPubmedCache(caches.PubmedFile)
	if err != nil {
		return nil, err
	}
	doi, err := references.NewDoiCache(caches.DoiFile)
	if err != nil {
		return nil, err
	}

	return &Result{
		RecordID:    recordID,
		Area:        area,
		Data:        snap,
		Taxonomy:    taxonomy,
		PubmedCache: pubmed,
		DoiCache:    doi,
	}, nil
}

// ToJSON projects the result to the minimal payload persisted for the
// next run's reuse decision.
func (r *Result) ToJSON() MinimalSnapshot {
	return Minimal(r.RecordID, r.Data)
}

// Reuse is the fast path taken when a previous run's payload exists:
// it loads the annotation document, decides reusability, and builds the
// result without mutating the record. A false verdict is reported once
// at error level and returned as ErrCannotReuse.
func Reuse(prev MinimalSnapshot, record *genome.Record, annotationsFile string, caches types.CacheConfig, log *slog.Logger) (*Result, error) {
	if log == nil {
		log = slog.Default()
	}

	snap, err := Load(annotationsFile)
	if err != nil {
		return nil, err
	}

	if !Decide(prev, snap, record.ID, log) {
		log.Error("can't reuse MIBiG annotation")
		return nil, ErrCannotReuse
	}

	return newResult(record.ID, Subregion(snap, record), snap, caches)
}
