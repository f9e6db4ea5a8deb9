// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package annotations

import (
	"errors"
	"log/slog"
)

// ErrCannotReuse marks a reuse verdict of false. Prior computed gene
// coordinates can no longer be trusted, so callers must treat this as
// fatal for the run rather than continue with stale annotations.
var ErrCannotReuse = errors.New("genbank record or gene annotations are updated, can't reuse result")

// coordSentinel stands in for an absent coordinate in the persisted
// payload.
const coordSentinel = -1

// MinimalSnapshot is the reduced projection of a snapshot persisted
// between runs purely for the reuse comparison.
type MinimalSnapshot struct {
	RecordID         string           `json:"record_id"`
	GenbankAccession string           `json:"genbank_accession"`
	Coords           [2]int           `json:"coords"`
	GeneAnnotations  []GeneAnnotation `json:"gene_annotations"`
	ExtraGenes       []ExtraGene      `json:"extra_genes"`
	ToDelete         []string         `json:"to_delete"`
}

// Minimal projects the reuse-relevant parts of a snapshot.
func Minimal(recordID string, snap *Snapshot) MinimalSnapshot {
	locus := snap.Locus()
	return MinimalSnapshot{
		RecordID:         recordID,
		GenbankAccession: locus.Accession,
		Coords:           coords(locus),
		GeneAnnotations:  snap.GeneAnnotations(),
		ExtraGenes:       snap.ExtraGenes(),
		ToDelete:         snap.GenesToDelete(),
	}
}

func coords(locus Locus) [2]int {
	c := [2]int{coordSentinel, coordSentinel}
	if locus.Begin != 0 {
		c[0] = locus.Begin
	}
	if locus.End != 0 {
		c[1] = locus.End
	}
	return c
}

// Decide compares the previous run's minimal snapshot against a freshly
// parsed one and the current record identity. The comparison
// short-circuits at the first mismatch; each mismatch is logged at
// debug level. It is a structural equality check: any shape change
// forces full recomputation.
func Decide(prev MinimalSnapshot, snap *Snapshot, recordID string, log *slog.Logger) bool {
	if log == nil {
		log = slog.Default()
	}
	locus := snap.Locus()

	switch {
	case locus.Accession != prev.GenbankAccession:
		log.Debug("previous result's genbank accession differs from the new one",
			"previous", prev.GenbankAccession, "current", locus.Accession)
	case recordID != prev.RecordID:
		log.Debug("previous result's record id differs from the new one",
			"previous", prev.RecordID, "current", recordID)
	case coords(locus) != prev.Coords:
		log.Debug("previous result's coordinates differ from the new ones",
			"previous", prev.Coords, "current", coords(locus))
	case len(snap.GeneAnnotations()) != len(prev.GeneAnnotations):
		log.Debug("gene annotations have changed",
			"previous", len(prev.GeneAnnotations), "current", len(snap.GeneAnnotations()))
	case len(snap.ExtraGenes()) != len(prev.ExtraGenes):
		log.Debug("additional genes have changed",
			"previous", len(prev.ExtraGenes), "current", len(snap.ExtraGenes()))
	case len(snap.GenesToDelete()) != len(prev.ToDelete):
		log.Debug("genes to delete have changed",
			"previous", len(prev.ToDelete), "current", len(snap.GenesToDelete()))
	default:
		return true
	}
	return false
}
