// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package annotations

import (
	"encoding/json"
	"io"
	"log/slog"
	"reflect"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testSnapshot builds the snapshot used throughout the reuse tests:
// one annotated gene, one extra gene, one gene to delete.
func testSnapshot() *Snapshot {
	return &Snapshot{
		Accession:           "BGC0000001",
		Loci:                []Locus{{Accession: "ABC123", Begin: 100, End: 500}},
		BiosyntheticClasses: []string{"Polyketide"},
		TaxID:               "12345",
		Genes: &Genes{
			Annotations: []GeneAnnotation{{ID: "abcA", Product: "polyketide synthase"}},
			ExtraGenes: []ExtraGene{{
				ID:       "abcX",
				Location: &GeneLocation{Exons: []ExonCoords{{Begin: 201, End: 290}}, Strand: 1},
			}},
			ToDelete: []string{"abcZ"},
		},
	}
}

func TestDecideAccepts(t *testing.T) {
	snap := testSnapshot()
	prev := Minimal("rec1", snap)

	if !Decide(prev, snap, "rec1", discardLogger()) {
		t.Fatal("identical snapshots should be reusable")
	}
}

func TestDecideAcceptsAbsentCoords(t *testing.T) {
	snap := testSnapshot()
	snap.Loci[0].Begin = 0
	snap.Loci[0].End = 0
	prev := Minimal("rec1", snap)

	if prev.Coords != [2]int{-1, -1} {
		t.Fatalf("Coords = %v, want the -1 sentinels", prev.Coords)
	}
	if !Decide(prev, snap, "rec1", discardLogger()) {
		t.Fatal("matching sentinel coordinates should be reusable")
	}
}

func TestDecideRejectsSingleFieldChanges(t *testing.T) {
	tests := []struct {
		name     string
		recordID string
		mutate   func(*Snapshot)
	}{
		{"accession changed", "rec1", func(s *Snapshot) { s.Loci[0].Accession = "XYZ999" }},
		{"record id changed", "rec2", func(s *Snapshot) {}},
		{"begin changed", "rec1", func(s *Snapshot) { s.Loci[0].Begin = 101 }},
		{"end changed", "rec1", func(s *Snapshot) { s.Loci[0].End = 600 }},
		{"begin newly absent", "rec1", func(s *Snapshot) { s.Loci[0].Begin = 0 }},
		{"gene annotation added", "rec1", func(s *Snapshot) {
			s.Genes.Annotations = append(s.Genes.Annotations, GeneAnnotation{ID: "abcB"})
		}},
		{"gene annotations dropped", "rec1", func(s *Snapshot) { s.Genes.Annotations = nil }},
		{"extra gene added", "rec1", func(s *Snapshot) {
			s.Genes.ExtraGenes = append(s.Genes.ExtraGenes, ExtraGene{ID: "abcY"})
		}},
		{"genes to delete dropped", "rec1", func(s *Snapshot) { s.Genes.ToDelete = nil }},
		{"genes block dropped entirely", "rec1", func(s *Snapshot) { s.Genes = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := Minimal("rec1", testSnapshot())
			snap := testSnapshot()
			tt.mutate(snap)

			if Decide(prev, snap, tt.recordID, discardLogger()) {
				t.Error("changed snapshot must not be reusable")
			}
		})
	}
}

func TestMinimalSnapshotJSONRoundTrip(t *testing.T) {
	original := Minimal("rec1", testSnapshot())

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded MinimalSnapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(original, decoded) {
		t.Errorf("round trip = %+v, want %+v", decoded, original)
	}

	// The persisted payload carries the to_delete list; the loader
	// depends on it being there.
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"record_id", "genbank_accession", "coords", "gene_annotations", "extra_genes", "to_delete"} {
		if _, ok := keys[key]; !ok {
			t.Errorf("persisted payload is missing %q", key)
		}
	}
}
