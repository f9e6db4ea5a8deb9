// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package annotations

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kblin/mibig-html/internal/genome"
	"github.com/kblin/mibig-html/pkg/types"
)

// GeometryError reports an added gene whose location falls outside the
// cluster subregion.
type GeometryError struct {
	Gene string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("additional gene %s lies outside cluster", e.Gene)
}

// DanglingReferenceError reports annotation references to genes the
// record does not contain. Missing is sorted.
type DanglingReferenceError struct {
	Accession string
	Missing   []string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("%s refers to missing genes: %s", e.Accession, strings.Join(e.Missing, ", "))
}

// AmbiguousReferenceError reports annotation references that resolve to
// more than one gene in the record. IDs is sorted.
type AmbiguousReferenceError struct {
	Accession string
	IDs       []string
}

func (e *AmbiguousReferenceError) Error() string {
	return fmt.Sprintf("%s refers to ambiguous genes: %s", e.Accession, strings.Join(e.IDs, ", "))
}

// Match criteria, in priority order.
const (
	MatchLocusTag  = "locus_tag"
	MatchProteinID = "protein_id"
	MatchGeneName  = "gene"
)

// matchAnnotation reports whether an annotation applies to a feature
// and, if so, which identifier field decided it. The fields are tried
// in a fixed priority order and the first hit wins; later fields are
// not consulted once one matches.
func matchAnnotation(cds *genome.CDS, annot GeneAnnotation) (string, bool) {
	switch {
	case cds.LocusTag != "" && annot.ID == cds.LocusTag:
		return MatchLocusTag, true
	case cds.ProteinID != "" && annot.ID == cds.ProteinID:
		return MatchProteinID, true
	case cds.Gene != "" && annot.Name != "" && annot.Name == cds.Gene:
		return MatchGeneName, true
	}
	return "", false
}

// Subregion computes the cluster span from the annotation's locus,
// converting 1-based inclusive coordinates to the record's 0-based
// half-open convention. The label is the comma-joined biosynthetic
// class list.
func Subregion(snap *Snapshot, record *genome.Record) genome.SubRegion {
	locus := snap.Locus()
	begin := 0
	if locus.Begin != 0 {
		begin = locus.Begin - 1
	}
	end := len(record.Seq)
	if locus.End != 0 {
		end = locus.End
	}
	return genome.SubRegion{
		Location: genome.NewLocation(begin, end, 1),
		Tool:     "mibig",
		Label:    strings.Join(snap.BiosyntheticClasses, ", "),
	}
}

// Merge reconciles an annotation snapshot into a genomic record:
// inserting the annotation's extra genes, overriding product names on
// matched existing genes, and validating referential integrity between
// annotation gene identifiers and the record. The record is mutated in
// place; on error it is left partially merged and callers must not
// assume rollback.
func Merge(snap *Snapshot, record *genome.Record, caches types.CacheConfig) (*Result, error) {
	area := Subregion(snap, record)

	for _, gene := range snap.ExtraGenes() {
		if gene.ID == "" || gene.Location == nil {
			return nil, fmt.Errorf("additional gene needs both an id and a location")
		}
		loc := featureLocation(gene.Location)
		if !area.Location.Contains(loc) {
			return nil, &GeometryError{Gene: gene.ID}
		}
		translation := gene.Translation
		if translation == "" {
			translation = record.Translate(loc)
		}
		cds := &genome.CDS{Location: loc, LocusTag: gene.ID, Translation: translation}
		record.AddCDS(cds)
		record.AddAlteration(fmt.Sprintf("%s was added", cds.Name()))
	}

	annots := snap.GeneAnnotations()
	for _, cds := range record.CDSWithin(area.Location) {
		for _, annot := range annots {
			if _, ok := matchAnnotation(cds, annot); !ok {
				continue
			}
			if annot.Product != "" {
				cds.Product = annot.Product
			}
		}
	}

	existing := make(map[string]bool)
	for _, cds := range record.CDSWithin(area.Location) {
		for _, id := range []string{cds.LocusTag, cds.ProteinID, cds.Gene} {
			if id != "" {
				existing[id] = true
			}
		}
	}

	referenced := snap.ReferencedGeneIDs()

	var missing []string
	for id := range referenced {
		if !existing[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &DanglingReferenceError{Accession: snap.Accession, Missing: missing}
	}

	var ambiguous []string
	for id := range referenced {
		if names := uniqueNames(record.NamesFor(id)); len(names) > 1 {
			ambiguous = append(ambiguous, id)
		}
	}
	if len(ambiguous) > 0 {
		sort.Strings(ambiguous)
		return nil, &AmbiguousReferenceError{Accession: snap.Accession, IDs: ambiguous}
	}

	return newResult(record.ID, area, snap, caches)
}

// Annotate loads an annotation document and merges it into the record.
// This is the slow path, taken only when no previous result can be
// reused.
func Annotate(annotationsFile string, record *genome.Record, caches types.CacheConfig) (*Result, error) {
	snap, err := Load(annotationsFile)
	if err != nil {
		return nil, err
	}
	return Merge(snap, record, caches)
}

// featureLocation converts an annotation gene location to record
// coordinates.
func featureLocation(loc *GeneLocation) genome.Location {
	exons := make([]genome.Exon, 0, len(loc.Exons))
	for _, exon := range loc.Exons {
		exons = append(exons, genome.Exon{Begin: exon.Begin - 1, End: exon.End})
	}
	strand := loc.Strand
	if strand == 0 {
		strand = 1
	}
	return genome.Location{Exons: exons, Strand: strand}
}

func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	var unique []string
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			unique = append(unique, name)
		}
	}
	return unique
}
