// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package genome holds a lean genomic record model: records, CDS
// features, and coordinate spans. It covers only what annotation
// reconciliation needs; the full detection pipeline owns the real
// feature machinery.
package genome

// Exon is a contiguous coordinate span, 0-based and half-open.
type Exon struct {
	Begin int
	End   int
}

// Location is a genomic coordinate span, possibly split across exons.
// Strand is +1 or -1.
type Location struct {
	Exons  []Exon
	Strand int
}

// NewLocation builds a single-exon location.
func NewLocation(begin, end, strand int) Location {
	return Location{Exons: []Exon{{Begin: begin, End: end}}, Strand: strand}
}

// Begin returns the smallest coordinate covered by the location.
func (l Location) Begin() int {
	begin := l.Exons[0].Begin
	for _, e := range l.Exons[1:] {
		if e.Begin < begin {
			begin = e.Begin
		}
	}
	return begin
}

// End returns the largest coordinate covered by the location.
func (l Location) End() int {
	end := l.Exons[0].End
	for _, e := range l.Exons[1:] {
		if e.End > end {
			end = e.End
		}
	}
	return end
}

// Length returns the number of bases covered, summed over exons.
func (l Location) Length() int {
	total := 0
	for _, e := range l.Exons {
		total += e.End - e.Begin
	}
	return total
}

// Contains reports whether other lies fully within l's outer span.
func (l Location) Contains(other Location) bool {
	return l.Begin() <= other.Begin() && other.End() <= l.End()
}

// SubRegion is a labelled span of interest within a record, typically
// the extent of a biosynthetic gene cluster.
type SubRegion struct {
	Location Location
	Tool     string
	Label    string
}
