// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package genome

import "strings"

// CDS is a protein-coding gene feature.
type CDS struct {
	Location    Location
	LocusTag    string
	ProteinID   string
	Gene        string
	Product     string
	Translation string
}

// Name returns the preferred display identifier for the feature:
// locus tag, then gene name, then protein id.
func (c *CDS) Name() string {
	switch {
	case c.LocusTag != "":
		return c.LocusTag
	case c.Gene != "":
		return c.Gene
	default:
		return c.ProteinID
	}
}

// identifiers returns every non-empty identifier field of the feature.
func (c *CDS) identifiers() []string {
	var ids []string
	for _, id := range []string{c.LocusTag, c.ProteinID, c.Gene} {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Record is one genomic sequence with its coding features. The record
// is exclusively owned by the calling pipeline; only the annotation
// merge is expected to mutate it.
type Record struct {
	ID  string
	Seq string

	cdses       []*CDS
	alterations []string
	// aliases maps every identifier seen on a feature to the unique
	// names of the features carrying it, so ambiguous references can
	// be detected.
	aliases map[string][]string
}

// New creates a record with the given identifier and nucleotide sequence.
func New(id, seq string) *Record {
	return &Record{ID: id, Seq: seq, aliases: make(map[string][]string)}
}

// AddCDS appends a feature to the record without deduplication and
// registers its identifiers for alias tracking.
func (r *Record) AddCDS(c *CDS) {
	r.cdses = append(r.cdses, c)
	name := c.Name()
	for _, id := range c.identifiers() {
		r.aliases[id] = append(r.aliases[id], name)
	}
}

// CDSFeatures returns every coding feature in insertion order.
func (r *Record) CDSFeatures() []*CDS {
	return r.cdses
}

// CDSWithin returns the coding features fully contained in loc.
func (r *Record) CDSWithin(loc Location) []*CDS {
	var within []*CDS
	for _, c := range r.cdses {
		if loc.Contains(c.Location) {
			within = append(within, c)
		}
	}
	return within
}

// NamesFor returns the unique feature names an identifier resolves to.
// More than one name means the identifier is ambiguous.
func (r *Record) NamesFor(id string) []string {
	return r.aliases[id]
}

// AddAlteration records a human-readable note about a change made to
// the record.
func (r *Record) AddAlteration(note string) {
	r.alterations = append(r.alterations, note)
}

// Alterations returns the recorded change notes in order.
func (r *Record) Alterations() []string {
	return r.alterations
}

// codonTable is the standard genetic code.
var codonTable = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

var complement = map[byte]byte{
	'A': 'T', 'T': 'A', 'G': 'C', 'C': 'G', 'N': 'N',
}

// Translate derives the amino acid translation for a location from the
// record sequence, honoring exon boundaries and strand. Trailing stop
// codons are trimmed; unknown codons become 'X'.
func (r *Record) Translate(loc Location) string {
	var nt strings.Builder
	for _, e := range loc.Exons {
		begin, end := e.Begin, e.End
		if begin < 0 {
			begin = 0
		}
		if end > len(r.Seq) {
			end = len(r.Seq)
		}
		if begin < end {
			nt.WriteString(r.Seq[begin:end])
		}
	}

	seq := strings.ToUpper(nt.String())
	if loc.Strand < 0 {
		seq = reverseComplement(seq)
	}

	var aa strings.Builder
	for i := 0; i+3 <= len(seq); i += 3 {
		res, ok := codonTable[seq[i:i+3]]
		if !ok {
			res = 'X'
		}
		aa.WriteByte(res)
	}
	return strings.TrimSuffix(aa.String(), "*")
}

func reverseComplement(seq string) string {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		base, ok := complement[seq[len(seq)-1-i]]
		if !ok {
			base = 'N'
		}
		out[i] = base
	}
	return string(out)
}
