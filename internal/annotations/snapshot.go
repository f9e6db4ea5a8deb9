// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package annotations reconciles curated cluster annotation documents
// with freshly computed genomic records: deciding whether a previous
// run can be reused, merging annotation data into a record when it
// cannot, and exposing the result consumed by the page assembly layer.
package annotations

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kblin/mibig-html/pkg/types"
)

// Locus names the genomic span a cluster annotation applies to.
// Begin and End are 1-based inclusive coordinates; zero means absent,
// with an absent Begin meaning the start of the record and an absent
// End meaning its full length.
type Locus struct {
	Accession string `json:"accession"`
	Begin     int    `json:"begin,omitempty"`
	End       int    `json:"end,omitempty"`
}

// GeneAnnotation is curator-supplied data about one existing gene.
type GeneAnnotation struct {
	ID        string         `json:"id"`
	Name      string         `json:"name,omitempty"`
	Product   string         `json:"product,omitempty"`
	Comment   string         `json:"comment,omitempty"`
	Functions []GeneFunction `json:"functions,omitempty"`
}

// GeneFunction tags a gene with a functional role and its supporting
// evidence.
type GeneFunction struct {
	Function string     `json:"function"`
	Evidence []Evidence `json:"evidence,omitempty"`
}

// Evidence links a claim to its method and literature references.
type Evidence struct {
	Method     string           `json:"method"`
	References []types.Citation `json:"references,omitempty"`
}

// ExonCoords is one exon of an extra gene, 1-based inclusive.
type ExonCoords struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

// GeneLocation is the nucleotide location of an extra gene.
type GeneLocation struct {
	Exons  []ExonCoords `json:"exons"`
	Strand int          `json:"strand"`
}

// ExtraGene is a gene the annotation adds to the record.
type ExtraGene struct {
	ID          string        `json:"id"`
	Location    *GeneLocation `json:"location,omitempty"`
	Translation string        `json:"translation,omitempty"`
}

// Genes groups the gene-level parts of an annotation.
type Genes struct {
	Annotations []GeneAnnotation `json:"annotations,omitempty"`
	ExtraGenes  []ExtraGene      `json:"extra_genes,omitempty"`
	ToDelete    []string         `json:"to_delete,omitempty"`
}

// NRPSGene names a gene involved in nonribosomal peptide synthesis.
type NRPSGene struct {
	GeneID string `json:"gene_id"`
}

// Thioesterase names a thioesterase gene.
type Thioesterase struct {
	Gene string `json:"gene"`
}

// NRP is the nonribosomal peptide part of the biosynthesis description.
type NRP struct {
	NRPSGenes     []NRPSGene     `json:"nrps_genes,omitempty"`
	Thioesterases []Thioesterase `json:"thioesterases,omitempty"`
}

// SynthaseModule is one module of a polyketide synthase.
type SynthaseModule struct {
	Genes []string `json:"genes,omitempty"`
}

// Synthase is one polyketide synthase.
type Synthase struct {
	Genes   []string         `json:"genes,omitempty"`
	Modules []SynthaseModule `json:"modules,omitempty"`
}

// Polyketide is the polyketide part of the biosynthesis description.
type Polyketide struct {
	Synthases []Synthase `json:"synthases,omitempty"`
}

// Glycosyltransferase names a glycosyltransferase gene.
type Glycosyltransferase struct {
	GeneID string `json:"gene_id"`
}

// Saccharide is the saccharide part of the biosynthesis description.
type Saccharide struct {
	Glycosyltransferases []Glycosyltransferase `json:"glycosyltransferases,omitempty"`
}

// ChemMoiety is a chemical moiety of a compound, optionally produced
// by a gene subcluster.
type ChemMoiety struct {
	Moiety     string   `json:"moiety"`
	Subcluster []string `json:"subcluster,omitempty"`
}

// Compound is one product of the cluster.
type Compound struct {
	Name         string       `json:"name"`
	ChemMoieties []ChemMoiety `json:"chem_moieties,omitempty"`
}

// Snapshot is a deserialized external annotation document for one
// cluster. It is read-only after parsing.
type Snapshot struct {
	Accession           string     `json:"mibig_accession"`
	Loci                []Locus    `json:"loci"`
	BiosyntheticClasses []string   `json:"biosyn_class"`
	TaxID               string     `json:"ncbi_tax_id"`
	Genes               *Genes     `json:"genes,omitempty"`
	NRP                 *NRP       `json:"nrp,omitempty"`
	Polyketide          *Polyketide `json:"polyketide,omitempty"`
	Saccharide          *Saccharide `json:"saccharide,omitempty"`
	Compounds           []Compound `json:"compounds,omitempty"`
}

// document is the top-level wrapper of an annotation file.
type document struct {
	Cluster Snapshot `json:"cluster"`
}

// Parse deserializes an annotation document and checks the locus
// invariant the rest of the pipeline relies on.
func Parse(data []byte) (*Snapshot, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing annotation document: %w", err)
	}
	snap := doc.Cluster

	if len(snap.Loci) != 1 || snap.Loci[0].Accession == "" {
		return nil, fmt.Errorf("annotation for %s must name exactly one genomic accession", snap.Accession)
	}
	return &snap, nil
}

// Load reads and parses an annotation document from disk.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading annotation file: %w", err)
	}
	return Parse(data)
}

// Locus returns the single genomic locus of the annotation.
func (s *Snapshot) Locus() Locus {
	return s.Loci[0]
}

// GeneAnnotations returns the gene annotation list, empty when the
// genes block is absent.
func (s *Snapshot) GeneAnnotations() []GeneAnnotation {
	if s.Genes == nil {
		return nil
	}
	return s.Genes.Annotations
}

// ExtraGenes returns the genes-to-add list, empty when the genes block
// is absent.
func (s *Snapshot) ExtraGenes() []ExtraGene {
	if s.Genes == nil {
		return nil
	}
	return s.Genes.ExtraGenes
}

// GenesToDelete returns the genes-to-delete list, empty when the genes
// block is absent.
func (s *Snapshot) GenesToDelete() []string {
	if s.Genes == nil {
		return nil
	}
	return s.Genes.ToDelete
}

// ReferencedGeneIDs returns the set of gene identifiers referenced
// anywhere in the annotation: gene annotations plus every gene named
// transitively by the biosynthesis description.
func (s *Snapshot) ReferencedGeneIDs() map[string]bool {
	referenced := make(map[string]bool)
	for _, annot := range s.GeneAnnotations() {
		referenced[annot.ID] = true
	}
	if s.NRP != nil {
		for _, gene := range s.NRP.NRPSGenes {
			referenced[gene.GeneID] = true
		}
		for _, thio := range s.NRP.Thioesterases {
			referenced[thio.Gene] = true
		}
	}
	if s.Polyketide != nil {
		for _, synthase := range s.Polyketide.Synthases {
			for _, gene := range synthase.Genes {
				referenced[gene] = true
			}
			for _, module := range synthase.Modules {
				for _, gene := range module.Genes {
					referenced[gene] = true
				}
			}
		}
	}
	if s.Saccharide != nil {
		for _, transferase := range s.Saccharide.Glycosyltransferases {
			referenced[transferase.GeneID] = true
		}
	}
	for _, compound := range s.Compounds {
		for _, moiety := range compound.ChemMoieties {
			for _, gene := range moiety.Subcluster {
				referenced[gene] = true
			}
		}
	}
	return referenced
}
