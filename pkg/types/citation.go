// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Database identifies the reference database a citation points into.
type Database string

const (
	DatabasePubmed Database = "pubmed"
	DatabaseDOI    Database = "doi"
	DatabaseOther  Database = "other"
)

// Base URLs for citation resolution.
const (
	pubmedURLBase = "https://www.ncbi.nlm.nih.gov/pubmed/"
	doiURLBase    = "https://doi.org/"
)

// Citation identifies a literature reference by database and identifier.
// It is a plain value: comparable, usable as a map key, never mutated.
type Citation struct {
	Database Database
	Value    string
}

// ParseCitation converts a tagged reference string like "pubmed:12345678"
// or "doi:10.1000/xyz" into a Citation. Tags with an unrecognized prefix
// keep their full text as the value under DatabaseOther.
func ParseCitation(tag string) (Citation, error) {
	tag = strings.TrimSpace(tag)
	db, value, found := strings.Cut(tag, ":")
	if !found || value == "" {
		return Citation{}, fmt.Errorf("malformed citation tag: %q", tag)
	}
	switch Database(db) {
	case DatabasePubmed:
		// PubMed tags occasionally carry trailing free text; only the
		// first token is the identifier.
		value = strings.Fields(value)[0]
		return Citation{Database: DatabasePubmed, Value: value}, nil
	case DatabaseDOI:
		return Citation{Database: DatabaseDOI, Value: value}, nil
	default:
		return Citation{Database: DatabaseOther, Value: tag}, nil
	}
}

// URL returns the canonical link for the citation.
func (c Citation) URL() string {
	switch c.Database {
	case DatabasePubmed:
		return pubmedURLBase + c.Value
	case DatabaseDOI:
		return doiURLBase + c.Value
	default:
		return c.Value
	}
}

// ShortID returns the short display label used in rendered link lists.
func (c Citation) ShortID() string {
	switch c.Database {
	case DatabasePubmed:
		return "PMID:" + c.Value
	case DatabaseDOI:
		return "DOI:" + c.Value
	default:
		return c.Value
	}
}

// Compare orders citations by (database, value). It returns a negative
// number, zero, or a positive number as c sorts before, equal to, or
// after other.
func (c Citation) Compare(other Citation) int {
	if d := strings.Compare(string(c.Database), string(other.Database)); d != 0 {
		return d
	}
	return strings.Compare(c.Value, other.Value)
}

// String returns the tagged wire form, e.g. "pubmed:12345678".
func (c Citation) String() string {
	if c.Database == DatabaseOther {
		return c.Value
	}
	return string(c.Database) + ":" + c.Value
}

// MarshalJSON writes the tagged wire form.
func (c Citation) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON reads the tagged wire form.
func (c *Citation) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	parsed, err := ParseCitation(tag)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
