// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render holds small helpers consumed by the page assembly
// layer: an id sequence scoped to one render invocation and short-form
// citation link building.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kblin/mibig-html/pkg/types"
)

// Sequence generates unique ids within one render invocation. Each
// invocation gets its own Sequence; it is never shared process-wide.
type Sequence struct {
	n int
}

// Next returns the next id in the sequence, starting at 1.
func (s *Sequence) Next() int {
	s.n++
	return s.n
}

// TooltipID builds a unique help-tooltip element id from a name prefix.
func TooltipID(seq *Sequence, name string) string {
	return fmt.Sprintf("%s-help-%d", name, seq.Next())
}

// ShortFormCitationLinks builds the markup for a citation list in short
// form: sorted, deduplicated anchor tags labelled with each citation's
// short id.
func ShortFormCitationLinks(citations []types.Citation) string {
	seen := make(map[types.Citation]bool, len(citations))
	unique := make([]types.Citation, 0, len(citations))
	for _, citation := range citations {
		if !seen[citation] {
			seen[citation] = true
			unique = append(unique, citation)
		}
	}
	sort.Slice(unique, func(i, j int) bool {
		return unique[i].Compare(unique[j]) < 0
	})

	chunks := make([]string, len(unique))
	for i, citation := range unique {
		chunks[i] = fmt.Sprintf(`<a href="%s">[%s]</a>`, citation.URL(), citation.ShortID())
	}
	return strings.Join(chunks, ", ")
}
