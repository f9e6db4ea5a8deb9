// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package references

import (
	"sort"
	"strings"

	"github.com/kblin/mibig-html/pkg/types"
)

// IsCitationTag reports whether a string carries the tagged citation
// wire convention for any supported database.
func IsCitationTag(s string) bool {
	return strings.HasPrefix(s, "pubmed:") || strings.HasPrefix(s, "doi:")
}

// TagPredicate returns a predicate matching only tags of one database.
func TagPredicate(db types.Database) func(string) bool {
	prefix := string(db) + ":"
	return func(s string) bool {
		return strings.HasPrefix(s, prefix)
	}
}

// GatherCitations walks a decoded JSON document and collects every
// string accepted by the predicate as a citation. The walk visits
// objects in sorted key order so the result is deterministic.
func GatherCitations(node any, pred func(string) bool) []types.Citation {
	var citations []types.Citation
	gather(node, pred, &citations)
	return citations
}

func gather(node any, pred func(string) bool, out *[]types.Citation) {
	switch value := node.(type) {
	case map[string]any:
		keys := make([]string, 0, len(value))
		for key := range value {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			gather(value[key], pred, out)
		}
	case []any:
		for _, item := range value {
			gather(item, pred, out)
		}
	case string:
		if !pred(value) {
			return
		}
		citation, err := types.ParseCitation(value)
		if err != nil {
			return
		}
		*out = append(*out, citation)
	}
}
