// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"sort"
	"testing"
)

func TestParseCitation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Citation
		wantErr bool
	}{
		{"pubmed", "pubmed:12345678", Citation{DatabasePubmed, "12345678"}, false},
		{"pubmed with trailing text", "pubmed:12345678 see also figure 2", Citation{DatabasePubmed, "12345678"}, false},
		{"pubmed trimmed", "  pubmed:42  ", Citation{DatabasePubmed, "42"}, false},
		{"doi", "doi:10.1000/xyz123", Citation{DatabaseDOI, "10.1000/xyz123"}, false},
		{"doi keeps inner colons", "doi:10.1000/abc:def", Citation{DatabaseDOI, "10.1000/abc:def"}, false},
		{"other prefix", "patent:US1234", Citation{DatabaseOther, "patent:US1234"}, false},
		{"no separator", "12345678", Citation{}, true},
		{"empty value", "pubmed:", Citation{}, true},
		{"empty string", "", Citation{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCitation(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCitation(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCitation(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCitationURL(t *testing.T) {
	tests := []struct {
		name     string
		citation Citation
		want     string
	}{
		{"pubmed", Citation{DatabasePubmed, "12345678"}, "https://www.ncbi.nlm.nih.gov/pubmed/12345678"},
		{"doi", Citation{DatabaseDOI, "10.1000/xyz"}, "https://doi.org/10.1000/xyz"},
		{"other passthrough", Citation{DatabaseOther, "https://example.com/paper"}, "https://example.com/paper"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.citation.URL(); got != tt.want {
				t.Errorf("URL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCitationShortID(t *testing.T) {
	if got := (Citation{DatabasePubmed, "42"}).ShortID(); got != "PMID:42" {
		t.Errorf("ShortID() = %q, want %q", got, "PMID:42")
	}
	if got := (Citation{DatabaseDOI, "10.1/x"}).ShortID(); got != "DOI:10.1/x" {
		t.Errorf("ShortID() = %q, want %q", got, "DOI:10.1/x")
	}
}

func TestCitationOrdering(t *testing.T) {
	citations := []Citation{
		{DatabasePubmed, "222"},
		{DatabaseDOI, "10.2/b"},
		{DatabasePubmed, "111"},
		{DatabaseDOI, "10.1/a"},
	}
	sort.Slice(citations, func(i, j int) bool {
		return citations[i].Compare(citations[j]) < 0
	})

	want := []Citation{
		{DatabaseDOI, "10.1/a"},
		{DatabaseDOI, "10.2/b"},
		{DatabasePubmed, "111"},
		{DatabasePubmed, "222"},
	}
	for i := range want {
		if citations[i] != want[i] {
			t.Fatalf("sorted[%d] = %v, want %v", i, citations[i], want[i])
		}
	}
}

func TestCitationJSONRoundTrip(t *testing.T) {
	original := Citation{DatabasePubmed, "12345678"}
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"pubmed:12345678"` {
		t.Errorf("Marshal = %s, want %q", data, `"pubmed:12345678"`)
	}

	var decoded Citation
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("round trip = %v, want %v", decoded, original)
	}
}
