// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package references

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kblin/mibig-html/pkg/types"
)

const samplePubmedXML = `<?xml version="1.0" encoding="UTF-8"?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>12345678</PMID>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate><Year>2019</Year></PubDate>
          </JournalIssue>
          <Title>Nature Chemical Biology</Title>
          <ISOAbbreviation>Nat Chem Biol</ISOAbbreviation>
        </Journal>
        <ArticleTitle>A gene cluster for carotenoid biosynthesis</ArticleTitle>
        <AuthorList>
          <Author><LastName>Smith</LastName><Initials>J</Initials></Author>
          <Author><LastName>Jones</LastName><Initials>B</Initials></Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>87654321</PMID>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate><MedlineDate>2001 Jan-Feb</MedlineDate></PubDate>
          </JournalIssue>
          <Title>Journal of Antibiotics</Title>
        </Journal>
        <ArticleTitle>Early work on the same cluster</ArticleTitle>
        <AuthorList>
          <Author><CollectiveName>The Cluster Consortium</CollectiveName></Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func TestEntrezFetch(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprint(w, samplePubmedXML)
	}))
	defer server.Close()

	oldBase := entrezFetchBase
	entrezFetchBase = server.URL
	defer func() { entrezFetchBase = oldBase }()

	client := &EntrezClient{
		Client: server.Client(),
		Config: types.EntrezConfig{APIKey: "test-key"},
	}

	entries, err := client.Fetch(context.Background(), []string{"12345678", "87654321"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	want := []Entry{
		{
			Title:      "A gene cluster for carotenoid biosynthesis",
			Authors:    []string{"Smith J", "Jones B"},
			Year:       "2019",
			Journal:    "Nat Chem Biol",
			Identifier: "12345678",
		},
		{
			Title:      "Early work on the same cluster",
			Authors:    []string{"The Cluster Consortium"},
			Year:       "2001",
			Journal:    "Journal of Antibiotics",
			Identifier: "87654321",
		},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	if got := gotQuery["id"]; len(got) != 1 || got[0] != "12345678,87654321" {
		t.Errorf("id parameter = %v, want one comma-joined batch", got)
	}
	if got := gotQuery["db"]; len(got) != 1 || got[0] != "pubmed" {
		t.Errorf("db parameter = %v, want pubmed", got)
	}
	if got := gotQuery["api_key"]; len(got) != 1 || got[0] != "test-key" {
		t.Errorf("api_key parameter = %v, want configured key", got)
	}
}

func TestEntrezFetchEmptyInput(t *testing.T) {
	client := &EntrezClient{Client: http.DefaultClient}
	entries, err := client.Fetch(context.Background(), nil)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if entries != nil {
		t.Errorf("entries = %v, want nil without a network call", entries)
	}
}

func TestEntrezFetchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	oldBase := entrezFetchBase
	entrezFetchBase = server.URL
	defer func() { entrezFetchBase = oldBase }()

	client := &EntrezClient{Client: server.Client()}
	if _, err := client.Fetch(context.Background(), []string{"111"}); err == nil {
		t.Fatal("non-200 response should surface as an error")
	}
}
