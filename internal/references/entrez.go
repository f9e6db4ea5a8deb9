// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package references

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/kblin/mibig-html/internal/httputil"
	"github.com/kblin/mibig-html/pkg/types"
)

// entrezFetchBase is the NCBI Entrez efetch endpoint. Declared as a var
// so tests can substitute an httptest server.
var entrezFetchBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"

// EntrezClient fetches PubMed article metadata in batches via the NCBI
// Entrez efetch API.
type EntrezClient struct {
	Client *http.Client
	Config types.EntrezConfig
}

// Fetch retrieves entries for the given PubMed ids in one API call.
// Ids absent from the response are simply absent from the result; the
// caller decides whether that is an error.
func (c *EntrezClient) Fetch(ctx context.Context, pmids []string) ([]Entry, error) {
	if len(pmids) == 0 {
		return nil, nil
	}

	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(pmids, ",")},
		"retmode": {"xml"},
	}
	if c.Config.APIKey != "" {
		params.Set("api_key", c.Config.APIKey)
	}

	resp, err := httputil.Get(ctx, c.Client, entrezFetchBase+"?"+params.Encode(), c.Config.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("Entrez efetch: %w", err)
	}
	defer resp.Body.Close()

	var set pubmedArticleSet
	if err := xml.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing Entrez response: %w", err)
	}

	entries := make([]Entry, 0, len(set.Articles))
	for _, article := range set.Articles {
		entries = append(entries, article.toEntry())
	}
	return entries, nil
}

// PubMed efetch XML structures.
type pubmedArticleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	PMID    string         `xml:"MedlineCitation>PMID"`
	Title   string         `xml:"MedlineCitation>Article>ArticleTitle"`
	Journal pubmedJournal  `xml:"MedlineCitation>Article>Journal"`
	Authors []pubmedAuthor `xml:"MedlineCitation>Article>AuthorList>Author"`
}

type pubmedJournal struct {
	ISOAbbreviation string `xml:"ISOAbbreviation"`
	Title           string `xml:"Title"`
	Year            string `xml:"JournalIssue>PubDate>Year"`
	MedlineDate     string `xml:"JournalIssue>PubDate>MedlineDate"`
}

type pubmedAuthor struct {
	LastName       string `xml:"LastName"`
	Initials       string `xml:"Initials"`
	CollectiveName string `xml:"CollectiveName"`
}

func (a pubmedArticle) toEntry() Entry {
	journal := a.Journal.ISOAbbreviation
	if journal == "" {
		journal = a.Journal.Title
	}

	year := a.Journal.Year
	if year == "" && len(a.Journal.MedlineDate) >= 4 {
		year = a.Journal.MedlineDate[:4]
	}

	var authors []string
	for _, author := range a.Authors {
		switch {
		case author.CollectiveName != "":
			authors = append(authors, author.CollectiveName)
		case author.Initials != "":
			authors = append(authors, author.LastName+" "+author.Initials)
		case author.LastName != "":
			authors = append(authors, author.LastName)
		}
	}

	return Entry{
		Title:      strings.TrimSpace(a.Title),
		Authors:    authors,
		Year:       year,
		Journal:    journal,
		Identifier: a.PMID,
	}
}
