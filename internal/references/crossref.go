// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package references

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kblin/mibig-html/internal/httputil"
	"github.com/kblin/mibig-html/pkg/types"
)

// crossrefAPIBase is the CrossRef works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works/"

// CrossRefClient fetches DOI metadata from the CrossRef works API.
// CrossRef has no batch endpoint, so a batch fetch is one call per DOI;
// the first failing lookup aborts the batch.
type CrossRefClient struct {
	Client *http.Client
	Config types.CrossRefConfig
}

// Fetch retrieves entries for the given DOIs.
func (c *CrossRefClient) Fetch(ctx context.Context, dois []string) ([]Entry, error) {
	entries := make([]Entry, 0, len(dois))
	for _, doi := range dois {
		entry, err := c.fetchOne(ctx, doi)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (c *CrossRefClient) fetchOne(ctx context.Context, doi string) (Entry, error) {
	reqURL := crossrefAPIBase + url.PathEscape(doi)
	if c.Config.Email != "" {
		reqURL += "?mailto=" + url.QueryEscape(c.Config.Email)
	}

	resp, err := httputil.Get(ctx, c.Client, reqURL, c.Config.UserAgent)
	if err != nil {
		return Entry{}, fmt.Errorf("CrossRef lookup for %s: %w", doi, err)
	}
	defer resp.Body.Close()

	var cr crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return Entry{}, fmt.Errorf("parsing CrossRef response for %s: %w", doi, err)
	}

	return cr.Message.toEntry(doi), nil
}

// CrossRef works API JSON structures.
type crossrefResponse struct {
	Message crossrefWork `json:"message"`
}

type crossrefWork struct {
	Title               []string         `json:"title"`
	ContainerTitle      []string         `json:"container-title"`
	ShortContainerTitle []string         `json:"short-container-title"`
	Author              []crossrefAuthor `json:"author"`
	Issued              crossrefDate     `json:"issued"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
	Name   string `json:"name"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}

func (w crossrefWork) toEntry(doi string) Entry {
	entry := Entry{Identifier: doi}

	if len(w.Title) > 0 {
		entry.Title = w.Title[0]
	}

	if len(w.ShortContainerTitle) > 0 {
		entry.Journal = w.ShortContainerTitle[0]
	} else if len(w.ContainerTitle) > 0 {
		entry.Journal = w.ContainerTitle[0]
	}

	for _, a := range w.Author {
		switch {
		case a.Family != "" && a.Given != "":
			entry.Authors = append(entry.Authors, a.Family+", "+a.Given)
		case a.Family != "":
			entry.Authors = append(entry.Authors, a.Family)
		case a.Name != "":
			entry.Authors = append(entry.Authors, a.Name)
		}
	}

	if len(w.Issued.DateParts) > 0 && len(w.Issued.DateParts[0]) > 0 {
		entry.Year = strconv.Itoa(w.Issued.DateParts[0][0])
	}

	return entry
}
