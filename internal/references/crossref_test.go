// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package references

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kblin/mibig-html/pkg/types"
)

const sampleCrossRefJSON = `{
  "status": "ok",
  "message": {
    "title": ["Heterologous expression of a cryptic gene cluster"],
    "container-title": ["Chemistry & Biology"],
    "short-container-title": ["Chem Biol"],
    "author": [
      {"given": "Tom", "family": "Brown"},
      {"name": "The Synthesis Group"}
    ],
    "issued": {"date-parts": [[2021, 6]]}
  }
}`

func TestCrossRefFetch(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sampleCrossRefJSON)
	}))
	defer server.Close()

	oldBase := crossrefAPIBase
	crossrefAPIBase = server.URL + "/works/"
	defer func() { crossrefAPIBase = oldBase }()

	client := &CrossRefClient{
		Client: server.Client(),
		Config: types.CrossRefConfig{Email: "curator@example.org"},
	}

	entries, err := client.Fetch(context.Background(), []string{"10.1000/xyz"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	want := []Entry{{
		Title:      "Heterologous expression of a cryptic gene cluster",
		Authors:    []string{"Brown, Tom", "The Synthesis Group"},
		Year:       "2021",
		Journal:    "Chem Biol",
		Identifier: "10.1000/xyz",
	}}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	if len(paths) != 1 || !strings.HasPrefix(paths[0], "/works/") {
		t.Errorf("request paths = %v, want one /works/ lookup", paths)
	}
}

func TestCrossRefFetchFailureAbortsBatch(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.NotFound(w, r)
	}))
	defer server.Close()

	oldBase := crossrefAPIBase
	crossrefAPIBase = server.URL + "/works/"
	defer func() { crossrefAPIBase = oldBase }()

	client := &CrossRefClient{Client: server.Client()}
	if _, err := client.Fetch(context.Background(), []string{"10.1/a", "10.2/b"}); err == nil {
		t.Fatal("a failed lookup should abort the batch")
	}
	if calls != 1 {
		t.Errorf("lookups before abort = %d, want 1", calls)
	}
}
