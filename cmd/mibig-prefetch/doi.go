// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kblin/mibig-html/internal/prefetch"
	"github.com/kblin/mibig-html/internal/references"
	"github.com/kblin/mibig-html/pkg/types"
)

var doiCmd = &cobra.Command{
	Use:   "doi <input-dir>",
	Short: "Warm the DOI reference cache",
	Long: `Doi scans every annotation document in the input directory for
"doi:<id>" citation tags and fetches the missing entries from the
CrossRef works API. A handful of known-problematic DOIs are served from
a built-in table instead. The cache file is rewritten once the whole
wanted set is covered.`,
	Args: cobra.ExactArgs(1),
	RunE: runDoi,
}

func init() {
	doiCmd.Flags().String("cache", "doi_cache.json", "DOI cache file")
	doiCmd.Flags().String("report", "", "write a YAML run summary to this file")
	doiCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")

	rootCmd.AddCommand(doiCmd)
}

func runDoi(cmd *cobra.Command, args []string) error {
	cacheFile, _ := cmd.Flags().GetString("cache")
	reportFile, _ := cmd.Flags().GetString("report")

	ids, files, err := prefetch.Scan(args[0], types.DatabaseDOI)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "found %d DOIs in %d files\n", len(ids), files)

	cache, err := references.NewDoiCache(cacheFile)
	if err != nil {
		return err
	}

	fetcher := &references.CrossRefClient{
		Client: &http.Client{Timeout: httpTimeout(cmd)},
		Config: types.CrossRefConfig{
			HTTPConfig: types.HTTPConfig{UserAgent: defaultUserAgent},
			Email:      viper.GetString("crossref.email"),
		},
	}
	if fetcher.Config.Email == "" {
		fetcher.Config.Email = loadedSecrets.CrossRefEmail
	}

	fetched, err := prefetch.Warm(context.Background(), cache, fetcher, ids, os.Stdout)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "fetched %d entries, cache now holds %d\n", fetched, cache.Len())

	if reportFile != "" {
		return prefetch.WriteReport(reportFile, prefetch.Report{
			Database:     string(types.DatabaseDOI),
			ScannedFiles: files,
			Citations:    len(ids),
			Fetched:      fetched,
			Cached:       cache.Len(),
		})
	}
	return nil
}
