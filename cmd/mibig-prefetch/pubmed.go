// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kblin/mibig-html/internal/prefetch"
	"github.com/kblin/mibig-html/internal/references"
	"github.com/kblin/mibig-html/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "mibig-html/0.1"
)

var pubmedCmd = &cobra.Command{
	Use:   "pubmed <input-dir>",
	Short: "Warm the PubMed reference cache",
	Long: `Pubmed scans every annotation document in the input directory for
"pubmed:<id>" citation tags and fetches the missing entries from the
NCBI Entrez efetch API in batches. The cache file is rewritten once the
whole wanted set is covered.`,
	Args: cobra.ExactArgs(1),
	RunE: runPubmed,
}

func init() {
	pubmedCmd.Flags().String("cache", "pubmed_cache.json", "PubMed cache file")
	pubmedCmd.Flags().String("report", "", "write a YAML run summary to this file")
	pubmedCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")

	rootCmd.AddCommand(pubmedCmd)
}

func runPubmed(cmd *cobra.Command, args []string) error {
	cacheFile, _ := cmd.Flags().GetString("cache")
	reportFile, _ := cmd.Flags().GetString("report")

	ids, files, err := prefetch.Scan(args[0], types.DatabasePubmed)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "found %d PubMed ids in %d files\n", len(ids), files)

	cache, err := references.NewPubmedCache(cacheFile)
	if err != nil {
		return err
	}

	fetcher := &references.EntrezClient{
		Client: &http.Client{Timeout: httpTimeout(cmd)},
		Config: types.EntrezConfig{
			HTTPConfig: types.HTTPConfig{UserAgent: defaultUserAgent},
			APIKey:     viper.GetString("entrez.api_key"),
		},
	}
	if fetcher.Config.APIKey == "" {
		fetcher.Config.APIKey = loadedSecrets.EntrezAPIKey
	}

	fetched, err := prefetch.Warm(context.Background(), cache, fetcher, ids, os.Stdout)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "fetched %d entries, cache now holds %d\n", fetched, cache.Len())

	if reportFile != "" {
		return prefetch.WriteReport(reportFile, prefetch.Report{
			Database:     string(types.DatabasePubmed),
			ScannedFiles: files,
			Citations:    len(ids),
			Fetched:      fetched,
			Cached:       cache.Len(),
		})
	}
	return nil
}

func httpTimeout(cmd *cobra.Command) time.Duration {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return timeout
}
