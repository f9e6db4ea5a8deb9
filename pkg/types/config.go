package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that call
// external services.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "mibig-html/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EntrezConfig holds settings for the NCBI Entrez efetch client.
type EntrezConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is an optional NCBI API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// CrossRefConfig holds settings for the CrossRef works client.
type CrossRefConfig struct {
	HTTPConfig `yaml:",inline"`

	// Email is sent as mailto parameter for polite pool access.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// CacheConfig names the on-disk locations of the persistent caches
// consulted during annotation merging.
type CacheConfig struct {
	// TaxaFile is the SQLite taxonomy cache database.
	TaxaFile string `json:"taxa_file" yaml:"taxa_file"`

	// PubmedFile is the PubMed reference cache JSON file.
	PubmedFile string `json:"pubmed_file" yaml:"pubmed_file"`

	// DoiFile is the DOI reference cache JSON file.
	DoiFile string `json:"doi_file" yaml:"doi_file"`
}

// PrefetchConfig groups settings for the cache warming tools.
type PrefetchConfig struct {
	Entrez   EntrezConfig   `json:"entrez" yaml:"entrez"`
	CrossRef CrossRefConfig `json:"crossref" yaml:"crossref"`
}
