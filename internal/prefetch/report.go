// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prefetch

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Report summarizes one cache warming run.
type Report struct {
	Database     string `yaml:"database"`
	ScannedFiles int    `yaml:"scanned_files"`
	Citations    int    `yaml:"citations"`
	Fetched      int    `yaml:"fetched"`
	Cached       int    `yaml:"cached"`
}

// WriteReport writes the run summary as YAML.
func WriteReport(path string, r Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
