// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads service credentials from a directory of
// plain-text files. Each file holds one value: the filename is the key
// and the trimmed contents are the value.
//
// Supported key files: entrez-api-key, crossref-email.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Secrets holds the credentials the reference clients can use.
type Secrets struct {
	// EntrezAPIKey is the NCBI API key sent with efetch calls.
	EntrezAPIKey string

	// CrossRefEmail is the contact address sent for polite pool access.
	CrossRefEmail string
}

// Load reads the known key files from dir. A missing directory or
// missing files are not errors and leave the corresponding fields
// empty.
func Load(dir string) (Secrets, error) {
	var s Secrets
	var err error

	if s.EntrezAPIKey, err = readKey(dir, "entrez-api-key"); err != nil {
		return Secrets{}, err
	}
	if s.CrossRefEmail, err = readKey(dir, "crossref-email"); err != nil {
		return Secrets{}, err
	}
	return s, nil
}

func readKey(dir, name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading secret %s: %w", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}
