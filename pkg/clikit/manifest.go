// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clikit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Manifest is the decoded form of an extension's package-manifest file
// (spec.md §6's "package manifest contract"). JSON is the wire format the
// contract mandates; see DESIGN.md for why no third-party codec in the
// retrieved corpus improves on encoding/json here.
type Manifest struct {
	Name        string            `json:"name"`
	Main        string            `json:"main"`
	Description string            `json:"description"`
	Aliases     []string          `json:"aliases,omitempty"`
	Bin         map[string]string `json:"bin,omitempty"`
	CliKit      *CliKitMeta       `json:"cliKit,omitempty"`
}

// CliKitMeta flags an extension as a cli-kit-compatible subtree rather than
// a bare executable, and names the declarative command directory to load.
type CliKitMeta struct {
	CommandDir string `json:"commandDir"`
}

const manifestFileName = "clikit.json"

// loadManifest reads manifestFileName from dir, if present. A missing
// manifest is not an error: it just means dir has no metadata, and the
// extension loader falls back to file-kind sniffing.
func loadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, manifestFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, wrapError(ErrFileNotFound, err, "reading manifest %s", path)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, wrapError(ErrInvalidPackageJSON, err, "decoding manifest %s", path)
	}
	if m.Name == "" {
		return nil, newError(ErrInvalidPackageJSON, "manifest %s missing required field %q", path, "name")
	}
	return &m, nil
}

func (m *Manifest) String() string {
	return fmt.Sprintf("%s (%s)", m.Name, m.Main)
}
