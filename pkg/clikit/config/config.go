// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the optional TOML file a CLI entry reads for its
// startup defaults, before the caller's explicit constructor parameters
// layer on top (spec.md §4.6c).
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Defaults holds the subset of CLI constructor parameters a startup-config
// file may supply.
type Defaults struct {
	DefaultCommand  string `toml:"default_command"`
	HelpExitCode    int    `toml:"help_exit_code"`
	ErrorExitCode   int    `toml:"error_exit_code"`
	Colors          bool   `toml:"colors"`
	ShowHelpOnError bool   `toml:"show_help_on_error"`
	RuntimeVersion  string `toml:"runtime_version"`
}

// defaultDefaults mirrors the CLI package's own built-in fallbacks, used
// when path does not exist.
func defaultDefaults() Defaults {
	return Defaults{
		HelpExitCode:    0,
		ErrorExitCode:   1,
		Colors:          true,
		ShowHelpOnError: true,
	}
}

// Load reads path as TOML into Defaults. A missing file is not an error —
// it returns defaultDefaults() — since the config file is optional.
func Load(path string) (Defaults, error) {
	d := defaultDefaults()
	if path == "" {
		return d, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return d, err
	}
	if _, err := toml.DecodeFile(path, &d); err != nil {
		return Defaults{}, err
	}
	return d, nil
}
