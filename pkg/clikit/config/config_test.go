// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != defaultDefaults() {
		t.Errorf("Load(\"\") = %+v, want %+v", got, defaultDefaults())
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != defaultDefaults() {
		t.Errorf("Load(missing) = %+v, want %+v", got, defaultDefaults())
	}
}

func TestLoad_FileOverridesAndMerges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clikit.toml")
	if err := os.WriteFile(path, []byte(`
default_command = "run"
error_exit_code = 2
`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.DefaultCommand != "run" {
		t.Errorf("DefaultCommand = %q, want %q", got.DefaultCommand, "run")
	}
	if got.ErrorExitCode != 2 {
		t.Errorf("ErrorExitCode = %d, want 2", got.ErrorExitCode)
	}
	// Fields absent from the file retain the built-in defaults.
	if !got.Colors {
		t.Error("Colors = false, want true (unset field keeps default)")
	}
	if !got.ShowHelpOnError {
		t.Error("ShowHelpOnError = false, want true (unset field keeps default)")
	}
}

func TestLoad_MalformedTOMLErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clikit.toml")
	if err := os.WriteFile(path, []byte("this is not = [valid toml"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load() = nil error, want a decode error")
	}
}
