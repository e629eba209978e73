// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clikit

import (
	"errors"
	"testing"
)

func TestParseOptionFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantLong   string
		wantShort  string
		wantValue  bool
		wantOpt    bool
		wantNeg    bool
		wantErr    bool
	}{
		{name: "long and short", format: "-f, --force", wantLong: "force", wantShort: "f"},
		{name: "required value", format: "-o, --output <path>", wantLong: "output", wantShort: "o", wantValue: true},
		{name: "optional value", format: "--tag [name]", wantLong: "tag", wantValue: true, wantOpt: true},
		{name: "negated boolean", format: "--no-cache", wantLong: "cache", wantNeg: true},
		{name: "long only", format: "--verbose", wantLong: "verbose"},
		{name: "short only", format: "-v", wantShort: "v"},
		{name: "empty", format: "", wantErr: true},
		{name: "malformed short", format: "-foo", wantErr: true},
		{name: "no name at all", format: "<value>", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt, err := ParseOptionFormat(tt.format)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseOptionFormat(%q) = nil error, want error", tt.format)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseOptionFormat(%q) error = %v", tt.format, err)
			}
			if opt.Long != tt.wantLong {
				t.Errorf("Long = %q, want %q", opt.Long, tt.wantLong)
			}
			if opt.Short != tt.wantShort {
				t.Errorf("Short = %q, want %q", opt.Short, tt.wantShort)
			}
			if opt.HasValue != tt.wantValue {
				t.Errorf("HasValue = %v, want %v", opt.HasValue, tt.wantValue)
			}
			if opt.ValueOpt != tt.wantOpt {
				t.Errorf("ValueOpt = %v, want %v", opt.ValueOpt, tt.wantOpt)
			}
			if opt.Negated != tt.wantNeg {
				t.Errorf("Negated = %v, want %v", opt.Negated, tt.wantNeg)
			}
		})
	}
}

func TestParseOptionFormat_Aliases(t *testing.T) {
	opt, err := ParseOptionFormat("-o, --output, --out <path>")
	if err != nil {
		t.Fatalf("ParseOptionFormat() error = %v", err)
	}
	if opt.Long != "output" {
		t.Fatalf("Long = %q, want %q", opt.Long, "output")
	}
	if !opt.Aliases.Long["out"] {
		t.Errorf("expected %q to be registered as a long alias", "out")
	}
}

func TestParseOptionFormat_NegatedAlias(t *testing.T) {
	opt, err := ParseOptionFormat("--no-color, --no-colors")
	if err != nil {
		t.Fatalf("ParseOptionFormat() error = %v", err)
	}
	if opt.Long != "color" || !opt.Negated {
		t.Fatalf("Long=%q Negated=%v, want Long=color Negated=true", opt.Long, opt.Negated)
	}
	if !opt.Aliases.Long["no-colors"] {
		t.Errorf("expected %q to be registered as a long alias", "no-colors")
	}
}

func TestOptionName(t *testing.T) {
	opt, err := ParseOptionFormat("-o, --output-path <path>")
	if err != nil {
		t.Fatalf("ParseOptionFormat() error = %v", err)
	}
	if got, want := opt.Name(), "outputPath"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}

	short, err := ParseOptionFormat("-x")
	if err != nil {
		t.Fatalf("ParseOptionFormat() error = %v", err)
	}
	if got, want := short.Name(), "x"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
}

func TestLookupAddOption_Collision(t *testing.T) {
	l := newLookup()
	a, _ := ParseOptionFormat("-f, --force")
	if err := l.addOption(a); err != nil {
		t.Fatalf("addOption(a) error = %v", err)
	}
	b, _ := ParseOptionFormat("-g, --force")
	err := l.addOption(b)
	if err == nil {
		t.Fatal("addOption(b) = nil error, want ALREADY_EXISTS")
	}
	var cerr *Error
	if !errors.As(err, &cerr) || cerr.Code != ErrAlreadyExists {
		t.Errorf("error = %v, want code %v", err, ErrAlreadyExists)
	}
}
