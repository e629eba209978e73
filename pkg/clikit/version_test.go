// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clikit

import (
	"errors"
	"testing"
)

func TestCheckRuntimeVersion(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		current    string
		wantErr    bool
	}{
		{name: "no constraint", constraint: "", current: "0.1.0"},
		{name: "satisfied", constraint: ">= 0.1.0", current: "0.2.0"},
		{name: "not satisfied", constraint: ">= 1.0.0", current: "0.1.0", wantErr: true},
		{name: "bad constraint", constraint: "not-a-constraint", current: "0.1.0", wantErr: true},
		{name: "bad current version", constraint: ">= 0.1.0", current: "not-a-version", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkRuntimeVersion(tt.constraint, tt.current)
			if tt.wantErr {
				if err == nil {
					t.Fatal("checkRuntimeVersion() = nil error, want error")
				}
				var cerr *Error
				if !errors.As(err, &cerr) || cerr.Code != ErrInvalidRuntime {
					t.Errorf("error = %v, want code %v", err, ErrInvalidRuntime)
				}
				return
			}
			if err != nil {
				t.Fatalf("checkRuntimeVersion() error = %v", err)
			}
		})
	}
}
