// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clikit

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestArgumentListAppend_OrderingInvariants(t *testing.T) {
	t.Run("required after optional fails", func(t *testing.T) {
		var l ArgumentList
		if err := l.Append(NewArgument("a").WithOptional()); err != nil {
			t.Fatalf("Append(a) error = %v", err)
		}
		err := l.Append(NewArgument("b"))
		if err == nil {
			t.Fatal("Append(b) = nil error, want error")
		}
	})

	t.Run("nothing after multiple", func(t *testing.T) {
		var l ArgumentList
		if err := l.Append(NewArgument("rest").WithMultiple()); err != nil {
			t.Fatalf("Append(rest) error = %v", err)
		}
		err := l.Append(NewArgument("extra"))
		if err == nil {
			t.Fatal("Append(extra) = nil error, want error")
		}
	})

	t.Run("optional then optional is fine", func(t *testing.T) {
		var l ArgumentList
		if err := l.Append(NewArgument("a").WithOptional()); err != nil {
			t.Fatalf("Append(a) error = %v", err)
		}
		if err := l.Append(NewArgument("b").WithOptional()); err != nil {
			t.Fatalf("Append(b) error = %v", err)
		}
	})
}

func TestArgumentListBind(t *testing.T) {
	var l ArgumentList
	mustAppend(t, &l, NewArgument("name"))
	mustAppend(t, &l, NewArgument("count").WithType(TypeNumber).WithOptional().WithDefault(1.0))
	mustAppend(t, &l, NewArgument("tags").WithMultiple())

	tests := []struct {
		name     string
		provided []string
		want     map[string]any
		wantErr  bool
	}{
		{
			name:     "required only",
			provided: []string{"widget"},
			want:     map[string]any{"name": "widget", "count": 1.0, "tags": []any{}},
		},
		{
			name:     "all positions filled",
			provided: []string{"widget", "3", "a", "b"},
			want:     map[string]any{"name": "widget", "count": 3.0, "tags": []any{"a", "b"}},
		},
		{
			name:     "missing required",
			provided: []string{},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.Bind(tt.provided)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Bind(%v) = nil error, want error", tt.provided)
				}
				return
			}
			if err != nil {
				t.Fatalf("Bind(%v) error = %v", tt.provided, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Bind(%v) mismatch (-want +got):\n%s", tt.provided, diff)
			}
		})
	}
}

func TestArgumentListBind_MultipleUsesDefaultWhenEmpty(t *testing.T) {
	var l ArgumentList
	mustAppend(t, &l, NewArgument("tags").WithMultiple().WithDefault([]any{"default"}))

	got, err := l.Bind(nil)
	if err != nil {
		t.Fatalf("Bind(nil) error = %v", err)
	}
	if diff := cmp.Diff(map[string]any{"tags": []any{"default"}}, got); diff != "" {
		t.Errorf("Bind(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestCoerce_InvalidNumber(t *testing.T) {
	_, err := coerce(TypeNumber, "not-a-number")
	if err == nil {
		t.Fatal("coerce() = nil error, want error")
	}
	var cerr *Error
	if !errors.As(err, &cerr) || cerr.Code != ErrInvalidNumber {
		t.Errorf("error = %v, want code %v", err, ErrInvalidNumber)
	}
}

func TestCoerce_YesNo(t *testing.T) {
	for _, raw := range []string{"y", "yes", "true"} {
		v, err := coerce(TypeYesNo, raw)
		if err != nil || v != true {
			t.Errorf("coerce(yesno, %q) = %v, %v, want true, nil", raw, v, err)
		}
	}
	if _, err := coerce(TypeYesNo, "maybe"); err == nil {
		t.Error("coerce(yesno, \"maybe\") = nil error, want error")
	}
}

func mustAppend(t *testing.T, l *ArgumentList, a *Argument) {
	t.Helper()
	if err := l.Append(a); err != nil {
		t.Fatalf("Append(%q) error = %v", a.Name, err)
	}
}
