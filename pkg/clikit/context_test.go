// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clikit

import "testing"

func TestContextGetVsProp_Precedence(t *testing.T) {
	root := NewContext("root")
	root.SetProp("mode", "root-value")
	child, err := root.Command("child", nil)
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}
	child.SetProp("mode", "child-value")

	if got, want := child.Get("mode", ""), "root-value"; got != want {
		t.Errorf("Get(mode) = %q, want %q (root wins)", got, want)
	}
	if got, want := child.Prop("mode", ""), "child-value"; got != want {
		t.Errorf("Prop(mode) = %q, want %q (local wins)", got, want)
	}

	grandchild, err := child.Command("grandchild", nil)
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}
	if got, want := grandchild.Prop("mode", ""), "child-value"; got != want {
		t.Errorf("Prop(mode) on grandchild = %q, want %q (falls back to nearest ancestor)", got, want)
	}
}

func TestLookupLongShadowing(t *testing.T) {
	root := NewContext("root")
	if _, err := root.AddOption("--verbose"); err != nil {
		t.Fatalf("AddOption(root) error = %v", err)
	}
	child, err := root.Command("child", nil)
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}
	childOpt, err := child.AddOption("--verbose", WithDesc("child-local verbose"))
	if err != nil {
		t.Fatalf("AddOption(child) error = %v", err)
	}

	got := child.lookupLong("verbose")
	if got != childOpt {
		t.Errorf("lookupLong on child returned %p, want the child's own declaration %p", got, childOpt)
	}
}

func TestVisibleOptions_OuterWins(t *testing.T) {
	root := NewContext("root")
	rootOpt, err := root.AddOption("--verbose", WithDesc("root verbose"))
	if err != nil {
		t.Fatalf("AddOption(root) error = %v", err)
	}
	child, err := root.Command("child", nil)
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}
	if _, err := child.AddOption("--verbose", WithDesc("child verbose")); err != nil {
		t.Fatalf("AddOption(child) error = %v", err)
	}

	visible := child.VisibleOptions()
	var found *Option
	for _, o := range visible {
		if o.Name() == "verbose" {
			found = o
		}
	}
	if found != rootOpt {
		t.Errorf("VisibleOptions()[verbose] = %p, want root's declaration %p (outer wins for display)", found, rootOpt)
	}
}

func TestRegisterCommand_DuplicateNameFails(t *testing.T) {
	root := NewContext("root")
	if _, err := root.Command("run", nil); err != nil {
		t.Fatalf("Command(run) error = %v", err)
	}
	_, err := root.Command("run", nil)
	if err == nil {
		t.Fatal("Command(run) second time = nil error, want ALREADY_EXISTS")
	}
}

func TestRegisterCommand_AliasCollisionDropped(t *testing.T) {
	root := NewContext("root")
	a, err := root.Command("run", nil)
	if err != nil {
		t.Fatalf("Command(run) error = %v", err)
	}
	a.Alias("exec")

	b, err := root.Command("exec", nil)
	if err != nil {
		t.Fatalf("Command(exec) error = %v", err)
	}
	b.Alias("run")

	if root.lookupCommand("exec") != a {
		t.Errorf("lookupCommand(exec) should still resolve to the first-registered command %q", a.Name)
	}
	if root.lookupCommand("run") != a {
		t.Errorf("lookupCommand(run) should resolve to the canonical command %q, not be overwritten by b's alias", a.Name)
	}
}

func TestMixin_CopiesOptionsAndCommands(t *testing.T) {
	src := NewContext("ext")
	src.Desc = "an extension"
	if _, err := src.AddOption("--flag"); err != nil {
		t.Fatalf("AddOption() error = %v", err)
	}
	if _, err := src.Command("sub", nil); err != nil {
		t.Fatalf("Command() error = %v", err)
	}

	dst := NewContext("host")
	if err := dst.Mixin(src, false); err != nil {
		t.Fatalf("Mixin() error = %v", err)
	}

	if dst.Desc != "an extension" {
		t.Errorf("Desc = %q, want %q", dst.Desc, "an extension")
	}
	if dst.lookupLong("flag") == nil {
		t.Error("expected --flag to be registered on dst after Mixin")
	}
	if dst.lookupCommand("sub") == nil {
		t.Error("expected sub command to be registered on dst after Mixin")
	}
}
