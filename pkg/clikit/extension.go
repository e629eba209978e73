// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clikit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yeetrun/clikit/pkg/clikit/internal/filekind"
	"github.com/yeetrun/clikit/pkg/clikit/internal/procutil"
)

// ExtensionVariant names the three terminal states an Extension's
// construction algorithm can settle on, per spec.md §4.5.
type ExtensionVariant int

const (
	// VariantInvalid means neither a cli-kit subtree nor a runnable
	// executable could be resolved at path.
	VariantInvalid ExtensionVariant = iota
	// VariantSubtree means path named a directory with declarative YAML
	// commands (optionally described by a manifest), mixed into the
	// parent tree in-process.
	VariantSubtree
	// VariantExecutable means path named a runnable file, wrapped as a
	// Command whose Action spawns it as a subprocess.
	VariantExecutable
)

// ExtensionOptions configures BuildExtension's tolerance for a target that
// doesn't resolve, per spec.md §4.5/§4.6.
type ExtensionOptions struct {
	// IgnoreMissingExtensions skips (returns nil, nil) a target that does
	// not exist on disk at all, instead of producing an invalid stub.
	IgnoreMissingExtensions bool
	// IgnoreInvalidExtensions skips (returns nil, nil) a target that
	// exists but resolves to neither a subtree nor an executable, instead
	// of producing an invalid stub.
	IgnoreInvalidExtensions bool
}

// BuildExtension resolves path into a Command: a cli-kit subtree (mixed in
// via Mixin), an executable wrapper (spawned via internal/procutil), or — if
// neither applies and the caller hasn't opted to ignore it — an invalid stub
// whose Action always fails with the error that stopped the load
// (FILE_NOT_FOUND for a missing path, otherwise that error's own code, such
// as INVALID_EXTENSION, INVALID_PACKAGE_JSON or NO_EXECUTABLE). Per spec.md §4.5's
// algorithm, exactly one of these three states is the outcome.
func BuildExtension(name, path string, opts ExtensionOptions) (*Command, ExtensionVariant, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			if opts.IgnoreMissingExtensions {
				return nil, VariantInvalid, nil
			}
			return invalidStub(name, newError(ErrFileNotFound, "extension %q: no such file or directory: %s", name, path)), VariantInvalid, nil
		}
		return nil, VariantInvalid, wrapError(ErrInvalidExtension, statErr, "stat extension %q at %s", name, path)
	}

	if info.IsDir() {
		cmd, err := buildSubtreeExtension(name, path)
		if err != nil {
			if opts.IgnoreInvalidExtensions {
				return nil, VariantInvalid, nil
			}
			return invalidStub(name, err), VariantInvalid, nil
		}
		return cmd, VariantSubtree, nil
	}

	cmd, err := buildExecutableExtension(name, path)
	if err != nil {
		if opts.IgnoreInvalidExtensions {
			return nil, VariantInvalid, nil
		}
		return invalidStub(name, err), VariantInvalid, nil
	}
	return cmd, VariantExecutable, nil
}

// buildSubtreeExtension treats path as a directory: a clikit.json manifest
// naming a CliKit.CommandDir takes precedence; otherwise path itself is
// loaded directly as a command directory.
func buildSubtreeExtension(name, path string) (*Command, error) {
	manifest, err := loadManifest(path)
	if err != nil {
		return nil, err
	}

	commandDir := path
	if manifest != nil && manifest.CliKit != nil && manifest.CliKit.CommandDir != "" {
		commandDir = filepath.Join(path, manifest.CliKit.CommandDir)
	}

	sub := NewContext(name)
	if err := sub.LoadCommandDir(commandDir); err != nil {
		return nil, wrapError(ErrInvalidExtension, err, "loading command directory for extension %q", name)
	}
	if manifest != nil {
		sub.Desc = manifest.Description
	}

	host := &Command{Context: NewContext(name), Aliases: make(map[string]bool)}
	if err := host.Context.Mixin(sub, false); err != nil {
		return nil, err
	}
	for _, alias := range manifestAliases(manifest) {
		host.Alias(alias)
	}
	return host, nil
}

func manifestAliases(m *Manifest) []string {
	if m == nil {
		return nil
	}
	return m.Aliases
}

// buildExecutableExtension treats path as a single runnable file: the
// nearest manifest (in its directory or the closest ancestor directory that
// has one) supplies aliases/description if present, file-kind sniffing
// decides whether it's spawned directly or through a script runtime.
func buildExecutableExtension(name, path string) (*Command, error) {
	kind, err := filekind.Detect(path)
	if err != nil {
		return nil, wrapError(ErrInvalidExtension, err, "detecting file kind for extension %q", name)
	}
	if kind == filekind.Unknown {
		return nil, newError(ErrNoExecutable, "extension %q at %s is neither a recognized binary nor a script", name, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, wrapError(ErrInvalidExtension, err, "stat extension %q", name)
	}
	if info.Mode()&0o111 == 0 {
		return nil, newError(ErrNoExecutable, "extension %q at %s is not executable", name, path)
	}

	var manifest *Manifest
	manifestDir := filepath.Dir(path)
	for dir := manifestDir; ; {
		m, err := loadManifest(dir)
		if m != nil || err != nil {
			manifest, manifestDir = m, dir
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	spec := &ExecutableSpec{Path: path}
	if kind == filekind.Script {
		spec.Runtime = os.Getenv("CLIKIT_SCRIPT_RUNTIME")
	}

	cmd := newCommand(name, extensionAction(spec))
	cmd.exec = spec
	if manifest != nil {
		cmd.Desc = manifest.Description
		for _, alias := range manifest.Aliases {
			cmd.Alias(alias)
		}
		for bin, target := range manifest.Bin {
			if bin == name {
				continue
			}
			if filepath.Join(manifestDir, target) == path {
				cmd.Alias(bin)
			}
		}
	}

	// A non-cli-kit extension shadows the root's -v/--version with a hidden
	// one that refuses rather than leaking the parent CLI's own version
	// behavior into an opaque subprocess's scope.
	if _, err := cmd.AddOption("-v, --version", WithHidden(),
		WithCallback(func(value, previous any, next CallbackNext) error {
			return newError(ErrNotAnOption, "version is not available on extension %q", name)
		})); err != nil {
		return nil, err
	}

	// The hidden auto-options (-h/-v) a parent CLI registers on the root
	// are visible to this Command via the Lookup chain, but an executable
	// extension's own argv is never parsed by clikit past this point
	// (spec.md §4.5's "NOT_AN_OPTION suppression" for non-cli-kit
	// extensions) — RawArgs carries it through untouched instead.
	return cmd, nil
}

func extensionAction(spec *ExecutableSpec) ActionFunc {
	return func(ctx context.Context, result *Result) (any, error) {
		argv := result.RawArgs
		name := spec.Path
		args := argv
		if spec.Runtime != "" {
			name = spec.Runtime
			args = append([]string{spec.Path}, argv...)
		}

		stdio := procutil.DefaultStdio()
		if result.Stdout != nil {
			stdio.Stdout = result.Stdout
		}
		if result.Stderr != nil {
			stdio.Stderr = result.Stderr
		}

		proc := procutil.New(ctx, name, args, stdio)
		code, err := procutil.RunWithSignalForwarding(proc)
		if err != nil {
			return nil, wrapError(ErrInvalidExtension, err, "extension %s could not run", spec.Path)
		}
		return code, nil
	}
}

func invalidStub(name string, cause error) *Command {
	cmd := newCommand(name, func(context.Context, *Result) (any, error) {
		return nil, cause
	})
	cmd.Desc = fmt.Sprintf("(invalid extension: %v)", cause)
	return cmd
}
