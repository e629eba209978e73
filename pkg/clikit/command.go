// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clikit

import "context"

// ActionFunc is a Command's handler. It receives the full Result
// (spec.md §4.4) and may be long-running; the CLI awaits it synchronously
// in token order (spec.md §5).
type ActionFunc func(ctx context.Context, result *Result) (any, error)

// Command is a Context specialization with a name, aliases, an action, and
// an optional banner override, per spec.md §3/§4.4. Aliases live in the
// parent's command Lookup, not on the Command itself.
type Command struct {
	*Context

	Aliases map[string]bool
	Action  ActionFunc
	Banner  string

	exec *ExecutableSpec
}

func newCommand(name string, action ActionFunc) *Command {
	return &Command{
		Context: NewContext(name),
		Aliases: make(map[string]bool),
		Action:  action,
	}
}

// Alias marks name as a visible alias for this Command within its parent's
// Lookup. Per spec.md §4.2, a colliding alias is silently dropped rather
// than overwriting an existing command name — that check happens when the
// parent registers this Command, not here. An alias added after the Command
// has been registered is recorded in Aliases only; it is not added to the
// parent's Lookup.
func (c *Command) Alias(name string) *Command {
	c.Aliases[name] = true
	return c
}

// ExecutableSpec marks a Command as the executable variant of an Extension
// (spec.md §4.5). When set, the parser stops recognizing tokens once it
// descends into this Command and forwards every remaining token verbatim as
// argv to the subprocess, rather than continuing to parse them against this
// Command's own option/argument declarations (only its hidden -v/--version).
type ExecutableSpec struct {
	Path    string // resolved path to the executable or script
	Runtime string // interpreter argv[0] for scripts; empty for native binaries
}

// execSpec is non-nil exactly for Commands built by buildExecutableExtension.
func (c *Command) execSpec() *ExecutableSpec { return c.exec }

// HelpRenderer is the external collaborator that turns a Context chain into
// rendered help text, per spec.md §1's explicit scope boundary: this module
// never formats or colorizes help output itself.
type HelpRenderer interface {
	Render(contexts []*Context, err error, warnings []error) (string, error)
}

// RenderHelp asks renderer to produce help text for this Command's position
// in the tree, publishing the "help" event to this Command's emitter first
// (spec.md §9: "Only generateHelp currently publishes").
func (c *Command) RenderHelp(renderer HelpRenderer, err error, warnings []error) (string, error) {
	c.events.Emit("help", c)
	return renderer.Render(c.chain(), err, warnings)
}
