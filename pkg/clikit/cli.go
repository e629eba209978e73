// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clikit

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yeetrun/clikit/pkg/clikit/config"
)

// rootExtensionSpec is one extension registration a CLI loads at
// construction time, before parsing ever begins (spec.md §3 Lifecycle).
type rootExtensionSpec struct {
	name string
	path string
}

// CLI is the entry point described by spec.md §4.6: a root Context plus the
// auto-registered options, the help/version machinery, and the loop that
// turns a token slice into an invoked action.
type CLI struct {
	*Context

	defaults        config.Defaults
	renderer        HelpRenderer
	rootExtensions  []rootExtensionSpec
	extensionOpts   ExtensionOptions
	currentVersion  string

	stdout, stderr io.Writer
	colorsEnabled  bool
	bannerOnce     sync.Once
}

// CLIOpt configures a CLI at construction time.
type CLIOpt func(*CLI)

func WithDefaults(d config.Defaults) CLIOpt { return func(c *CLI) { c.defaults = d } }

func WithHelpRenderer(r HelpRenderer) CLIOpt { return func(c *CLI) { c.renderer = r } }

func WithCurrentVersion(v string) CLIOpt { return func(c *CLI) { c.currentVersion = v } }

func WithStreams(stdout, stderr io.Writer) CLIOpt {
	return func(c *CLI) { c.stdout, c.stderr = stdout, stderr }
}

func WithRootExtension(name, path string) CLIOpt {
	return func(c *CLI) { c.rootExtensions = append(c.rootExtensions, rootExtensionSpec{name, path}) }
}

func WithExtensionTolerance(ignoreMissing, ignoreInvalid bool) CLIOpt {
	return func(c *CLI) {
		c.extensionOpts.IgnoreMissingExtensions = ignoreMissing
		c.extensionOpts.IgnoreInvalidExtensions = ignoreInvalid
	}
}

func WithTreatUnknownOptionsAsArguments() CLIOpt {
	return func(c *CLI) { c.SetProp("treatUnknownOptionsAsArguments", true) }
}

// New constructs a CLI named name, registers its auto-options, and loads any
// root-level extensions concurrently before returning, per spec.md §4.6's
// "load root-level extensions after the auto options exist."
func New(name string, opts ...CLIOpt) (*CLI, error) {
	c := &CLI{
		Context:        NewContext(name),
		currentVersion: Version,
		stdout:         os.Stdout,
		stderr:         os.Stderr,
	}
	for _, o := range opts {
		o(c)
	}
	c.colorsEnabled = c.defaults.Colors
	if !c.colorsEnabled {
		// defaults.Colors defaults false on the zero value; an explicit
		// config.Load result always carries the caller's intent, so only
		// fall back to "on" (colors and help-on-error) when no Defaults was
		// ever supplied.
		if c.defaults == (config.Defaults{}) {
			c.colorsEnabled = true
			c.defaults.ShowHelpOnError = true
		}
	}
	if c.defaults.DefaultCommand != "" {
		c.SetProp("defaultCommand", c.defaults.DefaultCommand)
	}
	if c.defaults.RuntimeVersion != "" {
		c.SetProp("runtimeVersion", c.defaults.RuntimeVersion)
	}

	if err := c.registerAutoOptions(); err != nil {
		return nil, err
	}
	if err := c.loadRootExtensions(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *CLI) registerAutoOptions() error {
	if _, err := c.AddOption("-h, --help", WithDesc("show help"),
		WithCallback(func(value, previous any, next CallbackNext) error {
			return ErrShortCircuit()
		})); err != nil {
		return err
	}
	if _, err := c.AddOption("-v, --version", WithDesc("show version"),
		WithCallback(func(value, previous any, next CallbackNext) error {
			fmt.Fprintln(c.stdout, c.currentVersion)
			return ErrShortCircuit()
		})); err != nil {
		return err
	}
	if _, err := c.AddOption("--no-banner", WithDesc("suppress the startup banner")); err != nil {
		return err
	}
	if _, err := c.AddOption("--no-color, --no-colors", WithDesc("disable colorized output"),
		WithCallback(func(value, previous any, next CallbackNext) error {
			c.colorsEnabled = false
			return nil
		})); err != nil {
		return err
	}
	return nil
}

// loadRootExtensions builds every registered root extension concurrently
// (each may do its own filesystem/manifest I/O) but serializes adoption into
// the tree, since Context's Lookup is not safe for concurrent writes.
func (c *CLI) loadRootExtensions() error {
	if len(c.rootExtensions) == 0 {
		return nil
	}
	built := make([]*Command, len(c.rootExtensions))

	g, _ := errgroup.WithContext(context.Background())
	for i, spec := range c.rootExtensions {
		i, spec := i, spec
		g.Go(func() error {
			cmd, _, err := BuildExtension(spec.name, spec.path, c.extensionOpts)
			if err != nil {
				return err
			}
			built[i] = cmd
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, cmd := range built {
		if cmd == nil {
			continue
		}
		if err := c.AdoptCommand(cmd); err != nil {
			return err
		}
	}
	return nil
}

// colorf applies fn (a *color.Color method) to stream only when colors are
// currently enabled, matching the teacher's direct fatih/color usage.
func (c *CLI) colorf(stream io.Writer, col *color.Color, format string, args ...any) {
	if c.colorsEnabled {
		col.Fprintf(stream, format, args...)
		return
	}
	fmt.Fprintf(stream, format, args...)
}

// emitBanner writes banner to stdout exactly once per CLI, even if
// multiple goroutines race to print it (spec.md §9's open-question
// resolution: first writer wins).
func (c *CLI) emitBanner(banner string) {
	if banner == "" {
		return
	}
	c.bannerOnce.Do(func() {
		c.colorf(c.stdout, color.New(color.FgCyan, color.Bold), "%s\n", banner)
	})
}

// Run is the dispatch loop described by spec.md §4.6: runtime preflight,
// parse, terminal-command selection, banner, action invocation, and
// error/help handling. It returns the process exit code.
func (c *CLI) Run(ctx context.Context, tokens []string) int {
	invocationID := uuid.NewString()
	log.Printf("clikit[%s]: invoke %q args=%v", invocationID, c.Name, tokens)

	runtimeConstraint, _ := c.Prop("runtimeVersion", "").(string)
	if err := checkRuntimeVersion(runtimeConstraint, c.currentVersion); err != nil {
		log.Printf("clikit[%s]: runtime preflight failed: %v", invocationID, err)
		return c.reportError(err)
	}

	result, err := Parse(tokens, c.Context)
	if err != nil {
		log.Printf("clikit[%s]: parse failed: %v", invocationID, err)
		return c.reportError(err)
	}
	result.Stdout, result.Stderr = c.stdout, c.stderr

	if _, help := result.Argv["help"]; help {
		return c.showHelp(result, nil)
	}

	cmd := result.Command
	if cmd == nil {
		defaultName, _ := c.Prop("defaultCommand", "").(string)
		if defaultName == "" {
			return c.showHelp(result, newError(ErrDefaultCommandNotFound, "no command given and no default command configured"))
		}
		cmd = c.lookupCommand(defaultName)
		if cmd == nil {
			return c.reportError(newError(ErrDefaultCommandNotFound, "default command %q is not registered", defaultName))
		}
	}

	if cmd.Action == nil {
		return c.showHelp(result, newError(ErrDefaultCommandNotFound, "command %q has no action", cmd.Name))
	}

	banner := cmd.Banner
	if banner == "" {
		banner, _ = c.Prop("banner", "").(string)
	}
	if bannerEnabled, _ := result.Argv["banner"].(bool); bannerEnabled {
		c.emitBanner(banner)
	}

	if c.renderer != nil {
		result.help = func() (string, error) { return cmd.RenderHelp(c.renderer, nil, result.Warnings) }
	}

	actionResult, err := cmd.Action(ctx, result)
	if err != nil {
		log.Printf("clikit[%s]: command %q failed: %v", invocationID, cmd.Name, err)
		return c.reportError(err)
	}
	log.Printf("clikit[%s]: command %q completed", invocationID, cmd.Name)
	// An extension's Action resolves with its child's exit code (spec.md
	// §6's "its exit code is propagated"); any other Action returning
	// nothing just exits 0.
	if code, ok := actionResult.(int); ok {
		return code
	}
	return 0
}

func (c *CLI) showHelp(result *Result, cause error) int {
	target := result.Command
	var contexts []*Context
	if target != nil {
		contexts = target.chain()
	} else {
		contexts = c.chain()
	}
	if c.renderer == nil {
		if cause != nil {
			fmt.Fprintln(c.stderr, cause)
			return c.errorExitCode()
		}
		return c.helpExitCode()
	}
	text, rerr := c.renderer.Render(contexts, cause, result.Warnings)
	if rerr != nil {
		fmt.Fprintln(c.stderr, rerr)
		return c.errorExitCode()
	}
	if cause != nil {
		fmt.Fprintln(c.stderr, text)
		return c.errorExitCode()
	}
	fmt.Fprintln(c.stdout, text)
	return c.helpExitCode()
}

func (c *CLI) reportError(err error) int {
	showHelp := c.defaults.ShowHelpOnError
	if showHelp && c.renderer != nil {
		text, rerr := c.renderer.Render(c.chain(), err, nil)
		if rerr == nil {
			c.colorf(c.stderr, color.New(color.FgRed), "%s\n", text)
			return c.errorExitCode()
		}
	}
	c.colorf(c.stderr, color.New(color.FgRed), "error: %v\n", err)
	return c.errorExitCode()
}

func (c *CLI) helpExitCode() int {
	if c.defaults.HelpExitCode != 0 {
		return c.defaults.HelpExitCode
	}
	return 0
}

func (c *CLI) errorExitCode() int {
	if c.defaults.ErrorExitCode != 0 {
		return c.defaults.ErrorExitCode
	}
	return 1
}
