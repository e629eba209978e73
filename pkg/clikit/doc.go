// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clikit is a small framework for building CLIs out of a tree of
// Contexts: a root Context owns Options and Arguments and a set of child
// Commands, each of which is itself a Context and may have children of its
// own.
//
// # Basic usage
//
//	cli, err := clikit.New("widget")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	build, err := cli.Command("build", func(ctx context.Context, r *clikit.Result) (any, error) {
//	    fmt.Println("building", r.Argv["target"])
//	    return nil, nil
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	build.Argument(clikit.NewArgument("target"))
//	build.AddOption("-f, --force", clikit.WithDesc("overwrite existing output"))
//
//	os.Exit(cli.Run(context.Background(), os.Args[1:]))
//
// # Option formats
//
// An option is declared from a single format string following the grammar
// described in ParseOptionFormat: "-f, --force", "-o, --output <path>",
// "--no-cache" (a negated boolean defaulting true), "--tag [name]" (an
// optional-value option).
//
// # Scoped property reads
//
// Context.Get and Context.Prop both read a property by walking from a
// Context up to the root, but resolve conflicting declarations in opposite
// directions: Get keeps the value declared closest to the root (a setting on
// the root CLI always wins); Prop keeps the value declared closest to the
// Context doing the read, falling back outward only when nothing local says
// otherwise. Pick Get for CLI-wide policy a subcommand shouldn't be able to
// override, Prop for subcommand-local defaults.
//
// # Extensions
//
// BuildExtension resolves a filesystem path into one of three outcomes: a
// directory of declarative YAML commands is mixed into the tree in-process;
// a runnable file is wrapped as a Command whose action spawns it as a
// subprocess and forwards the rest of the command line to it verbatim; and
// anything else becomes an invalid stub that reports why, unless the caller
// opted to ignore missing/invalid extensions entirely.
package clikit
