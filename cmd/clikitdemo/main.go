// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command clikitdemo is a worked example consuming pkg/clikit: it declares a
// small command tree by hand and wraps the helloext binary (built from
// example/helloext) as a root extension, exercising both the in-process and
// subprocess code paths a real cli-kit consumer would use.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yeetrun/clikit/pkg/clikit"
	"github.com/yeetrun/clikit/pkg/clikit/config"
)

func main() {
	defaults, err := config.Load(os.Getenv("CLIKITDEMO_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "clikitdemo: loading config:", err)
		os.Exit(1)
	}

	cli, err := clikit.New("clikitdemo",
		clikit.WithDefaults(defaults),
		clikit.WithCurrentVersion(clikit.Version),
		clikit.WithRootExtension("hello", helloextPath()),
		clikit.WithExtensionTolerance(true, true),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "clikitdemo:", err)
		os.Exit(1)
	}

	if err := declareCommands(cli); err != nil {
		fmt.Fprintln(os.Stderr, "clikitdemo:", err)
		os.Exit(1)
	}

	os.Exit(cli.Run(context.Background(), os.Args[1:]))
}

// helloextPath looks for a helloext binary built alongside this one, the
// layout `go build ./...` produces when both cmd/clikitdemo and
// example/helloext land in the same output directory. A missing binary is
// tolerated: WithExtensionTolerance(true, true) turns it into a no-op rather
// than a startup failure.
func helloextPath() string {
	exe, err := os.Executable()
	if err != nil {
		return "helloext"
	}
	return filepath.Join(filepath.Dir(exe), "helloext")
}

func declareCommands(cli *clikit.CLI) error {
	if _, err := cli.AddOption("-q, --quiet", clikit.WithDesc("suppress non-essential output")); err != nil {
		return err
	}

	greet, err := cli.Command("greet", runGreet)
	if err != nil {
		return err
	}
	greet.Desc = "print a greeting"
	greet.Alias("hi")
	if _, err := greet.AddOption("-s, --shout", clikit.WithDesc("uppercase the greeting")); err != nil {
		return err
	}
	if err := greet.Argument(clikit.NewArgument("name").WithDesc("who to greet").WithDefault("world")); err != nil {
		return err
	}

	list, err := cli.Command("list", runList)
	if err != nil {
		return err
	}
	list.Desc = "list the commands registered on this CLI"

	return nil
}

func runGreet(_ context.Context, result *clikit.Result) (any, error) {
	name, _ := result.Argv["name"].(string)
	if name == "" {
		name = "world"
	}
	greeting := fmt.Sprintf("hello, %s!", name)
	if shout, _ := result.Argv["shout"].(bool); shout {
		greeting = fmt.Sprintf("HELLO, %s!", name)
	}
	fmt.Fprintln(result.Stdout, greeting)
	return nil, nil
}

func runList(_ context.Context, result *clikit.Result) (any, error) {
	for _, cmd := range result.Command.Parent().Commands() {
		fmt.Fprintf(result.Stdout, "%s\t%s\n", cmd.Name, cmd.Desc)
	}
	return nil, nil
}
