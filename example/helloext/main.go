// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command helloext is a standalone executable extension target: a tiny
// binary a CLI built with clikit can wrap via BuildExtension, exercising the
// executable-extension code path without pulling in a cli-kit-aware
// dependency. It echoes its own argv, since that's what an extension-loading
// test or a demo invocation needs to observe.
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	shout := flag.Bool("shout", false, "uppercase the greeting")
	flag.Parse()

	greeting := fmt.Sprintf("hello from helloext, argv=%v", flag.Args())
	if *shout {
		greeting = fmt.Sprintf("HELLO FROM HELLOEXT, ARGV=%v", flag.Args())
	}
	fmt.Fprintln(os.Stdout, greeting)
}
