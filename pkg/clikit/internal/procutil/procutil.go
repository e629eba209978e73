// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package procutil builds the exec.Cmd used to spawn an extension's
// executable variant, and computes the stdio descriptor triple the tree
// node needs for it.
package procutil

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Stdio describes how a spawned extension's three standard streams should be
// wired, per spec.md §4.5/§4.6: inherited when the caller's own streams are
// the process's real (tty-backed) streams, piped through the CLI's own
// output streams otherwise.
type Stdio struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Inherited reports whether stdout is the process's own real stdout and is
// attached to a terminal. The extension loader does not call it: it hands
// the CLI's own output streams to the child as they are, so an *os.File is
// passed through directly and any other writer is piped.
func Inherited(stdout io.Writer) bool {
	f, ok := stdout.(*os.File)
	if !ok {
		return false
	}
	return f.Fd() == os.Stdout.Fd() && term.IsTerminal(int(f.Fd()))
}

// New builds an *exec.Cmd for name/args wired with the given Stdio triple.
// It does not start the command.
func New(ctx context.Context, name string, args []string, stdio Stdio) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdio.Stdin
	cmd.Stdout = stdio.Stdout
	cmd.Stderr = stdio.Stderr
	return cmd
}

// DefaultStdio returns the inherit-the-terminal triple used when the CLI's
// own streams are the process's real stdout/stderr.
func DefaultStdio() Stdio {
	return Stdio{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// RunWithSignalForwarding starts cmd and forwards SIGINT/SIGTERM received by
// this process to it for as long as it runs, per spec.md §5's "single
// forward, not a cooperative-cancellation protocol" — there is no retry or
// escalation, just one relayed signal per received signal.
//
// A non-zero exit is not reported as an error: it resolves with the child's
// exit code, per spec.md §4.5's "resolves with {code} on child close; it
// does not reject on non-zero exit." err is non-nil only when the child
// could not be started or waited on at all.
func RunWithSignalForwarding(cmd *exec.Cmd) (int, error) {
	if err := cmd.Start(); err != nil {
		return -1, err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	for {
		select {
		case sig := <-sigCh:
			forwardSignal(cmd.Process.Pid, sig)
		case err := <-done:
			var exitErr *exec.ExitError
			if err != nil && !errors.As(err, &exitErr) {
				return -1, err
			}
			return cmd.ProcessState.ExitCode(), nil
		}
	}
}

func forwardSignal(pid int, sig os.Signal) {
	switch sig {
	case syscall.SIGTERM:
		_ = unix.Kill(pid, unix.SIGTERM)
	default:
		_ = unix.Kill(pid, unix.SIGINT)
	}
}
