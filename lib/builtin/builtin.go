// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

// Package builtin registers the standard interactive commands shared
// by the conch front ends: help, echo, version, and exit. The shell
// core performs no output itself, so each front end supplies the
// writer its handlers print to and the line ending its transport
// expects ("\n" for sockets and cooked terminals, "\r\n" for raw
// mode).
package builtin

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/conchshell/conch/lib/shell"
	"github.com/conchshell/conch/lib/version"
)

// Options configures the registered commands.
type Options struct {
	// Output receives all command output. Required.
	Output io.Writer

	// EOL is the line ending to emit. Defaults to "\n".
	EOL string

	// OnExit is invoked by the exit command. If nil, exit is not
	// registered.
	OnExit func()
}

// Register adds the built-in commands to reg. The help listing covers
// every command registered at the time help runs, including commands
// added after Register returns.
func Register(reg *shell.Registry, opts Options) error {
	if opts.Output == nil {
		return fmt.Errorf("builtin: Output is required")
	}
	eol := opts.EOL
	if eol == "" {
		eol = "\n"
	}
	out := opts.Output

	if err := reg.Register("help", func([]string) {
		printHelp(out, eol, reg.Commands())
	}, "list available commands"); err != nil {
		return fmt.Errorf("registering help: %w", err)
	}

	if err := reg.Register("echo", func(args []string) {
		fmt.Fprintf(out, "%s%s", strings.Join(args[1:], " "), eol)
	}, "print arguments"); err != nil {
		return fmt.Errorf("registering echo: %w", err)
	}

	if err := reg.Register("version", func([]string) {
		fmt.Fprintf(out, "conch %s%s", version.Info(), eol)
	}, "show version"); err != nil {
		return fmt.Errorf("registering version: %w", err)
	}

	if opts.OnExit != nil {
		if err := reg.Register("exit", func([]string) {
			opts.OnExit()
		}, "close the session"); err != nil {
			return fmt.Errorf("registering exit: %w", err)
		}
	}

	return nil
}

// printHelp writes an aligned command listing. Duplicate registrations
// show up once per entry, mirroring dispatch behavior.
func printHelp(out io.Writer, eol string, commands []shell.Command) {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 2, 0, 3, ' ', 0)
	for _, command := range commands {
		fmt.Fprintf(tw, "  %s\t%s\n", command.Name, command.Description)
	}
	tw.Flush()

	fmt.Fprintf(out, "commands:%s", eol)
	for line := range strings.Lines(b.String()) {
		fmt.Fprintf(out, "%s%s", strings.TrimRight(line, "\n"), eol)
	}
}
