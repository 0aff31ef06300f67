// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/conchshell/conch/lib/shell"
	"github.com/conchshell/conch/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	prompt := pflag.String("prompt", "conch> ", "prompt text")
	noColor := pflag.Bool("no-color", false, "disable styled output")
	bufferSize := pflag.Int("buffer-size", shell.DefaultBufferSize,
		"line buffer capacity in bytes, including the terminator slot")
	maxArgs := pflag.Int("max-args", shell.DefaultMaxArgs,
		"maximum arguments per line")
	showVersion := pflag.BoolP("version", "V", false, "print version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Printf("conch %s\n", version.Info())
		return nil
	}
	if *bufferSize < 2 {
		return fmt.Errorf("--buffer-size must be at least 2, got %d", *bufferSize)
	}
	if *maxArgs < 1 {
		return fmt.Errorf("--max-args must be positive, got %d", *maxArgs)
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("stdin is not a terminal (pipe input to conch-serve instead)")
	}

	output := termenv.NewOutput(os.Stdout)
	if *noColor {
		output = termenv.NewOutput(os.Stdout, termenv.WithProfile(termenv.Ascii))
	}

	session, err := newSession(output, *prompt, *bufferSize, *maxArgs)
	if err != nil {
		return err
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	return session.runLoop(os.Stdin)
}
