// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/conchshell/conch/lib/shell"
	"github.com/conchshell/conch/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "conch-console: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	prompt := pflag.String("prompt", "conch> ", "input line prompt")
	bufferSize := pflag.Int("buffer-size", shell.DefaultBufferSize, "line buffer capacity in bytes")
	maxArgs := pflag.Int("max-args", shell.DefaultMaxArgs, "maximum arguments per command")
	showVersion := pflag.BoolP("version", "V", false, "print version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Println(version.Full())
		return nil
	}
	if *bufferSize < 2 {
		return fmt.Errorf("--buffer-size must be at least 2, got %d", *bufferSize)
	}
	if *maxArgs < 1 {
		return fmt.Errorf("--max-args must be at least 1, got %d", *maxArgs)
	}

	eng, err := newEngine(*bufferSize, *maxArgs)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newModel(eng, *prompt), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
