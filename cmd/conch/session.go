// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/conchshell/conch/lib/builtin"
	"github.com/conchshell/conch/lib/shell"
	"github.com/conchshell/conch/lib/suggest"
	"github.com/conchshell/conch/lib/version"
)

// Control bytes the front end handles before the core sees them.
const (
	ctrlC     = 0x03
	ctrlD     = 0x04
	backspace = 0x08
	del       = 0x7F
)

// session owns the interactive terminal loop: raw bytes in, echo and
// handler output back out through the same termenv output.
type session struct {
	output   *termenv.Output
	sh       *shell.Shell
	registry *shell.Registry
	prompt   string
	quit     bool
}

func newSession(output *termenv.Output, prompt string, bufferSize, maxArgs int) (*session, error) {
	t := &session{output: output, prompt: prompt}

	if output.Profile != termenv.Ascii {
		t.prompt = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Render(prompt)
	}

	t.registry = shell.NewRegistry(16)
	err := builtin.Register(t.registry, builtin.Options{
		Output: output,
		EOL:    "\r\n",
		OnExit: func() { t.quit = true },
	})
	if err != nil {
		return nil, err
	}
	if err := t.registry.Register("clear", func([]string) {
		output.ClearScreen()
	}, "clear the screen"); err != nil {
		return nil, err
	}

	t.sh = shell.New(t.registry,
		shell.WithBufferSize(bufferSize),
		shell.WithMaxArgs(maxArgs),
		shell.WithUnknownHandler(func(args []string) {
			names := make([]string, 0, t.registry.Len())
			for _, command := range t.registry.Commands() {
				names = append(names, command.Name)
			}
			if hint := suggest.Command(args[0], names); hint != "" {
				fmt.Fprintf(output, "unknown command %q (did you mean %q?)\r\n", args[0], hint)
				return
			}
			fmt.Fprintf(output, "unknown command %q\r\n", args[0])
		}),
	)
	return t, nil
}

// runLoop reads stdin until the session ends via exit, Ctrl-C/Ctrl-D,
// or EOF. Handler output happens synchronously inside feedByte, so the
// prompt is rewritten only after a full line has been handled.
func (t *session) runLoop(in io.Reader) error {
	fmt.Fprintf(t.output, "conch %s — type 'help' for commands\r\n", version.Short())
	t.output.WriteString(t.prompt)

	buf := make([]byte, 128)
	for !t.quit {
		n, err := in.Read(buf)
		for _, b := range buf[:n] {
			t.feedByte(b)
			if t.quit {
				break
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
	}
	t.output.WriteString("\r\n")
	return nil
}

// feedByte handles one input byte: transport-level keys first, then
// echo for whatever the core accepted.
func (t *session) feedByte(b byte) {
	if b == del {
		// Terminal emulators send DEL for the backspace key; the core
		// keeps DEL inert, so translate at the transport boundary.
		b = backspace
	}

	switch {
	case b == ctrlC || b == ctrlD:
		t.quit = true

	case b == '\r' || b == '\n':
		t.output.WriteString("\r\n")
		_ = t.sh.Input([]byte{b})
		if !t.quit {
			t.output.WriteString(t.prompt)
		}

	default:
		// Echo only what the accumulator accepted: appends echo the
		// byte, an honored backspace erases one cell, dropped bytes
		// (overflow, unprintable) echo nothing.
		before := t.sh.Buffered()
		_ = t.sh.Input([]byte{b})
		after := t.sh.Buffered()
		switch {
		case after > before:
			t.output.Write([]byte{b})
		case after < before:
			t.output.WriteString("\b \b")
		}
	}
}
