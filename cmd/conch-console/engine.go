// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/conchshell/conch/lib/builtin"
	"github.com/conchshell/conch/lib/shell"
	"github.com/conchshell/conch/lib/suggest"
)

const registryCapacity = 16

// engine wraps a shell instance for the console. Handler output is
// captured in a buffer so the model can move it into the transcript
// after each completed line; exit and clear requests from handlers are
// recorded as flags the model consumes on its next update.
type engine struct {
	sh       *shell.Shell
	registry *shell.Registry
	out      bytes.Buffer
	exit     bool
	clear    bool
}

func newEngine(bufferSize, maxArgs int) (*engine, error) {
	e := &engine{registry: shell.NewRegistry(registryCapacity)}

	err := builtin.Register(e.registry, builtin.Options{
		Output: &e.out,
		OnExit: func() { e.exit = true },
	})
	if err != nil {
		return nil, err
	}
	if err := e.registry.Register("clear", func([]string) {
		e.clear = true
	}, "clear the transcript"); err != nil {
		return nil, err
	}

	e.sh = shell.New(e.registry,
		shell.WithBufferSize(bufferSize),
		shell.WithMaxArgs(maxArgs),
		shell.WithUnknownHandler(func(args []string) {
			names := make([]string, 0, e.registry.Len())
			for _, command := range e.registry.Commands() {
				names = append(names, command.Name)
			}
			if hint := suggest.Command(args[0], names); hint != "" {
				fmt.Fprintf(&e.out, "unknown command %q (did you mean %q?)\n", args[0], hint)
				return
			}
			fmt.Fprintf(&e.out, "unknown command %q\n", args[0])
		}),
	)
	return e, nil
}

// feed passes bytes to the accumulator and returns any handler output
// produced, split into lines for the transcript.
func (e *engine) feed(data []byte) []string {
	_ = e.sh.Input(data)
	if e.out.Len() == 0 {
		return nil
	}
	text := strings.TrimRight(e.out.String(), "\n")
	e.out.Reset()
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// line returns the in-progress input line for rendering.
func (e *engine) line() string {
	return e.sh.Line()
}
