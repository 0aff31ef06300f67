// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"strings"
	"testing"
)

func TestEngineCapturesHandlerOutput(t *testing.T) {
	eng, err := newEngine(64, 8)
	if err != nil {
		t.Fatalf("newEngine: %v", err)
	}

	if out := eng.feed([]byte("echo hello world")); out != nil {
		t.Fatalf("partial line produced output: %v", out)
	}
	if got := eng.line(); got != "echo hello world" {
		t.Fatalf("line() = %q, want %q", got, "echo hello world")
	}

	out := eng.feed([]byte{'\r'})
	if len(out) != 1 || out[0] != "hello world" {
		t.Fatalf("feed(CR) output = %v, want [hello world]", out)
	}
	if got := eng.line(); got != "" {
		t.Fatalf("line not reset after completion, got %q", got)
	}
}

func TestEngineUnknownCommandSuggestion(t *testing.T) {
	eng, err := newEngine(64, 8)
	if err != nil {
		t.Fatalf("newEngine: %v", err)
	}

	out := eng.feed([]byte("ecoh hi\r"))
	if len(out) != 1 {
		t.Fatalf("feed output = %v, want one line", out)
	}
	if !strings.Contains(out[0], `did you mean "echo"`) {
		t.Fatalf("expected suggestion for ecoh, got %q", out[0])
	}
}

func TestEngineExitAndClearFlags(t *testing.T) {
	eng, err := newEngine(64, 8)
	if err != nil {
		t.Fatalf("newEngine: %v", err)
	}

	eng.feed([]byte("clear\r"))
	if !eng.clear {
		t.Fatal("clear command did not set clear flag")
	}
	if eng.exit {
		t.Fatal("clear command set exit flag")
	}

	eng.feed([]byte("exit\r"))
	if !eng.exit {
		t.Fatal("exit command did not set exit flag")
	}
}

func TestEngineBackspaceEditing(t *testing.T) {
	eng, err := newEngine(64, 8)
	if err != nil {
		t.Fatalf("newEngine: %v", err)
	}

	eng.feed([]byte("echp"))
	eng.feed([]byte{0x08})
	eng.feed([]byte("o x"))
	if got := eng.line(); got != "echo x" {
		t.Fatalf("line() = %q, want %q", got, "echo x")
	}

	out := eng.feed([]byte{'\n'})
	if len(out) != 1 || out[0] != "x" {
		t.Fatalf("feed(LF) output = %v, want [x]", out)
	}
}
