// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

package suggest

import "testing"

func TestCommand(t *testing.T) {
	names := []string{"help", "echo", "version", "status", "exit"}

	tests := []struct {
		input string
		want  string
	}{
		{"hlep", "help"},      // transposition
		{"ech", "echo"},       // dropped character
		{"versionn", "version"}, // extra character
		{"staus", "status"},
		{"zzzzzzzz", ""}, // nothing close
		{"help", "help"}, // exact match still resolves
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			if got := Command(test.input, names); got != test.want {
				t.Errorf("Command(%q) = %q, want %q", test.input, got, test.want)
			}
		})
	}
}

func TestCommandEmptyNames(t *testing.T) {
	if got := Command("anything", nil); got != "" {
		t.Errorf("Command with no names = %q, want empty", got)
	}
}
