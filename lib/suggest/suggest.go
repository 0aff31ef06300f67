// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

// Package suggest provides "did you mean" lookups for mistyped
// command names. The shell core is deliberately silent about unknown
// commands; front ends use this package in their unknown-command
// handlers to point users at the closest registered name.
package suggest

import "github.com/agnivade/levenshtein"

// maxDistance is the largest edit distance still worth suggesting.
// Three edits catches transpositions, dropped characters, and extra
// characters without suggesting unrelated names.
const maxDistance = 3

// Command returns the name closest to unknown, or "" if nothing is
// within the suggestion threshold. Ties go to the earliest name, which
// for registry snapshots means registration order.
func Command(unknown string, names []string) string {
	bestName := ""
	bestDistance := maxDistance + 1

	for _, name := range names {
		distance := levenshtein.ComputeDistance(unknown, name)
		if distance < bestDistance {
			bestDistance = distance
			bestName = name
		}
	}

	return bestName
}
