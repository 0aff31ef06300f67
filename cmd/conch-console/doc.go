// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

// conch-console is a full-screen terminal front end for the conch
// command shell. It renders a scrollable transcript of past lines and
// handler output above an input line, and feeds keystrokes to the same
// byte-oriented accumulator the plain conch binary uses: the shell core
// owns line editing, the console only renders its state.
//
// Keys the accumulator does not understand are handled here: PgUp/PgDn
// scroll the transcript, Ctrl+C and the exit command quit.
package main
