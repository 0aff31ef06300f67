// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

// Conch is the interactive local-terminal front end for the conch
// line shell. It puts stdin into raw mode, feeds every byte into a
// shell instance, and handles what the core deliberately leaves to
// the transport: local echo, backspace erasure, the prompt, and
// unknown-command reporting.
//
// Two transport-level translations happen here and not in the core:
//
//   - Most terminal emulators send DEL (0x7F) for the backspace key;
//     the core treats DEL as inert, so conch rewrites it to BS (0x08)
//     before feeding.
//   - Ctrl-C and Ctrl-D end the session (raw mode delivers them as
//     ordinary bytes; the core would ignore them).
//
// Usage:
//
//	conch [--prompt text] [--no-color] [--buffer-size n] [--max-args n]
package main
