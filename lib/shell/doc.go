// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

// Package shell implements a line-oriented command shell core for
// character-streamed devices: UART consoles, raw TCP connections,
// local terminals in raw mode, or anything else that delivers input
// one byte at a time.
//
// The package has two cooperating pieces:
//
//   - [Registry]: a fixed-capacity, append-only table mapping command
//     names to handler functions. Registration order is preserved and
//     duplicate names are permitted — every entry whose name matches
//     a dispatched line is invoked, in registration order.
//   - [Shell]: the per-stream line accumulator. [Shell.Input] consumes
//     raw bytes, reacting to CR/LF (complete the line), backspace
//     (delete one character), and printable ASCII (append). On a
//     completed line the buffer is tokenized into whitespace- or
//     quote-delimited arguments and dispatched against the registry.
//
// The core is purely input-side: it performs no I/O, no logging, and
// no echo. Echo and unknown-command reporting belong to the transport
// front end feeding the bytes in (see cmd/conch and cmd/conch-serve).
//
// # Capacity and overflow
//
// All storage is allocated once at construction and never grows. The
// line buffer, the argument vector, and the registry each have a fixed
// capacity with a silent-truncation overflow policy: excess input
// bytes are dropped, excess arguments are ignored, and only registry
// registration past capacity reports an error ([ErrRegistryFull]).
// On a resource-constrained byte stream, dropping excess characters
// beats failing the whole line.
//
// # Tokenization
//
// A token is a run of non-space bytes, or a double-quoted span. Inside
// a quoted span a backslash escapes the following byte, so \" does not
// close the token; escape characters are kept as literal content. An
// unterminated quote ends its token at end of line. A quote appearing
// in the middle of a bare token terminates that token immediately —
// it does not open a quoted span. The asymmetry between token-start
// and mid-token quotes is a long-standing observable contract of this
// line format and is covered by tests; do not "fix" it.
//
// # Concurrency
//
// A Shell is single-writer: one goroutine feeds Input at a time, and
// handlers run inline on that goroutine. Instances share nothing. A
// Registry shared across several Shells must be fully populated before
// any of them starts consuming input.
package shell
