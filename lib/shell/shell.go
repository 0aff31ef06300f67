// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"bytes"
	"fmt"
)

// ASCII control bytes the accumulator reacts to. Everything outside
// the printable range [asciiSpace, asciiDelete) that is not listed
// here is silently ignored.
const (
	asciiBackspace = 0x08
	asciiLF        = 0x0A
	asciiCR        = 0x0D
	asciiSpace     = 0x20
	// asciiDelete (DEL) is deliberately inert: it bounds the printable
	// range and is otherwise ignored, not treated as a backspace alias.
	asciiDelete = 0x7F
)

// Default capacities used by [New] when no option overrides them.
const (
	// DefaultBufferSize is the line buffer size in bytes, including
	// the always-present NUL terminator slot. A line may therefore
	// hold up to DefaultBufferSize-1 characters.
	DefaultBufferSize = 128

	// DefaultMaxArgs is the maximum number of tokens recorded per
	// line. Further tokens are silently discarded.
	DefaultMaxArgs = 16
)

// Shell accumulates a byte stream into lines and dispatches completed
// lines against a [Registry]. Create one per input stream with [New].
//
// Shell is single-writer: calls to [Shell.Input] must not overlap.
// Command handlers run synchronously inside Input on the calling
// goroutine, so a slow handler back-pressures further byte delivery.
type Shell struct {
	registry *Registry
	unknown  HandlerFunc

	bufSize int
	maxArgs int

	// buf holds the in-progress line. Invariant: buf[cursor] == 0 and
	// every byte past cursor is zero, so the NUL terminator always
	// agrees with cursor unless someone mutated state out of band.
	buf    []byte
	cursor int

	// spans are [start, end) token byte ranges into buf, recorded by
	// the tokenizer and valid only until the next reset.
	spans [][2]int
}

// Option configures a [Shell] at construction time.
type Option func(*Shell)

// WithBufferSize sets the line buffer capacity in bytes, including
// the NUL terminator slot (a buffer of size n holds n-1 characters).
// The size must be at least 2.
func WithBufferSize(size int) Option {
	if size < 2 {
		panic(fmt.Sprintf("shell: buffer size must be at least 2, got %d", size))
	}
	return func(s *Shell) { s.bufSize = size }
}

// WithMaxArgs sets the maximum number of tokens recorded per line.
// Must be positive. Tokens beyond the limit are silently discarded.
func WithMaxArgs(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("shell: max args must be positive, got %d", n))
	}
	return func(s *Shell) { s.maxArgs = n }
}

// WithUnknownHandler installs a fallback invoked for completed lines
// whose first token matches no registry entry. The core's own contract
// for unmatched commands is silence; this hook is the attachment point
// for front ends that want to report them. The args slice follows the
// same transient-validity rule as [HandlerFunc].
func WithUnknownHandler(fn HandlerFunc) Option {
	return func(s *Shell) { s.unknown = fn }
}

// New creates a Shell dispatching against registry. A nil registry is
// permitted and behaves as an empty one. All storage is allocated here
// and never grows.
func New(registry *Registry, opts ...Option) *Shell {
	s := &Shell{
		registry: registry,
		bufSize:  DefaultBufferSize,
		maxArgs:  DefaultMaxArgs,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.buf = make([]byte, s.bufSize)
	s.spans = make([][2]int, 0, s.maxArgs)
	return s
}

// Input feeds raw bytes into the accumulator. Bytes are consumed one
// at a time, synchronously:
//
//   - CR or LF completes the current line: it is tokenized and
//     dispatched, then the accumulator resets. CR and LF each trigger
//     independently, so a CRLF pair completes twice; the second
//     completion sees an empty buffer and is a no-op.
//   - Backspace deletes the last accumulated character, if any.
//   - Printable ASCII (0x20–0x7E) is appended while the buffer has
//     room; excess bytes are dropped silently.
//   - Everything else, including DEL (0x7F), is ignored.
//
// The only failure is [ErrInvalidArgument] for a nil or empty slice;
// no byte value ever causes an error.
func (s *Shell) Input(data []byte) error {
	if len(data) == 0 {
		return ErrInvalidArgument
	}
	for _, b := range data {
		switch b {
		case asciiCR, asciiLF:
			s.completeLine()
			s.Reset()
		case asciiBackspace:
			if s.cursor > 0 {
				s.cursor--
				s.buf[s.cursor] = 0
			}
		default:
			if b >= asciiSpace && b < asciiDelete && s.cursor < len(s.buf)-1 {
				s.buf[s.cursor] = b
				s.cursor++
				s.buf[s.cursor] = 0
			}
		}
	}
	return nil
}

// Buffered returns the number of characters currently accumulated in
// the in-progress line. Front ends use this to decide what to echo:
// comparing Buffered before and after a feed reveals whether an append
// or a backspace was accepted.
func (s *Shell) Buffered() int {
	return s.cursor
}

// Line returns a copy of the in-progress line. Front ends that redraw
// the whole input area, rather than echoing per byte, render this.
func (s *Shell) Line() string {
	return string(s.buf[:s.cursor])
}

// Reset zeroes the accumulator: the whole buffer, the cursor, and the
// recorded token spans. Called internally after every completed line;
// exposed for callers that need to abandon a partial line.
func (s *Shell) Reset() {
	clear(s.buf)
	s.cursor = 0
	s.spans = s.spans[:0]
}

// completeLine tokenizes and dispatches the current buffer contents.
// The caller resets afterwards.
func (s *Shell) completeLine() {
	if s.cursor == 0 {
		return
	}
	// Consistency guard: the NUL-terminated content length must agree
	// with the cursor. A mismatch means the buffer was mutated outside
	// Input; drop the line rather than tokenize inconsistent state.
	if bytes.IndexByte(s.buf, 0) != s.cursor {
		return
	}

	s.tokenize()
	if len(s.spans) == 0 {
		return
	}

	args := make([]string, len(s.spans))
	for i, span := range s.spans {
		args[i] = string(s.buf[span[0]:span[1]])
	}

	matched := false
	if s.registry != nil {
		for _, entry := range s.registry.entries {
			if entry.Name == args[0] {
				entry.Handler(args)
				matched = true
			}
		}
	}
	if !matched && s.unknown != nil {
		s.unknown(args)
	}
}
