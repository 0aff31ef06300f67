// Copyright 2026 The Conch Authors
// SPDX-License-Identifier: Apache-2.0

package shell

// tokenize splits the buffer into token spans, left to right. It
// mutates the buffer the way a classic in-place tokenizer does: token
// terminators (closing quotes, separating spaces, stray mid-token
// quotes) are overwritten with NUL as the scan passes them. The
// accumulator resets the buffer right after dispatch, so the
// punctuation never outlives the line.
//
// Recording stops once the span vector is full; the rest of the line
// is discarded without error.
func (s *Shell) tokenize() {
	s.spans = s.spans[:0]

	pos := 0
	for pos < len(s.buf) && s.buf[pos] != 0 {
		for s.buf[pos] == asciiSpace {
			pos++
		}
		if s.buf[pos] == 0 {
			break
		}

		var start, end int
		if s.buf[pos] == '"' {
			// Quoted token: starts after the quote, ends at the first
			// unescaped closing quote. Backslash escapes the next byte
			// (so \" stays inside the token); escapes are kept as
			// literal content, not stripped. A missing closing quote
			// ends the token at end of line.
			pos++
			start = pos
			end = -1
			for s.buf[pos] != 0 {
				switch s.buf[pos] {
				case '\\':
					pos++
					if s.buf[pos] == '"' {
						pos++
					}
				case '"':
					s.buf[pos] = 0
					end = pos
					pos++
				default:
					pos++
				}
				if end >= 0 {
					break
				}
			}
			if end < 0 {
				end = pos
			}
		} else {
			// Bare token: runs to the next space or end of line. A
			// quote found mid-token terminates the token at that
			// position (it does not open a quoted span); the scan
			// still consumes the remaining bytes up to the separator.
			start = pos
			end = -1
			for s.buf[pos] != asciiSpace && s.buf[pos] != 0 {
				if s.buf[pos] == '"' {
					s.buf[pos] = 0
					if end < 0 {
						end = pos
					}
				}
				pos++
			}
			if end < 0 {
				end = pos
			}
			if pos < len(s.buf) {
				s.buf[pos] = 0
				pos++
			}
		}

		s.spans = append(s.spans, [2]int{start, end})
		if len(s.spans) == cap(s.spans) {
			break
		}
	}
}
