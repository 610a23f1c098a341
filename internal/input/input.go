// Package input implements the cursor-backed view over a tokenized command
// line that the tree walker and suggester read from. It never collapses
// whitespace or re-tokenizes eagerly: every operation works relative to a
// byte cursor into the original string, so that a walker branch can snapshot
// the cursor, attempt a child, and rewind exactly to where it started.
package input

import "strings"

// Buffer is a cursor over a raw command-line string. Tokenization is
// whitespace-only; it does not collapse adjacent whitespace beyond standard
// splitting. The zero value is not usable; use New.
type Buffer struct {
	raw string
	pos int
}

// New wraps raw in a fresh Buffer positioned at the start.
func New(raw string) *Buffer {
	return &Buffer{raw: raw}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// skipSpace returns the first index at or after from that is not whitespace,
// or len(raw) if none remains.
func (b *Buffer) skipSpace(from int) int {
	i := from
	for i < len(b.raw) && isSpace(b.raw[i]) {
		i++
	}

	return i
}

func (b *Buffer) tokenEnd(from int) int {
	i := from
	for i < len(b.raw) && !isSpace(b.raw[i]) {
		i++
	}

	return i
}

// PeekString returns the next whitespace-delimited token without advancing
// the cursor, or the empty string if no non-whitespace remains.
func (b *Buffer) PeekString() string {
	start := b.skipSpace(b.pos)
	if start >= len(b.raw) {
		return ""
	}

	return b.raw[start:b.tokenEnd(start)]
}

// ReadString peeks the next token, then advances the cursor past it and a
// single trailing whitespace rune, if present.
func (b *Buffer) ReadString() string {
	start := b.skipSpace(b.pos)
	if start >= len(b.raw) {
		b.pos = len(b.raw)

		return ""
	}

	end := b.tokenEnd(start)
	tok := b.raw[start:end]

	b.pos = end
	if b.pos < len(b.raw) && isSpace(b.raw[b.pos]) {
		b.pos++
	}

	return tok
}

// IsEmpty reports whether any non-whitespace remains. When ignoringWhitespace
// is false, a cursor sitting on trailing whitespace is not considered empty.
func (b *Buffer) IsEmpty(ignoringWhitespace bool) bool {
	if ignoringWhitespace {
		return b.skipSpace(b.pos) >= len(b.raw)
	}

	return b.pos >= len(b.raw)
}

// RemainingTokens counts the whitespace-separated tokens left in the buffer.
func (b *Buffer) RemainingTokens() int {
	if b.pos >= len(b.raw) {
		return 0
	}

	return len(strings.Fields(b.raw[b.pos:]))
}

// LastRemainingToken returns the final token in the remaining buffer, or the
// empty string if none remains.
func (b *Buffer) LastRemainingToken() string {
	fields := strings.Fields(b.raw[min(b.pos, len(b.raw)):])
	if len(fields) == 0 {
		return ""
	}

	return fields[len(fields)-1]
}

// RemainingInput returns the raw, untokenized substring from the cursor on.
func (b *Buffer) RemainingInput() string {
	if b.pos >= len(b.raw) {
		return ""
	}

	return b.raw[b.pos:]
}

// Cursor exposes the current byte position so a caller can snapshot it and
// later rewind with SetCursor.
func (b *Buffer) Cursor() int {
	return b.pos
}

// SetCursor restores the cursor to a value previously returned by Cursor.
// ReadString behavior after SetCursor is identical to what it was at the
// moment the snapshot was taken.
func (b *Buffer) SetCursor(n int) {
	if n < 0 {
		n = 0
	}

	if n > len(b.raw) {
		n = len(b.raw)
	}

	b.pos = n
}

// Copy returns a detached snapshot of the buffer; mutating the copy never
// affects the receiver.
func (b *Buffer) Copy() *Buffer {
	c := *b

	return &c
}

// AppendString logically appends s to the input buffer, used by Parsed
// default values that re-feed their text through a component's parser.
func (b *Buffer) AppendString(s string) {
	if s == "" {
		return
	}

	if b.raw != "" && !isSpace(b.raw[len(b.raw)-1]) {
		b.raw += " "
	}

	b.raw += s
}

