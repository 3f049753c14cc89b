// Package cursor provides a forward-only view over a mangled name.
package cursor

import "strings"

// EOF is returned by Peek when no input remains.
const EOF byte = 0

// Cursor is a position within an immutable input string. The zero value
// is an empty cursor.
//
// Cursor is a value type: consuming methods return the advanced cursor
// and leave the receiver untouched.
type Cursor struct {
	input string
	off   int
}

// New creates a Cursor at the start of s.
func New(s string) Cursor {
	return Cursor{input: s}
}

// Input returns the whole original string.
func (c Cursor) Input() string { return c.input }

// Offset returns the current read position.
func (c Cursor) Offset() int { return c.off }

// Remaining returns the number of bytes remaining.
func (c Cursor) Remaining() int { return len(c.input) - c.off }

// Rest returns the unconsumed suffix.
func (c Cursor) Rest() string { return c.input[c.off:] }

// Empty reports whether all input has been consumed.
func (c Cursor) Empty() bool { return c.off >= len(c.input) }

// Peek returns the next byte without consuming it, or EOF.
func (c Cursor) Peek() byte {
	if c.Empty() {
		return EOF
	}
	return c.input[c.off]
}

// HasPrefix reports whether the next byte is b.
func (c Cursor) HasPrefix(b byte) bool {
	return !c.Empty() && c.input[c.off] == b
}

// PeekNumber returns the value of the leading decimal digit run without
// consuming it. It returns 0 if the input does not start with a digit or
// starts with '0'. Values that do not fit saturate.
func (c Cursor) PeekNumber() uint64 {
	if c.Empty() || c.input[c.off] == '0' {
		return 0
	}
	var acc uint64
	for i := c.off; i < len(c.input) && IsDigit(c.input[i]); i++ {
		d := uint64(c.input[i] - '0')
		if acc > (^uint64(0)-d)/10 {
			return ^uint64(0)
		}
		acc = acc*10 + d
	}
	return acc
}

// ConsumeByte consumes b if it is the next byte.
func (c Cursor) ConsumeByte(b byte) (Cursor, bool) {
	if !c.HasPrefix(b) {
		return c, false
	}
	c.off++
	return c, true
}

// ConsumePrefix consumes s if the remaining input starts with it.
func (c Cursor) ConsumePrefix(s string) (Cursor, bool) {
	if !strings.HasPrefix(c.Rest(), s) {
		return c, false
	}
	c.off += len(s)
	return c, true
}

// Pop consumes and returns the next byte. The cursor must not be empty.
func (c Cursor) Pop() (byte, Cursor) {
	if c.Empty() {
		panic("cursor: Pop on empty cursor")
	}
	b := c.input[c.off]
	c.off++
	return b, c
}

// CutUntil returns the text before the next occurrence of delim and a
// cursor positioned at delim. If delim does not occur, it returns an
// empty string and the unchanged cursor.
func (c Cursor) CutUntil(delim byte) (string, Cursor) {
	i := strings.IndexByte(c.Rest(), delim)
	if i < 0 {
		return "", c
	}
	s := c.input[c.off : c.off+i]
	c.off += i
	return s, c
}

// Bound returns the cursor n bytes ahead, used as the end of a bounded
// view. It reports false if fewer than n bytes remain.
func (c Cursor) Bound(n uint64) (Cursor, bool) {
	if n > uint64(c.Remaining()) {
		return c, false
	}
	c.off += int(n)
	return c, true
}

// Slice returns the input between c and end. Both cursors must be over
// the same input with end not before c.
func (c Cursor) Slice(end Cursor) string {
	if end.off < c.off {
		return ""
	}
	return c.input[c.off:end.off]
}

// Before reports whether c is positioned before end.
func (c Cursor) Before(end Cursor) bool { return c.off < end.off }

// At reports whether c and other are at the same position.
func (c Cursor) At(other Cursor) bool { return c.off == other.off }

// IsDigit reports whether b is an ASCII decimal digit.
func IsDigit(b byte) bool { return b >= '0' && b <= '9' }
