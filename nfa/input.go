package nfa

import "github.com/coregx/rebyte/syntax"

// Input abstracts a byte string with a cursor. Cursor positions range
// from 0 to Len() inclusive: the past-the-end position is where the
// end-of-text assertions hold, so the engines step one position beyond
// the last byte.
type Input struct {
	data []byte
	pos  int
}

// NewInput returns a cursor over data positioned at 0.
func NewInput(data []byte) *Input {
	return &Input{data: data}
}

// Len returns the input length in bytes.
func (i *Input) Len() int {
	return len(i.data)
}

// At returns the byte at position pos. The caller must ensure pos is in
// bounds.
func (i *Input) At(pos int) byte {
	return i.data[pos]
}

// Bytes returns the underlying data.
func (i *Input) Bytes() []byte {
	return i.data
}

// Current returns the byte under the cursor, or false when the cursor is
// past the last byte.
func (i *Input) Current() (byte, bool) {
	if i.pos >= len(i.data) {
		return 0, false
	}
	return i.data[i.pos], true
}

// Advance moves the cursor one byte forward.
func (i *Input) Advance() {
	i.pos++
}

// IsConsumed reports whether the cursor sits at the zero-width
// past-the-end position.
func (i *Input) IsConsumed() bool {
	return i.pos >= len(i.data)
}

// IsAtEnd reports whether the cursor is on the last byte.
func (i *Input) IsAtEnd() bool {
	return i.pos == len(i.data)-1
}

// AssertionAt reports whether the zero-width assertion a holds at
// position pos.
func (i *Input) AssertionAt(a syntax.Assertion, pos int) bool {
	switch a {
	case syntax.AssertNone:
		return true
	case syntax.AssertBeginLine, syntax.AssertBeginText:
		return pos == 0
	case syntax.AssertEndLine, syntax.AssertEndText:
		return pos >= len(i.data)
	case syntax.AssertWordBoundary:
		return i.wordByteAt(pos-1) != i.wordByteAt(pos)
	case syntax.AssertNotWordBoundary:
		return i.wordByteAt(pos-1) == i.wordByteAt(pos)
	}
	return false
}

// wordByteAt reports whether the byte at pos is an ASCII word character.
// Positions outside the input count as non-word.
func (i *Input) wordByteAt(pos int) bool {
	if pos < 0 || pos >= len(i.data) {
		return false
	}
	return isWordByte(i.data[pos])
}

func isWordByte(b byte) bool {
	return b >= '0' && b <= '9' ||
		b >= 'A' && b <= 'Z' ||
		b >= 'a' && b <= 'z'
}
