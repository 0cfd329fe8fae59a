package syntax

import "fmt"

// ParseErrorKind enumerates the ways a pattern can fail to parse.
type ParseErrorKind uint8

const (
	// ErrMissingRepeatOperand: a repetition operator with nothing to
	// repeat, or an operand that is not a literal, class, or group.
	ErrMissingRepeatOperand ParseErrorKind = iota

	// ErrMissingRepeatArgument: a {...} repeat with no leading count.
	ErrMissingRepeatArgument

	// ErrInvalidRepeatArgument: a malformed count inside {...}.
	ErrInvalidRepeatArgument

	// ErrEmptyAlternate: an alternation branch with no expression.
	ErrEmptyAlternate

	// ErrUnbalancedParentheses: a ')' closing an alternation that was
	// never opened by '('.
	ErrUnbalancedParentheses

	// ErrUnopenedParentheses: a ')' with no matching '('.
	ErrUnopenedParentheses

	// ErrUnclosedParentheses: a '(' never closed.
	ErrUnclosedParentheses

	// ErrEmptyCaptureGroup: the group '()' with no body.
	ErrEmptyCaptureGroup

	// ErrUnmatchedByteClass: a stray ']' or a malformed class range.
	ErrUnmatchedByteClass

	// ErrInvalidRepeatRange: a {m,n} repeat with n < m.
	ErrInvalidRepeatRange

	// ErrUnclosedRepeat: a '{' repeat never closed.
	ErrUnclosedRepeat

	// ErrUnclosedBrackets: a '[' class never closed.
	ErrUnclosedBrackets

	// ErrExcessiveRepeatCount: a repeat bound above the parser's
	// MaxRepeat limit.
	ErrExcessiveRepeatCount

	// ErrOpenEscapeCode: a '\' at the end of the pattern.
	ErrOpenEscapeCode

	// ErrUnclosedHexCharacterCode: a '\x{...' never closed.
	ErrUnclosedHexCharacterCode

	// ErrInvalidHexDigit: a malformed or out-of-range hex literal.
	ErrInvalidHexDigit

	// ErrInvalidOctalDigit: a malformed or out-of-range octal literal.
	ErrInvalidOctalDigit

	// ErrUnrecognizedEscapeCode: an escape the grammar does not define.
	ErrUnrecognizedEscapeCode

	// ErrUnimplementedModifier: a '(?' group form other than '(?:'.
	ErrUnimplementedModifier

	// ErrStackUnderflow: the parser stack emptied unexpectedly. This
	// indicates an internal inconsistency rather than a user error.
	ErrStackUnderflow
)

var parseErrorKindNames = [...]string{
	ErrMissingRepeatOperand:     "MissingRepeatOperand",
	ErrMissingRepeatArgument:    "MissingRepeatArgument",
	ErrInvalidRepeatArgument:    "InvalidRepeatArgument",
	ErrEmptyAlternate:           "EmptyAlternate",
	ErrUnbalancedParentheses:    "UnbalancedParentheses",
	ErrUnopenedParentheses:      "UnopenedParentheses",
	ErrUnclosedParentheses:      "UnclosedParentheses",
	ErrEmptyCaptureGroup:        "EmptyCaptureGroup",
	ErrUnmatchedByteClass:       "UnmatchedByteClass",
	ErrInvalidRepeatRange:       "InvalidRepeatRange",
	ErrUnclosedRepeat:           "UnclosedRepeat",
	ErrUnclosedBrackets:         "UnclosedBrackets",
	ErrExcessiveRepeatCount:     "ExcessiveRepeatCount",
	ErrOpenEscapeCode:           "OpenEscapeCode",
	ErrUnclosedHexCharacterCode: "UnclosedHexCharacterCode",
	ErrInvalidHexDigit:          "InvalidHexDigit",
	ErrInvalidOctalDigit:        "InvalidOctalDigit",
	ErrUnrecognizedEscapeCode:   "UnrecognizedEscapeCode",
	ErrUnimplementedModifier:    "UnimplementedModifier",
	ErrStackUnderflow:           "StackUnderflow",
}

// String returns the kind's canonical name.
func (k ParseErrorKind) String() string {
	if int(k) < len(parseErrorKindNames) {
		return parseErrorKindNames[k]
	}
	return fmt.Sprintf("Unknown(%d)", k)
}

// Error describes a pattern that failed to parse.
type Error struct {
	// Kind classifies the failure.
	Kind ParseErrorKind

	// Pos is the byte offset in the pattern where the failure was
	// detected.
	Pos int

	// Pattern is the full source pattern.
	Pattern string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("syntax: %s at position %d in %q", e.Kind, e.Pos, e.Pattern)
}

// Is reports whether target is an *Error with the same kind. This lets
// callers match on kind with errors.Is using a prototype value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
