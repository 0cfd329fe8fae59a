// Package syntax implements the regex surface parser.
//
// The parser turns a pattern string into an expression tree (Expr) that the
// nfa package compiles into bytecode. The recognised grammar is byte
// oriented: no Unicode scalar semantics, no back-references, no named
// captures. See ParseErrorKind for the full error taxonomy.
package syntax

import (
	"fmt"
	"strings"
)

// Assertion is a zero-width predicate over the input cursor.
type Assertion uint8

const (
	// AssertNone always holds.
	AssertNone Assertion = iota

	// AssertBeginLine holds at position 0 (the ^ anchor).
	AssertBeginLine

	// AssertEndLine holds at the past-the-end position (the $ anchor).
	AssertEndLine

	// AssertBeginText holds at position 0.
	AssertBeginText

	// AssertEndText holds at the past-the-end position.
	AssertEndText

	// AssertWordBoundary holds where an ASCII word character meets a
	// non-word character or the edge of the input (the \b escape).
	AssertWordBoundary

	// AssertNotWordBoundary is the negation of AssertWordBoundary (\B).
	AssertNotWordBoundary
)

// String returns a human-readable name for the assertion.
func (a Assertion) String() string {
	switch a {
	case AssertNone:
		return "None"
	case AssertBeginLine:
		return "BeginLine"
	case AssertEndLine:
		return "EndLine"
	case AssertBeginText:
		return "BeginText"
	case AssertEndText:
		return "EndText"
	case AssertWordBoundary:
		return "WordBoundary"
	case AssertNotWordBoundary:
		return "NotWordBoundary"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// ExprOp identifies the kind of an expression tree node.
type ExprOp uint8

const (
	// OpEmptyMatch is a zero-width assertion node.
	OpEmptyMatch ExprOp = iota

	// OpLiteral matches a single byte.
	OpLiteral

	// OpAnyCharNotNL matches any byte except '\n'.
	OpAnyCharNotNL

	// OpByteClass matches any byte in a RangeSet.
	OpByteClass

	// OpCapture is a group; Capturing controls whether the compiler
	// allocates capture slots for it.
	OpCapture

	// OpRepeat is a bounded or unbounded repetition of its child.
	OpRepeat

	// OpConcat is an ordered sequence of at least two children.
	OpConcat

	// OpAlternate is an ordered choice of at least two children.
	OpAlternate

	// opPseudoLeftParen is an internal parser stack marker. It never
	// appears in a tree returned by Parse.
	opPseudoLeftParen
)

// String returns a human-readable name for the op.
func (op ExprOp) String() string {
	switch op {
	case OpEmptyMatch:
		return "EmptyMatch"
	case OpLiteral:
		return "Literal"
	case OpAnyCharNotNL:
		return "AnyCharNotNL"
	case OpByteClass:
		return "ByteClass"
	case OpCapture:
		return "Capture"
	case OpRepeat:
		return "Repeat"
	case OpConcat:
		return "Concat"
	case OpAlternate:
		return "Alternate"
	case opPseudoLeftParen:
		return "PseudoLeftParen"
	default:
		return fmt.Sprintf("Unknown(%d)", op)
	}
}

// Expr is a node in the parsed expression tree.
//
// The Op field determines which other fields are meaningful:
//
//	OpEmptyMatch    Assert
//	OpLiteral       Lit
//	OpByteClass     Class
//	OpCapture       Subs[0], Capturing
//	OpRepeat        Subs[0], Min, Max, Greedy
//	OpConcat        Subs (len >= 2)
//	OpAlternate     Subs (len >= 2)
//
// Trees returned by Parse satisfy: no pseudo nodes, Alternate and Concat
// have at least two children (a single child is returned directly), and
// Repeat.Max, when bounded, is >= Repeat.Min.
type Expr struct {
	Op     ExprOp
	Assert Assertion
	Lit    byte
	Class  *RangeSet
	Subs   []*Expr

	// Capturing reports whether an OpCapture group allocates capture
	// slots. Non-capturing (?:...) groups carry false.
	Capturing bool

	// Min and Max bound an OpRepeat. Max < 0 means unbounded.
	Min int
	Max int

	// Greedy selects which side of the repetition split is preferred.
	Greedy bool
}

// HasMax reports whether an OpRepeat node has a finite upper bound.
func (e *Expr) HasMax() bool {
	return e.Max >= 0
}

// Equal reports whether two trees are structurally identical.
func (e *Expr) Equal(other *Expr) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.Op != other.Op {
		return false
	}
	switch e.Op {
	case OpEmptyMatch:
		if e.Assert != other.Assert {
			return false
		}
	case OpLiteral:
		if e.Lit != other.Lit {
			return false
		}
	case OpByteClass:
		if !e.Class.Equal(other.Class) {
			return false
		}
	case OpCapture:
		if e.Capturing != other.Capturing {
			return false
		}
	case OpRepeat:
		if e.Min != other.Min || e.Max != other.Max || e.Greedy != other.Greedy {
			return false
		}
	}
	if len(e.Subs) != len(other.Subs) {
		return false
	}
	for i, sub := range e.Subs {
		if !sub.Equal(other.Subs[i]) {
			return false
		}
	}
	return true
}

// String returns a compact structural representation, for diagnostics.
func (e *Expr) String() string {
	var b strings.Builder
	e.format(&b)
	return b.String()
}

func (e *Expr) format(b *strings.Builder) {
	switch e.Op {
	case OpEmptyMatch:
		fmt.Fprintf(b, "Empty(%s)", e.Assert)
	case OpLiteral:
		fmt.Fprintf(b, "Lit(%q)", e.Lit)
	case OpAnyCharNotNL:
		b.WriteString("AnyNotNL")
	case OpByteClass:
		b.WriteString("Class[")
		for i, r := range e.Class.Ranges() {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(b, "%02x-%02x", r.Min, r.Max)
		}
		b.WriteByte(']')
	case OpCapture:
		if e.Capturing {
			b.WriteString("Cap(")
		} else {
			b.WriteString("Group(")
		}
		e.Subs[0].format(b)
		b.WriteByte(')')
	case OpRepeat:
		b.WriteString("Repeat{")
		e.Subs[0].format(b)
		if e.HasMax() {
			fmt.Fprintf(b, " %d,%d", e.Min, e.Max)
		} else {
			fmt.Fprintf(b, " %d,", e.Min)
		}
		if !e.Greedy {
			b.WriteString(" lazy")
		}
		b.WriteByte('}')
	case OpConcat, OpAlternate:
		sep := " "
		if e.Op == OpAlternate {
			sep = " | "
		}
		b.WriteByte('(')
		for i, sub := range e.Subs {
			if i > 0 {
				b.WriteString(sep)
			}
			sub.format(b)
		}
		b.WriteByte(')')
	case opPseudoLeftParen:
		b.WriteString("PseudoLeftParen")
	}
}

// isRepeatOperand reports whether e may be the operand of a repetition
// operator: a literal, byte class, any-char, or group.
func (e *Expr) isRepeatOperand() bool {
	switch e.Op {
	case OpLiteral, OpByteClass, OpAnyCharNotNL, OpCapture:
		return true
	}
	return false
}
