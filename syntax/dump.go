package syntax

import (
	"fmt"
	"strings"
)

// Dump renders a tree back into pattern source in canonical form.
// Re-parsing the output of Dump yields a tree equal to the input for any
// tree the parser itself produced.
func Dump(e *Expr) string {
	var b strings.Builder
	dumpExpr(&b, e)
	return b.String()
}

func dumpExpr(b *strings.Builder, e *Expr) {
	switch e.Op {
	case OpEmptyMatch:
		switch e.Assert {
		case AssertBeginLine, AssertBeginText:
			b.WriteByte('^')
		case AssertEndLine, AssertEndText:
			b.WriteByte('$')
		case AssertWordBoundary:
			b.WriteString(`\b`)
		case AssertNotWordBoundary:
			b.WriteString(`\B`)
		}
		// AssertNone renders as the empty pattern.

	case OpLiteral:
		dumpLiteral(b, e.Lit)

	case OpAnyCharNotNL:
		b.WriteByte('.')

	case OpByteClass:
		dumpClass(b, e.Class)

	case OpCapture:
		if e.Capturing {
			b.WriteByte('(')
		} else {
			b.WriteString("(?:")
		}
		dumpExpr(b, e.Subs[0])
		b.WriteByte(')')

	case OpRepeat:
		dumpExpr(b, e.Subs[0])
		switch {
		case e.Min == 0 && e.Max < 0:
			b.WriteByte('*')
		case e.Min == 1 && e.Max < 0:
			b.WriteByte('+')
		case e.Min == 0 && e.Max == 1:
			b.WriteByte('?')
		case e.Max < 0:
			fmt.Fprintf(b, "{%d,}", e.Min)
		case e.Min == e.Max:
			fmt.Fprintf(b, "{%d}", e.Min)
		default:
			fmt.Fprintf(b, "{%d,%d}", e.Min, e.Max)
		}
		if !e.Greedy {
			b.WriteByte('?')
		}

	case OpConcat:
		for _, sub := range e.Subs {
			dumpExpr(b, sub)
		}

	case OpAlternate:
		for i, sub := range e.Subs {
			if i > 0 {
				b.WriteByte('|')
			}
			dumpExpr(b, sub)
		}
	}
}

func dumpLiteral(b *strings.Builder, c byte) {
	switch {
	case isPunctuation(c):
		b.WriteByte('\\')
		b.WriteByte(c)
	case c >= 0x20 && c < 0x7F:
		b.WriteByte(c)
	default:
		fmt.Fprintf(b, `\x%02X`, c)
	}
}

func dumpClass(b *strings.Builder, set *RangeSet) {
	if set.IsEmpty() {
		// "[]" does not parse; the empty set is the complement of
		// the full byte range.
		b.WriteString(`[^\x00-\xFF]`)
		return
	}
	b.WriteByte('[')
	for _, r := range set.Ranges() {
		dumpClassByte(b, r.Min)
		if r.Max > r.Min {
			b.WriteByte('-')
			dumpClassByte(b, r.Max)
		}
	}
	b.WriteByte(']')
}

func dumpClassByte(b *strings.Builder, c byte) {
	switch {
	case c == ']' || c == '^' || c == '-' || c == '\\':
		b.WriteByte('\\')
		b.WriteByte(c)
	case c >= 0x20 && c < 0x7F:
		b.WriteByte(c)
	default:
		fmt.Fprintf(b, `\x%02X`, c)
	}
}
