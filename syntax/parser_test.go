package syntax

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, pattern string) *Expr {
	t.Helper()
	e, err := Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	return e
}

func TestParseStructure(t *testing.T) {
	tests := []struct {
		pattern string
		check   func(t *testing.T, e *Expr)
	}{
		{"", func(t *testing.T, e *Expr) {
			if e.Op != OpEmptyMatch || e.Assert != AssertNone {
				t.Errorf("got %s", e)
			}
		}},
		{"a", func(t *testing.T, e *Expr) {
			if e.Op != OpLiteral || e.Lit != 'a' {
				t.Errorf("got %s", e)
			}
		}},
		{"ab", func(t *testing.T, e *Expr) {
			if e.Op != OpConcat || len(e.Subs) != 2 {
				t.Fatalf("got %s", e)
			}
			if e.Subs[0].Lit != 'a' || e.Subs[1].Lit != 'b' {
				t.Errorf("got %s", e)
			}
		}},
		{".", func(t *testing.T, e *Expr) {
			if e.Op != OpAnyCharNotNL {
				t.Errorf("got %s", e)
			}
		}},
		{"^a$", func(t *testing.T, e *Expr) {
			if e.Op != OpConcat || len(e.Subs) != 3 {
				t.Fatalf("got %s", e)
			}
			if e.Subs[0].Assert != AssertBeginLine || e.Subs[2].Assert != AssertEndLine {
				t.Errorf("got %s", e)
			}
		}},
		{"a|b|c", func(t *testing.T, e *Expr) {
			if e.Op != OpAlternate || len(e.Subs) != 3 {
				t.Fatalf("got %s", e)
			}
		}},
		{"(a)", func(t *testing.T, e *Expr) {
			if e.Op != OpCapture || !e.Capturing {
				t.Fatalf("got %s", e)
			}
			if e.Subs[0].Op != OpLiteral {
				t.Errorf("got %s", e)
			}
		}},
		{"(?:ab)", func(t *testing.T, e *Expr) {
			if e.Op != OpCapture || e.Capturing {
				t.Fatalf("got %s", e)
			}
			if e.Subs[0].Op != OpConcat {
				t.Errorf("got %s", e)
			}
		}},
		{"(a|b)c", func(t *testing.T, e *Expr) {
			if e.Op != OpConcat || len(e.Subs) != 2 {
				t.Fatalf("got %s", e)
			}
			group := e.Subs[0]
			if group.Op != OpCapture || group.Subs[0].Op != OpAlternate {
				t.Errorf("got %s", e)
			}
		}},
		{"a*", func(t *testing.T, e *Expr) {
			if e.Op != OpRepeat || e.Min != 0 || e.Max != -1 || !e.Greedy {
				t.Errorf("got %s", e)
			}
		}},
		{"a+?", func(t *testing.T, e *Expr) {
			if e.Op != OpRepeat || e.Min != 1 || e.Max != -1 || e.Greedy {
				t.Errorf("got %s", e)
			}
		}},
		{"a?", func(t *testing.T, e *Expr) {
			if e.Op != OpRepeat || e.Min != 0 || e.Max != 1 || !e.Greedy {
				t.Errorf("got %s", e)
			}
		}},
		{"a{3}", func(t *testing.T, e *Expr) {
			if e.Op != OpRepeat || e.Min != 3 || e.Max != 3 {
				t.Errorf("got %s", e)
			}
		}},
		{"a{3,}", func(t *testing.T, e *Expr) {
			if e.Op != OpRepeat || e.Min != 3 || e.Max != -1 {
				t.Errorf("got %s", e)
			}
		}},
		{"a{ 2 , 5 }", func(t *testing.T, e *Expr) {
			if e.Op != OpRepeat || e.Min != 2 || e.Max != 5 {
				t.Errorf("got %s", e)
			}
		}},
		{"a{2,5}?", func(t *testing.T, e *Expr) {
			if e.Op != OpRepeat || e.Min != 2 || e.Max != 5 || e.Greedy {
				t.Errorf("got %s", e)
			}
		}},
		{"(ab)*", func(t *testing.T, e *Expr) {
			if e.Op != OpRepeat || e.Subs[0].Op != OpCapture {
				t.Errorf("got %s", e)
			}
		}},
		{"[abc]", func(t *testing.T, e *Expr) {
			if e.Op != OpByteClass {
				t.Fatalf("got %s", e)
			}
			checkRanges(t, e.Class, []Range{{'a', 'c'}})
		}},
		{"[a-fk]", func(t *testing.T, e *Expr) {
			checkRanges(t, e.Class, []Range{{'a', 'f'}, {'k', 'k'}})
		}},
		{"[^a-z]", func(t *testing.T, e *Expr) {
			if e.Class.Contains('m') || !e.Class.Contains('A') {
				t.Errorf("got %v", e.Class.Ranges())
			}
		}},
		{"[]a]", func(t *testing.T, e *Expr) {
			// ']' directly after '[' is a literal member.
			checkRanges(t, e.Class, []Range{{']', ']'}, {'a', 'a'}})
		}},
		{"[^]]", func(t *testing.T, e *Expr) {
			if e.Class.Contains(']') || !e.Class.Contains('a') {
				t.Errorf("got %v", e.Class.Ranges())
			}
		}},
		{"[a-]", func(t *testing.T, e *Expr) {
			// '-' adjacent to ']' is a literal member.
			checkRanges(t, e.Class, []Range{{'-', '-'}, {'a', 'a'}})
		}},
		{`[\d]`, func(t *testing.T, e *Expr) {
			checkRanges(t, e.Class, []Range{{'0', '9'}})
		}},
		{`[\d-x]`, func(t *testing.T, e *Expr) {
			// '-' after a class template is a literal, not a range.
			checkRanges(t, e.Class, []Range{{'-', '-'}, {'0', '9'}, {'x', 'x'}})
		}},
		{`[\x41-\x43]`, func(t *testing.T, e *Expr) {
			checkRanges(t, e.Class, []Range{{'A', 'C'}})
		}},
		{`\d`, func(t *testing.T, e *Expr) {
			if e.Op != OpByteClass {
				t.Fatalf("got %s", e)
			}
			checkRanges(t, e.Class, []Range{{'0', '9'}})
		}},
		{`\b`, func(t *testing.T, e *Expr) {
			if e.Op != OpEmptyMatch || e.Assert != AssertWordBoundary {
				t.Errorf("got %s", e)
			}
		}},
		{`\B`, func(t *testing.T, e *Expr) {
			if e.Op != OpEmptyMatch || e.Assert != AssertNotWordBoundary {
				t.Errorf("got %s", e)
			}
		}},
		{`\n`, func(t *testing.T, e *Expr) {
			if e.Op != OpLiteral || e.Lit != '\n' {
				t.Errorf("got %s", e)
			}
		}},
		{`\.`, func(t *testing.T, e *Expr) {
			if e.Op != OpLiteral || e.Lit != '.' {
				t.Errorf("got %s", e)
			}
		}},
		{`\\`, func(t *testing.T, e *Expr) {
			if e.Op != OpLiteral || e.Lit != '\\' {
				t.Errorf("got %s", e)
			}
		}},
		{`\x41`, func(t *testing.T, e *Expr) {
			if e.Op != OpLiteral || e.Lit != 'A' {
				t.Errorf("got %s", e)
			}
		}},
		{`\x{7F}`, func(t *testing.T, e *Expr) {
			if e.Op != OpLiteral || e.Lit != 0x7F {
				t.Errorf("got %s", e)
			}
		}},
		{`\101`, func(t *testing.T, e *Expr) {
			if e.Op != OpLiteral || e.Lit != 'A' {
				t.Errorf("got %s", e)
			}
		}},
		{`\0`, func(t *testing.T, e *Expr) {
			if e.Op != OpLiteral || e.Lit != 0x00 {
				t.Errorf("got %s", e)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			tt.check(t, mustParse(t, tt.pattern))
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		pattern string
		kind    ParseErrorKind
	}{
		{"*", ErrMissingRepeatOperand},
		{"+a", ErrMissingRepeatOperand},
		{"a|*", ErrMissingRepeatOperand},
		{"(*)", ErrMissingRepeatOperand},
		{"(ab)(ab)**", ErrMissingRepeatOperand},
		{"{}", ErrMissingRepeatArgument},
		{"a{}", ErrMissingRepeatArgument},
		{"a{,5}", ErrMissingRepeatArgument},
		{"a{2,x}", ErrInvalidRepeatArgument},
		{"a{2x}", ErrInvalidRepeatArgument},
		{"|a", ErrEmptyAlternate},
		{"a||b", ErrEmptyAlternate},
		{"(|a)", ErrEmptyAlternate},
		{"(a|)", ErrEmptyAlternate},
		{"a|", ErrEmptyAlternate},
		{")", ErrUnopenedParentheses},
		{"ab)", ErrUnopenedParentheses},
		{"(a", ErrUnclosedParentheses},
		{"(a|b", ErrUnclosedParentheses},
		{"((a)", ErrUnclosedParentheses},
		{"()", ErrEmptyCaptureGroup},
		{"(?:)", ErrEmptyCaptureGroup},
		{"]", ErrUnmatchedByteClass},
		{"[z-a]", ErrUnmatchedByteClass},
		{`[a-\d]`, ErrUnmatchedByteClass},
		{"a{5,2}", ErrInvalidRepeatRange},
		{"a{5", ErrUnclosedRepeat},
		{"a{5,", ErrUnclosedRepeat},
		{"[abc", ErrUnclosedBrackets},
		{"[", ErrUnclosedBrackets},
		{"[]", ErrUnclosedBrackets},
		{"a{1001}", ErrExcessiveRepeatCount},
		{"a{1,999999999999}", ErrExcessiveRepeatCount},
		{`\`, ErrOpenEscapeCode},
		{`\x{41`, ErrUnclosedHexCharacterCode},
		{`\x{4g}`, ErrInvalidHexDigit},
		{`\xg`, ErrInvalidHexDigit},
		{`\x{100}`, ErrInvalidHexDigit},
		{`\8`, ErrInvalidOctalDigit},
		{`\k`, ErrUnrecognizedEscapeCode},
		{`[\b]`, ErrUnrecognizedEscapeCode},
		{"(?P<name>a)", ErrUnimplementedModifier},
		{"(?i)a", ErrUnimplementedModifier},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Parse(tt.pattern)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want %s", tt.pattern, tt.kind)
			}
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) = %T, want *Error", tt.pattern, err)
			}
			if perr.Kind != tt.kind {
				t.Errorf("Parse(%q) kind = %s, want %s", tt.pattern, perr.Kind, tt.kind)
			}
		})
	}
}

func TestParseMaxRepeatOption(t *testing.T) {
	if _, err := ParseWithOptions("a{50}", Options{MaxRepeat: 10}); err == nil {
		t.Error("a{50} with MaxRepeat 10 parsed")
	}
	if _, err := ParseWithOptions("a{50}", Options{MaxRepeat: 100}); err != nil {
		t.Errorf("a{50} with MaxRepeat 100: %v", err)
	}
	// The bound is inclusive: a count equal to it is accepted.
	if _, err := Parse("a{1000}"); err != nil {
		t.Errorf("a{1000} at default bound: %v", err)
	}
}

// TestParseNoPseudoNodes walks accepted trees checking that the internal
// group marker never leaks out of the parser.
func TestParseNoPseudoNodes(t *testing.T) {
	patterns := []string{
		"", "a", "abc", "(a)", "((a))", "(?:a(b))", "a|b", "(a|b)*c",
		`[Hh]ello [Ww]orld\s*[!]?`, `ab(\d+)`, `^.*\\.*$`, "a{2,4}b+c?",
	}
	var walk func(t *testing.T, e *Expr)
	walk = func(t *testing.T, e *Expr) {
		if e.Op == opPseudoLeftParen {
			t.Fatal("pseudo node in returned tree")
		}
		if e.Op == OpAlternate && len(e.Subs) < 2 {
			t.Fatalf("alternate with %d branches", len(e.Subs))
		}
		if e.Op == OpConcat && len(e.Subs) < 2 {
			t.Fatalf("concat with %d children", len(e.Subs))
		}
		for _, sub := range e.Subs {
			walk(t, sub)
		}
	}
	for _, pattern := range patterns {
		walk(t, mustParse(t, pattern))
	}
}

// TestDumpRoundTrip re-parses the canonical dump of accepted trees and
// requires an equal tree back.
func TestDumpRoundTrip(t *testing.T) {
	patterns := []string{
		"",
		"a",
		"abc",
		"a|b|c",
		"(a|b)c",
		"(?:ab)+",
		"a*b+?c??",
		"a{2}b{3,}c{4,7}",
		"[a-z0-9]",
		"[^a-z]",
		"[]a-]",
		`\d\w\s`,
		`\b(\w+)\B`,
		`^.*\\.*$`,
		`\x07\x{7F}`,
		`[Hh]ello [Ww]orld\s*[!]?`,
		`ab(\d+)`,
	}
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			tree := mustParse(t, pattern)
			dumped := Dump(tree)
			again, err := Parse(dumped)
			if err != nil {
				t.Fatalf("re-parse of %q (dump of %q): %v", dumped, pattern, err)
			}
			if !tree.Equal(again) {
				t.Errorf("round trip changed tree:\n pattern %q\n dump %q\n was  %s\n got  %s",
					pattern, dumped, tree, again)
			}
		})
	}
}
