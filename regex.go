// Package rebyte is a byte-oriented regular expression engine.
//
// A pattern is compiled through a parse -> compile -> execute pipeline:
// the syntax package turns the source into an expression tree, the nfa
// package compiles the tree into NFA bytecode and executes it with either
// a bounded backtracker or a Pike VM, and the meta package orchestrates
// engine selection and literal prefiltering.
//
// The engine operates on bytes, not Unicode scalars. Anchored matching
// tests a prefix of the input; partial matching finds the pattern at any
// start position up to the first newline:
//
//	re, err := rebyte.Compile(`ab(\d+)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	re.PartialMatch([]byte("xxxxab0123a")) // true
//
//	caps := re.Captures([]byte("xxxxab0123a"))
//	caps.Slice(0) // "ab0123"
//	caps.Slice(1) // "0123"
package rebyte

import (
	"github.com/coregx/rebyte/meta"
)

// Regex is a compiled regular expression.
//
// A Regex is safe for concurrent use by multiple goroutines: per-search
// state is pooled internally.
type Regex struct {
	engine  *meta.Engine
	pattern string
}

// Compile compiles a pattern.
//
// On failure the error is a *syntax.Error carrying the position and kind
// of the first problem found, or an *nfa.CompileError when the parsed
// pattern cannot be compiled (for example ErrProgramTooLarge).
func Compile(pattern string) (*Regex, error) {
	engine, err := meta.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Regex{engine: engine, pattern: pattern}, nil
}

// CompileWithConfig compiles a pattern with custom configuration.
func CompileWithConfig(pattern string, config meta.Config) (*Regex, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}
	return &Regex{engine: engine, pattern: pattern}, nil
}

// MustCompile compiles a pattern and panics if it fails. Useful for
// patterns known to be valid at program start.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("rebyte: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// DefaultConfig returns the configuration used by plain Compile, for
// customisation with CompileWithConfig.
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// Match reports whether the pattern matches a prefix of b.
func (r *Regex) Match(b []byte) bool {
	return r.engine.IsMatch(b)
}

// MatchString reports whether the pattern matches a prefix of s.
func (r *Regex) MatchString(s string) bool {
	return r.Match([]byte(s))
}

// PartialMatch reports whether the pattern matches in b. The unanchored
// search advances only over non-newline bytes, so a match must start no
// later than the first '\n' in b.
func (r *Regex) PartialMatch(b []byte) bool {
	return r.engine.IsPartialMatch(b)
}

// PartialMatchString is PartialMatch for a string input.
func (r *Regex) PartialMatchString(s string) bool {
	return r.PartialMatch([]byte(s))
}

// Captures runs an unanchored search and returns the capture groups of
// the first match, or nil when there is no match.
//
// The result borrows b: slices returned by Captures.Slice alias the
// input, so b must stay alive and unmodified while the result is used.
func (r *Regex) Captures(b []byte) *Captures {
	slots, ok := r.engine.Captures(b)
	if !ok {
		return nil
	}
	return &Captures{input: b, slots: slots}
}

// CapturesString is Captures for a string input.
func (r *Regex) CapturesString(s string) *Captures {
	return r.Captures([]byte(s))
}

// NumCaptures returns the number of capture groups, the whole-match
// group included.
func (r *Regex) NumCaptures() int {
	return r.engine.NumCaptures()
}

// String returns the source pattern.
func (r *Regex) String() string {
	return r.pattern
}

// Captures is the capture-group snapshot of one successful match.
// Group k occupies slot pair (2k, 2k+1); group 0 is the whole match.
type Captures struct {
	input []byte
	slots []int
}

// Len returns the number of capture groups, the whole-match group
// included.
func (c *Captures) Len() int {
	return len(c.slots) / 2
}

// Bounds returns the byte bounds of group k and whether the group
// participated in the match.
func (c *Captures) Bounds(k int) (lo, hi int, ok bool) {
	if k < 0 || 2*k+1 >= len(c.slots) {
		return 0, 0, false
	}
	lo, hi = c.slots[2*k], c.slots[2*k+1]
	if lo < 0 || hi < 0 {
		return 0, 0, false
	}
	return lo, hi, true
}

// Slice returns the input bytes captured by group k, or nil when the
// group did not participate. The slice aliases the original input.
func (c *Captures) Slice(k int) []byte {
	lo, hi, ok := c.Bounds(k)
	if !ok {
		return nil
	}
	return c.input[lo:hi]
}

// SliceString returns Slice(k) as a string.
func (c *Captures) SliceString(k int) string {
	return string(c.Slice(k))
}
