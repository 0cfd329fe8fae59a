// Package literal extracts literal prefixes from parsed regex
// expressions.
//
// Every byte string a pattern can match starts with one of the extracted
// prefixes, which makes them usable as a prefilter: a haystack containing
// none of the prefixes cannot contain a match. When extraction consumes
// the whole pattern exactly, a prefix hit is itself a match.
package literal

import (
	"bytes"
	"sort"

	"github.com/coregx/rebyte/syntax"
)

// ExtractorConfig bounds extraction so pathological patterns cannot blow
// up the literal set.
type ExtractorConfig struct {
	// MaxLiterals caps the number of extracted prefixes.
	MaxLiterals int

	// MaxLiteralLen caps the length of each prefix.
	MaxLiteralLen int

	// MaxClassSize caps the byte classes expanded by cross product.
	MaxClassSize int
}

// DefaultConfig returns the extraction bounds used by the engine.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 32,
		MaxClassSize:  10,
	}
}

// Seq is a set of literal prefixes. Exact means the prefixes cover the
// pattern completely: a haystack position matching a prefix is a match of
// the whole pattern.
type Seq struct {
	lits  [][]byte
	exact bool
}

// Len returns the number of prefixes.
func (s *Seq) Len() int {
	return len(s.lits)
}

// Get returns the i'th prefix.
func (s *Seq) Get(i int) []byte {
	return s.lits[i]
}

// IsEmpty reports whether no usable prefixes were extracted.
func (s *Seq) IsEmpty() bool {
	return len(s.lits) == 0
}

// IsExact reports whether the prefixes cover the whole pattern.
func (s *Seq) IsExact() bool {
	return s.exact
}

// MinLen returns the length of the shortest prefix, or 0 when empty.
func (s *Seq) MinLen() int {
	if len(s.lits) == 0 {
		return 0
	}
	min := len(s.lits[0])
	for _, l := range s.lits[1:] {
		if len(l) < min {
			min = len(l)
		}
	}
	return min
}

// Extractor walks expression trees and produces prefix sequences.
type Extractor struct {
	cfg ExtractorConfig
}

// New returns an extractor with the given bounds.
func New(cfg ExtractorConfig) *Extractor {
	return &Extractor{cfg: cfg}
}

// walkState is the set of prefixes accumulated so far. Once sealed, no
// prefix is extended further and the result is inexact.
type walkState struct {
	lits   [][]byte
	sealed bool
	exact  bool
}

// ExtractPrefixes returns the literal prefixes of expr. The result is
// empty when the pattern can start with arbitrary bytes (for example a
// leading unbounded repeat), in which case no prefilter is possible.
func (e *Extractor) ExtractPrefixes(expr *syntax.Expr) *Seq {
	st := walkState{lits: [][]byte{nil}, exact: true}
	st = e.walk(st, expr)

	// A nil/empty prefix admits every haystack position; the whole set
	// is then useless.
	for _, l := range st.lits {
		if len(l) == 0 {
			return &Seq{}
		}
	}

	lits := dedup(st.lits)
	return &Seq{lits: lits, exact: st.exact}
}

func (e *Extractor) walk(st walkState, expr *syntax.Expr) walkState {
	if st.sealed {
		// A node after sealing is unrepresented in the prefixes.
		st.exact = false
		return st
	}
	switch expr.Op {
	case syntax.OpLiteral:
		return e.extend(st, []byte{expr.Lit})

	case syntax.OpByteClass:
		if expr.Class.CountBytes() > e.cfg.MaxClassSize {
			return seal(st)
		}
		var alts [][]byte
		for _, r := range expr.Class.Ranges() {
			for b := int(r.Min); b <= int(r.Max); b++ {
				alts = append(alts, []byte{byte(b)})
			}
		}
		return e.cross(st, alts)

	case syntax.OpAnyCharNotNL:
		return seal(st)

	case syntax.OpEmptyMatch:
		// Zero width: prefixes stay valid, but the set no longer
		// describes the pattern exactly.
		st.exact = false
		return st

	case syntax.OpCapture:
		return e.walk(st, expr.Subs[0])

	case syntax.OpConcat:
		for i, sub := range expr.Subs {
			st = e.walk(st, sub)
			if st.sealed {
				if i < len(expr.Subs)-1 {
					// The remaining nodes are unrepresented.
					st.exact = false
				}
				return st
			}
		}
		return st

	case syntax.OpAlternate:
		var union [][]byte
		exact := st.exact
		for _, sub := range expr.Subs {
			branch := e.walk(walkState{lits: cloneLits(st.lits), exact: st.exact}, sub)
			if branch.sealed {
				// One open-ended branch poisons the whole
				// alternation tail.
				exact = false
			}
			exact = exact && branch.exact
			union = append(union, branch.lits...)
		}
		if len(union) > e.cfg.MaxLiterals {
			return seal(st)
		}
		// Further concatenation after an alternation would have to
		// extend every branch; sealing keeps the union sound.
		return walkState{lits: union, sealed: true, exact: exact}

	case syntax.OpRepeat:
		if expr.Min == 0 {
			return seal(st)
		}
		st = e.walk(st, expr.Subs[0])
		if expr.Min == 1 && expr.Max == 1 {
			return st
		}
		return seal(st)
	}
	return seal(st)
}

// extend appends suffix to every prefix, sealing at MaxLiteralLen.
func (e *Extractor) extend(st walkState, suffix []byte) walkState {
	for i, l := range st.lits {
		if len(l)+len(suffix) > e.cfg.MaxLiteralLen {
			return seal(st)
		}
		st.lits[i] = append(l, suffix...)
	}
	return st
}

// cross extends every prefix with every alternative byte.
func (e *Extractor) cross(st walkState, alts [][]byte) walkState {
	if len(st.lits)*len(alts) > e.cfg.MaxLiterals {
		return seal(st)
	}
	out := make([][]byte, 0, len(st.lits)*len(alts))
	for _, l := range st.lits {
		if len(l)+1 > e.cfg.MaxLiteralLen {
			return seal(st)
		}
		for _, a := range alts {
			nl := make([]byte, 0, len(l)+len(a))
			nl = append(nl, l...)
			nl = append(nl, a...)
			out = append(out, nl)
		}
	}
	st.lits = out
	return st
}

func seal(st walkState) walkState {
	st.sealed = true
	st.exact = false
	return st
}

func cloneLits(lits [][]byte) [][]byte {
	out := make([][]byte, len(lits))
	for i, l := range lits {
		out[i] = append([]byte(nil), l...)
	}
	return out
}

// dedup sorts and removes duplicate prefixes.
func dedup(lits [][]byte) [][]byte {
	sort.Slice(lits, func(i, j int) bool {
		return bytes.Compare(lits[i], lits[j]) < 0
	})
	out := lits[:0]
	for i, l := range lits {
		if i == 0 || !bytes.Equal(l, lits[i-1]) {
			out = append(out, l)
		}
	}
	return out
}
