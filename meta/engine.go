// Package meta orchestrates the regex execution pipeline: it owns the
// compiled program, the optional literal prefilter, and the per-search
// state the engines mutate.
package meta

import (
	"bytes"
	"sync"

	"github.com/coregx/rebyte/nfa"
	"github.com/coregx/rebyte/prefilter"
)

// Engine executes a compiled pattern.
//
// The program and prefilter are immutable after compilation. Per-search
// mutable state (capture slots, the backtracker's visited bitset, the
// Pike VM's thread lists) lives in a sync.Pool, so all search methods are
// safe for concurrent use on a single Engine.
type Engine struct {
	prog    *nfa.Program
	pf      prefilter.Prefilter
	pattern string
	config  Config

	statePool sync.Pool
}

// searchState bundles the mutable pieces of one in-flight search.
type searchState struct {
	exec  *nfa.Executor
	slots []int
}

// resetSlots readies the capture-slot vector: every slot unset.
func (s *searchState) resetSlots(n int) []int {
	if cap(s.slots) < n {
		s.slots = make([]int, n)
	}
	s.slots = s.slots[:n]
	for i := range s.slots {
		s.slots[i] = -1
	}
	return s.slots
}

func (e *Engine) getState() *searchState {
	return e.statePool.Get().(*searchState)
}

func (e *Engine) putState(s *searchState) {
	e.statePool.Put(s)
}

// Pattern returns the source pattern.
func (e *Engine) Pattern() string {
	return e.pattern
}

// NumCaptures returns the number of capture groups, the whole-match
// group included.
func (e *Engine) NumCaptures() int {
	return e.prog.NumCaptures()
}

// Prefilter returns the literal prefilter, or nil when none was built.
func (e *Engine) Prefilter() prefilter.Prefilter {
	return e.pf
}

// IsMatch reports whether the pattern matches a prefix of haystack
// (anchored entry).
func (e *Engine) IsMatch(haystack []byte) bool {
	s := e.getState()
	defer e.putState(s)

	slots := s.resetSlots(e.prog.NumSlots)
	slots, ok := s.exec.Exec(nfa.NewInput(haystack), e.prog.Start, slots)
	s.slots = slots
	return ok
}

// IsPartialMatch reports whether the pattern matches in haystack
// (unanchored entry). The unanchored entry advances only over non-newline
// bytes, so a match must start no later than the first '\n'.
func (e *Engine) IsPartialMatch(haystack []byte) bool {
	if e.pf != nil && len(haystack) >= prefilter.MinHaystackLen() {
		pos := e.pf.Find(haystack, 0)
		if pos < 0 {
			return false
		}
		// A complete candidate is a match only where the unanchored
		// entry can reach it.
		if e.pf.IsComplete() && bytes.IndexByte(haystack[:pos], '\n') < 0 {
			return true
		}
	}

	s := e.getState()
	defer e.putState(s)

	slots := s.resetSlots(e.prog.NumSlots)
	slots, ok := s.exec.Exec(nfa.NewInput(haystack), e.prog.FindStart, slots)
	s.slots = slots
	return ok
}

// Captures runs an unanchored search and returns a snapshot of the
// capture-slot vector on success. Slot pair (2k, 2k+1) holds the bounds
// of group k, or -1 when the group did not participate.
func (e *Engine) Captures(haystack []byte) ([]int, bool) {
	if e.pf != nil && len(haystack) >= prefilter.MinHaystackLen() {
		if e.pf.Find(haystack, 0) < 0 {
			return nil, false
		}
	}

	s := e.getState()
	defer e.putState(s)

	slots := s.resetSlots(e.prog.NumSlots)
	slots, ok := s.exec.Exec(nfa.NewInput(haystack), e.prog.FindStart, slots)
	s.slots = slots
	if !ok {
		return nil, false
	}
	out := make([]int, len(slots))
	copy(out, slots)
	return out, true
}
