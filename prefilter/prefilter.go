// Package prefilter provides fast candidate filtering for unanchored
// regex search using extracted literal prefixes.
//
// A prefilter scans the haystack for literals that every match must start
// with. If no literal occurs, the haystack cannot match and the engines
// are never run. The builder picks the cheapest strategy for the literal
// set:
//   - one single-byte literal: memchr (bytes.IndexByte)
//   - one literal: memmem (bytes.Index)
//   - several literals: an Aho-Corasick automaton
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/rebyte/literal"
)

// Prefilter finds candidate match positions ahead of the full engines.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start,
	// or -1. A candidate is a position where one of the prefilter
	// literals occurs; unless IsComplete reports true the caller must
	// verify it with a real engine.
	Find(haystack []byte, start int) int

	// IsComplete reports whether a candidate is itself a match of the
	// whole pattern, letting boolean searches skip verification.
	IsComplete() bool

	// LiteralLen returns the matched literal's length when IsComplete
	// holds and all literals share one length, else 0.
	LiteralLen() int

	// HeapBytes returns the heap memory retained by the prefilter, for
	// profiling.
	HeapBytes() int
}

// FromSeq builds the best prefilter for the extracted literal sequence.
// It returns nil when the sequence is empty or a prefilter cannot be
// constructed; the caller then runs the engines unfiltered.
func FromSeq(seq *literal.Seq) Prefilter {
	if seq == nil || seq.IsEmpty() {
		return nil
	}
	complete := seq.IsExact()

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit) == 1 {
			return &memchrPrefilter{needle: lit[0], complete: complete}
		}
		return &memmemPrefilter{needle: lit, complete: complete}
	}

	builder := ahocorasick.NewBuilder()
	uniform := len(seq.Get(0))
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		if len(lit) != uniform {
			uniform = 0
		}
		builder.AddPattern(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	heap := 0
	for i := 0; i < seq.Len(); i++ {
		heap += len(seq.Get(i))
	}
	return &ahoPrefilter{auto: auto, complete: complete, uniformLen: uniform, heapBytes: heap}
}

// memchrPrefilter searches for a single byte.
type memchrPrefilter struct {
	needle   byte
	complete bool
}

func (m *memchrPrefilter) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	i := bytes.IndexByte(haystack[start:], m.needle)
	if i < 0 {
		return -1
	}
	return start + i
}

func (m *memchrPrefilter) IsComplete() bool {
	return m.complete
}

func (m *memchrPrefilter) LiteralLen() int {
	if m.complete {
		return 1
	}
	return 0
}

func (m *memchrPrefilter) HeapBytes() int {
	return 0
}

// memmemPrefilter searches for a single substring.
type memmemPrefilter struct {
	needle   []byte
	complete bool
}

func (m *memmemPrefilter) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	i := bytes.Index(haystack[start:], m.needle)
	if i < 0 {
		return -1
	}
	return start + i
}

func (m *memmemPrefilter) IsComplete() bool {
	return m.complete
}

func (m *memmemPrefilter) LiteralLen() int {
	if m.complete {
		return len(m.needle)
	}
	return 0
}

func (m *memmemPrefilter) HeapBytes() int {
	return len(m.needle)
}

// ahoPrefilter searches for any of several literals with an Aho-Corasick
// automaton.
type ahoPrefilter struct {
	auto     *ahocorasick.Automaton
	complete bool

	// uniformLen is the shared literal length, or 0 when lengths
	// differ.
	uniformLen int

	// heapBytes approximates retained memory by the summed pattern
	// lengths; the automaton does not expose its table sizes.
	heapBytes int
}

func (a *ahoPrefilter) Find(haystack []byte, start int) int {
	if start > len(haystack) {
		return -1
	}
	m := a.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

func (a *ahoPrefilter) IsComplete() bool {
	return a.complete
}

func (a *ahoPrefilter) LiteralLen() int {
	if a.complete {
		return a.uniformLen
	}
	return 0
}

func (a *ahoPrefilter) HeapBytes() int {
	return a.heapBytes
}
