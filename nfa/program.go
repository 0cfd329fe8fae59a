// Package nfa compiles parsed regex expressions into NFA bytecode and
// executes it.
//
// A compiled Program is a flat vector of instructions with two entry
// points: an anchored one and an unanchored one that prepends a
// split/advance loop. Execution is handled by two interchangeable engines,
// a bounded backtracker with visited-state memoization and a Pike VM, with
// an Executor that picks between them by program and input size.
package nfa

import (
	"fmt"
	"strings"

	"github.com/coregx/rebyte/syntax"
)

// InstPtr is an index into a Program's instruction vector.
type InstPtr uint32

// InstOp identifies the kind of an instruction.
type InstOp uint8

const (
	// InstChar consumes one byte equal to the literal.
	InstChar InstOp = iota

	// InstEmptyMatch consumes nothing if its assertion holds.
	InstEmptyMatch

	// InstByteClass consumes one byte contained in its range set.
	InstByteClass

	// InstAnyCharNotNL consumes one byte that is not '\n'.
	InstAnyCharNotNL

	// InstMatch is the terminal success instruction.
	InstMatch

	// InstJump transfers control to Out unconditionally.
	InstJump

	// InstSplit forks execution: Out is the primary (higher priority)
	// successor, Other the secondary.
	InstSplit

	// InstSave records the current input position in a capture slot.
	InstSave
)

// String returns a human-readable name for the op.
func (op InstOp) String() string {
	switch op {
	case InstChar:
		return "Char"
	case InstEmptyMatch:
		return "EmptyMatch"
	case InstByteClass:
		return "ByteClass"
	case InstAnyCharNotNL:
		return "AnyCharNotNL"
	case InstMatch:
		return "Match"
	case InstJump:
		return "Jump"
	case InstSplit:
		return "Split"
	case InstSave:
		return "Save"
	default:
		return fmt.Sprintf("Unknown(%d)", op)
	}
}

// Inst is a single bytecode instruction. Every instruction except
// InstMatch has a primary successor Out; InstSplit additionally carries a
// secondary successor Other.
type Inst struct {
	Op    InstOp
	Out   InstPtr
	Other InstPtr

	// C is the literal byte for InstChar.
	C byte

	// Class is the byte set for InstByteClass. Ownership transfers from
	// the parsed tree into the program at compile time.
	Class *syntax.RangeSet

	// Assert is the predicate for InstEmptyMatch.
	Assert syntax.Assertion

	// Slot is the capture slot index for InstSave.
	Slot int
}

// String returns a human-readable representation of the instruction.
func (in *Inst) String() string {
	switch in.Op {
	case InstChar:
		return fmt.Sprintf("Char(%q) -> %d", in.C, in.Out)
	case InstEmptyMatch:
		return fmt.Sprintf("EmptyMatch(%s) -> %d", in.Assert, in.Out)
	case InstByteClass:
		return fmt.Sprintf("ByteClass(%d ranges) -> %d", in.Class.Len(), in.Out)
	case InstAnyCharNotNL:
		return fmt.Sprintf("AnyCharNotNL -> %d", in.Out)
	case InstMatch:
		return "Match"
	case InstJump:
		return fmt.Sprintf("Jump -> %d", in.Out)
	case InstSplit:
		return fmt.Sprintf("Split -> [%d, %d]", in.Out, in.Other)
	case InstSave:
		return fmt.Sprintf("Save(%d) -> %d", in.Slot, in.Out)
	default:
		return fmt.Sprintf("Unknown(%d)", in.Op)
	}
}

// Program is a compiled regex: a flat instruction vector plus two entry
// points.
//
// Start is the anchored entry. FindStart is the unanchored entry: a
// split/advance prologue appended after the main body that
// non-deterministically advances the cursor before branching into Start.
type Program struct {
	Insts     []Inst
	Start     InstPtr
	FindStart InstPtr

	// NumSlots is the number of capture slots the program writes.
	// Capture group k uses slots 2k and 2k+1; group 0 is the whole
	// match, so NumSlots is always at least 2.
	NumSlots int
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.Insts)
}

// NumCaptures returns the number of capture groups, the whole-match group
// included.
func (p *Program) NumCaptures() int {
	return p.NumSlots / 2
}

// String returns a listing of the program, for diagnostics.
func (p *Program) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Program{start: %d, findStart: %d, slots: %d}\n", p.Start, p.FindStart, p.NumSlots)
	for i := range p.Insts {
		fmt.Fprintf(&b, "%4d: %s\n", i, p.Insts[i].String())
	}
	return b.String()
}
