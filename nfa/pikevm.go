package nfa

import (
	"github.com/coregx/rebyte/internal/sparse"
)

// PikeVM is a breadth-first NFA simulator. It carries all live execution
// threads through the input in two generations, current and next, swapped
// at every byte, so worst-case work is O(program * input) regardless of
// the pattern.
//
// Each thread owns its capture-slot snapshot: Save copies before writing,
// so sibling threads never alias. Thread order encodes precedence: a
// split expands its primary branch's epsilon closure before its
// secondary, and the first thread to reach Match in a generation wins
// over everything queued after it.
type PikeVM struct {
	prog *Program

	clist []thread
	nlist []thread

	// seen deduplicates instruction pointers per generation. Without it,
	// epsilon cycles such as the loop compiled for (a?)* never terminate.
	seen *sparse.Set
}

// thread is one concurrent execution path: an instruction pointer plus an
// owned capture-slot snapshot.
type thread struct {
	pc    InstPtr
	slots []int
}

// NewPikeVM returns a Pike VM for the given program.
func NewPikeVM(prog *Program) *PikeVM {
	capacity := prog.Len()
	if capacity < 16 {
		capacity = 16
	}
	return &PikeVM{
		prog:  prog,
		clist: make([]thread, 0, capacity),
		nlist: make([]thread, 0, capacity),
		seen:  sparse.NewSet(uint32(prog.Len())),
	}
}

// Exec runs the program from start against the input, filling capture
// slots. It reports whether a match was found; slots is returned because
// a successful thread's snapshot may be wider than the caller's vector.
func (p *PikeVM) Exec(input *Input, start InstPtr, slots []int) ([]int, bool) {
	p.clist = p.clist[:0]
	p.nlist = p.nlist[:0]

	initial := make([]int, p.prog.NumSlots)
	for i := range initial {
		initial[i] = -1
	}

	p.seen.Clear()
	p.addThread(&p.clist, input, 0, thread{pc: start, slots: initial})

	matched := false
	var matchSlots []int

	for pos := 0; ; pos++ {
		if len(p.clist) == 0 {
			break
		}

		p.seen.Clear()
		p.nlist = p.nlist[:0]

		for _, t := range p.clist {
			inst := &p.prog.Insts[t.pc]
			if inst.Op == InstMatch {
				// Highest-priority match at this position. Threads
				// queued after t are lower priority, so the rest of
				// this generation is abandoned; threads already in
				// the next generation outrank t and may still
				// overwrite this result.
				matched = true
				matchSlots = t.slots
				break
			}
			if pos >= input.Len() {
				continue
			}
			c := input.At(pos)
			switch inst.Op {
			case InstChar:
				if c == inst.C {
					p.addThread(&p.nlist, input, pos+1, thread{pc: inst.Out, slots: t.slots})
				}
			case InstByteClass:
				if inst.Class.Contains(c) {
					p.addThread(&p.nlist, input, pos+1, thread{pc: inst.Out, slots: t.slots})
				}
			case InstAnyCharNotNL:
				if c != '\n' {
					p.addThread(&p.nlist, input, pos+1, thread{pc: inst.Out, slots: t.slots})
				}
			}
		}

		if pos >= input.Len() {
			break
		}
		p.clist, p.nlist = p.nlist, p.clist
	}

	if !matched {
		return slots, false
	}
	for i, v := range matchSlots {
		slots = setSlot(slots, i, v)
	}
	return slots, true
}

// addThread queues a thread, expanding zero-width instructions in place
// so the list holds only consuming instructions and Match. Expansion
// order preserves precedence: a split's primary closure is queued
// entirely before its secondary.
//
// pos is the position the generation will examine; assertions are
// evaluated there, which for the next generation is one past the byte
// just consumed.
func (p *PikeVM) addThread(list *[]thread, input *Input, pos int, t thread) {
	if p.seen.Contains(uint32(t.pc)) {
		return
	}
	p.seen.Insert(uint32(t.pc))

	inst := &p.prog.Insts[t.pc]
	switch inst.Op {
	case InstJump:
		p.addThread(list, input, pos, thread{pc: inst.Out, slots: t.slots})

	case InstSplit:
		p.addThread(list, input, pos, thread{pc: inst.Out, slots: t.slots})
		p.addThread(list, input, pos, thread{pc: inst.Other, slots: t.slots})

	case InstEmptyMatch:
		if input.AssertionAt(inst.Assert, pos) {
			p.addThread(list, input, pos, thread{pc: inst.Out, slots: t.slots})
		}

	case InstSave:
		ns := make([]int, len(t.slots))
		copy(ns, t.slots)
		ns = setSlot(ns, inst.Slot, pos)
		p.addThread(list, input, pos, thread{pc: inst.Out, slots: ns})

	default:
		*list = append(*list, t)
	}
}
