package nfa

import (
	"errors"
	"fmt"

	"github.com/coregx/rebyte/syntax"
)

// ErrProgramTooLarge indicates the pattern compiled to more instructions
// than the engine supports. Bounded repeats are compiled by copying their
// operand, so nested counted repeats multiply.
var ErrProgramTooLarge = errors.New("compiled program too large")

// maxInsts bounds the instruction vector.
const maxInsts = 1 << 22

// CompileError wraps a compilation failure with the offending pattern.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("nfa: compiling %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("nfa: compile failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// Compile translates an expression tree into a Program.
//
// The whole expression is wrapped in the implicit capture group 0: the
// program begins with Save(0), ends the body with Save(1) and Match, and
// is followed by the two-instruction unanchored-search prologue that
// FindStart points at.
func Compile(expr *syntax.Expr) (*Program, error) {
	c := &compiler{nextSlot: 2}

	save0 := c.emit(Inst{Op: InstSave, Slot: 0})
	body, err := c.compile(expr)
	if err != nil {
		return nil, err
	}
	c.insts[save0].Out = body.entry
	c.fillToNext(body.hole)
	save1 := c.emit(Inst{Op: InstSave, Slot: 1})
	c.insts[save1].Out = c.nextPC()
	c.emit(Inst{Op: InstMatch})

	// Unanchored prologue: try a match at the current position first,
	// otherwise consume one non-newline byte and loop.
	findStart := c.emit(Inst{Op: InstSplit, Out: 0})
	c.insts[findStart].Other = c.nextPC()
	c.emit(Inst{Op: InstAnyCharNotNL, Out: findStart})

	if len(c.insts) > maxInsts {
		return nil, ErrProgramTooLarge
	}
	return &Program{
		Insts:     c.insts,
		Start:     0,
		FindStart: findStart,
		NumSlots:  c.nextSlot,
	}, nil
}

// compiler builds the instruction vector with a hole-and-patch scheme:
// fragments are emitted with unresolved outgoing edges (holes) that are
// filled once their target instruction exists.
type compiler struct {
	insts    []Inst
	nextSlot int
}

// holeRef names a single unresolved edge: an instruction and which of its
// successor fields to patch.
type holeRef struct {
	pc    InstPtr
	other bool
}

// hole is the set of unresolved outgoing edges of a fragment. An empty
// hole means the fragment has no outgoing edge.
type hole struct {
	refs []holeRef
}

func oneHole(pc InstPtr, other bool) hole {
	return hole{refs: []holeRef{{pc: pc, other: other}}}
}

func mergeHoles(a, b hole) hole {
	return hole{refs: append(a.refs, b.refs...)}
}

// patch bundles a fragment's entry point with its unresolved exit.
type patch struct {
	entry InstPtr
	hole  hole
}

func (c *compiler) nextPC() InstPtr {
	return InstPtr(len(c.insts))
}

func (c *compiler) emit(in Inst) InstPtr {
	pc := c.nextPC()
	c.insts = append(c.insts, in)
	return pc
}

// fill resolves every edge in h to target.
func (c *compiler) fill(h hole, target InstPtr) {
	for _, r := range h.refs {
		if r.other {
			c.insts[r.pc].Other = target
		} else {
			c.insts[r.pc].Out = target
		}
	}
}

// fillToNext resolves h to the next instruction about to be appended.
func (c *compiler) fillToNext(h hole) {
	c.fill(h, c.nextPC())
}

func (c *compiler) compile(e *syntax.Expr) (patch, error) {
	if len(c.insts) > maxInsts {
		return patch{}, ErrProgramTooLarge
	}
	switch e.Op {
	case syntax.OpLiteral:
		pc := c.emit(Inst{Op: InstChar, C: e.Lit})
		return patch{entry: pc, hole: oneHole(pc, false)}, nil

	case syntax.OpAnyCharNotNL:
		pc := c.emit(Inst{Op: InstAnyCharNotNL})
		return patch{entry: pc, hole: oneHole(pc, false)}, nil

	case syntax.OpByteClass:
		pc := c.emit(Inst{Op: InstByteClass, Class: e.Class})
		return patch{entry: pc, hole: oneHole(pc, false)}, nil

	case syntax.OpEmptyMatch:
		pc := c.emit(Inst{Op: InstEmptyMatch, Assert: e.Assert})
		return patch{entry: pc, hole: oneHole(pc, false)}, nil

	case syntax.OpCapture:
		return c.compileCapture(e)

	case syntax.OpConcat:
		return c.compileConcat(e.Subs)

	case syntax.OpAlternate:
		return c.compileAlternate(e.Subs)

	case syntax.OpRepeat:
		return c.compileRepeat(e)
	}
	return patch{}, fmt.Errorf("nfa: unexpected expression op %s", e.Op)
}

func (c *compiler) compileCapture(e *syntax.Expr) (patch, error) {
	if !e.Capturing {
		return c.compile(e.Subs[0])
	}
	slot := c.nextSlot
	c.nextSlot += 2

	open := c.emit(Inst{Op: InstSave, Slot: slot})
	body, err := c.compile(e.Subs[0])
	if err != nil {
		return patch{}, err
	}
	c.insts[open].Out = body.entry
	c.fillToNext(body.hole)
	closing := c.emit(Inst{Op: InstSave, Slot: slot + 1})
	return patch{entry: open, hole: oneHole(closing, false)}, nil
}

func (c *compiler) compileConcat(subs []*syntax.Expr) (patch, error) {
	first, err := c.compile(subs[0])
	if err != nil {
		return patch{}, err
	}
	prev := first.hole
	for _, sub := range subs[1:] {
		p, err := c.compile(sub)
		if err != nil {
			return patch{}, err
		}
		c.fill(prev, p.entry)
		prev = p.hole
	}
	return patch{entry: first.entry, hole: prev}, nil
}

// compileAlternate serialises alternatives as a chain of splits. Each
// split's primary branch enters its alternative, so earlier alternatives
// have higher precedence.
func (c *compiler) compileAlternate(subs []*syntax.Expr) (patch, error) {
	entry := c.nextPC()
	var exits hole
	for _, sub := range subs[:len(subs)-1] {
		split := c.emit(Inst{Op: InstSplit})
		c.insts[split].Out = c.nextPC()
		p, err := c.compile(sub)
		if err != nil {
			return patch{}, err
		}
		exits = mergeHoles(exits, p.hole)
		c.insts[split].Other = c.nextPC()
	}
	last, err := c.compile(subs[len(subs)-1])
	if err != nil {
		return patch{}, err
	}
	exits = mergeHoles(exits, last.hole)
	return patch{entry: entry, hole: exits}, nil
}

func (c *compiler) compileRepeat(e *syntax.Expr) (patch, error) {
	sub := e.Subs[0]
	switch {
	case e.Min == 0 && e.Max < 0:
		return c.compileStar(sub, e.Greedy)
	case e.Min == 1 && e.Max < 0:
		return c.compilePlus(sub, e.Greedy)
	case e.Min == 0 && e.Max == 1:
		return c.compileQuestion(sub, e.Greedy)
	default:
		return c.compileCounted(sub, e.Min, e.Max, e.Greedy)
	}
}

// compileStar emits the (0, inf) loop. The greedy form makes the body the
// split's primary branch; the lazy form prefers the skip.
func (c *compiler) compileStar(sub *syntax.Expr, greedy bool) (patch, error) {
	entry := c.emit(Inst{Op: InstSplit})
	body, err := c.compile(sub)
	if err != nil {
		return patch{}, err
	}
	c.fillToNext(body.hole)
	c.emit(Inst{Op: InstJump, Out: entry})

	if greedy {
		c.insts[entry].Out = body.entry
		return patch{entry: entry, hole: oneHole(entry, true)}, nil
	}
	c.insts[entry].Other = body.entry
	return patch{entry: entry, hole: oneHole(entry, false)}, nil
}

// compilePlus emits the (1, inf) loop: body first, then a split that
// loops back.
func (c *compiler) compilePlus(sub *syntax.Expr, greedy bool) (patch, error) {
	body, err := c.compile(sub)
	if err != nil {
		return patch{}, err
	}
	c.fillToNext(body.hole)
	split := c.emit(Inst{Op: InstSplit})
	if greedy {
		c.insts[split].Out = body.entry
		return patch{entry: body.entry, hole: oneHole(split, true)}, nil
	}
	c.insts[split].Other = body.entry
	return patch{entry: body.entry, hole: oneHole(split, false)}, nil
}

// compileQuestion emits the (0, 1) form: a split whose unresolved edges
// are the skip branch and the body's exit.
func (c *compiler) compileQuestion(sub *syntax.Expr, greedy bool) (patch, error) {
	split := c.emit(Inst{Op: InstSplit})
	body, err := c.compile(sub)
	if err != nil {
		return patch{}, err
	}
	if greedy {
		c.insts[split].Out = body.entry
		return patch{entry: split, hole: mergeHoles(oneHole(split, true), body.hole)}, nil
	}
	c.insts[split].Other = body.entry
	return patch{entry: split, hole: mergeHoles(oneHole(split, false), body.hole)}, nil
}

// compileCounted emits {m,n} repeats by copying the operand: m chained
// mandatory copies, then either a star loop (n unbounded) or n-m optional
// copies.
func (c *compiler) compileCounted(sub *syntax.Expr, min, max int, greedy bool) (patch, error) {
	if min == 0 && max == 0 {
		// {0,0} consumes nothing.
		pc := c.emit(Inst{Op: InstEmptyMatch, Assert: syntax.AssertNone})
		return patch{entry: pc, hole: oneHole(pc, false)}, nil
	}

	var entry InstPtr
	var prev hole
	haveEntry := false
	link := func(p patch) {
		if !haveEntry {
			entry = p.entry
			haveEntry = true
		} else {
			c.fill(prev, p.entry)
		}
		prev = p.hole
	}

	for i := 0; i < min; i++ {
		p, err := c.compile(sub)
		if err != nil {
			return patch{}, err
		}
		link(p)
	}

	if max < 0 {
		star, err := c.compileStar(sub, greedy)
		if err != nil {
			return patch{}, err
		}
		link(star)
		return patch{entry: entry, hole: prev}, nil
	}

	for i := min; i < max; i++ {
		q, err := c.compileQuestion(sub, greedy)
		if err != nil {
			return patch{}, err
		}
		link(q)
	}
	return patch{entry: entry, hole: prev}, nil
}
