package nfa

// Executor runs a compiled program with whichever engine fits: the
// backtracker when the (pc, pos) cross-product fits its visited bitset,
// the Pike VM otherwise.
//
// Both engines return the same boolean and, on success, the same capture
// slot contents modulo slots no surviving path assigned. The backtracker
// wins on small inputs for constant-factor reasons; the Pike VM bounds
// pathological programs to linear work in the input.
//
// An Executor owns per-search mutable state and must not be shared
// between goroutines.
type Executor struct {
	prog *Program
	bt   *BackTracker
	vm   *PikeVM
}

// NewExecutor returns an executor for the given program.
func NewExecutor(prog *Program) *Executor {
	return &Executor{
		prog: prog,
		bt:   NewBackTracker(prog),
		vm:   NewPikeVM(prog),
	}
}

// Program returns the compiled program.
func (e *Executor) Program() *Program {
	return e.prog
}

// Exec runs the program from start against input, filling slots. Unset
// slots must hold -1 on entry.
func (e *Executor) Exec(input *Input, start InstPtr, slots []int) ([]int, bool) {
	if e.bt.CanHandle(input.Len()) {
		return e.bt.Exec(input, start, slots)
	}
	return e.vm.Exec(input, start, slots)
}
