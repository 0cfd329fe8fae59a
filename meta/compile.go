package meta

import (
	"github.com/coregx/rebyte/literal"
	"github.com/coregx/rebyte/nfa"
	"github.com/coregx/rebyte/prefilter"
	"github.com/coregx/rebyte/syntax"
)

// Compile builds an Engine for the pattern with default configuration.
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig runs the full pipeline: parse the pattern, compile
// the tree to bytecode, extract literal prefixes, and build a prefilter
// when the literals allow one.
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	expr, err := syntax.ParseWithOptions(pattern, syntax.Options{MaxRepeat: config.MaxRepeat})
	if err != nil {
		return nil, err
	}

	prog, err := nfa.Compile(expr)
	if err != nil {
		return nil, &nfa.CompileError{Pattern: pattern, Err: err}
	}

	var pf prefilter.Prefilter
	if config.EnablePrefilter {
		seq := literal.New(config.literalConfig()).ExtractPrefixes(expr)
		pf = prefilter.FromSeq(seq)
	}

	e := &Engine{
		prog:    prog,
		pf:      pf,
		pattern: pattern,
		config:  config,
	}
	e.statePool.New = func() any {
		return &searchState{exec: nfa.NewExecutor(prog)}
	}
	return e, nil
}
