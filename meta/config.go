package meta

import "github.com/coregx/rebyte/literal"

// Config tunes compilation of an Engine.
type Config struct {
	// MaxRepeat bounds both sides of any {m,n} repetition at parse
	// time. Zero means the parser default of 1000.
	MaxRepeat int

	// EnablePrefilter controls literal extraction and prefiltering for
	// unanchored searches.
	EnablePrefilter bool

	// MaxLiterals, MaxLiteralLen, and MaxClassSize bound literal
	// extraction; zero values take the extraction defaults.
	MaxLiterals   int
	MaxLiteralLen int
	MaxClassSize  int
}

// DefaultConfig returns the configuration used by plain Compile.
func DefaultConfig() Config {
	lit := literal.DefaultConfig()
	return Config{
		EnablePrefilter: true,
		MaxLiterals:     lit.MaxLiterals,
		MaxLiteralLen:   lit.MaxLiteralLen,
		MaxClassSize:    lit.MaxClassSize,
	}
}

func (c Config) literalConfig() literal.ExtractorConfig {
	def := literal.DefaultConfig()
	cfg := literal.ExtractorConfig{
		MaxLiterals:   c.MaxLiterals,
		MaxLiteralLen: c.MaxLiteralLen,
		MaxClassSize:  c.MaxClassSize,
	}
	if cfg.MaxLiterals == 0 {
		cfg.MaxLiterals = def.MaxLiterals
	}
	if cfg.MaxLiteralLen == 0 {
		cfg.MaxLiteralLen = def.MaxLiteralLen
	}
	if cfg.MaxClassSize == 0 {
		cfg.MaxClassSize = def.MaxClassSize
	}
	return cfg
}
