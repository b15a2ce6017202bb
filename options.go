package grim

import (
	"io"
	"log/slog"

	"golang.org/x/text/language"
)

// DefaultMaxDepth bounds nested applications during evaluation.
const DefaultMaxDepth = 10000

// Option configures a Module or an Interpreter.
type Option func(*config)

type config struct {
	logger    *slog.Logger
	precision uint32
	lang      language.Tag
	boot      bool
	maxDepth  int
}

func defaultConfig() config {
	return config{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		lang:     language.Und,
		boot:     true,
		maxDepth: DefaultMaxDepth,
	}
}

func applyOptions(opts []Option) config {
	c := defaultConfig()
	for _, o := range opts {
		o(&c)
	}
	return c
}

// WithLogger routes registration and evaluation traces to l. Traces are
// emitted at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDecimalPrecision sets the number of significant digits used by
// Decimal division and exponentiation (default 34).
func WithDecimalPrecision(digits uint32) Option {
	return func(c *config) { c.precision = digits }
}

// WithCollationLanguage selects the locale used by the Str comparators
// (default: root collation).
func WithCollationLanguage(tag language.Tag) Option {
	return func(c *config) { c.lang = tag }
}

// WithoutBoot yields a module with the core makers only: no operators, no
// casts and no boot definitions.
func WithoutBoot() Option {
	return func(c *config) { c.boot = false }
}

// WithMaxDepth bounds the nesting of applications during evaluation; deeper
// evaluations fail with an *EvalError instead of exhausting the stack. A
// non-positive depth keeps the default.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}
