// errors.go: control-level failures and caret-snippet rendering
//
// What this file does
// -------------------
// Grim keeps two failure channels apart. Data-level failures are ordinary
// *Error values (value.go) returned by makers and operator implementations.
// Control-level failures are Go errors, defined here:
//
//   - *Diagnostic   lexer/parser failures (kinds lex, parse, incomplete)
//   - *ConfigError  registry misuse: duplicate tag role, short signature,
//     malformed boot definition
//   - *BuildError   construction errors: empty tuple, duplicate parameters
//   - *EvalError    evaluator failures: unbound symbol, arity mismatch,
//     non-callable application target
//
// Control-level errors are created with github.com/pkg/errors so that `%+v`
// prints the stack of the failing registration or evaluation. Use errors.As
// to recover the concrete type.
//
// `WrapErrorWithName` turns any of them into a Python-style snippet with a
// caret under the offending column when a location is known:
//
//	RUNTIME ERROR in <main> at 1:1: unbound symbol: y
//
//	   1 | Add(y, 1)
//	     | ^
//
// The snippet includes up to one line of context before and after the
// error. Other errors are returned unchanged.
package grim

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

/* ===========================
   PUBLIC API
   =========================== */

// DiagKind classifies lexer/parser diagnostics.
type DiagKind int

const (
	DiagLex DiagKind = iota
	DiagParse
	// DiagIncomplete is reported in interactive mode when input ends inside
	// an unfinished construct; the REPL keeps reading lines.
	DiagIncomplete
)

// Diagnostic is a lexer or parser failure.
type Diagnostic struct {
	Kind DiagKind
	Msg  string
	Span Span
}

func (e *Diagnostic) Error() string {
	return fmt.Sprintf("%s at %d:%d: %s", e.header(), e.Span.Start.Line, e.Span.Start.Column, e.Msg)
}

func (e *Diagnostic) header() string {
	if e.Kind == DiagLex {
		return "LEXICAL ERROR"
	}
	return "PARSE ERROR"
}

// IsIncomplete reports whether err is an interactive-mode "need more input"
// diagnostic.
func IsIncomplete(err error) bool {
	var d *Diagnostic
	return errors.As(err, &d) && d.Kind == DiagIncomplete
}

// ConfigError reports a registry misuse. It is fatal for the module that
// raised it.
type ConfigError struct {
	Msg  string
	Span Span
}

func (e *ConfigError) Error() string { return "CONFIG ERROR: " + e.Msg }

// BuildError reports a value that cannot be constructed at all.
type BuildError struct {
	Msg  string
	Span Span
}

func (e *BuildError) Error() string { return "BUILD ERROR: " + e.Msg }

// EvalError reports an evaluator failure. Expr is the expression being
// reduced when the failure happened.
type EvalError struct {
	Msg  string
	Span Span
	Expr Value
}

func (e *EvalError) Error() string {
	if e.Span.IsZero() {
		return "RUNTIME ERROR: " + e.Msg
	}
	return fmt.Sprintf("RUNTIME ERROR at %d:%d: %s", e.Span.Start.Line, e.Span.Start.Column, e.Msg)
}

// WrapErrorWithSource is WrapErrorWithName without a source label.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName returns an error whose message is a caret-annotated
// snippet of src when err (or its cause) carries a location. Otherwise err
// is returned unchanged.
func WrapErrorWithName(err error, srcName string, src string) error {
	if err == nil {
		return nil
	}
	var (
		d  *Diagnostic
		ce *ConfigError
		be *BuildError
		ee *EvalError
	)
	switch {
	case errors.As(err, &d):
		return snippetError(err, src, d.header(), srcName, d.Span, d.Msg)
	case errors.As(err, &ee) && !ee.Span.IsZero():
		return snippetError(err, src, "RUNTIME ERROR", srcName, ee.Span, ee.Msg)
	case errors.As(err, &be) && !be.Span.IsZero():
		return snippetError(err, src, "BUILD ERROR", srcName, be.Span, be.Msg)
	case errors.As(err, &ce) && !ce.Span.IsZero():
		return snippetError(err, src, "CONFIG ERROR", srcName, ce.Span, ce.Msg)
	default:
		return err
	}
}

//// END_OF_PUBLIC

/* ===========================
   PRIVATE: constructors & rendering
   =========================== */

func configErrorf(sp Span, format string, args ...any) error {
	return errors.WithStack(&ConfigError{Msg: fmt.Sprintf(format, args...), Span: sp})
}

func buildErrorf(sp Span, format string, args ...any) error {
	return errors.WithStack(&BuildError{Msg: fmt.Sprintf(format, args...), Span: sp})
}

func evalErrorf(expr Value, format string, args ...any) error {
	return errors.WithStack(&EvalError{Msg: fmt.Sprintf(format, args...), Span: spanOf(expr), Expr: expr})
}

// withSpan fills in a missing location on a build, config or eval error.
func withSpan(err error, sp Span) error {
	var ee *EvalError
	if errors.As(err, &ee) && ee.Span.IsZero() {
		ee.Span = sp
	}
	var be *BuildError
	if errors.As(err, &be) && be.Span.IsZero() {
		be.Span = sp
	}
	var ce *ConfigError
	if errors.As(err, &ce) && ce.Span.IsZero() {
		ce.Span = sp
	}
	return err
}

// snippetError keeps the original error reachable through errors.Cause and
// errors.As while presenting the rendered snippet as its message.
type snippetErr struct {
	msg   string
	cause error
}

func (e *snippetErr) Error() string { return e.msg }
func (e *snippetErr) Cause() error  { return e.cause }
func (e *snippetErr) Unwrap() error { return e.cause }

func snippetError(cause error, src, header, name string, sp Span, msg string) error {
	return &snippetErr{
		msg:   prettyErrorStringLabeled(src, header, name, sp.Start.Line, sp.Start.Column, msg),
		cause: cause,
	}
}

// prettyErrorStringLabeled builds a Python-like snippet with a header and a
// caret. It shows at most one previous and one next line when available.
// Coordinates are 1-based and clamped to the source bounds.
func prettyErrorStringLabeled(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
