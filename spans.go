// spans.go — source locations for canonical AST nodes and built values
//
// WHAT THIS MODULE DOES
// =====================
// Every canonical AST node carries a Span: the name of the source it came
// from plus 1-based start/end line and column coordinates. Spans are used
// only for diagnostics; they never take part in AST or value equality.
//
// Values built from AST nodes keep the span of the node that produced them
// where it is useful for reporting (application nodes, so the evaluator can
// point at the failing call). Synthesised values carry the zero Span.
//
// DEPENDENCIES ON OTHER FILES
// ===========================
//   - lexer.go records token coordinates; parser.go joins them into spans.
//   - errors.go renders caret snippets from a Span and the original source.
package grim

import "fmt"

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// Pos is a 1-based line/column coordinate. The zero Pos means "unknown".
type Pos struct {
	Line   int
	Column int
}

// Span is a half-open source interval [Start, End) inside Source.
type Span struct {
	Source string
	Start  Pos
	End    Pos
}

// IsZero reports whether the span carries no location.
func (s Span) IsZero() bool { return s.Start.Line == 0 }

// String renders "source:line:col" (or "line:col" for anonymous sources).
func (s Span) String() string {
	if s.IsZero() {
		return "<unknown>"
	}
	if s.Source == "" {
		return fmt.Sprintf("%d:%d", s.Start.Line, s.Start.Column)
	}
	return fmt.Sprintf("%s:%d:%d", s.Source, s.Start.Line, s.Start.Column)
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
//                                 PRIVATE
////////////////////////////////////////////////////////////////////////////////

// joinSpans covers both a and b; a must start first.
func joinSpans(a, b Span) Span {
	if a.IsZero() {
		return b
	}
	if b.IsZero() {
		return a
	}
	return Span{Source: a.Source, Start: a.Start, End: b.End}
}
