// ast.go — the canonical AST consumed by the module builder
//
// OVERVIEW
// --------
// The canonical AST is the only input format the builder accepts. It is
// produced outside the core (by the canonical parser in parser.go, or by any
// other front end) and is immutable once produced. There are exactly four
// node kinds:
//
//	AstStr     "text"                     string literal
//	AstTag     Name                       bare tag
//	AstApp     f(a, b)                    untagged application (f is any node)
//	AstTagged  Name(a, b)                 tagged application (dominant form)
//
// Every literal arrives as a tagged application of a maker tag to string
// nodes, e.g. the source text `12345` is AstTagged{Nat, [AstStr "12345"]}
// and `x` is AstTagged{Sym, [AstStr "x"]}.
//
// Each node carries a Span used only for diagnostics. AstEqual compares
// structure and ignores spans.
package grim

import (
	"strconv"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// Ast is a canonical AST node.
type Ast interface {
	// Span is the source location of the node.
	Span() Span
	// String renders the node in canonical surface syntax.
	String() string
	astNode()
}

// AstStr is a string literal.
type AstStr struct {
	Text string
	Loc  Span
}

// AstTag is a bare tag name.
type AstTag struct {
	Name string
	Loc  Span
}

// AstApp applies an arbitrary function node to arguments.
type AstApp struct {
	Func Ast
	Args []Ast
	Loc  Span
}

// AstTagged applies a tag to arguments.
type AstTagged struct {
	Tag  *AstTag
	Args []Ast
	Loc  Span
}

func (n *AstStr) Span() Span    { return n.Loc }
func (n *AstTag) Span() Span    { return n.Loc }
func (n *AstApp) Span() Span    { return n.Loc }
func (n *AstTagged) Span() Span { return n.Loc }

func (*AstStr) astNode()    {}
func (*AstTag) astNode()    {}
func (*AstApp) astNode()    {}
func (*AstTagged) astNode() {}

func (n *AstStr) String() string { return strconv.Quote(n.Text) }
func (n *AstTag) String() string { return n.Name }
func (n *AstApp) String() string {
	return n.Func.String() + "(" + joinAst(n.Args) + ")"
}
func (n *AstTagged) String() string {
	return n.Tag.Name + "(" + joinAst(n.Args) + ")"
}

// Tagged is a convenience constructor for tagged applications without spans.
func Tagged(tag string, args ...Ast) *AstTagged {
	return &AstTagged{Tag: &AstTag{Name: tag}, Args: args}
}

// AstEqual reports whether a and b have the same shape and payload,
// ignoring spans.
func AstEqual(a, b Ast) bool {
	switch x := a.(type) {
	case *AstStr:
		y, ok := b.(*AstStr)
		return ok && x.Text == y.Text
	case *AstTag:
		y, ok := b.(*AstTag)
		return ok && x.Name == y.Name
	case *AstApp:
		y, ok := b.(*AstApp)
		return ok && AstEqual(x.Func, y.Func) && astListEqual(x.Args, y.Args)
	case *AstTagged:
		y, ok := b.(*AstTagged)
		return ok && x.Tag.Name == y.Tag.Name && astListEqual(x.Args, y.Args)
	}
	return false
}

//// END_OF_PUBLIC

func astListEqual(xs, ys []Ast) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !AstEqual(xs[i], ys[i]) {
			return false
		}
	}
	return true
}

func joinAst(xs []Ast) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = x.String()
	}
	return strings.Join(parts, ", ")
}
