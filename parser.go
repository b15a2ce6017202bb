// parser.go — canonical-grammar parser producing canonical AST nodes
//
// Grammar (whitespace insignificant, '#' starts a line comment):
//
//	expr    := primary call*
//	call    := CLROUND [expr ("," expr)* [","]] ")"
//	primary := STRING                             AstStr
//	         | NATURAL | INTEGER | DECIMAL        Nat("12") | Int("-12") | Dec("1.5")
//	         | BOOLEAN                            Bool("true")
//	         | UPPER                              AstTag
//	         | LOWER                              Sym("x")
//	         | "[" [expr ("," expr)* [","]] "]"   List(...)
//	         | "(" expr ")"                       grouping
//	         | "(" expr "," [expr ...] ")"        Tuple(...)
//	         | "{" [expr ":" expr ("," ...)*] "}" Map(Tuple(k, v)...)
//
// A call is a "(" written directly after an operand (see CLROUND in
// lexer.go). Calling a bare tag produces AstTagged; calling anything else
// produces the untagged AstApp.
//
// In interactive mode a construct left open at end of input yields a
// DiagIncomplete diagnostic instead of a parse error so the REPL can ask for
// more lines.
package grim

import (
	"github.com/pkg/errors"
)

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// ParseCanonical parses exactly one expression.
func ParseCanonical(src string) (Ast, error) {
	return ParseCanonicalNamed("", src)
}

// ParseCanonicalNamed is ParseCanonical with a source name for spans.
func ParseCanonicalNamed(name, src string) (Ast, error) {
	p, err := newParser(NewLexer(name, src), name, false)
	if err != nil {
		return nil, err
	}
	return p.single()
}

// ParseCanonicalInteractive parses one expression in REPL-friendly mode.
// Unterminated constructs at EOF produce a DiagIncomplete diagnostic.
func ParseCanonicalInteractive(src string) (Ast, error) {
	p, err := newParser(NewLexerInteractive("<repl>", src), "<repl>", true)
	if err != nil {
		return nil, err
	}
	return p.single()
}

// ParseCanonicalAll parses a sequence of top-level expressions.
func ParseCanonicalAll(name, src string) ([]Ast, error) {
	p, err := newParser(NewLexer(name, src), name, false)
	if err != nil {
		return nil, err
	}
	var out []Ast
	for !p.atEnd() {
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
///////////////////////////// PRIVATE IMPLEMENTATION ///////////////////////////
////////////////////////////////////////////////////////////////////////////////

type parser struct {
	toks        []Token
	i           int
	name        string
	interactive bool
}

func newParser(lex *Lexer, name string, interactive bool) (*parser, error) {
	toks, err := lex.Scan()
	if err != nil {
		return nil, err
	}
	return &parser{toks: toks, name: name, interactive: interactive}, nil
}

// ─────────────────────────── token basics & helpers ─────────────────────────

func (p *parser) atEnd() bool { return p.peek().Type == EOF }
func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *parser) next() Token {
	t := p.peek()
	if p.i < len(p.toks) {
		p.i++
	}
	return t
}

func (p *parser) match(tt TokenType) bool {
	if p.peek().Type == tt {
		p.i++
		return true
	}
	return false
}

func (p *parser) span(t Token) Span {
	return Span{Source: p.name, Start: t.Start, End: t.End}
}

// errAt reports msg at t; an unexpected EOF is "incomplete" in interactive
// mode.
func (p *parser) errAt(t Token, msg string) error {
	kind := DiagParse
	if t.Type == EOF && p.interactive {
		kind = DiagIncomplete
	}
	return errors.WithStack(&Diagnostic{Kind: kind, Msg: msg, Span: p.span(t)})
}

func (p *parser) need(tt TokenType, msg string) (Token, error) {
	if p.match(tt) {
		return p.toks[p.i-1], nil
	}
	return Token{}, p.errAt(p.peek(), msg)
}

func (p *parser) tagged(name string, sp Span, args ...Ast) *AstTagged {
	return &AstTagged{Tag: &AstTag{Name: name, Loc: sp}, Args: args, Loc: sp}
}

// ─────────────────────────────── expressions ────────────────────────────────

func (p *parser) single() (Ast, error) {
	if p.atEnd() {
		return nil, p.errAt(p.peek(), "expected an expression")
	}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		t := p.peek()
		return nil, p.errAt(t, "unexpected "+t.Type.String()+" after expression")
	}
	return e, nil
}

func (p *parser) expr() (Ast, error) {
	left, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == CLROUND {
		p.next()
		args, closing, err := p.commaList(RROUND, "expected ',' or ')' in call")
		if err != nil {
			return nil, err
		}
		sp := joinSpans(left.Span(), p.span(closing))
		if tag, ok := left.(*AstTag); ok {
			left = &AstTagged{Tag: tag, Args: args, Loc: sp}
		} else {
			left = &AstApp{Func: left, Args: args, Loc: sp}
		}
	}
	return left, nil
}

func (p *parser) primary() (Ast, error) {
	t := p.next()
	sp := p.span(t)
	switch t.Type {
	case STRING:
		return &AstStr{Text: t.Text, Loc: sp}, nil
	case NATURAL:
		return p.tagged("Nat", sp, &AstStr{Text: t.Text, Loc: sp}), nil
	case INTEGER:
		return p.tagged("Int", sp, &AstStr{Text: t.Text, Loc: sp}), nil
	case DECIMAL:
		return p.tagged("Dec", sp, &AstStr{Text: t.Text, Loc: sp}), nil
	case BOOLEAN:
		return p.tagged("Bool", sp, &AstStr{Text: t.Text, Loc: sp}), nil
	case UPPER:
		return &AstTag{Name: t.Text, Loc: sp}, nil
	case LOWER:
		return p.tagged("Sym", sp, &AstStr{Text: t.Text, Loc: sp}), nil
	case LSQUARE:
		items, closing, err := p.commaList(RSQUARE, "expected ',' or ']' in list")
		if err != nil {
			return nil, err
		}
		return p.tagged("List", joinSpans(sp, p.span(closing)), items...), nil
	case LROUND, CLROUND:
		return p.parenthesised(t)
	case LCURLY:
		return p.mapLiteral(t)
	case EOF:
		return nil, p.errAt(t, "expected an expression")
	default:
		return nil, p.errAt(t, "unexpected "+t.Type.String())
	}
}

// commaList parses [expr ("," expr)* [","]] up to and including the closing
// token.
func (p *parser) commaList(closeTT TokenType, msg string) ([]Ast, Token, error) {
	var items []Ast
	for {
		if p.match(closeTT) {
			return items, p.toks[p.i-1], nil
		}
		e, err := p.expr()
		if err != nil {
			return nil, Token{}, err
		}
		items = append(items, e)
		if p.match(COMMA) {
			continue
		}
		closing, err := p.need(closeTT, msg)
		if err != nil {
			return nil, Token{}, err
		}
		return items, closing, nil
	}
}

// parenthesised handles grouping and tuple literals; the "(" is consumed.
func (p *parser) parenthesised(open Token) (Ast, error) {
	if p.peek().Type == RROUND {
		return nil, p.errAt(p.peek(), "empty parentheses: tuples need at least one element")
	}
	first, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.match(RROUND) {
		return first, nil
	}
	if _, err := p.need(COMMA, "expected ',' or ')'"); err != nil {
		return nil, err
	}
	rest, closing, err := p.commaList(RROUND, "expected ',' or ')' in tuple")
	if err != nil {
		return nil, err
	}
	items := append([]Ast{first}, rest...)
	return p.tagged("Tuple", joinSpans(p.span(open), p.span(closing)), items...), nil
}

// mapLiteral parses {k: v, ...} into Map(Tuple(k, v), ...).
func (p *parser) mapLiteral(open Token) (Ast, error) {
	var entries []Ast
	for {
		if closing, ok := p.closeCurly(); ok {
			return p.tagged("Map", joinSpans(p.span(open), p.span(closing)), entries...), nil
		}
		k, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(COLON, "expected ':' after map key"); err != nil {
			return nil, err
		}
		v, err := p.expr()
		if err != nil {
			return nil, err
		}
		entries = append(entries, p.tagged("Tuple", joinSpans(k.Span(), v.Span()), k, v))
		if p.match(COMMA) {
			continue
		}
		closing, err := p.need(RCURLY, "expected ',' or '}' in map")
		if err != nil {
			return nil, err
		}
		return p.tagged("Map", joinSpans(p.span(open), p.span(closing)), entries...), nil
	}
}

func (p *parser) closeCurly() (Token, bool) {
	if p.match(RCURLY) {
		return p.toks[p.i-1], true
	}
	return Token{}, false
}
