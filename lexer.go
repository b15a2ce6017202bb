// lexer.go — tokens of the canonical grammar
package grim

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota

	// Punctuation
	LROUND  // "(" when preceded by whitespace or not following an operand
	CLROUND // "(" directly after an operand (call)
	RROUND  // ")"
	LSQUARE // "["
	RSQUARE // "]"
	LCURLY  // "{"
	RCURLY  // "}"
	COLON   // ":"
	COMMA   // ","

	// Literals & identifiers
	STRING  // "text" (Go escapes)
	NATURAL // 123
	INTEGER // -123
	DECIMAL // 1.5, -1.5
	BOOLEAN // true, false
	UPPER   // Tag names
	LOWER   // symbols
)

var tokenNames = [...]string{
	EOF: "end of input", LROUND: "'('", CLROUND: "'('", RROUND: "')'",
	LSQUARE: "'['", RSQUARE: "']'", LCURLY: "'{'", RCURLY: "'}'",
	COLON: "':'", COMMA: "','", STRING: "string", NATURAL: "number",
	INTEGER: "number", DECIMAL: "number", BOOLEAN: "boolean",
	UPPER: "tag", LOWER: "symbol",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Token is a lexical token. Text is the unquoted string for STRING tokens and
// the raw lexeme otherwise. Positions are 1-based; End is just past the token.
type Token struct {
	Type  TokenType
	Text  string
	Start Pos
	End   Pos
}

// Lexer scans canonical Grim source into tokens.
type Lexer struct {
	src         string
	name        string
	interactive bool

	start int // start index of current token
	cur   int // current index
	line  int // 1-based
	col   int // 1-based column of src[cur]

	tokStart         Pos
	tokens           []Token
	whitespaceBefore bool
}

// NewLexer creates a lexer for src; name labels diagnostics.
func NewLexer(name, src string) *Lexer {
	return &Lexer{src: src, name: name, line: 1, col: 1}
}

// NewLexerInteractive is NewLexer whose unterminated strings report
// DiagIncomplete instead of a lexical error.
func NewLexerInteractive(name, src string) *Lexer {
	l := NewLexer(name, src)
	l.interactive = true
	return l
}

// Scan tokenizes the entire source and returns tokens (EOF included).
func (l *Lexer) Scan() ([]Token, error) {
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
	}
}

//// END_OF_PUBLIC

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) pos() Pos { return Pos{Line: l.line, Column: l.col} }

func (l *Lexer) addToken(tt TokenType, text string) Token {
	tok := Token{Type: tt, Text: text, Start: l.tokStart, End: l.pos()}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	l.whitespaceBefore = false
	return tok
}

func (l *Lexer) previousToken() *Token {
	if len(l.tokens) == 0 {
		return nil
	}
	return &l.tokens[len(l.tokens)-1]
}

// skipBlank consumes whitespace and '#' line comments.
func (l *Lexer) skipBlank() {
	l.whitespaceBefore = false
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\r', '\n', '\t':
			l.whitespaceBefore = true
			l.advance()
		case '#':
			l.whitespaceBefore = true
			for !l.isAtEnd() {
				if c, _ := l.peek(); c == '\n' {
					break
				}
				l.advance()
			}
		default:
			return
		}
	}
}

// canBeCallee reports whether a "(" right after t is a call.
func canBeCallee(t TokenType) bool {
	switch t {
	case STRING, NATURAL, INTEGER, DECIMAL, BOOLEAN, UPPER, LOWER,
		RROUND, RSQUARE, RCURLY:
		return true
	default:
		return false
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || isUpper(b) || b == '_' }
func isAlphaNum(b byte) bool { return isAlpha(b) || isDigit(b) }

func (l *Lexer) err(msg string) error {
	return errors.WithStack(&Diagnostic{
		Kind: DiagLex,
		Msg:  msg,
		Span: Span{Source: l.name, Start: l.tokStart, End: l.pos()},
	})
}

func (l *Lexer) incomplete(msg string) error {
	if !l.interactive {
		return l.err(msg)
	}
	return errors.WithStack(&Diagnostic{
		Kind: DiagIncomplete,
		Msg:  msg,
		Span: Span{Source: l.name, Start: l.tokStart, End: l.pos()},
	})
}

// scanString reads a double-quoted literal with Go escapes; the opening
// quote has been consumed.
func (l *Lexer) scanString() (string, error) {
	for {
		ch, ok := l.advance()
		if !ok {
			return "", l.incomplete("unterminated string")
		}
		switch ch {
		case '\n':
			return "", l.err("newline in string literal")
		case '\\':
			if _, ok := l.advance(); !ok {
				return "", l.incomplete("unterminated string")
			}
		case '"':
			text, err := strconv.Unquote(l.src[l.start:l.cur])
			if err != nil {
				return "", l.err("invalid string literal " + l.src[l.start:l.cur])
			}
			return text, nil
		}
	}
}

// scanNumber reads digits with an optional fraction; a leading '-' has
// already been consumed when negative is set.
func (l *Lexer) scanNumber(negative bool) (TokenType, error) {
	for {
		if b, ok := l.peek(); !ok || !isDigit(b) {
			break
		}
		l.advance()
	}
	tt := NATURAL
	if negative {
		tt = INTEGER
	}
	if b, ok := l.peek(); ok && b == '.' {
		l.advance()
		digits := 0
		for {
			if b, ok := l.peek(); !ok || !isDigit(b) {
				break
			}
			l.advance()
			digits++
		}
		if digits == 0 {
			return 0, l.err("expected digits after decimal point")
		}
		tt = DECIMAL
	}
	if b, ok := l.peek(); ok && isAlpha(b) {
		return 0, l.err(fmt.Sprintf("unexpected %q after number", b))
	}
	return tt, nil
}

func (l *Lexer) scanIdentifier() string {
	for {
		if b, ok := l.peek(); !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	return l.src[l.start:l.cur]
}

func (l *Lexer) scanToken() (Token, error) {
	l.skipBlank()
	l.tokStart = l.pos()
	l.start = l.cur

	ch, ok := l.advance()
	if !ok {
		return l.addToken(EOF, ""), nil
	}

	switch ch {
	case '(':
		prev := l.previousToken()
		if l.whitespaceBefore || prev == nil || !canBeCallee(prev.Type) {
			return l.addToken(LROUND, "("), nil
		}
		return l.addToken(CLROUND, "("), nil
	case ')':
		return l.addToken(RROUND, ")"), nil
	case '[':
		return l.addToken(LSQUARE, "["), nil
	case ']':
		return l.addToken(RSQUARE, "]"), nil
	case '{':
		return l.addToken(LCURLY, "{"), nil
	case '}':
		return l.addToken(RCURLY, "}"), nil
	case ':':
		return l.addToken(COLON, ":"), nil
	case ',':
		return l.addToken(COMMA, ","), nil
	case '"':
		text, err := l.scanString()
		if err != nil {
			return Token{}, err
		}
		return l.addToken(STRING, text), nil
	case '-':
		if b, ok := l.peek(); !ok || !isDigit(b) {
			return Token{}, l.err("'-' must be followed by a digit")
		}
		tt, err := l.scanNumber(true)
		if err != nil {
			return Token{}, err
		}
		return l.addToken(tt, l.src[l.start:l.cur]), nil
	}

	if isDigit(ch) {
		tt, err := l.scanNumber(false)
		if err != nil {
			return Token{}, err
		}
		return l.addToken(tt, l.src[l.start:l.cur]), nil
	}

	if isAlpha(ch) {
		lex := l.scanIdentifier()
		switch {
		case lex == "true" || lex == "false":
			return l.addToken(BOOLEAN, lex), nil
		case isUpper(ch):
			return l.addToken(UPPER, lex), nil
		default:
			return l.addToken(LOWER, lex), nil
		}
	}

	return Token{}, l.err(fmt.Sprintf("unexpected character: %q", ch))
}
