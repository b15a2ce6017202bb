// lexer_test.go
package grim

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

func toks(t *testing.T, src string) []Token {
	t.Helper()
	ts, err := NewLexer("", src).Scan()
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	return ts
}

func typesWithoutEOF(tokens []Token) []TokenType {
	end := len(tokens)
	if end > 0 && tokens[end-1].Type == EOF {
		end--
	}
	out := make([]TokenType, 0, end)
	for i := 0; i < end; i++ {
		out = append(out, tokens[i].Type)
	}
	return out
}

func wantTypes(t *testing.T, src string, want []TokenType) []Token {
	t.Helper()
	got := toks(t, src)
	gotTypes := typesWithoutEOF(got)
	if !reflect.DeepEqual(gotTypes, want) {
		t.Fatalf("\nsource:\n%s\nwant types:\n%v\ngot types:\n%v\n", src, want, gotTypes)
	}
	return got
}

func Test_Lexer_Literals(t *testing.T) {
	got := wantTypes(t, `12 -3 1.5 -0.25 "hi" true false Add x_1`, []TokenType{
		NATURAL, INTEGER, DECIMAL, DECIMAL, STRING, BOOLEAN, BOOLEAN, UPPER, LOWER,
	})
	texts := []string{"12", "-3", "1.5", "-0.25", "hi", "true", "false", "Add", "x_1"}
	for i, want := range texts {
		if got[i].Text != want {
			t.Fatalf("token %d: text %q, want %q", i, got[i].Text, want)
		}
	}
}

func Test_Lexer_Call_Paren_Needs_No_Space(t *testing.T) {
	wantTypes(t, `Add(x)`, []TokenType{UPPER, CLROUND, LOWER, RROUND})
	wantTypes(t, `Add (x)`, []TokenType{UPPER, LROUND, LOWER, RROUND})
	wantTypes(t, `f(x)(y)`, []TokenType{LOWER, CLROUND, LOWER, RROUND, CLROUND, LOWER, RROUND})
	wantTypes(t, `[(1, 2)]`, []TokenType{LSQUARE, LROUND, NATURAL, COMMA, NATURAL, RROUND, RSQUARE})
}

func Test_Lexer_Punctuation_And_Comments(t *testing.T) {
	src := `
# a map
{"a": [1, 2]} # trailing
`
	wantTypes(t, src, []TokenType{LCURLY, STRING, COLON, LSQUARE, NATURAL, COMMA, NATURAL, RSQUARE, RCURLY})
}

func Test_Lexer_String_Escapes(t *testing.T) {
	got := toks(t, `"tab\there \"q\" é"`)
	if want := "tab\there \"q\" é"; got[0].Text != want {
		t.Fatalf("got %q, want %q", got[0].Text, want)
	}
}

func Test_Lexer_Positions(t *testing.T) {
	got := toks(t, "f(\n  xy)")
	xy := got[2]
	if xy.Start != (Pos{Line: 2, Column: 3}) || xy.End != (Pos{Line: 2, Column: 5}) {
		t.Fatalf("xy at %v..%v", xy.Start, xy.End)
	}
}

func Test_Lexer_Errors(t *testing.T) {
	cases := []string{
		`"open`,
		`"line` + "\n" + `break"`,
		`- 1`,
		`12abc`,
		`1.`,
		`@`,
	}
	for _, src := range cases {
		_, err := NewLexer("", src).Scan()
		var d *Diagnostic
		if !errors.As(err, &d) || d.Kind != DiagLex {
			t.Errorf("%q: want lexical diagnostic, got %v", src, err)
		}
	}
}

func Test_Lexer_Interactive_Unterminated_String_Is_Incomplete(t *testing.T) {
	_, err := NewLexerInteractive("<repl>", `Str("abc`).Scan()
	if !IsIncomplete(err) {
		t.Fatalf("want incomplete, got %v", err)
	}
	_, err = NewLexer("", `Str("abc`).Scan()
	if err == nil || IsIncomplete(err) {
		t.Fatalf("batch mode must report a lexical error, got %v", err)
	}
}
