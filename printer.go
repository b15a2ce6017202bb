package grim

import (
	"sort"
	"strings"
	"unicode"
)

/* ---------- globals & tiny helpers ---------- */

var EnableColor = false // REPL-only; tests leave this false
var MaxInlineWidth = 80 // width threshold for single-line collections

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorBlue  = "\033[34m"
)

func colorize(s, c string) string {
	if !EnableColor {
		return s
	}
	return c + s + colorReset
}

// coreMakerTags are the tags bound to makers by every module. An App whose
// head is one of these prints as App(T, ...) so it re-parses as an App.
var coreMakerTags = map[string]bool{
	"Str": true, "Nat": true, "Int": true, "Rat": true, "Dec": true,
	"Tag": true, "Sym": true, "Var": true, "Bool": true,
	"Some": true, "None": true, "Error": true,
	"List": true, "Tuple": true, "Map": true, "Set": true,
	"App": true, "Fun": true, "Let": true,
}

func isCoreMakerTag(name string) bool { return coreMakerTags[name] }

// keywords of the canonical grammar that look like lower identifiers.
var reservedWords = map[string]bool{"true": true, "false": true}

func isIdentTail(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}

// isUpperIdent reports whether s lexes as a bare tag.
func isUpperIdent(s string) bool {
	if s == "" || s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return !isIdentTail(r) }) < 0
}

// isLowerIdent reports whether s lexes as a symbol.
func isLowerIdent(s string) bool {
	if s == "" || reservedWords[s] {
		return false
	}
	if c := s[0]; !(c >= 'a' && c <= 'z') && c != '_' {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return !isIdentTail(r) }) < 0
}

func joinValues(xs []Value, show func(Value) string) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = show(x)
	}
	return strings.Join(parts, ", ")
}

// tupleText renders ("a",) for singletons so they do not read as grouping.
func tupleText(xs []Value, show func(Value) string) string {
	if len(xs) == 1 {
		return "(" + show(xs[0]) + ",)"
	}
	return "(" + joinValues(xs, show) + ")"
}

func mapText(es []MapEntry, show func(Value) string) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = show(e.Key) + ": " + show(e.Val)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func sortCanonical(xs []Value) {
	keys := make([]string, len(xs))
	for i, x := range xs {
		keys[i] = x.Canonical()
	}
	sort.Sort(byKey{keys, xs})
}

type byKey struct {
	keys []string
	vals []Value
}

func (b byKey) Len() int           { return len(b.keys) }
func (b byKey) Less(i, j int) bool { return b.keys[i] < b.keys[j] }
func (b byKey) Swap(i, j int) {
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
	b.vals[i], b.vals[j] = b.vals[j], b.vals[i]
}

/* ---------- Runtime value pretty-printer ---------- */

type out struct {
	b     *strings.Builder
	depth int
}

func (o *out) write(s string)       { o.b.WriteString(s) }
func (o *out) nl()                  { o.b.WriteByte('\n') }
func (o *out) pad()                 { o.b.WriteString(strings.Repeat("\t", o.depth)) }
func (o *out) blue(s string)        { o.b.WriteString(colorize(s, colorBlue)) }
func (o *out) withIndent(fn func()) { o.depth++; fn(); o.depth-- }

// FormatValue renders v in canonical syntax, breaking collections and
// applications across lines when the one-line form is wider than
// MaxInlineWidth. Errors print red when EnableColor is set.
func FormatValue(v Value) string {
	var b strings.Builder
	o := out{b: &b}
	writeValue(&o, v)
	return b.String()
}

func writeValue(o *out, v Value) {
	if e, ok := v.(*Error); ok {
		o.write(colorize(e.Canonical(), colorRed))
		return
	}
	oneline := v.Canonical()
	if len(oneline)+o.depth*4 <= MaxInlineWidth {
		o.blue(oneline)
		return
	}
	switch x := v.(type) {
	case *List:
		writeBlock(o, "[", "]", x.items, nil)
	case *Tuple:
		writeBlock(o, "(", ")", x.items, nil)
	case *Set:
		writeBlock(o, "Set(", ")", x.Items(), nil)
	case *Map:
		es := x.Entries()
		keys := make([]Value, len(es))
		vals := make([]Value, len(es))
		for i, e := range es {
			keys[i], vals[i] = e.Key, e.Val
		}
		writeBlock(o, "{", "}", vals, keys)
	case *App:
		if t, ok := x.Lhs.(Tag); ok && !isCoreMakerTag(string(t)) {
			writeBlock(o, t.Canonical()+"(", ")", x.Rhs, nil)
			return
		}
		o.blue(oneline)
	default:
		o.blue(oneline)
	}
}

// writeBlock prints one item per line; keys, when present, prefix each item.
func writeBlock(o *out, open, close string, items, keys []Value) {
	o.blue(open)
	o.nl()
	o.withIndent(func() {
		for i, it := range items {
			o.pad()
			if keys != nil {
				o.blue(keys[i].Canonical() + ": ")
			}
			writeValue(o, it)
			if i < len(items)-1 || (open == "(" && len(items) == 1) {
				o.blue(",")
			}
			o.nl()
		}
	})
	o.pad()
	o.blue(close)
}
