// value.go — the Grim runtime value model
//
// OVERVIEW
// ========
// Value is a closed set of immutable variants. Every variant reports its
// dispatch type tag, prints itself in two forms, and compares structurally:
//
//	Atoms        Bool, Tag, Var, Sym, Str, Natural, Integer, Rational, Decimal
//	Collections  *List, *Tuple, *Set, *Map
//	Symbolic     *App, *Fun, *Let
//	Diagnostic   Maybe (None | Some), *Error
//
// Two values are equal iff they are the same variant with recursively equal
// payloads. Numeric variants are normalised at construction (numeric.go), so
// equal numbers have equal spellings and equal canonical strings. That makes
// the canonical string a sound hash key, which Set and Map rely on.
//
// Composite values own their children. Nothing in this package mutates a
// value after construction; callers must not either (slices returned by
// accessors are copies).
//
// PRINTING
// ========
// String() is the debug form; Canonical() re-parses through the canonical
// grammar to an equal AST (see printer.go for the shared helpers).
package grim

import (
	"sort"
	"strconv"

	set "github.com/hashicorp/go-set/v2"
)

////////////////////////////////////////////////////////////////////////////////
//                              PUBLIC TYPES & CTORS
////////////////////////////////////////////////////////////////////////////////

// TypeTag names the dispatch type of a value. Operator signatures are built
// from these names.
type TypeTag string

const (
	TNat    TypeTag = "Nat"
	TInt    TypeTag = "Int"
	TRat    TypeTag = "Rat"
	TDec    TypeTag = "Dec"
	TStr    TypeTag = "Str"
	TBool   TypeTag = "Bool"
	TTag    TypeTag = "Tag"
	TSym    TypeTag = "Sym"
	TVar    TypeTag = "Var"
	TList   TypeTag = "List"
	TTuple  TypeTag = "Tuple"
	TSet    TypeTag = "Set"
	TMap    TypeTag = "Map"
	TApp    TypeTag = "App"
	TFun    TypeTag = "Fun"
	TLet    TypeTag = "Let"
	TOption TypeTag = "Option"
	TError  TypeTag = "Error"
)

// Value is the universal runtime carrier.
type Value interface {
	// Type is the dispatch type tag.
	Type() TypeTag
	// String is the debug/traced form.
	String() string
	// Canonical is the form that re-parses to an equal value.
	Canonical() string
	// Equal is structural equality.
	Equal(other Value) bool
	isValue()
}

// ---- atoms ----------------------------------------------------------------

// Bool is a boolean atom.
type Bool bool

// Tag is a named constant; tags are also operator and maker names.
type Tag string

// Var is a self-evaluating named placeholder.
type Var string

// Sym is a name that must be resolved through the environment.
type Sym string

// Str is a text atom.
type Str string

func (Bool) Type() TypeTag { return TBool }
func (Tag) Type() TypeTag  { return TTag }
func (Var) Type() TypeTag  { return TVar }
func (Sym) Type() TypeTag  { return TSym }
func (Str) Type() TypeTag  { return TStr }

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
func (t Tag) String() string  { return string(t) }
func (v Var) String() string  { return "Var(" + string(v) + ")" }
func (s Sym) String() string  { return string(s) }
func (s Str) String() string  { return strconv.Quote(string(s)) }

func (b Bool) Canonical() string { return b.String() }
func (t Tag) Canonical() string {
	if isUpperIdent(string(t)) {
		return string(t)
	}
	return "Tag(" + strconv.Quote(string(t)) + ")"
}
func (v Var) Canonical() string { return "Var(" + strconv.Quote(string(v)) + ")" }
func (s Sym) Canonical() string {
	if isLowerIdent(string(s)) {
		return string(s)
	}
	return "Sym(" + strconv.Quote(string(s)) + ")"
}
func (s Str) Canonical() string { return strconv.Quote(string(s)) }

func (b Bool) Equal(o Value) bool { x, ok := o.(Bool); return ok && x == b }
func (t Tag) Equal(o Value) bool  { x, ok := o.(Tag); return ok && x == t }
func (v Var) Equal(o Value) bool  { x, ok := o.(Var); return ok && x == v }
func (s Sym) Equal(o Value) bool  { x, ok := o.(Sym); return ok && x == s }
func (s Str) Equal(o Value) bool  { x, ok := o.(Str); return ok && x == s }

func (Bool) isValue() {}
func (Tag) isValue()  {}
func (Var) isValue()  {}
func (Sym) isValue()  {}
func (Str) isValue()  {}

// ---- collections ----------------------------------------------------------

// List is an ordered sequence.
type List struct{ items []Value }

// NewList copies items into a new list.
func NewList(items ...Value) *List { return &List{items: cloneValues(items)} }

func (l *List) Items() []Value  { return cloneValues(l.items) }
func (l *List) Len() int        { return len(l.items) }
func (l *List) At(i int) Value  { return l.items[i] }
func (*List) Type() TypeTag     { return TList }
func (l *List) String() string  { return "[" + joinValues(l.items, Value.String) + "]" }
func (l *List) Canonical() string {
	return "[" + joinValues(l.items, Value.Canonical) + "]"
}
func (l *List) Equal(o Value) bool {
	x, ok := o.(*List)
	return ok && valuesEqual(l.items, x.items)
}
func (*List) isValue() {}

// Tuple is an ordered, non-empty sequence.
type Tuple struct{ items []Value }

// NewTuple copies items into a new tuple. An empty tuple is a construction
// error.
func NewTuple(items ...Value) (*Tuple, error) {
	if len(items) == 0 {
		return nil, buildErrorf(Span{}, "tuple must have at least one element")
	}
	return &Tuple{items: cloneValues(items)}, nil
}

func (t *Tuple) Items() []Value { return cloneValues(t.items) }
func (t *Tuple) Len() int       { return len(t.items) }
func (t *Tuple) At(i int) Value { return t.items[i] }
func (*Tuple) Type() TypeTag    { return TTuple }
func (t *Tuple) String() string { return tupleText(t.items, Value.String) }
func (t *Tuple) Canonical() string {
	return tupleText(t.items, Value.Canonical)
}
func (t *Tuple) Equal(o Value) bool {
	x, ok := o.(*Tuple)
	return ok && valuesEqual(t.items, x.items)
}
func (*Tuple) isValue() {}

// member adapts a Value to go-set's Hasher; canonical strings are unique per
// value because numbers are normalised at construction.
type member struct{ v Value }

func (m member) Hash() string { return m.v.Canonical() }

// Set is an unordered collection of distinct values.
type Set struct {
	members *set.HashSet[member, string]
}

// NewSet builds a set; duplicates collapse.
func NewSet(items ...Value) *Set {
	s := set.NewHashSet[member, string](len(items))
	for _, it := range items {
		s.Insert(member{it})
	}
	return &Set{members: s}
}

func (s *Set) Len() int { return s.members.Size() }

// Contains reports exact (structural) membership.
func (s *Set) Contains(v Value) bool { return s.members.Contains(member{v}) }

// Items returns the members ordered by canonical string.
func (s *Set) Items() []Value {
	ms := s.members.Slice()
	out := make([]Value, len(ms))
	for i, m := range ms {
		out[i] = m.v
	}
	sortCanonical(out)
	return out
}
func (*Set) Type() TypeTag { return TSet }
func (s *Set) String() string {
	return "Set(" + joinValues(s.Items(), Value.String) + ")"
}
func (s *Set) Canonical() string {
	return "Set(" + joinValues(s.Items(), Value.Canonical) + ")"
}
func (s *Set) Equal(o Value) bool {
	x, ok := o.(*Set)
	if !ok || x.Len() != s.Len() {
		return false
	}
	for _, m := range s.members.Slice() {
		if !x.members.Contains(m) {
			return false
		}
	}
	return true
}
func (*Set) isValue() {}

// MapEntry is one key/value association.
type MapEntry struct {
	Key Value
	Val Value
}

// Map associates unique keys with values. A Sym key is folded to a Str of
// its name; later entries replace earlier ones with an equal key.
type Map struct {
	entries map[string]MapEntry
}

// NewMap builds a map from entries.
func NewMap(entries ...MapEntry) *Map {
	m := &Map{entries: make(map[string]MapEntry, len(entries))}
	for _, e := range entries {
		k := mapKey(e.Key)
		m.entries[k.Canonical()] = MapEntry{Key: k, Val: e.Val}
	}
	return m
}

func (m *Map) Len() int { return len(m.entries) }

// Get looks up key (Sym keys fold to Str as on construction).
func (m *Map) Get(key Value) (Value, bool) {
	e, ok := m.entries[mapKey(key).Canonical()]
	return e.Val, ok
}

// Entries returns the associations ordered by canonical key.
func (m *Map) Entries() []MapEntry {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]MapEntry, len(keys))
	for i, k := range keys {
		out[i] = m.entries[k]
	}
	return out
}
func (*Map) Type() TypeTag        { return TMap }
func (m *Map) String() string     { return mapText(m.Entries(), Value.String) }
func (m *Map) Canonical() string  { return mapText(m.Entries(), Value.Canonical) }
func (m *Map) Equal(o Value) bool {
	x, ok := o.(*Map)
	if !ok || len(x.entries) != len(m.entries) {
		return false
	}
	for k, e := range m.entries {
		y, ok := x.entries[k]
		if !ok || !e.Val.Equal(y.Val) {
			return false
		}
	}
	return true
}
func (*Map) isValue() {}

// ---- symbolic forms -------------------------------------------------------

// App is an unevaluated application of Lhs to Rhs. Loc is the source span
// when the node was built from an AST; it does not affect equality.
type App struct {
	Lhs Value
	Rhs []Value
	Loc Span
}

// NewApp builds an application node.
func NewApp(lhs Value, rhs ...Value) *App { return &App{Lhs: lhs, Rhs: cloneValues(rhs)} }

func (*App) Type() TypeTag { return TApp }
func (a *App) String() string {
	return a.Lhs.String() + "(" + joinValues(a.Rhs, Value.String) + ")"
}
func (a *App) Canonical() string {
	if t, ok := a.Lhs.(Tag); ok && isCoreMakerTag(string(t)) {
		// T(args) would rebuild through T's maker rather than as an App.
		return "App(" + joinValues(append([]Value{t}, a.Rhs...), Value.Canonical) + ")"
	}
	return a.Lhs.Canonical() + "(" + joinValues(a.Rhs, Value.Canonical) + ")"
}
func (a *App) Equal(o Value) bool {
	x, ok := o.(*App)
	return ok && a.Lhs.Equal(x.Lhs) && valuesEqual(a.Rhs, x.Rhs)
}
func (*App) isValue() {}

// Fun is a function definition. Params are distinct symbols; Name is
// diagnostic only and does not affect equality or the canonical form.
type Fun struct {
	Params []Sym
	Body   Value
	Name   string
}

// NewFun validates that params are distinct.
func NewFun(params []Sym, body Value, name string) (*Fun, error) {
	seen := make(map[Sym]bool, len(params))
	for _, p := range params {
		if seen[p] {
			return nil, buildErrorf(Span{}, "duplicate parameter %q in function %s", string(p), funLabel(name))
		}
		seen[p] = true
	}
	ps := make([]Sym, len(params))
	copy(ps, params)
	return &Fun{Params: ps, Body: body, Name: name}, nil
}

// Named returns a copy of f carrying name.
func (f *Fun) Named(name string) *Fun {
	g := *f
	g.Name = name
	return &g
}

func (f *Fun) Arity() int    { return len(f.Params) }
func (*Fun) Type() TypeTag   { return TFun }
func (f *Fun) String() string {
	head := "Fun"
	if f.Name != "" {
		head = "Fun<" + f.Name + ">"
	}
	return head + "(" + f.paramList(Value.String) + ", " + f.Body.String() + ")"
}
func (f *Fun) Canonical() string {
	return "Fun(" + f.paramList(Value.Canonical) + ", " + f.Body.Canonical() + ")"
}
func (f *Fun) paramList(show func(Value) string) string {
	ps := make([]Value, len(f.Params))
	for i, p := range f.Params {
		ps[i] = p
	}
	return "[" + joinValues(ps, show) + "]"
}
func (f *Fun) Equal(o Value) bool {
	x, ok := o.(*Fun)
	if !ok || len(x.Params) != len(f.Params) {
		return false
	}
	for i := range f.Params {
		if f.Params[i] != x.Params[i] {
			return false
		}
	}
	return f.Body.Equal(x.Body)
}
func (*Fun) isValue() {}

// Let pairs binding forms with a body. The core stores it unreduced.
type Let struct {
	Bindings []Value
	Body     Value
}

func (*Let) Type() TypeTag { return TLet }
func (l *Let) String() string {
	return "Let([" + joinValues(l.Bindings, Value.String) + "], " + l.Body.String() + ")"
}
func (l *Let) Canonical() string {
	return "Let([" + joinValues(l.Bindings, Value.Canonical) + "], " + l.Body.Canonical() + ")"
}
func (l *Let) Equal(o Value) bool {
	x, ok := o.(*Let)
	return ok && valuesEqual(l.Bindings, x.Bindings) && l.Body.Equal(x.Body)
}
func (*Let) isValue() {}

// ---- diagnostic forms -----------------------------------------------------

// Maybe is None (zero value) or Some(v).
type Maybe struct{ val Value }

// None is the empty option.
func None() Maybe { return Maybe{} }

// Some wraps v.
func Some(v Value) Maybe { return Maybe{val: v} }

// Get returns the wrapped value and whether there is one.
func (o Maybe) Get() (Value, bool) { return o.val, o.val != nil }
func (Maybe) Type() TypeTag        { return TOption }
func (o Maybe) String() string {
	if o.val == nil {
		return "None"
	}
	return "Some(" + o.val.String() + ")"
}
func (o Maybe) Canonical() string {
	if o.val == nil {
		return "None()"
	}
	return "Some(" + o.val.Canonical() + ")"
}
func (o Maybe) Equal(v Value) bool {
	x, ok := v.(Maybe)
	if !ok || (x.val == nil) != (o.val == nil) {
		return false
	}
	return o.val == nil || o.val.Equal(x.val)
}
func (Maybe) isValue() {}

// Error is a first-class failure value. Parts are usually a Str message
// followed by the offending values.
type Error struct {
	Parts []Value
}

// NewError builds an Error value from a message and the values involved.
func NewError(msg string, vals ...Value) *Error {
	return &Error{Parts: append([]Value{Str(msg)}, vals...)}
}

// Message returns the leading Str part, if any.
func (e *Error) Message() string {
	if len(e.Parts) > 0 {
		if s, ok := e.Parts[0].(Str); ok {
			return string(s)
		}
	}
	return ""
}
func (*Error) Type() TypeTag { return TError }
func (e *Error) String() string {
	return "Error(" + joinValues(e.Parts, Value.String) + ")"
}
func (e *Error) Canonical() string {
	return "Error(" + joinValues(e.Parts, Value.Canonical) + ")"
}
func (e *Error) Equal(o Value) bool {
	x, ok := o.(*Error)
	return ok && valuesEqual(e.Parts, x.Parts)
}
func (*Error) isValue() {}

// IsError reports whether v is an Error value.
func IsError(v Value) bool { _, ok := v.(*Error); return ok }

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
//                                 PRIVATE
////////////////////////////////////////////////////////////////////////////////

func cloneValues(xs []Value) []Value {
	if len(xs) == 0 {
		return nil
	}
	out := make([]Value, len(xs))
	copy(out, xs)
	return out
}

func valuesEqual(xs, ys []Value) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !xs[i].Equal(ys[i]) {
			return false
		}
	}
	return true
}

func mapKey(k Value) Value {
	if s, ok := k.(Sym); ok {
		return Str(s)
	}
	return k
}

func spanOf(v Value) Span {
	if a, ok := v.(*App); ok {
		return a.Loc
	}
	return Span{}
}

func funLabel(name string) string {
	if name == "" {
		return "<anonymous>"
	}
	return name
}
