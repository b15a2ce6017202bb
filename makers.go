// makers.go — turning canonical AST into values
//
// FromAst dispatches purely on node shape:
//
//	AstStr            -> Str
//	AstTag            -> Tag
//	AstApp            -> App maker (untagged application)
//	AstTagged(T, xs)  -> maker registered for T, applied to the built xs;
//	                     without a maker the node is rebuilt as the untagged
//	                     App(Tag(T), xs), so every tag is callable by
//	                     construction.
//
// Every core maker validates the shape of its arguments and returns an
// *Error value on mismatch. Only genuine construction errors (an empty
// tuple, duplicate function parameters) are Go errors.
package grim

import (
	"fmt"
	"strings"
)

// AddMaker binds tag to mk. The tag's role becomes Maker.
func (m *Module) AddMaker(tag string, mk Maker) error {
	if mk == nil {
		return configErrorf(Span{}, "nil maker for %q", tag)
	}
	if _, dup := m.makers[tag]; dup {
		return configErrorf(Span{}, "maker for %q is already registered", tag)
	}
	if err := m.claimRole(tag, RoleMaker); err != nil {
		return err
	}
	m.makers[tag] = mk
	return nil
}

// FromAst builds the value denoted by node.
func (m *Module) FromAst(node Ast) (Value, error) {
	switch n := node.(type) {
	case *AstStr:
		return Str(n.Text), nil
	case *AstTag:
		return Tag(n.Name), nil
	case *AstApp:
		lhs, err := m.FromAst(n.Func)
		if err != nil {
			return nil, err
		}
		args, err := m.buildAll(n.Args)
		if err != nil {
			return nil, err
		}
		return &App{Lhs: lhs, Rhs: args, Loc: n.Loc}, nil
	case *AstTagged:
		if _, ok := m.makers[n.Tag.Name]; !ok {
			return m.FromAst(&AstApp{Func: n.Tag, Args: n.Args, Loc: n.Loc})
		}
		args, err := m.buildAll(n.Args)
		if err != nil {
			return nil, err
		}
		v, err := m.MakeFromValues(n.Tag.Name, args)
		if err != nil {
			return nil, withSpan(err, n.Loc)
		}
		if a, ok := v.(*App); ok && a.Loc.IsZero() {
			at := *a
			at.Loc = n.Loc
			return &at, nil
		}
		return v, nil
	case nil:
		return nil, buildErrorf(Span{}, "nil AST node")
	default:
		return nil, buildErrorf(node.Span(), "unsupported AST node %T", node)
	}
}

// MakeFromValues runs the maker bound to tag over already built values. A
// tag without a maker yields the application App(Tag(tag), vals).
func (m *Module) MakeFromValues(tag string, vals []Value) (Value, error) {
	mk, ok := m.makers[tag]
	if !ok {
		return NewApp(Tag(tag), vals...), nil
	}
	return mk(m, vals)
}

//// END_OF_PUBLIC

func (m *Module) buildAll(nodes []Ast) ([]Value, error) {
	out := make([]Value, len(nodes))
	for i, n := range nodes {
		v, err := m.FromAst(n)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (m *Module) installMakers() error {
	core := []struct {
		tag string
		mk  Maker
	}{
		{"Str", makeStr},
		{"Nat", makeNat},
		{"Int", makeInt},
		{"Rat", makeRat},
		{"Dec", makeDec},
		{"Tag", makeTag},
		{"Sym", makeSym},
		{"Var", makeVar},
		{"Bool", makeBool},
		{"Some", makeSome},
		{"None", makeNone},
		{"Error", makeError},
		{"List", makeList},
		{"Tuple", makeTuple},
		{"Map", makeMap},
		{"Set", makeSet},
		{"App", makeApp},
		{"Fun", makeFun},
		{"Let", makeLet},
	}
	for _, c := range core {
		if err := m.AddMaker(c.tag, c.mk); err != nil {
			return err
		}
	}
	return nil
}

// shapeError is the data-level failure every maker returns for bad input.
func shapeError(tag string, want string, args []Value) Value {
	return NewError(fmt.Sprintf("%s expects %s", tag, want), args...)
}

// oneText extracts the single Str argument of a literal maker.
func oneText(args []Value) (string, bool) {
	if len(args) != 1 {
		return "", false
	}
	s, ok := args[0].(Str)
	return strings.TrimSpace(string(s)), ok
}

func makeStr(_ *Module, args []Value) (Value, error) {
	if len(args) == 1 {
		if s, ok := args[0].(Str); ok {
			return s, nil
		}
	}
	return shapeError("Str", "one string", args), nil
}

func makeNat(_ *Module, args []Value) (Value, error) {
	if len(args) == 1 {
		if n, ok := args[0].(Natural); ok {
			return n, nil
		}
	}
	text, ok := oneText(args)
	if !ok {
		return shapeError("Nat", "one digit string", args), nil
	}
	n, err := NewNatural(text)
	if err != nil {
		return NewError("Nat: "+err.Error(), args...), nil
	}
	return n, nil
}

func makeInt(_ *Module, args []Value) (Value, error) {
	if len(args) == 1 {
		if n, ok := asInteger(args[0]); ok {
			return n, nil
		}
	}
	text, ok := oneText(args)
	if !ok {
		return shapeError("Int", "one integer string or number", args), nil
	}
	n, err := NewInteger(text)
	if err != nil {
		return NewError("Int: "+err.Error(), args...), nil
	}
	return n, nil
}

// makeRat accepts Rat(num, den) over Nat/Int operands, Rat("n/d"), or an
// existing rational.
func makeRat(_ *Module, args []Value) (Value, error) {
	switch len(args) {
	case 1:
		if r, ok := args[0].(Rational); ok {
			return r, nil
		}
		text, ok := oneText(args)
		if !ok {
			break
		}
		num, den, found := strings.Cut(text, "/")
		if !found {
			den = "1"
		}
		n, err1 := NewInteger(num)
		d, err2 := NewInteger(den)
		if err1 != nil || err2 != nil {
			return NewError("Rat: malformed rational literal", args...), nil
		}
		return ratOrError(n, d, args), nil
	case 2:
		n, ok1 := asInteger(args[0])
		d, ok2 := asInteger(args[1])
		if ok1 && ok2 {
			return ratOrError(n, d, args), nil
		}
	}
	return shapeError("Rat", "a numerator and a denominator", args), nil
}

func ratOrError(n, d Integer, args []Value) Value {
	r, err := NewRational(n, d)
	if err != nil {
		return NewError("Rat: "+err.Error(), args...)
	}
	return r
}

func makeDec(_ *Module, args []Value) (Value, error) {
	if len(args) == 1 {
		switch x := args[0].(type) {
		case Decimal:
			return x, nil
		case Natural:
			return Decimal{digits: x.digits}, nil
		case Integer:
			return Decimal{digits: x.digits}, nil
		}
	}
	text, ok := oneText(args)
	if !ok {
		return shapeError("Dec", "one decimal string", args), nil
	}
	d, err := NewDecimal(text)
	if err != nil {
		return NewError("Dec: "+err.Error(), args...), nil
	}
	return d, nil
}

func makeTag(_ *Module, args []Value) (Value, error) {
	if len(args) == 1 {
		if t, ok := args[0].(Tag); ok {
			return t, nil
		}
	}
	text, ok := oneText(args)
	if !ok || text == "" {
		return shapeError("Tag", "one non-empty name", args), nil
	}
	return Tag(text), nil
}

func makeSym(_ *Module, args []Value) (Value, error) {
	text, ok := oneText(args)
	if !ok || text == "" {
		return shapeError("Sym", "one non-empty name", args), nil
	}
	return Sym(text), nil
}

func makeVar(_ *Module, args []Value) (Value, error) {
	if len(args) == 1 {
		if s, ok := args[0].(Sym); ok {
			return Var(s), nil
		}
	}
	text, ok := oneText(args)
	if !ok || text == "" {
		return shapeError("Var", "one non-empty name", args), nil
	}
	return Var(text), nil
}

func makeBool(_ *Module, args []Value) (Value, error) {
	if len(args) == 1 {
		if b, ok := args[0].(Bool); ok {
			return b, nil
		}
	}
	text, _ := oneText(args)
	switch text {
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	return shapeError("Bool", `"true" or "false"`, args), nil
}

func makeSome(_ *Module, args []Value) (Value, error) {
	if len(args) != 1 {
		return shapeError("Some", "exactly one value", args), nil
	}
	return Some(args[0]), nil
}

func makeNone(_ *Module, args []Value) (Value, error) {
	if len(args) != 0 {
		return shapeError("None", "no arguments", args), nil
	}
	return None(), nil
}

func makeError(_ *Module, args []Value) (Value, error) {
	return &Error{Parts: cloneValues(args)}, nil
}

func makeList(_ *Module, args []Value) (Value, error) {
	return NewList(args...), nil
}

func makeTuple(_ *Module, args []Value) (Value, error) {
	t, err := NewTuple(args...)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func makeSet(_ *Module, args []Value) (Value, error) {
	return NewSet(args...), nil
}

// makeMap takes (key, value) tuples; Sym keys fold to Str in NewMap.
func makeMap(_ *Module, args []Value) (Value, error) {
	entries := make([]MapEntry, 0, len(args))
	for _, a := range args {
		t, ok := a.(*Tuple)
		if !ok || t.Len() != 2 {
			return shapeError("Map", "(key, value) pairs", args), nil
		}
		entries = append(entries, MapEntry{Key: t.At(0), Val: t.At(1)})
	}
	return NewMap(entries...), nil
}

func makeApp(_ *Module, args []Value) (Value, error) {
	if len(args) == 0 {
		return shapeError("App", "a function and its arguments", args), nil
	}
	return NewApp(args[0], args[1:]...), nil
}

// makeFun takes ([params], body) or ([params], body, "name").
func makeFun(_ *Module, args []Value) (Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return shapeError("Fun", "a parameter list and a body", args), nil
	}
	params, ok := symList(args[0])
	if !ok {
		return shapeError("Fun", "a list of symbols as parameters", args), nil
	}
	name := ""
	if len(args) == 3 {
		s, ok := args[2].(Str)
		if !ok {
			return shapeError("Fun", "a string name", args), nil
		}
		name = string(s)
	}
	f, err := NewFun(params, args[1], name)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func makeLet(_ *Module, args []Value) (Value, error) {
	if len(args) != 2 {
		return shapeError("Let", "a binding list and a body", args), nil
	}
	bs, ok := args[0].(*List)
	if !ok {
		return shapeError("Let", "a binding list and a body", args), nil
	}
	return &Let{Bindings: bs.Items(), Body: args[1]}, nil
}

// symList accepts a List whose items are all Sym.
func symList(v Value) ([]Sym, bool) {
	l, ok := v.(*List)
	if !ok {
		return nil, false
	}
	out := make([]Sym, l.Len())
	for i, it := range l.items {
		s, ok := it.(Sym)
		if !ok {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}
