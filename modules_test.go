package grim

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
)

// newBareModule has the core makers only.
func newBareModule(t *testing.T) *Module {
	t.Helper()
	m, err := NewModule(WithoutBoot())
	if err != nil {
		t.Fatalf("NewModule: %v", err)
	}
	return m
}

func newBootModule(t *testing.T) *Module {
	t.Helper()
	m, err := NewModule()
	if err != nil {
		t.Fatalf("NewModule: %v", err)
	}
	return m
}

func mustConfigError(t *testing.T, err error) {
	t.Helper()
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("want *ConfigError, got %v", err)
	}
}

func noop(_ *Module, args []Value) Value { return args[0] }

func Test_Module_Role_Exclusivity(t *testing.T) {
	m := newBareModule(t)

	// Str is a maker in every module.
	mustConfigError(t, m.AddCallableTag([]string{"Str", "Nat"}, noop))

	if err := m.AddCallableTag([]string{"Twice", "Nat"}, noop); err != nil {
		t.Fatalf("AddCallableTag: %v", err)
	}
	mustConfigError(t, m.AddMaker("Twice", makeList))
	mustConfigError(t, m.AddMacroRule("Twice", nil, Nat("1")))

	if err := m.AddMaker("Point", makeTuple); err != nil {
		t.Fatalf("AddMaker: %v", err)
	}
	mustConfigError(t, m.AddCallableTag([]string{"Point", "Nat", "Nat"}, noop))
	mustConfigError(t, m.AddMaker("Point", makeList))

	if m.RoleOf("Twice") != RoleMultiDispatch || m.RoleOf("Point") != RoleMaker {
		t.Fatalf("roles changed after failed registrations")
	}
	if len(m.Signatures("Twice")) != 1 {
		t.Fatalf("signatures changed after failed registrations: %v", m.Signatures("Twice"))
	}
}

func Test_Module_Signature_Needs_Op_And_Type(t *testing.T) {
	m := newBareModule(t)
	mustConfigError(t, m.AddCallableTag([]string{"Mul"}, noop))
	mustConfigError(t, m.AddCallableTag(nil, noop))
	mustConfigError(t, m.AddCallableTag([]string{"Mul", ""}, noop))
	if m.RoleOf("Mul") != RoleNone {
		t.Fatalf("a rejected signature must not claim the tag")
	}
}

func Test_Module_Duplicate_Signature_Rejected(t *testing.T) {
	m := newBareModule(t)
	if err := m.AddCallableTag([]string{"Mul", "Nat", "Nat"}, noop); err != nil {
		t.Fatalf("AddCallableTag: %v", err)
	}
	mustConfigError(t, m.AddCallableTag([]string{"Mul", "Nat", "Nat"}, noop))
	if err := m.AddCallableTag([]string{"Mul", "Int", "Int"}, noop); err != nil {
		t.Fatalf("second signature of the same op: %v", err)
	}
}

func Test_Module_EqNeq_Pair(t *testing.T) {
	m := newBareModule(t)
	mustConfigError(t, m.AddCallableTagEqNeqPair([]string{"Same", "Str", "Str"}, structuralEq))
	if err := m.AddCallableTagEqNeqPair([]string{"Eq", "Str", "Str"}, structuralEq); err != nil {
		t.Fatalf("AddCallableTagEqNeqPair: %v", err)
	}
	cases := []struct {
		op   string
		a, b Value
		want Bool
	}{
		{"Eq", Str("a"), Str("a"), true},
		{"Eq", Str("a"), Str("b"), false},
		{"Neq", Str("a"), Str("a"), false},
		{"Neq", Str("a"), Str("b"), true},
	}
	for _, c := range cases {
		if got := m.Dispatch(c.op, []Value{c.a, c.b}); !got.Equal(c.want) {
			t.Errorf("%s(%s, %s) = %s, want %s", c.op, c.a, c.b, got, c.want)
		}
	}
}

func Test_Module_Casts(t *testing.T) {
	m := newBootModule(t)
	if !m.HasCast(TInt, TNat) || !m.HasCast(TDec, TRat) {
		t.Fatalf("boot casts missing: %v", m.Casts())
	}
	if m.HasCast(TNat, TInt) {
		t.Fatalf("casts are directed")
	}
	if !m.CanWiden(TNat, TDec) || !m.CanWiden(TStr, TStr) || m.CanWiden(TDec, TNat) {
		t.Fatalf("CanWiden is the reflexive-transitive closure")
	}
	mustConfigError(t, m.AddCast(TNat, TDec))
	mustConfigError(t, m.AddCast(TNat, TNat))
	mustConfigError(t, m.AddCast("", TNat))
	if err := m.AddCast(TInt, TNat); err != nil {
		t.Fatalf("re-adding an existing edge is harmless: %v", err)
	}
}

func Test_Module_Dispatch_Widens_Through_Casts(t *testing.T) {
	m := newBootModule(t)
	cases := []struct {
		op      string
		args    []Value
		wantSig string
		want    Value
	}{
		{"Add", []Value{Nat("2"), Nat("3")}, "Add(Nat, Nat)", Nat("5")},
		{"Add", []Value{Nat("2"), Int("-5")}, "Add(Int, Int)", Int("-3")},
		{"Add", []Value{Nat("1"), Dec("0.5")}, "Add(Dec, Dec)", Dec("1.5")},
		{"Mul", []Value{Int("-2"), Rat("1", "4")}, "Mul(Rat, Rat)", Rat("-1", "2")},
		{"Eq", []Value{Nat("2"), Rat("4", "2")}, "Eq(Rat, Rat)", Bool(true)},
		{"Lt", []Value{Rat("1", "3"), Dec("0.3")}, "Lt(Dec, Dec)", Bool(false)},
	}
	for _, c := range cases {
		_, sig, ok := m.Lookup(c.op, c.args)
		if !ok || sig.String() != c.wantSig {
			t.Errorf("Lookup %s%v = %s, %v; want %s", c.op, c.args, sig, ok, c.wantSig)
			continue
		}
		if got := m.Dispatch(c.op, c.args); !got.Equal(c.want) {
			t.Errorf("%s%v = %s, want %s", c.op, c.args, got, c.want)
		}
	}
}

func Test_Module_Missing_Signature_Is_Error_Value(t *testing.T) {
	m := newBootModule(t)
	got := m.Dispatch("Add", []Value{Str("a"), Nat("1")})
	e, ok := got.(*Error)
	if !ok {
		t.Fatalf("want *Error value, got %s", got)
	}
	if !strings.Contains(e.Message(), "Add(Str, Nat)") {
		t.Fatalf("message should name the signature: %s", e.Message())
	}
	if _, _, ok := m.Lookup("Nope", []Value{Nat("1")}); ok {
		t.Fatalf("unknown op must not resolve")
	}
}

func Test_Module_IsCallable(t *testing.T) {
	boot := newBootModule(t)
	bare := newBareModule(t)
	id, _ := NewFun([]Sym{"x"}, Sym("x"), "")
	cases := []struct {
		m    *Module
		v    Value
		want bool
	}{
		{boot, Tag("Add"), true},
		{boot, Tag("Some"), true},
		{boot, Tag("Nope"), false},
		{boot, id, true},
		{boot, Str("Add"), false},
		{boot, Sym("id"), false},
		{bare, Tag("Add"), false},
		{bare, Tag("List"), true},
	}
	for _, c := range cases {
		if got := c.m.IsCallable(c.v); got != c.want {
			t.Errorf("IsCallable(%s) = %v, want %v", c.v, got, c.want)
		}
	}
}

func Test_Module_FromAst_Unknown_Tag_Becomes_App(t *testing.T) {
	m := newBootModule(t)
	v, err := m.FromAst(Tagged("Frob", &AstStr{Text: "a"}))
	if err != nil {
		t.Fatalf("FromAst: %v", err)
	}
	want := NewApp(Tag("Frob"), Str("a"))
	if !v.Equal(want) {
		t.Fatalf("got %s, want %s", v, want)
	}
	// Operators have no maker either: Add(1, 2) builds unevaluated.
	v, _ = m.FromAst(Tagged("Add", Tagged("Nat", &AstStr{Text: "1"}), Tagged("Nat", &AstStr{Text: "2"})))
	if _, ok := v.(*App); !ok {
		t.Fatalf("Add(1, 2) should build to an App, got %T", v)
	}
}

func Test_Module_Makers_Return_Error_Values(t *testing.T) {
	m := newBareModule(t)
	cases := []Ast{
		Tagged("Nat", str("1"), str("2")),
		Tagged("Nat", str("abc")),
		Tagged("Int", str("1.5")),
		Tagged("Bool", str("maybe")),
		Tagged("Rat", str("1"), str("0")),
		Tagged("Map", str("not a pair")),
		Tagged("Fun", str("x"), str("body")),
		Tagged("Some"),
		Tagged("None", str("x")),
		Tagged("Sym", &AstTag{Name: "X"}),
	}
	for _, c := range cases {
		v, err := m.FromAst(c)
		if err != nil {
			t.Errorf("%s: want an Error value, got Go error %v", c, err)
			continue
		}
		if !IsError(v) {
			t.Errorf("%s: want an Error value, got %s", c, v)
		}
	}
}

func Test_Module_Macro_Rules_Are_Registered(t *testing.T) {
	m := newBootModule(t)
	src := `
DefMacroMatchRule(Double, [x], Add(x, x))
DefMacroMatchRule(Double, [Nat(0)], 0)
`
	if err := m.AddDefinitions("macros", src); err != nil {
		t.Fatalf("AddDefinitions: %v", err)
	}
	rules := m.MacroRules("Double")
	if len(rules) != 2 {
		t.Fatalf("want 2 rules, got %d", len(rules))
	}
	if got := rules[0].String(); got != "[x] => Add(x, x)" {
		t.Fatalf("first rule: %s", got)
	}
	if m.RoleOf("Double") != RoleMacroRules || m.IsCallable(Tag("Double")) {
		t.Fatalf("macro tags are not callable")
	}
	if got := m.Tags(RoleMacroRules); len(got) != 1 || got[0] != "Double" {
		t.Fatalf("Tags(MacroRules) = %v", got)
	}
}
