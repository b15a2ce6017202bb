package grim

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func newInterp(t *testing.T, opts ...Option) *Interpreter {
	t.Helper()
	ip, err := NewInterpreter(opts...)
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}
	return ip
}

func evalSrc(t *testing.T, ip *Interpreter, src string) Value {
	t.Helper()
	v, err := ip.EvalSource(src)
	if err != nil {
		t.Fatalf("EvalSource(%q): %v", src, err)
	}
	return v
}

func mustEvalError(t *testing.T, err error, wantSub string) {
	t.Helper()
	var ee *EvalError
	if !errors.As(err, &ee) {
		t.Fatalf("want *EvalError, got %v", err)
	}
	if !strings.Contains(ee.Msg, wantSub) {
		t.Fatalf("message %q does not contain %q", ee.Msg, wantSub)
	}
}

func Test_Interpreter_Symbol_Resolution(t *testing.T) {
	ip := newInterp(t)
	env := NewEnv(map[string]Value{"x": Nat("1")})

	v, err := ip.Eval(Sym("x"), env)
	if err != nil || !v.Equal(Nat("1")) {
		t.Fatalf("x = %v, %v", v, err)
	}
	inner := env.Extend([]string{"x"}, []Value{Str("shadow")})
	if v, _ := ip.Eval(Sym("x"), inner); !v.Equal(Str("shadow")) {
		t.Fatalf("inner binding must shadow, got %s", v)
	}
	_, err = ip.Eval(Sym("nope"), env)
	mustEvalError(t, err, "unbound symbol: nope")
}

func Test_Interpreter_Atoms_Evaluate_To_Themselves(t *testing.T) {
	ip := newInterp(t)
	f, _ := NewFun([]Sym{"x"}, Sym("x"), "")
	for _, v := range []Value{Nat("3"), Str("s"), Tag("Add"), Bool(false), NewList(Sym("unbound")), f, None()} {
		got, err := ip.Eval(v, nil)
		if err != nil || !got.Equal(v) {
			t.Errorf("Eval(%s) = %v, %v", v, got, err)
		}
	}
}

func Test_Interpreter_Applies_Fun(t *testing.T) {
	ip := newInterp(t)
	f, _ := NewFun([]Sym{"x"}, NewApp(Tag("Add"), Sym("x"), Nat("4")), "")
	v, err := ip.Eval(NewApp(f, Nat("3")), ip.Module.Env())
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !v.Equal(Nat("7")) {
		t.Fatalf("got %s, want 7", v)
	}
}

func Test_Interpreter_Arity_Mismatch(t *testing.T) {
	ip := newInterp(t)
	f, _ := NewFun([]Sym{"x", "y"}, Sym("x"), "pair")
	_, err := ip.Eval(NewApp(f, Nat("1")), nil)
	mustEvalError(t, err, "pair expects 2 argument(s), got 1")

	// Arguments are not evaluated when the arity is wrong.
	_, err = ip.Eval(NewApp(f, Sym("unbound")), nil)
	mustEvalError(t, err, "expects 2 argument(s)")
}

func Test_Interpreter_Not_Callable(t *testing.T) {
	ip := newInterp(t)
	_, err := ip.Eval(NewApp(Nat("1"), Nat("2")), nil)
	mustEvalError(t, err, "not callable: 1")

	_, err = ip.Eval(NewApp(Tag("Frob"), Nat("2")), nil)
	mustEvalError(t, err, "not callable: Frob")

	_, err = ip.Apply(Str("f"), nil, nil)
	mustEvalError(t, err, "not callable")
}

func Test_Interpreter_Evaluates_Head(t *testing.T) {
	ip := newInterp(t)
	cases := []struct {
		src  string
		want Value
	}{
		{`inc(41)`, Nat("42")},
		{`apply(inc, 4)`, Nat("5")},
		{`twice(inc, 3)`, Nat("5")},
		{`compose(inc, square, 3)`, Nat("10")},
		{`id(id)(7)`, Nat("7")},
		{`const("a", 1)`, Str("a")},
		{`half(3)`, Rat("3", "2")},
		{`dec(0)`, Int("-1")},
		{`Fun([x], Mul(x, x))(5)`, Nat("25")},
	}
	for _, c := range cases {
		if got := evalSrc(t, ip, c.src); !got.Equal(c.want) {
			t.Errorf("%s = %s, want %s", c.src, got.Canonical(), c.want.Canonical())
		}
	}
}

func Test_Interpreter_Maker_Head_Evaluates_Args(t *testing.T) {
	ip := newInterp(t)
	got := evalSrc(t, ip, `App(List, 1, Add(1, 1))`)
	if want := NewList(Nat("1"), Nat("2")); !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
	// A collection literal is data: its items stay unevaluated.
	got = evalSrc(t, ip, `[Add(1, 1)]`)
	if want := NewList(NewApp(Tag("Add"), Nat("1"), Nat("1"))); !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func Test_Interpreter_Maker_Build_Error_Is_Go_Error(t *testing.T) {
	ip := newInterp(t)
	v, err := ip.Eval(NewApp(Tag("Tuple")), nil)
	var be *BuildError
	if !errors.As(err, &be) {
		t.Fatalf("want *BuildError, got %v, %v", v, err)
	}
}

func Test_Interpreter_Dynamic_Scoping(t *testing.T) {
	ip := newInterp(t)
	src := `
Def(getY, [], y)
Def(withY, [y], getY())
withY(42)
`
	vals, err := ip.RunSource("scope", src)
	if err != nil {
		t.Fatalf("RunSource: %v", err)
	}
	if len(vals) != 1 || !vals[0].Equal(Nat("42")) {
		t.Fatalf("free variables resolve in the caller's environment, got %v", vals)
	}
	_, err = ip.EvalSource(`getY()`)
	mustEvalError(t, err, "unbound symbol: y")
}

func Test_Interpreter_Arithmetic(t *testing.T) {
	ip := newInterp(t)
	cases := []struct {
		src  string
		want Value
	}{
		{`Add(2, 3)`, Nat("5")},
		{`Sub(2, 5)`, Int("-3")},
		{`Sub(5, 2)`, Nat("3")},
		{`Mul(-2, 3)`, Int("-6")},
		{`Div(4, 2)`, Rat("2", "1")},
		{`Div(1, 3)`, Rat("1", "3")},
		{`Div(1.0, 4)`, Dec("0.25")},
		{`Mod(7, 3)`, Nat("1")},
		{`Mod(-7, 3)`, Int("2")},
		{`Mod(7, -3)`, Int("-2")},
		{`Add(1, 2.5)`, Dec("3.5")},
		{`Add(Rat(1, 2), Rat(1, 3))`, Rat("5", "6")},
		{`Add(Rat(1, 2), 1)`, Rat("3", "2")},
		{`Pow(2, 10)`, Nat("1024")},
		{`Pow(-2, 3)`, Int("-8")},
		{`Pow(Rat(1, 2), 2)`, Rat("1", "4")},
		{`Pow(Rat(2, 1), -1)`, Rat("1", "2")},
		{`Neg(5)`, Int("-5")},
		{`Neg(-5)`, Int("5")},
		{`Neg(Rat(1, 2))`, Rat("-1", "2")},
		{`Neg(1.5)`, Dec("-1.5")},
		{`Add(100000000000000000000, 1)`, Nat("100000000000000000001")},
	}
	for _, c := range cases {
		if got := evalSrc(t, ip, c.src); !got.Equal(c.want) {
			t.Errorf("%s = %s, want %s", c.src, got.Canonical(), c.want.Canonical())
		}
	}
}

func Test_Interpreter_Comparison_And_Logic(t *testing.T) {
	ip := newInterp(t)
	cases := []struct {
		src  string
		want bool
	}{
		{`Eq(2, Int(2))`, true},
		{`Eq(1, 1.0)`, true},
		{`Neq(Rat(1, 2), 0.5)`, false},
		{`Lt(1, 2)`, true},
		{`GtEq(-1, 0)`, false},
		{`Lt("apple", "banana")`, true},
		{`Eq("a", "a")`, true},
		{`Eq(Add, Add)`, true},
		{`And(true, Not(false))`, true},
		{`Or(false, Eq(1, 2))`, false},
	}
	for _, c := range cases {
		if got := evalSrc(t, ip, c.src); !got.Equal(Bool(c.want)) {
			t.Errorf("%s = %s, want %v", c.src, got, c.want)
		}
	}
}

func Test_Interpreter_Collections_And_Strings(t *testing.T) {
	ip := newInterp(t)
	cases := []struct {
		src  string
		want Value
	}{
		{`Add("ab", "c")`, Str("abc")},
		{`Len("héllo")`, Nat("5")},
		{`Len([1, 2, 3])`, Nat("3")},
		{`Len(Set(1, 1, 2))`, Nat("2")},
		{`Len({"a": 1})`, Nat("1")},
		{`Len((1, 2))`, Nat("2")},
		{`Add([1], [2, 3])`, NewList(Nat("1"), Nat("2"), Nat("3"))},
	}
	for _, c := range cases {
		if got := evalSrc(t, ip, c.src); !got.Equal(c.want) {
			t.Errorf("%s = %s, want %s", c.src, got.Canonical(), c.want.Canonical())
		}
	}
}

func Test_Interpreter_Data_Errors_Are_Values(t *testing.T) {
	ip := newInterp(t)
	cases := []struct {
		src     string
		wantMsg string
	}{
		{`Div(1, 0)`, "Div: division by zero"},
		{`Mod(1, 0)`, "Mod: division by zero"},
		{`Add("a", 1)`, "no implementation of Add(Str, Nat)"},
		{`Pow(2, Rat(1, 2))`, "Pow: rational exponent must be an integer"},
		{`Add(Div(1, 0), 1)`, "Div: division by zero"},
		{`inc(Div(1, 0))`, "Div: division by zero"},
	}
	for _, c := range cases {
		got := evalSrc(t, ip, c.src)
		e, ok := got.(*Error)
		if !ok {
			t.Errorf("%s: want an Error value, got %s", c.src, got)
			continue
		}
		if !strings.Contains(e.Message(), c.wantMsg) {
			t.Errorf("%s: message %q, want %q", c.src, e.Message(), c.wantMsg)
		}
	}
}

func Test_Interpreter_RunSource_Evaluates_Def_Once(t *testing.T) {
	ip := newInterp(t)
	src := `
Def(x, Add(1, 2))
Add(x, 1)
Def(x, Mul(x, 10))
x
`
	vals, err := ip.RunSource("defs", src)
	if err != nil {
		t.Fatalf("RunSource: %v", err)
	}
	want := []Value{Nat("4"), Nat("30")}
	if len(vals) != len(want) {
		t.Fatalf("got %v", vals)
	}
	for i := range want {
		if !vals[i].Equal(want[i]) {
			t.Fatalf("value %d = %s, want %s", i, vals[i], want[i])
		}
	}
	if v, _ := ip.Module.Resolve("x"); !v.Equal(Nat("30")) {
		t.Fatalf("module binding x = %s", v)
	}
}

func Test_Interpreter_RunSource_Failed_Def_Leaves_No_Binding(t *testing.T) {
	ip := newInterp(t)
	if _, err := ip.RunSource("bad", "Def(x, Add(y, 1))"); err == nil {
		t.Fatalf("want error")
	}
	if v, ok := ip.Module.Resolve("x"); ok {
		t.Fatalf("x is still bound to %s", v)
	}
	_, err := ip.EvalSource("x")
	mustEvalError(t, err, "unbound symbol: x")

	// A failed redefinition keeps the previous value.
	if _, err := ip.RunSource("redef", "Def(x, 5)\nDef(x, Add(y, x))"); err == nil {
		t.Fatalf("want error")
	}
	if v, _ := ip.Module.Resolve("x"); !v.Equal(Nat("5")) {
		t.Fatalf("x = %s, want 5", v)
	}
}

func Test_Interpreter_RunSource_Stops_At_First_Error(t *testing.T) {
	ip := newInterp(t)
	vals, err := ip.RunSource("stop", "Add(1, 1)\nnope\nAdd(2, 2)")
	if err == nil {
		t.Fatalf("want error")
	}
	if len(vals) != 1 || !vals[0].Equal(Nat("2")) {
		t.Fatalf("values before the failure are returned, got %v", vals)
	}
	mustContain(t, err.Error(), "RUNTIME ERROR in stop at 2:1: unbound symbol: nope")
}

func Test_Interpreter_Define_Names_Functions(t *testing.T) {
	ip := newInterp(t)
	node, err := ParseCanonical(`Def(sq, Fun([n], Mul(n, n)))`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := ip.Define(node); err != nil {
		t.Fatalf("Define: %v", err)
	}
	v, _ := ip.Module.Resolve("sq")
	f, ok := v.(*Fun)
	if !ok || f.Name != "sq" {
		t.Fatalf("sq = %v", v)
	}
	_, err = ip.EvalSource(`sq(1, 2)`)
	mustEvalError(t, err, "sq expects 1 argument(s), got 2")
}

func Test_Interpreter_Max_Depth(t *testing.T) {
	ip := newInterp(t, WithMaxDepth(64))
	_, err := ip.RunSource("loop", "Def(loop, [x], loop(x))\nloop(1)")
	mustEvalError(t, err, "maximum evaluation depth 64 exceeded")
}

func Test_Interpreter_Apply(t *testing.T) {
	ip := newInterp(t)
	inc, _ := ip.Module.Resolve("inc")
	cases := []struct {
		fn   Value
		args []Value
		want Value
	}{
		{inc, []Value{Nat("9")}, Nat("10")},
		{Tag("Add"), []Value{Nat("1"), Int("-3")}, Int("-2")},
		{Tag("List"), []Value{Nat("1")}, NewList(Nat("1"))},
	}
	for _, c := range cases {
		got, err := ip.Apply(c.fn, c.args, ip.Module.Env())
		if err != nil || !got.Equal(c.want) {
			t.Errorf("Apply(%s, %v) = %v, %v; want %s", c.fn, c.args, got, err, c.want)
		}
	}
}

func Test_Interpreter_For_Existing_Module(t *testing.T) {
	m := newBootModule(t)
	if err := m.AddOneDefinition(`Def(seven, 7)`); err != nil {
		t.Fatalf("AddOneDefinition: %v", err)
	}
	ip := NewInterpreterFor(m)
	if got := evalSrc(t, ip, `inc(seven)`); !got.Equal(Nat("8")) {
		t.Fatalf("got %s", got)
	}
}
