package grim

import (
	"reflect"
	"testing"
)

func Test_Types_Widen_Steps(t *testing.T) {
	m := newBootModule(t)
	cases := []struct {
		from, to TypeTag
		want     int
	}{
		{TNat, TNat, 0},
		{TNat, TInt, 1},
		{TNat, TRat, 1},
		{TInt, TDec, 1},
		{TStr, TNat, -1},
		{TRat, TInt, -1},
	}
	for _, c := range cases {
		if got := m.widenSteps(c.from, c.to); got != c.want {
			t.Errorf("widenSteps(%s, %s) = %d, want %d", c.from, c.to, got, c.want)
		}
	}
}

func Test_Types_Widen_Through_Chain(t *testing.T) {
	m := newBareModule(t)
	for _, e := range [][2]TypeTag{{"B", "A"}, {"C", "B"}, {"D", "C"}} {
		if err := m.AddCast(e[0], e[1]); err != nil {
			t.Fatalf("AddCast: %v", err)
		}
	}
	if got := m.widenSteps("A", "D"); got != 3 {
		t.Fatalf("A -> D = %d steps, want 3", got)
	}
	if m.HasCast("D", "A") {
		t.Fatalf("only direct edges count for HasCast")
	}
	mustConfigError(t, m.AddCast("A", "D"))
}

func Test_Types_Casts_Sorted(t *testing.T) {
	m := newBootModule(t)
	want := []CastEdge{
		{TDec, TInt}, {TDec, TNat}, {TDec, TRat},
		{TInt, TNat},
		{TRat, TInt}, {TRat, TNat},
	}
	if got := m.Casts(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Casts = %v", got)
	}
}

// With equal widening cost the earlier registration wins.
func Test_Types_Dispatch_Tie_Goes_To_First_Registered(t *testing.T) {
	m := newBareModule(t)
	if err := m.AddCast(TRat, TNat); err != nil {
		t.Fatal(err)
	}
	if err := m.AddCast(TDec, TNat); err != nil {
		t.Fatal(err)
	}
	if err := m.AddCallableTag([]string{"Show", "Dec"}, func(*Module, []Value) Value { return Str("dec") }); err != nil {
		t.Fatal(err)
	}
	if err := m.AddCallableTag([]string{"Show", "Rat"}, func(*Module, []Value) Value { return Str("rat") }); err != nil {
		t.Fatal(err)
	}
	if got := m.Dispatch("Show", []Value{Nat("1")}); !got.Equal(Str("dec")) {
		t.Fatalf("got %s", got)
	}
	if got := m.Dispatch("Show", []Value{Rat("1", "2")}); !got.Equal(Str("rat")) {
		t.Fatalf("exact match must win, got %s", got)
	}
}

func Test_Types_Widen_Over_Edge_Snapshot(t *testing.T) {
	edges := []CastEdge{{TInt, TNat}, {TRat, TInt}, {TDec, TRat}}
	cases := []struct {
		from, to TypeTag
		want     int
	}{
		{TNat, TNat, 0},
		{TNat, TDec, 3},
		{TInt, TRat, 1},
		{TDec, TNat, -1},
	}
	for _, c := range cases {
		if got := widenOver(edges, c.from, c.to); got != c.want {
			t.Errorf("widenOver(%s, %s) = %d, want %d", c.from, c.to, got, c.want)
		}
	}
	if got := widenOver(nil, TNat, TInt); got != -1 {
		t.Fatalf("no edges: %d", got)
	}
}
