package grim

import (
	"testing"

	"github.com/pkg/errors"
)

func Test_Numeric_Normalisation(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Nat(" 007 "), "7"},
		{Int("-0"), "0"},
		{Int("+12"), "12"},
		{Rat("4", "-8"), "-1/2"},
		{Dec("1.500"), "1.5"},
		{Dec("-0.0"), "0"},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("%#v: got %s, want %s", c.v, got, c.want)
		}
	}
}

func Test_Numeric_Natural_Rejects_Negative(t *testing.T) {
	_, err := NewNatural("-3")
	var be *BuildError
	if !errors.As(err, &be) {
		t.Fatalf("want *BuildError, got %v", err)
	}
	if _, err := NewNatural("12a"); err == nil {
		t.Fatalf("want error for malformed digits")
	}
}

func Test_Numeric_Integer_Negation_Toggles_Sign(t *testing.T) {
	if got := Int("5").Neg(); got != Int("-5") {
		t.Fatalf("Neg(5) = %s", got)
	}
	if got := Int("-5").Neg(); got != Int("5") || got.IsNegative() {
		t.Fatalf("Neg(-5) = %s", got)
	}
	if got := Int("0").Neg(); got != Int("0") {
		t.Fatalf("Neg(0) = %s", got)
	}
}

func Test_Numeric_Decimal_Exponent_Bound(t *testing.T) {
	m := newBootModule(t)
	v, err := m.MakeFromValues("Dec", []Value{Str("1E+1000000000")})
	if err != nil {
		t.Fatalf("MakeFromValues: %v", err)
	}
	if !IsError(v) {
		t.Fatalf("want an Error value, got %T", v)
	}
	if _, err := NewDecimal("1E-1000000000"); err == nil {
		t.Fatalf("want error for a huge negative exponent")
	}
}

func Test_Numeric_Rational_Zero_Denominator(t *testing.T) {
	if _, err := NewRational(Int("1"), Int("0")); err == nil {
		t.Fatalf("want error for zero denominator")
	}
}

func Test_Numeric_Widening_Helpers(t *testing.T) {
	if r, ok := asRational(Int("-3")); !ok || r != Rat("-3", "1") {
		t.Fatalf("asRational(-3) = %v, %v", r, ok)
	}
	if _, ok := asInteger(Rat("1", "2")); ok {
		t.Fatalf("rationals must not narrow to integers")
	}
	m := newBareModule(t)
	if d, ok := asDecimal(m.num, Rat("1", "4")); !ok || d != Dec("0.25") {
		t.Fatalf("asDecimal(1/4) = %v, %v", d, ok)
	}
}
