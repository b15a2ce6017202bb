// numeric.go — the numeric tower: Natural, Integer, Rational, Decimal
//
// Numbers are stored as normalised decimal strings, never as host machine
// integers, so precision is unbounded. Normalisation happens once, at
// construction, through the arbitrary-precision backend (internal/bignum):
//
//	Natural   "007"      -> "7"         non-negative integers
//	Integer   "-0"       -> "0"         signed integers
//	Rational  4/-8       -> -1/2        lowest terms, positive denominator
//	Decimal   "1.50"     -> "1.5"       trailing zeros dropped
//
// Because spellings are normal forms, structural equality on numbers is
// string equality and canonical strings are unique per value.
//
// Arithmetic lives in builtin_arith.go; the widening helpers used by the
// operator implementations (asInteger, asRational, asDecimal) live here.
package grim

import (
	"strings"

	"github.com/jupdike/grimjs-sub000/internal/bignum"
)

// Natural is a non-negative integer of unbounded size.
type Natural struct{ digits string }

// Integer is a signed integer of unbounded size.
type Integer struct{ digits string }

// Rational is Num/Den in lowest terms with Den > 0.
type Rational struct {
	Num Integer
	Den Integer
}

// Decimal is an arbitrary-precision decimal number.
type Decimal struct{ digits string }

// normaliser is precision independent; every backend normalises alike.
var normaliser = bignum.New(0)

// NewNatural parses a non-negative integer literal.
func NewNatural(s string) (Natural, error) {
	if strings.HasPrefix(strings.TrimSpace(s), "-") {
		return Natural{}, buildErrorf(Span{}, "natural number cannot be negative: %q", strings.TrimSpace(s))
	}
	d, err := normaliser.NormInt(s)
	if err != nil {
		return Natural{}, err
	}
	return Natural{digits: d}, nil
}

// NewInteger parses a signed integer literal.
func NewInteger(s string) (Integer, error) {
	d, err := normaliser.NormInt(s)
	if err != nil {
		return Integer{}, err
	}
	return Integer{digits: d}, nil
}

// NewRational builds num/den reduced to lowest terms.
func NewRational(num, den Integer) (Rational, error) {
	f, err := normaliser.NormRat(bignum.Fraction{Num: num.digits, Den: den.digits})
	if err != nil {
		return Rational{}, err
	}
	return ratFromFraction(f), nil
}

// NewDecimal parses a decimal literal.
func NewDecimal(s string) (Decimal, error) {
	d, err := normaliser.NormDec(s)
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{digits: d}, nil
}

// Nat, Int, Rat and Dec are panicking shorthands for literals known to be
// well formed (tests, boot code).
func Nat(s string) Natural {
	n, err := NewNatural(s)
	if err != nil {
		panic(err)
	}
	return n
}

func Int(s string) Integer {
	n, err := NewInteger(s)
	if err != nil {
		panic(err)
	}
	return n
}

func Rat(num, den string) Rational {
	r, err := NewRational(Int(num), Int(den))
	if err != nil {
		panic(err)
	}
	return r
}

func Dec(s string) Decimal {
	d, err := NewDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Digits returns the normalised spelling.
func (n Natural) Digits() string { return n.digits }
func (n Integer) Digits() string { return n.digits }
func (d Decimal) Digits() string { return d.digits }

// IsNegative reports whether the integer carries the sign marker.
func (n Integer) IsNegative() bool { return strings.HasPrefix(n.digits, "-") }

// Neg toggles the sign marker. Negating a negative integer strips the
// marker; zero stays unsigned.
func (n Integer) Neg() Integer {
	switch {
	case n.IsNegative():
		return Integer{digits: n.digits[1:]}
	case n.digits == "0":
		return n
	default:
		return Integer{digits: "-" + n.digits}
	}
}

func (Natural) Type() TypeTag  { return TNat }
func (Integer) Type() TypeTag  { return TInt }
func (Rational) Type() TypeTag { return TRat }
func (Decimal) Type() TypeTag  { return TDec }

func (n Natural) String() string  { return n.digits }
func (n Integer) String() string  { return n.digits }
func (r Rational) String() string { return r.Num.digits + "/" + r.Den.digits }
func (d Decimal) String() string  { return d.digits }

func (n Natural) Canonical() string { return n.digits }
func (n Integer) Canonical() string {
	if n.IsNegative() {
		return n.digits
	}
	return "Int(" + n.digits + ")"
}
func (r Rational) Canonical() string {
	return "Rat(" + r.Num.digits + ", " + r.Den.digits + ")"
}
func (d Decimal) Canonical() string {
	if strings.Contains(d.digits, ".") {
		return d.digits
	}
	return d.digits + ".0"
}

func (n Natural) Equal(o Value) bool  { x, ok := o.(Natural); return ok && x == n }
func (n Integer) Equal(o Value) bool  { x, ok := o.(Integer); return ok && x == n }
func (r Rational) Equal(o Value) bool { x, ok := o.(Rational); return ok && x == r }
func (d Decimal) Equal(o Value) bool  { x, ok := o.(Decimal); return ok && x == d }

func (Natural) isValue()  {}
func (Integer) isValue()  {}
func (Rational) isValue() {}
func (Decimal) isValue()  {}

//// END_OF_PUBLIC

func ratFromFraction(f bignum.Fraction) Rational {
	return Rational{Num: Integer{digits: f.Num}, Den: Integer{digits: f.Den}}
}

func (r Rational) fraction() bignum.Fraction {
	return bignum.Fraction{Num: r.Num.digits, Den: r.Den.digits}
}

// natOrInt wraps an integer result as Natural when non-negative.
func natOrInt(digits string) Value {
	if strings.HasPrefix(digits, "-") {
		return Integer{digits: digits}
	}
	return Natural{digits: digits}
}

// asInteger widens Natural to Integer.
func asInteger(v Value) (Integer, bool) {
	switch x := v.(type) {
	case Integer:
		return x, true
	case Natural:
		return Integer{digits: x.digits}, true
	}
	return Integer{}, false
}

// asRational widens Natural and Integer to Rational.
func asRational(v Value) (Rational, bool) {
	switch x := v.(type) {
	case Rational:
		return x, true
	case Natural, Integer:
		n, _ := asInteger(x)
		return Rational{Num: n, Den: Integer{digits: "1"}}, true
	}
	return Rational{}, false
}

// asDecimal widens Natural, Integer and Rational to Decimal. Rationals are
// divided out in b's decimal context.
func asDecimal(b *bignum.Backend, v Value) (Decimal, bool) {
	switch x := v.(type) {
	case Decimal:
		return x, true
	case Natural:
		return Decimal{digits: x.digits}, true
	case Integer:
		return Decimal{digits: x.digits}, true
	case Rational:
		s, err := b.RatToDec(x.fraction())
		if err != nil {
			return Decimal{}, false
		}
		return Decimal{digits: s}, true
	}
	return Decimal{}, false
}
