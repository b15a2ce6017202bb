package grim

import (
	"github.com/jupdike/grimjs-sub000/internal/bignum"
)

// Arithmetic over the numeric tower. Every implementation widens its operands
// to the signature's type (asInteger, asRational, asDecimal) so it also
// serves narrower argument types reached through cast edges. Backend failures
// (division by zero, oversized exponents) come back as Error values.

type (
	intFn = func(b *bignum.Backend, x, y string) (string, error)
	ratFn = func(b *bignum.Backend, x, y bignum.Fraction) (bignum.Fraction, error)
	decFn = func(b *bignum.Backend, x, y string) (string, error)
)

func registerArithBuiltins(r *registrar) {
	for _, op := range []struct {
		name string
		i    intFn
		q    ratFn
		d    decFn
	}{
		{"Add", (*bignum.Backend).IntAdd, (*bignum.Backend).RatAdd, (*bignum.Backend).DecAdd},
		{"Sub", (*bignum.Backend).IntSub, (*bignum.Backend).RatSub, (*bignum.Backend).DecSub},
		{"Mul", (*bignum.Backend).IntMul, (*bignum.Backend).RatMul, (*bignum.Backend).DecMul},
	} {
		r.op(intBinary(op.name, op.i, natOrInt), op.name, "Nat", "Nat")
		r.op(intBinary(op.name, op.i, intValue), op.name, "Int", "Int")
		r.op(ratBinary(op.name, op.q), op.name, "Rat", "Rat")
		r.op(decBinary(op.name, op.d), op.name, "Dec", "Dec")
	}

	r.op(intBinary("Pow", (*bignum.Backend).IntPow, natOrInt), "Pow", "Nat", "Nat")
	r.op(intBinary("Pow", (*bignum.Backend).IntPow, intValue), "Pow", "Int", "Int")
	r.op(ratPow, "Pow", "Rat", "Rat")
	r.op(decBinary("Pow", (*bignum.Backend).DecPow), "Pow", "Dec", "Dec")

	// Div never narrows: exact quotients of integers are still rationals.
	quo := ratBinary("Div", (*bignum.Backend).RatQuo)
	r.op(quo, "Div", "Nat", "Nat")
	r.op(quo, "Div", "Int", "Int")
	r.op(quo, "Div", "Rat", "Rat")
	r.op(decBinary("Div", (*bignum.Backend).DecQuo), "Div", "Dec", "Dec")

	r.op(intBinary("Mod", (*bignum.Backend).IntMod, natOrInt), "Mod", "Nat", "Nat")
	r.op(intBinary("Mod", (*bignum.Backend).IntMod, intValue), "Mod", "Int", "Int")

	r.op(negInt, "Neg", "Nat")
	r.op(negInt, "Neg", "Int")
	r.op(negRat, "Neg", "Rat")
	r.op(negDec, "Neg", "Dec")
}

func intValue(digits string) Value { return Integer{digits: digits} }

func operandError(op string, args []Value) Value {
	return NewError(op+": unsupported operands", args...)
}

func backendError(op string, err error, args []Value) Value {
	return NewError(op+": "+err.Error(), args...)
}

func intBinary(op string, f intFn, wrap func(string) Value) Impl {
	return func(m *Module, args []Value) Value {
		x, ok1 := asInteger(args[0])
		y, ok2 := asInteger(args[1])
		if !ok1 || !ok2 {
			return operandError(op, args)
		}
		s, err := f(m.num, x.digits, y.digits)
		if err != nil {
			return backendError(op, err, args)
		}
		return wrap(s)
	}
}

func ratBinary(op string, f ratFn) Impl {
	return func(m *Module, args []Value) Value {
		x, ok1 := asRational(args[0])
		y, ok2 := asRational(args[1])
		if !ok1 || !ok2 {
			return operandError(op, args)
		}
		q, err := f(m.num, x.fraction(), y.fraction())
		if err != nil {
			return backendError(op, err, args)
		}
		return ratFromFraction(q)
	}
}

func decBinary(op string, f decFn) Impl {
	return func(m *Module, args []Value) Value {
		x, ok1 := asDecimal(m.num, args[0])
		y, ok2 := asDecimal(m.num, args[1])
		if !ok1 || !ok2 {
			return operandError(op, args)
		}
		s, err := f(m.num, x.digits, y.digits)
		if err != nil {
			return backendError(op, err, args)
		}
		return Decimal{digits: s}
	}
}

// ratPow accepts only integral exponents.
func ratPow(m *Module, args []Value) Value {
	x, ok1 := asRational(args[0])
	e, ok2 := asRational(args[1])
	if !ok1 || !ok2 {
		return operandError("Pow", args)
	}
	if e.Den.digits != "1" {
		return NewError("Pow: rational exponent must be an integer", args...)
	}
	q, err := m.num.RatPow(x.fraction(), e.Num.digits)
	if err != nil {
		return backendError("Pow", err, args)
	}
	return ratFromFraction(q)
}

// negInt also serves Nat: the negation of a natural is an integer.
func negInt(_ *Module, args []Value) Value {
	n, ok := asInteger(args[0])
	if !ok {
		return operandError("Neg", args)
	}
	return n.Neg()
}

func negRat(_ *Module, args []Value) Value {
	q, ok := asRational(args[0])
	if !ok {
		return operandError("Neg", args)
	}
	return Rational{Num: q.Num.Neg(), Den: q.Den}
}

func negDec(m *Module, args []Value) Value {
	d, ok := asDecimal(m.num, args[0])
	if !ok {
		return operandError("Neg", args)
	}
	s, err := m.num.DecNeg(d.digits)
	if err != nil {
		return backendError("Neg", err, args)
	}
	return Decimal{digits: s}
}
