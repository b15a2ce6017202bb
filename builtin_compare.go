package grim

// Equality and ordering. Eq/Neq are registered in pairs; numeric comparisons
// widen both operands to the signature's type first, so Eq(Int, Int) also
// answers Eq(Nat(2), Int(2)). Str ordering is locale aware through the
// module's collator; Str equality stays exact.

var orderOps = []struct {
	name string
	test func(c int) bool
}{
	{"Lt", func(c int) bool { return c < 0 }},
	{"LtEq", func(c int) bool { return c <= 0 }},
	{"Gt", func(c int) bool { return c > 0 }},
	{"GtEq", func(c int) bool { return c >= 0 }},
}

func registerCompareBuiltins(r *registrar) {
	for _, t := range []TypeTag{TNat, TInt, TRat, TDec} {
		r.eqPair(numericEq(t), "Eq", string(t), string(t))
	}
	for _, t := range []TypeTag{TStr, TBool, TTag} {
		r.eqPair(structuralEq, "Eq", string(t), string(t))
	}
	for _, o := range orderOps {
		for _, t := range []TypeTag{TNat, TInt, TRat, TDec, TStr} {
			r.op(ordering(o.name, t, o.test), o.name, string(t), string(t))
		}
	}
}

func structuralEq(_ *Module, args []Value) Value {
	return Bool(args[0].Equal(args[1]))
}

func numericEq(t TypeTag) Impl {
	return func(m *Module, args []Value) Value {
		c, ok := m.compareAs(t, args[0], args[1])
		if !ok {
			return operandError("Eq", args)
		}
		return Bool(c == 0)
	}
}

func ordering(op string, t TypeTag, test func(int) bool) Impl {
	return func(m *Module, args []Value) Value {
		c, ok := m.compareAs(t, args[0], args[1])
		if !ok {
			return operandError(op, args)
		}
		return Bool(test(c))
	}
}

// compareAs orders a and b after widening both to t.
func (m *Module) compareAs(t TypeTag, a, b Value) (int, bool) {
	switch t {
	case TNat, TInt:
		x, ok1 := asInteger(a)
		y, ok2 := asInteger(b)
		if !ok1 || !ok2 {
			return 0, false
		}
		c, err := m.num.IntCmp(x.digits, y.digits)
		return c, err == nil
	case TRat:
		x, ok1 := asRational(a)
		y, ok2 := asRational(b)
		if !ok1 || !ok2 {
			return 0, false
		}
		c, err := m.num.RatCmp(x.fraction(), y.fraction())
		return c, err == nil
	case TDec:
		x, ok1 := asDecimal(m.num, a)
		y, ok2 := asDecimal(m.num, b)
		if !ok1 || !ok2 {
			return 0, false
		}
		c, err := m.num.DecCmp(x.digits, y.digits)
		return c, err == nil
	case TStr:
		x, ok1 := a.(Str)
		y, ok2 := b.(Str)
		if !ok1 || !ok2 {
			return 0, false
		}
		return m.coll.CompareString(string(x), string(y)), true
	}
	return 0, false
}
