package grim

// Boolean connectives and collection helpers.

func registerCoreBuiltins(r *registrar) {
	r.op(func(_ *Module, args []Value) Value {
		b, ok := args[0].(Bool)
		if !ok {
			return operandError("Not", args)
		}
		return !b
	}, "Not", "Bool")
	r.op(boolBinary("And", func(a, b Bool) Bool { return a && b }), "And", "Bool", "Bool")
	r.op(boolBinary("Or", func(a, b Bool) Bool { return a || b }), "Or", "Bool", "Bool")

	// Add(List, List) appends.
	r.op(func(_ *Module, args []Value) Value {
		a, ok1 := args[0].(*List)
		b, ok2 := args[1].(*List)
		if !ok1 || !ok2 {
			return operandError("Add", args)
		}
		items := make([]Value, 0, a.Len()+b.Len())
		items = append(items, a.items...)
		items = append(items, b.items...)
		return &List{items: items}
	}, "Add", "List", "List")

	r.op(lenOf, "Len", "List")
	r.op(lenOf, "Len", "Tuple")
	r.op(lenOf, "Len", "Set")
	r.op(lenOf, "Len", "Map")
}

func boolBinary(op string, f func(a, b Bool) Bool) Impl {
	return func(_ *Module, args []Value) Value {
		a, ok1 := args[0].(Bool)
		b, ok2 := args[1].(Bool)
		if !ok1 || !ok2 {
			return operandError(op, args)
		}
		return f(a, b)
	}
}

// lenOf counts elements (List, Tuple, Set) or entries (Map).
func lenOf(_ *Module, args []Value) Value {
	var n int
	switch x := args[0].(type) {
	case *List:
		n = x.Len()
	case *Tuple:
		n = x.Len()
	case *Set:
		n = x.Len()
	case *Map:
		n = x.Len()
	default:
		return operandError("Len", args)
	}
	return natFromInt(n)
}
