package grim

import (
	"strconv"
	"unicode/utf8"
)

func registerStringBuiltins(r *registrar) {
	// Add(Str, Str) concatenates.
	r.op(func(_ *Module, args []Value) Value {
		a, ok1 := args[0].(Str)
		b, ok2 := args[1].(Str)
		if !ok1 || !ok2 {
			return operandError("Add", args)
		}
		return a + b
	}, "Add", "Str", "Str")

	// Len(Str) counts runes, not bytes.
	r.op(func(_ *Module, args []Value) Value {
		s, ok := args[0].(Str)
		if !ok {
			return operandError("Len", args)
		}
		return natFromInt(utf8.RuneCountInString(string(s)))
	}, "Len", "Str")
}

func natFromInt(n int) Natural { return Natural{digits: strconv.Itoa(n)} }
