package grim

import (
	"sort"

	"golang.org/x/exp/maps"
)

// Env is a persistent environment: a chain of immutable frames. Extending
// an environment allocates a new frame that shares its parent; no frame is
// modified after construction, so environments can be shared freely.
//
// The nil *Env is the empty environment.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv returns a root environment holding bindings (copied).
func NewEnv(bindings map[string]Value) *Env {
	if len(bindings) == 0 {
		return nil
	}
	return &Env{table: maps.Clone(bindings)}
}

// Extend returns a child environment binding names[i] to vals[i].
// The slices must have equal length.
func (e *Env) Extend(names []string, vals []Value) *Env {
	if len(names) != len(vals) {
		panic("grim: Env.Extend called with mismatched names and values")
	}
	if len(names) == 0 {
		return e
	}
	t := make(map[string]Value, len(names))
	for i, n := range names {
		t[n] = vals[i]
	}
	return &Env{parent: e, table: t}
}

// Bind returns a child environment with one additional binding.
func (e *Env) Bind(name string, v Value) *Env {
	return &Env{parent: e, table: map[string]Value{name: v}}
}

// Get retrieves the nearest visible binding for name.
func (e *Env) Get(name string) (Value, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.table[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Names lists every visible name once, sorted.
func (e *Env) Names() []string {
	seen := map[string]struct{}{}
	for f := e; f != nil; f = f.parent {
		for n := range f.table {
			seen[n] = struct{}{}
		}
	}
	names := maps.Keys(seen)
	sort.Strings(names)
	return names
}
