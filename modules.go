// modules.go — the Grim dispatch registry (public API + private implementation)
//
// OVERVIEW
// --------
// A Module is the single source of truth for everything the builder and the
// evaluator need to know about tags:
//
//	roles    Tag -> {Maker, MultiDispatch, MacroRules}
//	makers   Tag -> Maker                     (makers.go)
//	ops      Op  -> [(Signature, Impl)]       multi-dispatch table
//	casts    set of (Wider, Narrower) edges   (types.go)
//	macros   Tag -> [MacroRule]               (macros.go)
//	env      persistent module environment    (definitions.go)
//
// ROLE INVARIANT
// --------------
// Each tag name serves exactly one role for the lifetime of the module. The
// first registration fixes it; registering the same tag under another role is
// a *ConfigError and leaves the module unchanged. Nothing is ever silently
// overwritten.
//
// DISPATCH
// --------
// An operator call Op(a1..an) is resolved by the argument types
// (a1.Type()..an.Type()):
//
//  1. an exact signature match wins;
//  2. otherwise every registered signature of the same arity whose parameter
//     types can be reached from the argument types through cast edges is a
//     candidate; the one needing the fewest widening steps wins, ties going
//     to the earliest registration.
//
// Resolution never converts values; implementations receive the original
// arguments and widen them themselves.
//
// LIFECYCLE
// ---------
// Modules are constructed explicitly (NewModule) and passed around; there is
// no process-wide registry. Registration happens during a single-threaded
// boot phase. A Module must not be registered into while an evaluation over
// it is running.
package grim

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	set "github.com/hashicorp/go-set/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/text/collate"

	"github.com/jupdike/grimjs-sub000/internal/bignum"
)

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// Role is the single purpose a tag serves in a module.
type Role int

const (
	RoleNone Role = iota
	RoleMaker
	RoleMultiDispatch
	RoleMacroRules
)

func (r Role) String() string {
	switch r {
	case RoleMaker:
		return "Maker"
	case RoleMultiDispatch:
		return "MultiDispatch"
	case RoleMacroRules:
		return "MacroRules"
	default:
		return "None"
	}
}

// Maker constructs a value for a tag from already built arguments. It
// returns an *Error value for malformed input and a Go error only for
// construction errors (see BuildError).
type Maker func(m *Module, args []Value) (Value, error)

// Impl implements one operator signature. Malformed input yields an *Error
// value.
type Impl func(m *Module, args []Value) Value

// Signature is an operator name with its ordered operand types.
type Signature struct {
	Op    string
	Types []TypeTag
}

func (s Signature) String() string {
	ts := make([]string, len(s.Types))
	for i, t := range s.Types {
		ts[i] = string(t)
	}
	return s.Op + "(" + strings.Join(ts, ", ") + ")"
}

func (s Signature) key() string {
	var b strings.Builder
	b.WriteString(s.Op)
	for _, t := range s.Types {
		b.WriteByte('|')
		b.WriteString(string(t))
	}
	return b.String()
}

// Module is the dispatch registry plus the module environment.
type Module struct {
	log  *slog.Logger
	num  *bignum.Backend
	coll *collate.Collator

	roles  map[string]Role
	makers map[string]Maker
	ops    map[string]*opTable
	casts  *set.Set[CastEdge]
	macros map[string][]MacroRule
	env    *Env
}

// NewModule returns a module with the core makers installed and, unless
// WithoutBoot is given, the core operators, casts and boot definitions.
func NewModule(opts ...Option) (*Module, error) {
	return newModule(applyOptions(opts))
}

// RoleOf reports the role bound to tag.
func (m *Module) RoleOf(tag string) Role { return m.roles[tag] }

// Tags lists the tags bound to role, sorted.
func (m *Module) Tags(role Role) []string {
	var out []string
	for _, t := range maps.Keys(m.roles) {
		if m.roles[t] == role {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

// AddCallableTag registers fn for the signature sig = [op, type1, type2, ...].
// The first registration of op fixes its role to MultiDispatch.
func (m *Module) AddCallableTag(sig []string, fn Impl) error {
	s, err := parseSignature(sig)
	if err != nil {
		return err
	}
	if fn == nil {
		return configErrorf(Span{}, "nil implementation for %s", s)
	}
	t := m.ops[s.Op]
	if t != nil {
		if _, dup := t.impls[s.key()]; dup {
			return configErrorf(Span{}, "signature %s is already registered", s)
		}
	}
	if err := m.claimRole(s.Op, RoleMultiDispatch); err != nil {
		return err
	}
	if t == nil {
		t = &opTable{impls: map[string]Impl{}}
		m.ops[s.Op] = t
	}
	t.sigs = append(t.sigs, s)
	t.impls[s.key()] = fn
	m.log.Debug("register op", "signature", s.String())
	return nil
}

// AddCallableTagEqNeqPair registers fn under ["Eq", T...] and synthesises
// the matching ["Neq", T...] as the negation of fn's Bool result. Non-Bool
// results (Error values) pass through unchanged.
func (m *Module) AddCallableTagEqNeqPair(sig []string, fn Impl) error {
	if len(sig) == 0 || sig[0] != "Eq" {
		return configErrorf(Span{}, "Eq/Neq pair must start with Eq, got %v", sig)
	}
	if err := m.AddCallableTag(sig, fn); err != nil {
		return err
	}
	neq := append([]string{"Neq"}, sig[1:]...)
	return m.AddCallableTag(neq, func(m *Module, args []Value) Value {
		r := fn(m, args)
		if b, ok := r.(Bool); ok {
			return !b
		}
		return r
	})
}

// Signatures lists the registered signatures of op in registration order.
func (m *Module) Signatures(op string) []Signature {
	t := m.ops[op]
	if t == nil {
		return nil
	}
	out := make([]Signature, len(t.sigs))
	copy(out, t.sigs)
	return out
}

// IsCallable reports whether v can head an application: a Fun, or a Tag
// bound to a maker or to at least one operator signature.
func (m *Module) IsCallable(v Value) bool {
	switch x := v.(type) {
	case *Fun:
		return true
	case Tag:
		switch m.roles[string(x)] {
		case RoleMaker:
			return true
		case RoleMultiDispatch:
			t := m.ops[string(x)]
			return t != nil && len(t.sigs) > 0
		}
	}
	return false
}

// Lookup resolves op for args (see DISPATCH above).
func (m *Module) Lookup(op string, args []Value) (Impl, Signature, bool) {
	t := m.ops[op]
	if t == nil {
		return nil, Signature{}, false
	}
	want := Signature{Op: op, Types: typesOf(args)}
	if fn, ok := t.impls[want.key()]; ok {
		return fn, want, true
	}
	edges := m.casts.Slice()
	best, bestCost := -1, 0
	for i, s := range t.sigs {
		if len(s.Types) != len(want.Types) {
			continue
		}
		cost := 0
		for j, param := range s.Types {
			steps := widenOver(edges, want.Types[j], param)
			if steps < 0 {
				cost = -1
				break
			}
			cost += steps
		}
		if cost >= 0 && (best < 0 || cost < bestCost) {
			best, bestCost = i, cost
		}
	}
	if best < 0 {
		return nil, Signature{}, false
	}
	s := t.sigs[best]
	return t.impls[s.key()], s, true
}

// Dispatch resolves and runs op over args. A missing implementation is a
// data-level failure and yields an *Error value.
func (m *Module) Dispatch(op string, args []Value) Value {
	fn, sig, ok := m.Lookup(op, args)
	if !ok {
		want := Signature{Op: op, Types: typesOf(args)}
		return NewError("no implementation of "+want.String(), args...)
	}
	if m.log.Enabled(context.Background(), slog.LevelDebug) {
		m.log.Debug("dispatch", "op", op, "signature", sig.String())
	}
	return fn(m, args)
}

// Env is the module environment: every Def binding, newest first.
func (m *Module) Env() *Env { return m.env }

// Resolve looks a name up in the module environment.
func (m *Module) Resolve(name string) (Value, bool) { return m.env.Get(name) }

// Bindings lists the names defined in the module environment, sorted.
func (m *Module) Bindings() []string { return m.env.Names() }

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
//                            PRIVATE IMPLEMENTATION
////////////////////////////////////////////////////////////////////////////////

type opTable struct {
	sigs  []Signature
	impls map[string]Impl
}

func newModule(c config) (*Module, error) {
	m := &Module{
		log:    c.logger,
		num:    bignum.New(c.precision),
		coll:   collate.New(c.lang),
		roles:  map[string]Role{},
		makers: map[string]Maker{},
		ops:    map[string]*opTable{},
		casts:  newCastSet(),
		macros: map[string][]MacroRule{},
	}
	if err := m.installMakers(); err != nil {
		return nil, err
	}
	if c.boot {
		if err := m.installCore(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Module) claimRole(tag string, r Role) error {
	if tag == "" {
		return configErrorf(Span{}, "empty tag name for role %s", r)
	}
	if have := m.roles[tag]; have != RoleNone && have != r {
		return configErrorf(Span{}, "tag %q is already registered as %s; cannot register it as %s", tag, have, r)
	}
	m.roles[tag] = r
	return nil
}

func parseSignature(sig []string) (Signature, error) {
	if len(sig) < 2 {
		return Signature{}, configErrorf(Span{}, "signature %v needs an operator name and at least one type", sig)
	}
	s := Signature{Op: sig[0], Types: make([]TypeTag, len(sig)-1)}
	for i, t := range sig[1:] {
		if t == "" {
			return Signature{}, configErrorf(Span{}, "signature %v has an empty type", sig)
		}
		s.Types[i] = TypeTag(t)
	}
	return s, nil
}

func typesOf(args []Value) []TypeTag {
	ts := make([]TypeTag, len(args))
	for i, a := range args {
		ts[i] = a.Type()
	}
	return ts
}
