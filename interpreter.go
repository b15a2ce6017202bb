// interpreter.go — PUBLIC API SURFACE of the Grim evaluator.
//
// OVERVIEW
// ========
// An Interpreter pairs a *Module (makers, operator table, casts, module
// environment) with the evaluator. The evaluator is a pure, synchronous tree
// walk from (expression, environment) to a reduced value:
//
//	Sym(name)      looked up in the environment; unbound names fail
//	App(f, args)   f is used directly when callable, otherwise evaluated
//	               first; a still non-callable head fails.
//	               Fun:  arity must match; args are evaluated eagerly in the
//	                     current environment and the body runs in that
//	                     environment extended with the parameters.
//	               Tag with operator signatures: args are evaluated and the
//	                     call is dispatched on their types.
//	               Tag with a maker: args are evaluated and the maker runs.
//	anything else  returned unchanged (atoms, Fun, collections, Let, ...)
//
// SCOPING
// -------
// Function bodies run in the CALLER's environment extended with the
// parameters, not in the environment the function was defined in. Free
// variables of a body therefore resolve dynamically.
//
// ERRORS
// ------
// Data-level failures (bad operands, missing signatures, division by zero)
// are *Error values and evaluation carries on: an operator call that receives
// an Error argument returns that Error without dispatching. Control-level
// failures (unbound symbol, arity mismatch, non-callable head, depth limit)
// are returned as *EvalError. The *Source entry points render them as caret
// snippets against the source text.
//
// DEPENDENCIES (OTHER FILES)
// --------------------------
//   - modules.go, makers.go, definitions.go: the registry being evaluated over.
//   - interpreter_exec.go (private): the evaluation loop.
//   - parser.go: canonical source for the *Source entry points.
package grim

import (
	"log/slog"
)

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// Interpreter evaluates values over a module. It is not safe for concurrent
// use with registration on the same module.
type Interpreter struct {
	Module *Module

	log      *slog.Logger
	maxDepth int
}

// NewInterpreter builds a fresh module (see NewModule) and an interpreter
// over it.
func NewInterpreter(opts ...Option) (*Interpreter, error) {
	c := applyOptions(opts)
	m, err := newModule(c)
	if err != nil {
		return nil, err
	}
	return &Interpreter{Module: m, log: c.logger, maxDepth: c.maxDepth}, nil
}

// NewInterpreterFor wraps an existing module. The interpreter logs through
// the module's logger unless WithLogger is given.
func NewInterpreterFor(m *Module, opts ...Option) *Interpreter {
	c := applyOptions(append([]Option{WithLogger(m.log)}, opts...))
	return &Interpreter{Module: m, log: c.logger, maxDepth: c.maxDepth}
}

// Eval reduces expr in env. Only env is consulted for symbols; pass
// Module.Env() (or an extension of it) to see the module definitions.
func (ip *Interpreter) Eval(expr Value, env *Env) (Value, error) {
	return ip.eval(expr, env, 0)
}

// EvalAst builds node through the module's makers and evaluates the result.
func (ip *Interpreter) EvalAst(node Ast, env *Env) (Value, error) {
	v, err := ip.Module.FromAst(node)
	if err != nil {
		return nil, err
	}
	r, err := ip.Eval(v, env)
	if err != nil {
		return nil, withSpan(err, node.Span())
	}
	return r, nil
}

// Apply calls fn on already evaluated args in env.
func (ip *Interpreter) Apply(fn Value, args []Value, env *Env) (Value, error) {
	if !ip.Module.IsCallable(fn) {
		return nil, evalErrorf(fn, "not callable: %s", fn)
	}
	return ip.applyValues(fn, args, env, nil, 0)
}

// EvalSource parses one expression, builds it and evaluates it against the
// module environment. Errors carry caret snippets.
func (ip *Interpreter) EvalSource(src string) (Value, error) {
	return ip.EvalSourceNamed("<eval>", src)
}

// EvalSourceNamed is EvalSource with a source label for diagnostics.
func (ip *Interpreter) EvalSourceNamed(name, src string) (Value, error) {
	node, err := ParseCanonicalNamed(name, src)
	if err != nil {
		return nil, WrapErrorWithName(err, name, src)
	}
	v, err := ip.EvalAst(node, ip.Module.Env())
	if err != nil {
		return nil, WrapErrorWithName(err, name, src)
	}
	return v, nil
}

// RunSource processes every top-level form of src in order. Definitions
// update the module (a Def binding is evaluated once, against the module
// environment, when it is made); other forms are evaluated and their results
// returned in order.
func (ip *Interpreter) RunSource(name, src string) ([]Value, error) {
	nodes, err := ParseCanonicalAll(name, src)
	if err != nil {
		return nil, WrapErrorWithName(err, name, src)
	}
	var out []Value
	for _, n := range nodes {
		if IsDefinition(n) {
			if err := ip.define(n); err != nil {
				return out, WrapErrorWithName(err, name, src)
			}
			continue
		}
		v, err := ip.EvalAst(n, ip.Module.Env())
		if err != nil {
			return out, WrapErrorWithName(err, name, src)
		}
		out = append(out, v)
	}
	return out, nil
}

// Define applies one definition form, evaluating a Def binding in the module
// environment.
func (ip *Interpreter) Define(node Ast) error { return ip.define(node) }

//// END_OF_PUBLIC
