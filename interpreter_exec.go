// interpreter_exec.go — PRIVATE: the evaluation loop.
//
// Public entry points are in interpreter.go. Everything here is a plain
// recursive function over (expression, environment, depth); depth counts
// nested applications and is bounded by maxDepth.
package grim

import (
	"context"
	"log/slog"
)

func (ip *Interpreter) eval(expr Value, env *Env, depth int) (Value, error) {
	switch x := expr.(type) {
	case Sym:
		v, ok := env.Get(string(x))
		if !ok {
			return nil, evalErrorf(x, "unbound symbol: %s", string(x))
		}
		return v, nil
	case *App:
		v, err := ip.evalApp(x, env, depth)
		if err != nil {
			return nil, withSpan(err, x.Loc)
		}
		return v, nil
	default:
		return expr, nil
	}
}

func (ip *Interpreter) evalApp(a *App, env *Env, depth int) (Value, error) {
	if depth >= ip.maxDepth {
		return nil, evalErrorf(a, "maximum evaluation depth %d exceeded", ip.maxDepth)
	}
	m := ip.Module
	head := a.Lhs
	if !m.IsCallable(head) {
		h, err := ip.eval(head, env, depth+1)
		if err != nil {
			return nil, err
		}
		if !m.IsCallable(h) {
			return nil, evalErrorf(a, "not callable: %s", h)
		}
		head = h
	}
	if f, ok := head.(*Fun); ok && f.Arity() != len(a.Rhs) {
		return nil, evalErrorf(a, "%s expects %d argument(s), got %d", funLabel(f.Name), f.Arity(), len(a.Rhs))
	}
	args := make([]Value, len(a.Rhs))
	for i, r := range a.Rhs {
		v, err := ip.eval(r, env, depth+1)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return ip.applyValues(head, args, env, a, depth)
}

// applyValues runs a callable head over evaluated args. site is the App
// being reduced (nil for host calls) and only feeds diagnostics.
func (ip *Interpreter) applyValues(head Value, args []Value, env *Env, site *App, depth int) (Value, error) {
	m := ip.Module
	var at Value = head
	if site != nil {
		at = site
	}
	if ip.log.Enabled(context.Background(), slog.LevelDebug) {
		ip.log.Debug("apply", "head", head.String(), "args", len(args), "depth", depth)
	}
	switch h := head.(type) {
	case *Fun:
		if h.Arity() != len(args) {
			return nil, evalErrorf(at, "%s expects %d argument(s), got %d", funLabel(h.Name), h.Arity(), len(args))
		}
		names := make([]string, len(h.Params))
		for i, p := range h.Params {
			names[i] = string(p)
		}
		return ip.eval(h.Body, env.Extend(names, args), depth+1)
	case Tag:
		switch m.RoleOf(string(h)) {
		case RoleMultiDispatch:
			for _, a := range args {
				if IsError(a) {
					return a, nil
				}
			}
			return m.Dispatch(string(h), args), nil
		case RoleMaker:
			v, err := m.MakeFromValues(string(h), args)
			if err != nil {
				return nil, withSpan(err, spanOf(at))
			}
			return v, nil
		}
	}
	return nil, evalErrorf(at, "not callable: %s", head)
}

// define applies a definition and, for Def(name, expr), evaluates the bound
// value once in the module environment as it was before the definition, so
// Def(x, Mul(x, 10)) sees the previous x. A failed evaluation leaves the
// environment as it was.
func (ip *Interpreter) define(node Ast) error {
	m := ip.Module
	before := m.Env()
	if err := m.AddDefinitionAst(node); err != nil {
		return err
	}
	t := node.(*AstTagged)
	if t.Tag.Name != defTag || len(t.Args) != 2 {
		return nil
	}
	name, err := m.defName(t.Args[0])
	if err != nil {
		return err
	}
	raw, _ := m.Resolve(name)
	v, err := ip.Eval(raw, before)
	if err != nil {
		m.env = before
		return err
	}
	if f, ok := v.(*Fun); ok {
		v = f.Named(name)
	}
	m.env = m.env.Bind(name, v)
	return nil
}
