// definitions.go — top-level definitions
//
// Definitions are tagged applications in canonical syntax:
//
//	Def(name, expr)                        bind name to the value of expr
//	Def(name, [p1, p2], body)              bind name to Fun([p1, p2], body)
//	DefCast(Wider, Narrower)               register a cast edge
//	DefMacroMatchRule(T, [pat...], body)   append a rewrite rule for T
//
// Def binds into the module environment, which is persistent: a later Def of
// the same name shadows the earlier one. When expr builds to a Fun, the
// function takes the defined name for diagnostics.
//
// Malformed definitions are configuration errors: the boot text or the
// user's definition file is broken, not the data.
package grim

const (
	defTag       = "Def"
	defCastTag   = "DefCast"
	defMacroRule = "DefMacroMatchRule"
)

// IsDefinition reports whether node is a Def, DefCast or DefMacroMatchRule
// form.
func IsDefinition(node Ast) bool {
	t, ok := node.(*AstTagged)
	if !ok {
		return false
	}
	switch t.Tag.Name {
	case defTag, defCastTag, defMacroRule:
		return true
	}
	return false
}

// AddOneDefinition parses exactly one definition from src and applies it.
func (m *Module) AddOneDefinition(src string) error {
	node, err := ParseCanonicalNamed("<def>", src)
	if err != nil {
		return WrapErrorWithName(err, "<def>", src)
	}
	return WrapErrorWithName(m.AddDefinitionAst(node), "<def>", src)
}

// AddDefinitions parses every top-level form in src (named name for
// diagnostics) and applies them in order. Every form must be a definition.
func (m *Module) AddDefinitions(name, src string) error {
	nodes, err := ParseCanonicalAll(name, src)
	if err != nil {
		return WrapErrorWithName(err, name, src)
	}
	for _, n := range nodes {
		if err := m.AddDefinitionAst(n); err != nil {
			return WrapErrorWithName(err, name, src)
		}
	}
	return nil
}

// AddDefinitionAst applies one already parsed definition.
func (m *Module) AddDefinitionAst(node Ast) error {
	t, ok := node.(*AstTagged)
	if !ok || !IsDefinition(node) {
		return configErrorf(node.Span(), "expected Def, DefCast or DefMacroMatchRule, got %s", node)
	}
	switch t.Tag.Name {
	case defTag:
		return m.define(t)
	case defCastTag:
		return m.defineCast(t)
	default:
		return m.defineMacroRule(t)
	}
}

//// END_OF_PUBLIC

func (m *Module) define(t *AstTagged) error {
	if len(t.Args) != 2 && len(t.Args) != 3 {
		return configErrorf(t.Loc, "Def expects (name, expr) or (name, [params], body)")
	}
	name, err := m.defName(t.Args[0])
	if err != nil {
		return err
	}
	var v Value
	if len(t.Args) == 2 {
		if v, err = m.FromAst(t.Args[1]); err != nil {
			return err
		}
		if f, ok := v.(*Fun); ok {
			v = f.Named(name)
		}
	} else {
		pv, err := m.FromAst(t.Args[1])
		if err != nil {
			return err
		}
		params, ok := symList(pv)
		if !ok {
			return configErrorf(t.Args[1].Span(), "parameters of %s must be a list of symbols, got %s", name, pv)
		}
		body, err := m.FromAst(t.Args[2])
		if err != nil {
			return err
		}
		f, err := NewFun(params, body, name)
		if err != nil {
			return withSpan(err, t.Args[1].Span())
		}
		v = f
	}
	m.env = m.env.Bind(name, v)
	m.log.Debug("define", "name", name, "value", v.String())
	return nil
}

func (m *Module) defName(n Ast) (string, error) {
	v, err := m.FromAst(n)
	if err != nil {
		return "", err
	}
	s, ok := v.(Sym)
	if !ok {
		return "", configErrorf(n.Span(), "definition name must be a symbol, got %s", v)
	}
	return string(s), nil
}

func (m *Module) defineCast(t *AstTagged) error {
	if len(t.Args) != 2 {
		return configErrorf(t.Loc, "DefCast expects (Wider, Narrower)")
	}
	wider, ok1 := t.Args[0].(*AstTag)
	narrower, ok2 := t.Args[1].(*AstTag)
	if !ok1 || !ok2 {
		return configErrorf(t.Loc, "DefCast arguments must be bare tags")
	}
	return withSpan(m.AddCast(TypeTag(wider.Name), TypeTag(narrower.Name)), t.Loc)
}

func (m *Module) defineMacroRule(t *AstTagged) error {
	if len(t.Args) != 3 {
		return configErrorf(t.Loc, "DefMacroMatchRule expects (Tag, [patterns], body)")
	}
	tag, ok := t.Args[0].(*AstTag)
	if !ok {
		return configErrorf(t.Args[0].Span(), "DefMacroMatchRule must name a bare tag")
	}
	pv, err := m.FromAst(t.Args[1])
	if err != nil {
		return err
	}
	pats, ok := pv.(*List)
	if !ok {
		return configErrorf(t.Args[1].Span(), "DefMacroMatchRule patterns must be a list, got %s", pv)
	}
	body, err := m.FromAst(t.Args[2])
	if err != nil {
		return err
	}
	return withSpan(m.AddMacroRule(tag.Name, pats.Items(), body), t.Loc)
}
