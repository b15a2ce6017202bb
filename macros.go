package grim

// MacroRule is one symbolic rewrite rule: an application of the rule's tag
// whose arguments match Patterns rewrites to Body.
//
// Rules are stored in registration order per tag. The evaluator does not
// apply them; they are kept for a rewriting layer above the core.
type MacroRule struct {
	Patterns []Value
	Body     Value
}

func (r MacroRule) String() string {
	return "[" + joinValues(r.Patterns, Value.Canonical) + "] => " + r.Body.Canonical()
}

// AddMacroRule appends a rule for tag. The tag's role becomes MacroRules.
func (m *Module) AddMacroRule(tag string, patterns []Value, body Value) error {
	if body == nil {
		return configErrorf(Span{}, "macro rule for %q has no body", tag)
	}
	if err := m.claimRole(tag, RoleMacroRules); err != nil {
		return err
	}
	m.macros[tag] = append(m.macros[tag], MacroRule{Patterns: cloneValues(patterns), Body: body})
	m.log.Debug("register macro rule", "tag", tag, "count", len(m.macros[tag]))
	return nil
}

// MacroRules returns the rules registered for tag, oldest first.
func (m *Module) MacroRules(tag string) []MacroRule {
	rs := m.macros[tag]
	out := make([]MacroRule, len(rs))
	copy(out, rs)
	return out
}
