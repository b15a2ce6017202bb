// interpreter_ops.go — PRIVATE: the core operator table and boot definitions.
//
// This file:
//   - Implements `installCore()`, run by NewModule unless WithoutBoot is
//     given: it registers every core operator signature (builtin_*.go) and
//     then loads the embedded boot/core.grim definitions.
//   - Provides `registrar`, a small helper that threads the first
//     registration error through a run of AddCallableTag calls.
//
// The boot text goes through AddDefinitions like any user definition file,
// so the cast edges of the numeric tower are declared in Grim itself.
package grim

import (
	_ "embed"

	"github.com/pkg/errors"
)

//go:embed boot/core.grim
var coreDefinitions string

// registrar records the first registration failure and ignores the rest.
type registrar struct {
	m   *Module
	err error
}

func (r *registrar) op(fn Impl, sig ...string) {
	if r.err == nil {
		r.err = r.m.AddCallableTag(sig, fn)
	}
}

func (r *registrar) eqPair(fn Impl, sig ...string) {
	if r.err == nil {
		r.err = r.m.AddCallableTagEqNeqPair(sig, fn)
	}
}

func (m *Module) installCore() error {
	r := &registrar{m: m}
	registerArithBuiltins(r)
	registerCompareBuiltins(r)
	registerCoreBuiltins(r)
	registerStringBuiltins(r)
	if r.err != nil {
		return errors.Wrap(r.err, "core operators")
	}
	if err := m.AddDefinitions("boot/core.grim", coreDefinitions); err != nil {
		return errors.Wrap(err, "boot definitions")
	}
	m.log.Debug("boot complete",
		"ops", len(m.Tags(RoleMultiDispatch)),
		"casts", m.casts.Size(),
		"bindings", len(m.Bindings()))
	return nil
}
