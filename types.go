// types.go — type tags, cast edges and widening distance
//
// OVERVIEW
// --------
// Operator signatures are lists of TypeTags. The cast registry records which
// type may stand in for which: the edge (Wider, Narrower) says a value of
// type Narrower is acceptable where Wider is expected. The boot definitions
// declare the numeric tower this way:
//
//	DefCast(Int, Nat)   DefCast(Rat, Int)   DefCast(Dec, Rat)   ...
//
// Edges form a partial order. Dispatch (modules.go) uses widenOver to find
// the nearest registered signature when there is no exact match; the
// operator implementations then convert their operands themselves (see
// asInteger/asRational/asDecimal in numeric.go). Casting never changes the
// values handed to an implementation.
package grim

import (
	"sort"

	set "github.com/hashicorp/go-set/v2"
)

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// CastEdge says Narrower values are accepted where Wider is expected.
type CastEdge struct {
	Wider    TypeTag
	Narrower TypeTag
}

// AddCast registers wider as accepting narrower.
func (m *Module) AddCast(wider, narrower TypeTag) error {
	if wider == "" || narrower == "" {
		return configErrorf(Span{}, "cast edge needs two type tags, got (%q, %q)", wider, narrower)
	}
	if wider == narrower {
		return configErrorf(Span{}, "cast edge from %s to itself", wider)
	}
	if m.widenSteps(wider, narrower) > 0 {
		return configErrorf(Span{}, "cast %s <- %s would form a cycle", wider, narrower)
	}
	if m.casts.Insert(CastEdge{Wider: wider, Narrower: narrower}) {
		m.log.Debug("register cast", "wider", string(wider), "narrower", string(narrower))
	}
	return nil
}

// HasCast reports whether the edge (wider, narrower) was registered directly.
func (m *Module) HasCast(wider, narrower TypeTag) bool {
	return m.casts.Contains(CastEdge{Wider: wider, Narrower: narrower})
}

// CanWiden reports whether from reaches to through zero or more edges.
func (m *Module) CanWiden(from, to TypeTag) bool { return m.widenSteps(from, to) >= 0 }

// Casts lists every registered edge, ordered by (Wider, Narrower).
func (m *Module) Casts() []CastEdge {
	es := m.casts.Slice()
	sort.Slice(es, func(i, j int) bool {
		if es[i].Wider != es[j].Wider {
			return es[i].Wider < es[j].Wider
		}
		return es[i].Narrower < es[j].Narrower
	})
	return es
}

//// END_OF_PUBLIC

func newCastSet() *set.Set[CastEdge] { return set.New[CastEdge](8) }

// widenSteps is the length of the shortest chain of edges leading from the
// narrower type from up to to: 0 when equal, -1 when unreachable.
func (m *Module) widenSteps(from, to TypeTag) int {
	if from == to {
		return 0
	}
	return widenOver(m.casts.Slice(), from, to)
}

// widenOver is widenSteps over a snapshot of the edges.
func widenOver(edges []CastEdge, from, to TypeTag) int {
	if from == to {
		return 0
	}
	dist := map[TypeTag]int{from: 0}
	queue := []TypeTag{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range edges {
			if e.Narrower != cur {
				continue
			}
			if _, seen := dist[e.Wider]; seen {
				continue
			}
			dist[e.Wider] = dist[cur] + 1
			if e.Wider == to {
				return dist[e.Wider]
			}
			queue = append(queue, e.Wider)
		}
	}
	return -1
}
