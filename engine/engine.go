// Package engine runs compiled transition tables against input
// strings.
package engine

import "refa/graph"

// Engine binds one transition table and answers anchored match
// queries. The table is read-only and every match call keeps its
// current state locally, so a single Engine may serve concurrent
// matches without synchronization.
type Engine struct {
	tab *graph.Table
}

// New binds tab. The matching algorithm follows the table form:
// deterministic tables are walked one state at a time, anything else
// is simulated over the full set of reachable states. Epsilon
// transitions are never followed at match time; a table that still
// carries them would silently mis-match, so New panics instead of
// accepting it. Run tables through graph.CutEpsilon first.
func New(tab *graph.Table) *Engine {
	if tab.HasEpsilon() {
		panic("engine: table has epsilon transitions, run graph.CutEpsilon first")
	}
	return &Engine{tab: tab}
}

// ExactMatch reports whether the table accepts s as a whole, anchored
// at both ends.
func (m *Engine) ExactMatch(s string) bool {
	if m.tab.Deterministic {
		return m.walk(s)
	}
	return m.simulate(s)
}

// walk advances a single current state. A missing transition rejects
// immediately; there is no backtracking.
func (m *Engine) walk(s string) bool {
	state := m.tab.Start()
	for _, r := range s {
		state = step(state, r)
		if state == nil {
			return false
		}
	}
	return state.Accept
}

// step picks the state's transition containing r, or nil when the
// symbol's class rejects. Rune edges are checked before class edges
// and the wild edge last, mirroring how the subset constructor
// partitions the alphabet.
func step(state *graph.Node, r rune) *graph.Node {
	var byRune, byClass, byWild *graph.Edge
	for _, e := range state.E {
		switch e.Kind {
		case graph.KRune:
			if byRune == nil && e.R == r {
				byRune = e
			}
		case graph.KClass:
			if byClass == nil && e.Matches(r) {
				byClass = e
			}
		case graph.KWild:
			if byWild == nil {
				byWild = e
			}
		}
	}
	pick := byRune
	if pick == nil {
		pick = byClass
	}
	if pick == nil {
		pick = byWild
	}
	if pick == nil || pick.Dst.Id < 0 {
		// No transition, or one into the dead state: rejection, not an
		// error.
		return nil
	}
	return pick.Dst
}

// simulate tracks every state reachable after the consumed prefix,
// starting from the start state alone.
func (m *Engine) simulate(s string) bool {
	cur := make([]bool, len(m.tab.Nodes))
	cur[m.tab.Start().Id] = true
	for _, r := range s {
		next := make([]bool, len(m.tab.Nodes))
		live := false
		for i, in := range cur {
			if !in {
				continue
			}
			for _, e := range m.tab.Nodes[i].E {
				if e.Dst.Id >= 0 && e.Matches(r) {
					next[e.Dst.Id] = true
					live = true
				}
			}
		}
		if !live {
			return false
		}
		cur = next
	}
	for i, in := range cur {
		if in && m.tab.Nodes[i].Accept {
			return true
		}
	}
	return false
}
