package graph

import "slices"

// BuildDFA converts an epsilon-free table into a deterministic one by
// powerset construction. Each DFA state denotes a set of source states
// and identical sets are memoized, which bounds the construction and
// collapses repeats. The alphabet is partitioned per state into
// singles, non-overlapping ranges and a wild residual, so every
// partition class gets exactly one transition; classes with an empty
// target set lead to the dead node, which consumers treat as
// rejection. Running BuildDFA on already-deterministic input yields a
// table accepting the same language.
func BuildDFA(t *Table) *Table {
	b := dfaBuilder{
		nfa: t.Nodes,
		det: t.Deterministic,
		tab: make(map[string]*Node),
	}
	b.constructEndNode()

	states := make([]bool, len(b.nfa))
	// The DFA start state represents the nil closure of the source
	// start node. Recall it has index 0.
	states[0] = true
	b.get(states)

	for len(b.todo) > 0 {
		v := b.nextTodo()
		singles, lim, anyWild := b.alphabet(v)
		// Singles.
		for _, r := range singles {
			newRuneEdge(v, b.getCb(v, func(e *Edge) bool {
				return e.Matches(r)
			}), r)
		}
		// Character ranges. The piece's low endpoint stands in for the
		// whole piece: pieces never straddle a class boundary.
		for j := 0; j < len(lim); j += 2 {
			lo := lim[j]
			dst := b.getCb(v, func(e *Edge) bool {
				return e.Kind == KWild || e.Kind == KClass && e.Negate != e.Lim.InClass(lo)
			})
			newClassEdge(v, dst, Limits{lim[j], lim[j+1]}, false)
		}
		// Wild: every rune outside the singles and ranges above.
		if anyWild {
			newWildEdge(v, b.getCb(v, func(e *Edge) bool {
				return e.Kind == KWild || e.Kind == KClass && e.Negate
			}))
		}
	}

	sorted := make([]*Node, b.nextId)
	for _, v := range b.tab {
		if v.Id != -1 {
			sorted[v.Id] = v
		}
	}
	return &Table{Nodes: sorted, Deterministic: true}
}

type dfaBuilder struct {
	graphBuilder
	nfa  []*Node
	det  bool
	tab  map[string]*Node
	todo []*Node
}

// alphabet partitions the input symbols relevant to a set state:
// singles for rune edges and one-rune class limits, disjoint pieces
// for class ranges, and whether a residual wild class is needed.
// Negated class limits still split the partition, so pieces never
// straddle them.
func (b *dfaBuilder) alphabet(v *Node) (singles []rune, lim Limits, anyWild bool) {
	set := make(map[rune]bool)
	for _, i := range v.Set {
		for _, e := range b.nfa[i].E {
			switch e.Kind {
			case KRune:
				set[e.R] = true
			case KClass:
				if e.Negate {
					anyWild = true
				}
				for j := 0; j < len(e.Lim); j += 2 {
					if e.Lim[j] == e.Lim[j+1] {
						set[e.Lim[j]] = true
					} else {
						lim = appendLimits(lim, e.Lim[j], e.Lim[j+1])
					}
				}
			case KWild:
				anyWild = true
			}
		}
	}
	singles = make([]rune, 0, len(set))
	for r := range set {
		singles = append(singles, r)
	}
	slices.Sort(singles)
	return singles, lim, anyWild
}

// nilClose folds epsilon reachability into the state set. CutEpsilon
// output has none left; this keeps the construction correct on any
// table.
func (b *dfaBuilder) nilClose(st []bool) {
	var bfs []int
	for i, in := range st {
		if in {
			bfs = append(bfs, i)
		}
	}
	for pos := 0; pos < len(bfs); pos++ {
		for _, e := range b.nfa[bfs[pos]].E {
			if e.Kind == KNil && !st[e.Dst.Id] {
				st[e.Dst.Id] = true
				bfs = append(bfs, e.Dst.Id)
			}
		}
	}
}

// newDFANode memoizes set states by a 0/1 key string, so identical
// sets collapse to one DFA state.
func (b *dfaBuilder) newDFANode(st []bool) (res *Node, found bool) {
	buf := make([]byte, len(st))
	accept := false
	var set []int
	for i, in := range st {
		if in {
			buf[i] = '1'
			accept = accept || b.nfa[i].Accept
			set = append(set, i)
		} else {
			buf[i] = '0'
		}
	}
	res, found = b.tab[string(buf)]
	if !found {
		res = b.newNode()
		res.Accept = accept
		res.Set = set
		b.tab[string(buf)] = res
	}
	return res, found
}

func (b *dfaBuilder) get(states []bool) *Node {
	b.nilClose(states)
	nNode, isOld := b.newDFANode(states)
	if !isOld {
		b.todo = append(b.todo, nNode)
	}
	return nNode
}

func (b *dfaBuilder) nextTodo() *Node {
	v := b.todo[len(b.todo)-1]
	b.todo = b.todo[:len(b.todo)-1]
	return v
}

// constructEndNode registers the node of no return under the empty
// set, with Id -1 so consumers can skip transitions into it.
func (b *dfaBuilder) constructEndNode() {
	buf := make([]byte, len(b.nfa))
	for i := range buf {
		buf[i] = '0'
	}
	b.tab[string(buf)] = &Node{Id: -1}
}

// getCb returns the DFA state for the set of nodes reachable from v's
// members over edges satisfying cb. Nondeterministic sources fire
// every satisfying edge; a deterministic source assigns each symbol to
// exactly one edge under the walk's precedence, so only the owning
// edge fires there and an owning edge into the dead state shadows the
// less specific ones.
func (b *dfaBuilder) getCb(v *Node, cb func(*Edge) bool) *Node {
	states := make([]bool, len(b.nfa))
	for _, i := range v.Set {
		if b.det {
			if e := owner(b.nfa[i], cb); e != nil && e.Dst.Id >= 0 {
				states[e.Dst.Id] = true
			}
			continue
		}
		for _, e := range b.nfa[i].E {
			// Edges into the dead state contribute nothing.
			if e.Dst.Id >= 0 && cb(e) {
				states[e.Dst.Id] = true
			}
		}
	}
	return b.get(states)
}

// owner picks the satisfying edge that serves the symbol class on a
// deterministic state: rune edges before class edges before the wild
// edge, the same order the match loop checks them in.
func owner(v *Node, cb func(*Edge) bool) *Edge {
	var pick *Edge
	for _, e := range v.E {
		if cb(e) && (pick == nil || e.Kind < pick.Kind) {
			pick = e
		}
	}
	return pick
}
