// Package graph builds and transforms the finite automata a compiled
// pattern runs on: Thompson NFA construction, epsilon elimination and
// subset construction all operate on the same node/edge arena.
//
// We cannot have our alphabet be all Unicode characters. Instead, the
// subset constructor partitions the alphabet per state:
//
//  1. Singles: single runes used by rune edges, plus one-rune class
//     limits.
//
//  2. Ranges: class ranges become elements of the alphabet, broken up
//     into non-overlapping pieces when they overlap. The match loop
//     checks singles before ranges, so there is no need to break up a
//     range that contains a single.
//
//  3. Wild: one element representing all other runes.
package graph

// Edge kinds. KNil edges exist only in freshly built NFAs; CutEpsilon
// removes them. KWild edges appear only in subset-construction output,
// as the residual alphabet class. The order encodes match precedence:
// when several edges of a deterministic state cover one symbol, the
// lowest kind owns it.
const (
	KNil = iota
	KRune
	KClass
	KWild
)

// Limits holds inclusive lo,hi rune pairs of a character class.
type Limits []rune

func (l Limits) InClass(r rune) bool {
	for i := 0; i < len(l); i += 2 {
		if l[i] <= r && r <= l[i+1] {
			return true
		}
	}
	return false
}

type Edge struct {
	Kind   int    // Nil/Rune/Class/Wild.
	R      rune   // Rune for rune edges.
	Lim    Limits // Pairs of limits for character class edges.
	Negate bool   // True if the character class is negated.
	Dst    *Node  // Destination node.
}

// Matches reports whether the edge label contains r. Epsilon edges
// contain no symbol.
func (e *Edge) Matches(r rune) bool {
	switch e.Kind {
	case KRune:
		return e.R == r
	case KClass:
		return e.Negate != e.Lim.InClass(r)
	case KWild:
		return true
	}
	return false
}

type Node struct {
	E      []*Edge // Out-edges.
	Id     int     // Index number. Scoped to one automaton.
	Accept bool    // True if this is an accepting state.
	Set    []int   // The NFA nodes represented by a DFA node.
}

type graphBuilder struct {
	nextId int
}

func (g *graphBuilder) newNode() *Node {
	n := &Node{Id: g.nextId}
	g.nextId++
	return n
}

func newEdge(u, v *Node) *Edge {
	e := &Edge{Dst: v}
	u.E = append(u.E, e)
	return e
}

func newKindEdge(u, v *Node, kind int) *Edge {
	e := newEdge(u, v)
	e.Kind = kind
	return e
}

func newNilEdge(u, v *Node) *Edge {
	return newKindEdge(u, v, KNil)
}

func newWildEdge(u, v *Node) *Edge {
	return newKindEdge(u, v, KWild)
}

func newRuneEdge(u, v *Node, r rune) *Edge {
	e := newKindEdge(u, v, KRune)
	e.R = r
	return e
}

func newClassEdge(u, v *Node, lim Limits, negate bool) *Edge {
	e := newKindEdge(u, v, KClass)
	e.Lim = lim
	e.Negate = negate
	return e
}

// copyLabel stamps src's label onto a new edge from u to v.
func copyLabel(u, v *Node, src *Edge) *Edge {
	e := newKindEdge(u, v, src.Kind)
	e.R = src.R
	e.Lim = src.Lim
	e.Negate = src.Negate
	return e
}

// compactGraph drops nodes unreachable from start and renumbers the
// rest so that ids index the returned slice, start first.
func compactGraph(start *Node) []*Node {
	visited := map[int]bool{start.Id: true}
	nodes := []*Node{start}
	for pos := 0; pos < len(nodes); pos++ {
		for _, e := range nodes[pos].E {
			if !visited[e.Dst.Id] {
				visited[e.Dst.Id] = true
				nodes = append(nodes, e.Dst)
			}
		}
	}
	for i, v := range nodes {
		v.Id = i
	}
	return nodes
}

// insertLimits opens a pair at index i in l and stores [lo,hi] there.
func insertLimits(l Limits, i int, lo, hi rune) Limits {
	l = append(l, 0, 0)
	copy(l[i+2:], l[i:])
	l[i] = lo
	l[i+1] = hi
	return l
}

// appendLimits inserts the range [lo,hi] into l, breaking it up if it
// overlaps existing entries and discarding it if it coincides with
// one. l stays a sorted list of disjoint ranges.
func appendLimits(l Limits, lo, hi rune) Limits {
	var i int
	for i = 0; i < len(l); i += 2 {
		if lo <= l[i+1] {
			break
		}
	}
	if len(l) == i || hi < l[i] {
		return insertLimits(l, i, lo, hi)
	}
	if lo < l[i] {
		l = insertLimits(l, i, lo, l[i]-1)
		return appendLimits(l, l[i+2], hi)
	}
	if lo > l[i] {
		l = insertLimits(l, i, l[i], lo-1)
		l[i+2] = lo
		return appendLimits(l, lo, hi)
	}
	// lo == l[i]
	if hi == l[i+1] {
		return l
	}
	if hi < l[i+1] {
		l = insertLimits(l, i, lo, hi)
		l[i+2] = hi + 1
		return l
	}
	return appendLimits(l, l[i+1]+1, hi)
}
