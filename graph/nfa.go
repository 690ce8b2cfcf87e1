package graph

import (
	"fmt"

	"refa/syntax"
)

// BuildNFA compiles a syntax tree into a transition table with epsilon
// transitions, a single start state and a single accepting state.
// Valid parser output never fails here; an unknown node kind is an
// internal contract breach, not a user error.
func BuildNFA(re *syntax.Regexp) (*Table, error) {
	b := nfaBuilder{}
	f, err := b.build(re)
	if err != nil {
		return nil, err
	}
	f.end.Accept = true

	// Compute the shortlist of reachable nodes; composition may have
	// discarded some. Also makes the start node index 0.
	return &Table{Nodes: compactGraph(f.start)}, nil
}

type nfaBuilder struct {
	graphBuilder
}

// fragment is a partially built automaton with one entry and one exit
// state. Sibling fragments share no states until spliced together by
// an epsilon edge.
type fragment struct {
	start, end *Node
}

func (b *nfaBuilder) newFragment() fragment {
	return fragment{start: b.newNode(), end: b.newNode()}
}

func (b *nfaBuilder) build(re *syntax.Regexp) (fragment, error) {
	switch re.Op {
	case syntax.OpEmptyMatch:
		f := b.newFragment()
		newNilEdge(f.start, f.end)
		return f, nil
	case syntax.OpLiteral:
		f := b.newFragment()
		newRuneEdge(f.start, f.end, re.Rune)
		return f, nil
	case syntax.OpClass:
		f := b.newFragment()
		newClassEdge(f.start, f.end, Limits(re.Lim), re.Negate)
		return f, nil
	case syntax.OpAnyCharNotNL:
		f := b.newFragment()
		newClassEdge(f.start, f.end, Limits{'\n', '\n'}, true)
		return f, nil
	case syntax.OpConcat:
		a, err := b.build(re.Sub[0])
		if err != nil {
			return fragment{}, err
		}
		c, err := b.build(re.Sub[1])
		if err != nil {
			return fragment{}, err
		}
		newNilEdge(a.end, c.start)
		return fragment{start: a.start, end: c.end}, nil
	case syntax.OpAlternate:
		f := b.newFragment()
		for _, sub := range re.Sub {
			s, err := b.build(sub)
			if err != nil {
				return fragment{}, err
			}
			newNilEdge(f.start, s.start)
			newNilEdge(s.end, f.end)
		}
		return f, nil
	case syntax.OpStar:
		s, err := b.build(re.Sub[0])
		if err != nil {
			return fragment{}, err
		}
		f := b.newFragment()
		newNilEdge(f.start, s.start) // enter
		newNilEdge(f.start, f.end)   // zero occurrences
		newNilEdge(s.end, s.start)   // repeat
		newNilEdge(s.end, f.end)     // stop
		return f, nil
	case syntax.OpPlus:
		s, err := b.build(re.Sub[0])
		if err != nil {
			return fragment{}, err
		}
		f := b.newFragment()
		newNilEdge(f.start, s.start)
		newNilEdge(s.end, s.start)
		newNilEdge(s.end, f.end)
		return f, nil
	case syntax.OpQuest:
		s, err := b.build(re.Sub[0])
		if err != nil {
			return fragment{}, err
		}
		f := b.newFragment()
		newNilEdge(f.start, s.start)
		newNilEdge(f.start, f.end)
		newNilEdge(s.end, f.end)
		return f, nil
	case syntax.OpGroup:
		// Grouping only shapes precedence; the fragment passes through
		// unchanged.
		return b.build(re.Sub[0])
	}
	return fragment{}, fmt.Errorf("unrecognized op %d: %w", re.Op, syntax.ErrInternal)
}
