package graph

import (
	"fmt"
	"strconv"
	"strings"
)

// Table is the compiled transition artifact handed between pipeline
// stages and to the execution engine: the state arena (ids index the
// slice, start state first), the accept flags on the states, and a
// marker telling the engine which algorithm applies. A Table is never
// mutated after construction, so concurrent readers need no locking.
//
// Deterministic tables keep their rejecting transitions as edges into
// a shared dead state with Id -1 that is not part of Nodes. Consumers
// ranging over a state's edges must treat a negative destination id as
// rejection; EdgeCount, String and WriteDotGraph already do.
type Table struct {
	Nodes         []*Node
	Deterministic bool
}

// Start returns the start state.
func (t *Table) Start() *Node {
	return t.Nodes[0]
}

func (t *Table) StateCount() int {
	return len(t.Nodes)
}

// EdgeCount returns the number of transitions, epsilon included and
// edges into the dead state excluded.
func (t *Table) EdgeCount() int {
	var n int
	for _, v := range t.Nodes {
		for _, e := range v.E {
			if e.Dst.Id >= 0 {
				n++
			}
		}
	}
	return n
}

// Accepting returns the accepting states.
func (t *Table) Accepting() []*Node {
	var acc []*Node
	for _, v := range t.Nodes {
		if v.Accept {
			acc = append(acc, v)
		}
	}
	return acc
}

// HasEpsilon reports whether any epsilon transition remains.
func (t *Table) HasEpsilon() bool {
	for _, v := range t.Nodes {
		for _, e := range v.E {
			if e.Kind == KNil {
				return true
			}
		}
	}
	return false
}

// String dumps the table one transition per line. Accepting states are
// starred; transitions into the dead state are omitted.
func (t *Table) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Table(start: %d)\n", t.Start().Id)
	for _, v := range t.Nodes {
		if v.Accept {
			fmt.Fprintf(&b, "\tState %d*\n", v.Id)
		} else {
			fmt.Fprintf(&b, "\tState %d\n", v.Id)
		}
		for _, e := range v.E {
			if e.Dst.Id < 0 {
				continue
			}
			fmt.Fprintf(&b, "\t\tmatch %s to %d\n", e.Label(), e.Dst.Id)
		}
	}
	return b.String()
}

// Label renders the edge symbol for table dumps and DOT output.
func (e *Edge) Label() string {
	switch e.Kind {
	case KNil:
		return "ε"
	case KRune:
		return printable(e.R)
	case KWild:
		return "*"
	case KClass:
		var b strings.Builder
		b.WriteByte('[')
		if e.Negate {
			b.WriteByte('^')
		}
		for i := 0; i < len(e.Lim); i += 2 {
			b.WriteString(printable(e.Lim[i]))
			if e.Lim[i] != e.Lim[i+1] {
				b.WriteByte('-')
				b.WriteString(printable(e.Lim[i+1]))
			}
		}
		b.WriteByte(']')
		return b.String()
	}
	return "?"
}

func printable(r rune) string {
	if strconv.IsPrint(r) {
		return string(r)
	}
	return fmt.Sprintf("U+%X", int(r))
}
