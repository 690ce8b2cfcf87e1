package graph

import (
	"fmt"
	"io"
)

// WriteDotGraph prints a table in DOT format.
//
//	$ dot -Tps input.dot -o output.ps
func WriteDotGraph(out io.Writer, t *Table, id string) {
	b := dotGraphBuilder{
		out:  out,
		done: make(map[*Node]bool),
	}
	_, _ = fmt.Fprintf(out, "digraph %v {\n  0[shape=box];\n", id)
	b.show(t.Start())
	_, _ = fmt.Fprintln(out, "}")
}

type dotGraphBuilder struct {
	out  io.Writer
	done map[*Node]bool
}

func (b *dotGraphBuilder) show(u *Node) {
	if u.Accept {
		_, _ = fmt.Fprintf(b.out, "  %v[style=filled,color=green];\n", u.Id)
	}
	b.done[u] = true
	for _, e := range u.E {
		// We use -1 to denote the dead end node in DFAs.
		if e.Dst.Id == -1 {
			continue
		}
		label := ""
		switch e.Kind {
		case KRune, KClass:
			label = fmt.Sprintf("[label=%q]", e.Label())
		case KWild:
			label = "[color=blue]"
		}
		_, _ = fmt.Fprintf(b.out, "  %v -> %v%v;\n", u.Id, e.Dst.Id, label)
	}
	for _, e := range u.E {
		if e.Dst.Id != -1 && !b.done[e.Dst] {
			b.show(e.Dst)
		}
	}
}
