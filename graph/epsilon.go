package graph

// CutEpsilon rewrites a table into an equivalent one with no epsilon
// transitions. Every state receives the non-epsilon transitions of its
// whole epsilon closure and accepts iff any closure member accepts.
// States only reachable through pruned epsilon paths are dropped.
func CutEpsilon(t *Table) *Table {
	c := epsilonCutter{
		src:      t.Nodes,
		closures: make([][]int, len(t.Nodes)),
	}

	fresh := make([]*Node, len(t.Nodes))
	for i, v := range t.Nodes {
		fresh[i] = &Node{Id: v.Id}
	}
	for i := range t.Nodes {
		for _, j := range c.closure(i) {
			if c.src[j].Accept {
				fresh[i].Accept = true
			}
			for _, e := range c.src[j].E {
				if e.Kind != KNil {
					copyLabel(fresh[i], fresh[e.Dst.Id], e)
				}
			}
		}
	}

	return &Table{Nodes: compactGraph(fresh[0])}
}

type epsilonCutter struct {
	src      []*Node
	closures [][]int
}

// closure returns the epsilon closure of state i, i itself included.
// Closures are computed once and cached.
func (c *epsilonCutter) closure(i int) []int {
	if c.closures[i] != nil {
		return c.closures[i]
	}
	visited := make([]bool, len(c.src))
	visited[i] = true
	bfs := []int{i}
	for pos := 0; pos < len(bfs); pos++ {
		for _, e := range c.src[bfs[pos]].E {
			if e.Kind == KNil && !visited[e.Dst.Id] {
				visited[e.Dst.Id] = true
				bfs = append(bfs, e.Dst.Id)
			}
		}
	}
	c.closures[i] = bfs
	return bfs
}
