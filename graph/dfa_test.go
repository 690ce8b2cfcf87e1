package graph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustDFA(t *testing.T, pattern string) *Table {
	t.Helper()
	return BuildDFA(CutEpsilon(mustNFA(t, pattern)))
}

func TestBuildDFAIsDeterministic(t *testing.T) {
	for _, pattern := range []string{"(a|b)*abb", `a\d+b`, "[^ab]c?", "a.c"} {
		dfa := mustDFA(t, pattern)
		require.True(t, dfa.Deterministic)
		require.False(t, dfa.HasEpsilon())
		for i, v := range dfa.Nodes {
			require.Equal(t, i, v.Id)
			// One rune edge per single symbol.
			seen := map[rune]bool{}
			for _, e := range v.E {
				if e.Kind == KRune {
					require.Falsef(t, seen[e.R], "pattern %q state %d duplicates %q", pattern, v.Id, e.R)
					seen[e.R] = true
				}
			}
		}
	}
}

func TestBuildDFAMemoizesSetStates(t *testing.T) {
	dfa := mustDFA(t, "(a|b)*abb")
	seen := map[string]bool{}
	for _, v := range dfa.Nodes {
		key := fmt.Sprint(v.Set)
		require.Falsef(t, seen[key], "set state %s materialized twice", key)
		seen[key] = true
	}
}

func TestBuildDFAStartIsStartClosure(t *testing.T) {
	dfa := mustDFA(t, "ab")
	require.Equal(t, 0, dfa.Start().Id)
	require.Equal(t, []int{0}, dfa.Start().Set)
}

func TestBuildDFAPartitionsOverlappingRanges(t *testing.T) {
	// [0-9] and [2-5] overlap; the partition must split them into
	// disjoint pieces so all member states agree per piece.
	dfa := mustDFA(t, "[0-9]x|[2-5]y")
	var pieces []Limits
	for _, e := range dfa.Start().E {
		if e.Kind == KClass && e.Dst.Id >= 0 {
			pieces = append(pieces, e.Lim)
		}
	}
	require.ElementsMatch(t, []Limits{{'0', '1'}, {'2', '5'}, {'6', '9'}}, pieces)
}

func TestAppendLimits(t *testing.T) {
	var l Limits
	l = appendLimits(l, '0', '9')
	l = appendLimits(l, '2', '5')
	require.Equal(t, Limits{'0', '1', '2', '5', '6', '9'}, l)

	l = nil
	l = appendLimits(l, 'a', 'f')
	l = appendLimits(l, 'a', 'f')
	require.Equal(t, Limits{'a', 'f'}, l)

	l = nil
	l = appendLimits(l, 'e', 'j')
	l = appendLimits(l, 'a', 'g')
	require.Equal(t, Limits{'a', 'd', 'e', 'g', 'h', 'j'}, l)

	l = nil
	l = appendLimits(l, 'a', 'c')
	l = appendLimits(l, 'x', 'z')
	require.Equal(t, Limits{'a', 'c', 'x', 'z'}, l)
}

func TestBuildDFAOnDeterministicInput(t *testing.T) {
	dfa := mustDFA(t, "(a|b)*abb")
	again := BuildDFA(dfa)
	require.True(t, again.Deterministic)
	require.False(t, again.HasEpsilon())
}

func TestBuildDFARebuildShadowsDeadRuneEdges(t *testing.T) {
	// [^ab]c? rejects "a" and "b" through rune edges into the dead
	// state. Rebuilding must keep them there; letting the wild edge
	// claim those runes would route them into the accepting state.
	again := BuildDFA(mustDFA(t, "[^ab]c?"))

	runes := map[rune]bool{}
	wild := false
	for _, e := range again.Start().E {
		switch e.Kind {
		case KRune:
			require.Equalf(t, -1, e.Dst.Id, "rune %q must stay dead", e.R)
			runes[e.R] = true
		case KWild:
			wild = true
			require.True(t, e.Dst.Accept)
		}
	}
	require.Equal(t, map[rune]bool{'a': true, 'b': true}, runes)
	require.True(t, wild)
}
