// Package refa compiles regular expressions into finite automata and
// matches input strings against them.
//
// The pipeline runs pattern → syntax tree → NFA with epsilon
// transitions → epsilon-free NFA → DFA. Matching is anchored at both
// ends and yields the same answer whether it runs on the epsilon-free
// NFA or on the DFA built from it.
package refa

import (
	"fmt"

	"refa/engine"
	"refa/graph"
	"refa/syntax"
)

// Regexp is a compiled pattern bound to an execution engine.
type Regexp struct {
	pattern string
	tab     *graph.Table
	eng     *engine.Engine
}

// Compile parses pattern and compiles it all the way down to a DFA.
func Compile(pattern string) (*Regexp, error) {
	re, err := CompileNFA(pattern)
	if err != nil {
		return nil, err
	}
	re.tab = graph.BuildDFA(re.tab)
	re.eng = engine.New(re.tab)
	return re, nil
}

// CompileNFA parses pattern and stops at the epsilon-free NFA;
// matching then simulates the reachable state set instead of walking a
// deterministic table.
func CompileNFA(pattern string) (*Regexp, error) {
	ast, err := syntax.Parse(pattern)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", pattern, err)
	}
	nfa, err := graph.BuildNFA(ast)
	if err != nil {
		return nil, fmt.Errorf("build-nfa %q: %w", pattern, err)
	}
	tab := graph.CutEpsilon(nfa)
	return &Regexp{pattern: pattern, tab: tab, eng: engine.New(tab)}, nil
}

// MustCompile is Compile for patterns known to be valid.
func MustCompile(pattern string) *Regexp {
	re, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// ExactMatch reports whether the whole of s matches the pattern.
func (re *Regexp) ExactMatch(s string) bool {
	return re.eng.ExactMatch(s)
}

// Table exposes the compiled transition table for external consumers
// such as the DOT renderer.
func (re *Regexp) Table() *graph.Table {
	return re.tab
}

// String returns the source pattern.
func (re *Regexp) String() string {
	return re.pattern
}
