package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"refa/engine"
	"refa/graph"
	"refa/syntax"
)

var verdictColors = map[bool]*color.Color{
	true:  color.New(color.FgGreen),
	false: color.New(color.FgRed),
}

var cli struct {
	Verbose bool `short:"v" help:"Log each compilation stage."`

	Match struct {
		Nfa     bool     `help:"Match by NFA set simulation instead of the DFA walk."`
		Pattern string   `arg:"" help:"Pattern to compile."`
		Input   []string `arg:"" optional:"" help:"Strings to match; stdin lines when omitted."`
	} `cmd:"" help:"Compile a pattern and match inputs against it."`

	Dot struct {
		Form    string `enum:"nfa,dfa" default:"dfa" help:"Automaton form to render."`
		Pattern string `arg:"" help:"Pattern to compile."`
	} `cmd:"" help:"Print the compiled automaton in DOT format."`

	Dump struct {
		Form    string `enum:"nfa,dfa" default:"dfa" help:"Automaton form to dump."`
		Pattern string `arg:"" help:"Pattern to compile."`
	} `cmd:"" help:"Print the transition table."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("refa"),
		kong.Description("Compiles regular expressions to finite automata and matches strings against them."),
		kong.UsageOnError(),
	)
	if cli.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	var err error
	switch cmd := ctx.Command(); {
	case strings.HasPrefix(cmd, "match"):
		err = runMatch()
	case strings.HasPrefix(cmd, "dot"):
		err = runDot()
	case strings.HasPrefix(cmd, "dump"):
		err = runDump()
	}
	if err != nil {
		logrus.Fatal(err)
	}
}

// compileForm compiles pattern down to the requested automaton form,
// logging the size of each stage.
func compileForm(pattern string, wantDFA bool) (*graph.Table, error) {
	ast, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	nfa, err := graph.BuildNFA(ast)
	if err != nil {
		return nil, err
	}
	logStage("built NFA", nfa)
	tab := graph.CutEpsilon(nfa)
	logStage("cut epsilon", tab)
	if !wantDFA {
		return tab, nil
	}
	tab = graph.BuildDFA(tab)
	logStage("built DFA", tab)
	return tab, nil
}

func logStage(msg string, tab *graph.Table) {
	logrus.WithFields(logrus.Fields{
		"states": tab.StateCount(),
		"edges":  tab.EdgeCount(),
	}).Debug(msg)
}

func runMatch() error {
	tab, err := compileForm(cli.Match.Pattern, !cli.Match.Nfa)
	if err != nil {
		return err
	}
	eng := engine.New(tab)

	inputs := cli.Match.Input
	if len(inputs) == 0 {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			inputs = append(inputs, sc.Text())
		}
		if err := sc.Err(); err != nil {
			return err
		}
	}

	rejected := false
	for _, in := range inputs {
		ok := eng.ExactMatch(in)
		verdict := "no match"
		if ok {
			verdict = "match"
		} else {
			rejected = true
		}
		fmt.Printf("%s\t%q\n", verdictColors[ok].Sprint(verdict), in)
	}
	if rejected {
		os.Exit(1)
	}
	return nil
}

func runDot() error {
	tab, err := compileForm(cli.Dot.Pattern, cli.Dot.Form == "dfa")
	if err != nil {
		return err
	}
	graph.WriteDotGraph(os.Stdout, tab, cli.Dot.Form)
	return nil
}

func runDump() error {
	tab, err := compileForm(cli.Dump.Pattern, cli.Dump.Form == "dfa")
	if err != nil {
		return err
	}
	fmt.Print(tab.String())
	return nil
}
