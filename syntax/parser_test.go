package syntax

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func lit(r rune) *Regexp {
	return &Regexp{Op: OpLiteral, Rune: r}
}

func cat(a, b *Regexp) *Regexp {
	return &Regexp{Op: OpConcat, Sub: []*Regexp{a, b}}
}

func alt(a, b *Regexp) *Regexp {
	return &Regexp{Op: OpAlternate, Sub: []*Regexp{a, b}}
}

func TestParsePrecedence(t *testing.T) {
	tests := map[string]struct {
		pattern string
		want    *Regexp
	}{
		"alternation binds loosest": {
			pattern: "ab|c",
			want:    alt(cat(lit('a'), lit('b')), lit('c')),
		},
		"quantifier binds to the preceding atom": {
			pattern: "ab*",
			want:    cat(lit('a'), &Regexp{Op: OpStar, Sub: []*Regexp{lit('b')}}),
		},
		"quantifier applies to a whole group": {
			pattern: "(ab)+",
			want: &Regexp{Op: OpPlus, Sub: []*Regexp{
				{Op: OpGroup, Sub: []*Regexp{cat(lit('a'), lit('b'))}},
			}},
		},
		"group overrides alternation scope": {
			pattern: "a(b|c)",
			want:    cat(lit('a'), &Regexp{Op: OpGroup, Sub: []*Regexp{alt(lit('b'), lit('c'))}}),
		},
		"stacked quantifiers": {
			pattern: "a?*",
			want: &Regexp{Op: OpStar, Sub: []*Regexp{
				{Op: OpQuest, Sub: []*Regexp{lit('a')}},
			}},
		},
		"escaped digit class": {
			pattern: `a\d`,
			want:    cat(lit('a'), &Regexp{Op: OpClass, Lim: []rune{'0', '9'}}),
		},
		"escaped metacharacter": {
			pattern: `a\(`,
			want:    cat(lit('a'), lit('(')),
		},
		"dot": {
			pattern: "a.",
			want:    cat(lit('a'), &Regexp{Op: OpAnyCharNotNL}),
		},
		"empty alternative": {
			pattern: "a|",
			want:    alt(lit('a'), &Regexp{Op: OpEmptyMatch}),
		},
		"empty pattern": {
			pattern: "",
			want:    &Regexp{Op: OpEmptyMatch},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Parse(tt.pattern)
			require.NoError(t, err)
			if d := cmp.Diff(tt.want, got); d != "" {
				t.Errorf("tree diff (-want +got):\n%s", d)
			}
		})
	}
}

func TestParseCharClass(t *testing.T) {
	tests := map[string]struct {
		pattern string
		want    *Regexp
	}{
		"literal and digit class": {
			pattern: `[b\d]`,
			want:    &Regexp{Op: OpClass, Lim: []rune{'b', 'b', '0', '9'}},
		},
		"negated": {
			pattern: "[^ab]",
			want:    &Regexp{Op: OpClass, Negate: true, Lim: []rune{'a', 'a', 'b', 'b'}},
		},
		"range": {
			pattern: "[a-z]",
			want:    &Regexp{Op: OpClass, Lim: []rune{'a', 'z'}},
		},
		"mixed ranges and literals": {
			pattern: "[A-Z_0-9]",
			want:    &Regexp{Op: OpClass, Lim: []rune{'A', 'Z', '_', '_', '0', '9'}},
		},
		"leading dash is a literal": {
			pattern: "[-a]",
			want:    &Regexp{Op: OpClass, Lim: []rune{'-', '-', 'a', 'a'}},
		},
		"trailing dash is a literal": {
			pattern: "[a-]",
			want:    &Regexp{Op: OpClass, Lim: []rune{'a', 'a', '-', '-'}},
		},
		"escaped bracket member": {
			pattern: `[\]a]`,
			want:    &Regexp{Op: OpClass, Lim: []rune{']', ']', 'a', 'a'}},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Parse(tt.pattern)
			require.NoError(t, err)
			if d := cmp.Diff(tt.want, got); d != "" {
				t.Errorf("tree diff (-want +got):\n%s", d)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]struct {
		pattern string
		want    error
	}{
		"unbalanced open paren":  {"a(b|c", ErrUnmatchedLpar},
		"stray closing paren":    {"a)b", ErrUnmatchedRpar},
		"unterminated class":     {"[ab", ErrUnmatchedLbkt},
		"stray closing bracket":  {"a]b", ErrUnmatchedRbkt},
		"inverted range":         {"[z-a]", ErrBadRange},
		"range down to a dash":   {"[a--]", ErrBadRange},
		"leading quantifier":     {"*a", ErrBareClosure},
		"quantifier after bar":   {"a|*", ErrBareClosure},
		"quantifier after paren": {"(*)", ErrBareClosure},
		"unknown escape":         {`a\q`, ErrBadBackslash},
		"trailing backslash":     {`a\`, ErrExtraneousBackslash},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(tt.pattern)
			require.Error(t, err)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	patterns := []string{
		"ab|c", "a(b|c)*", "[b0-9]", "[^ab]", "a.?", `a\(b`, "(ab)+c", "[-a]", "a|",
	}
	for _, pattern := range patterns {
		re, err := Parse(pattern)
		require.NoError(t, err)
		again, err := Parse(re.String())
		require.NoErrorf(t, err, "reparse of %q from %q", re.String(), pattern)
		if d := cmp.Diff(re, again); d != "" {
			t.Errorf("%s: reparse diff (-first +second):\n%s", pattern, d)
		}
	}
}
