// Package syntax parses regular-expression patterns into syntax trees.
package syntax

import "strings"

// Op is the operator of a syntax-tree node.
type Op int

const (
	OpEmptyMatch   Op = iota // matches the empty string
	OpLiteral                // matches the rune Rune
	OpClass                  // matches runes against the Lim pairs, inverted if Negate
	OpAnyCharNotNL           // matches any rune except '\n'
	OpConcat                 // matches Sub[0] followed by Sub[1]
	OpAlternate              // matches Sub[0] or Sub[1]
	OpStar                   // matches Sub[0] zero or more times
	OpPlus                   // matches Sub[0] one or more times
	OpQuest                  // matches Sub[0] zero or one times
	OpGroup                  // matches Sub[0]; grouping is a parse-time construct
)

// Regexp is a node of the syntax tree. Concat and Alternate are
// binary; the quantifiers and Group carry a single child in Sub[0].
type Regexp struct {
	Op     Op
	Sub    []*Regexp
	Rune   rune   // for OpLiteral
	Lim    []rune // inclusive lo,hi pairs for OpClass
	Negate bool   // for OpClass
}

// metaRunes are escaped when a literal is written back as pattern text.
const metaRunes = `()[]*+?|\.`

// String reconstructs a pattern that parses back to the same tree.
func (re *Regexp) String() string {
	var b strings.Builder
	re.write(&b)
	return b.String()
}

func (re *Regexp) write(b *strings.Builder) {
	switch re.Op {
	case OpEmptyMatch:
	case OpLiteral:
		if strings.ContainsRune(metaRunes, re.Rune) {
			b.WriteByte('\\')
		}
		b.WriteRune(re.Rune)
	case OpAnyCharNotNL:
		b.WriteByte('.')
	case OpClass:
		b.WriteByte('[')
		if re.Negate {
			b.WriteByte('^')
		}
		for i := 0; i < len(re.Lim); i += 2 {
			writeClassRune(b, re.Lim[i])
			if re.Lim[i] != re.Lim[i+1] {
				b.WriteByte('-')
				writeClassRune(b, re.Lim[i+1])
			}
		}
		b.WriteByte(']')
	case OpConcat:
		re.Sub[0].write(b)
		re.Sub[1].write(b)
	case OpAlternate:
		re.Sub[0].write(b)
		b.WriteByte('|')
		re.Sub[1].write(b)
	case OpStar:
		re.Sub[0].write(b)
		b.WriteByte('*')
	case OpPlus:
		re.Sub[0].write(b)
		b.WriteByte('+')
	case OpQuest:
		re.Sub[0].write(b)
		b.WriteByte('?')
	case OpGroup:
		b.WriteByte('(')
		re.Sub[0].write(b)
		b.WriteByte(')')
	}
}

func writeClassRune(b *strings.Builder, r rune) {
	if strings.ContainsRune(`\]^-`, r) {
		b.WriteByte('\\')
	}
	b.WriteRune(r)
}
