package syntax

import (
	"errors"
	"fmt"
	"strings"
)

// Parse error kinds. The parser stops at the first error and wraps the
// kind with the rune offset it was detected at, so callers can both
// test the kind with errors.Is and report the position.
var (
	ErrInternal            = errors.New("internal error")
	ErrUnmatchedLpar       = errors.New("unmatched '('")
	ErrUnmatchedRpar       = errors.New("unmatched ')'")
	ErrUnmatchedLbkt       = errors.New("unmatched '['")
	ErrUnmatchedRbkt       = errors.New("unmatched ']'")
	ErrBadRange            = errors.New("bad range in character class")
	ErrExtraneousBackslash = errors.New("extraneous backslash")
	ErrBareClosure         = errors.New("closure applies to nothing")
	ErrBadBackslash        = errors.New("illegal backslash escape")
)

var escapeMap = map[rune]rune{
	'a': '\a',
	'b': '\b',
	'f': '\f',
	'n': '\n',
	'r': '\r',
	't': '\t',
	'v': '\v',
}

const punctuationMarks = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

func ispunct(c rune) bool {
	return strings.ContainsRune(punctuationMarks, c)
}

func escape(c rune) rune {
	if r, ok := escapeMap[c]; ok {
		return r
	}
	return -1
}

// Parse turns a pattern into a syntax tree. Precedence, tightest
// first: quantifiers, concatenation, alternation.
func Parse(pattern string) (*Regexp, error) {
	p := &parser{pattern: []rune(pattern)}
	re, err := p.pRe()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		// pRe only stops early on a ')' nobody opened.
		return nil, p.wrap(ErrUnmatchedRpar)
	}
	return re, nil
}

// parser is a cursor over the pattern runes. Each production advances
// the shared position, which keeps error offsets exact.
type parser struct {
	pattern []rune
	pos     int
}

func (p *parser) wrap(err error) error {
	return fmt.Errorf("offset %d: %w", p.pos, err)
}

func (p *parser) eof() bool {
	return p.pos >= len(p.pattern)
}

func (p *parser) peek() rune {
	return p.pattern[p.pos]
}

// pRe parses an alternation, the loosest-binding production.
func (p *parser) pRe() (*Regexp, error) {
	left, err := p.pCat()
	if err != nil {
		return nil, err
	}
	for !p.eof() && p.peek() == '|' {
		p.pos++
		right, err := p.pCat()
		if err != nil {
			return nil, err
		}
		left = &Regexp{Op: OpAlternate, Sub: []*Regexp{left, right}}
	}
	return left, nil
}

// pCat parses juxtaposed closures until '|', ')' or the end of the
// pattern. An empty sequence yields an empty-match node.
func (p *parser) pCat() (*Regexp, error) {
	var left *Regexp
	for !p.eof() && p.peek() != '|' && p.peek() != ')' {
		right, err := p.pClosure()
		if err != nil {
			return nil, err
		}
		if left == nil {
			left = right
		} else {
			left = &Regexp{Op: OpConcat, Sub: []*Regexp{left, right}}
		}
	}
	if left == nil {
		left = &Regexp{Op: OpEmptyMatch}
	}
	return left, nil
}

// pClosure parses a term and any trailing quantifiers. A quantifier
// wraps whatever fragment precedes it, group or single atom alike.
func (p *parser) pClosure() (*Regexp, error) {
	term, err := p.pTerm()
	if err != nil {
		return nil, err
	}
	for !p.eof() {
		var op Op
		switch p.peek() {
		case '*':
			op = OpStar
		case '+':
			op = OpPlus
		case '?':
			op = OpQuest
		default:
			return term, nil
		}
		p.pos++
		term = &Regexp{Op: op, Sub: []*Regexp{term}}
	}
	return term, nil
}

func (p *parser) pTerm() (*Regexp, error) {
	switch c := p.peek(); c {
	case '*', '+', '?':
		return nil, p.wrap(ErrBareClosure)
	case ']':
		return nil, p.wrap(ErrUnmatchedRbkt)
	case '(':
		p.pos++
		sub, err := p.pRe()
		if err != nil {
			return nil, err
		}
		if p.eof() || p.peek() != ')' {
			return nil, p.wrap(ErrUnmatchedLpar)
		}
		p.pos++
		return &Regexp{Op: OpGroup, Sub: []*Regexp{sub}}, nil
	case '[':
		p.pos++
		return p.pCharClass()
	case '.':
		p.pos++
		return &Regexp{Op: OpAnyCharNotNL}, nil
	case '\\':
		c, isDigits, err := p.maybeEscape()
		if err != nil {
			return nil, err
		}
		if isDigits {
			return &Regexp{Op: OpClass, Lim: []rune{'0', '9'}}, nil
		}
		return &Regexp{Op: OpLiteral, Rune: c}, nil
	default:
		p.pos++
		return &Regexp{Op: OpLiteral, Rune: c}, nil
	}
}

// pCharClass parses a bracket expression; the leading '[' is already
// consumed. '-' is a literal at either end of the expression.
func (p *parser) pCharClass() (*Regexp, error) {
	re := &Regexp{Op: OpClass}
	if !p.eof() && p.peek() == '^' {
		re.Negate = true
		p.pos++
	}
	var left rune
	leftLive := false
	justSawDash := false
	first := true
	for !p.eof() && p.peek() != ']' {
		if p.peek() == '-' && !first && !justSawDash {
			p.pos++
			justSawDash = true
			continue
		}
		c, isDigits, err := p.maybeEscape()
		if err != nil {
			return nil, err
		}
		if isDigits {
			// \d contributes the digit range; it cannot bound a range.
			if justSawDash {
				return nil, p.wrap(ErrBadRange)
			}
			if leftLive {
				re.Lim = append(re.Lim, left, left)
				leftLive = false
			}
			re.Lim = append(re.Lim, '0', '9')
			first = false
			continue
		}
		if justSawDash {
			if !leftLive || left > c {
				return nil, p.wrap(ErrBadRange)
			}
			re.Lim = append(re.Lim, left, c)
			leftLive = false
			justSawDash = false
		} else {
			if leftLive {
				re.Lim = append(re.Lim, left, left)
			}
			left = c
			leftLive = true
		}
		first = false
	}
	if leftLive {
		re.Lim = append(re.Lim, left, left)
	}
	if justSawDash {
		re.Lim = append(re.Lim, '-', '-')
	}
	if p.eof() || p.peek() != ']' {
		return nil, p.wrap(ErrUnmatchedLbkt)
	}
	p.pos++
	return re, nil
}

// maybeEscape consumes one pattern rune, resolving a backslash escape
// if present. isDigits reports a '\d'.
func (p *parser) maybeEscape() (c rune, isDigits bool, err error) {
	c = p.peek()
	p.pos++
	if c != '\\' {
		return c, false, nil
	}
	if p.eof() {
		return 0, false, p.wrap(ErrExtraneousBackslash)
	}
	c = p.peek()
	p.pos++
	switch {
	case c == 'd':
		return 0, true, nil
	case ispunct(c):
		return c, false, nil
	case escape(c) >= 0:
		return escape(c), false, nil
	}
	return 0, false, p.wrap(ErrBadBackslash)
}
