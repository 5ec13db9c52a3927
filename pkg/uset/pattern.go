package uset

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/dmitrymomot/intl/pkg/status"
	"github.com/dmitrymomot/intl/pkg/uchar"
)

// parser reads set patterns such as "[a-zé{ch}]", "[^[:Greek:]]",
// "\p{Lu}" and "[[a-z]-[aeiou]]". Whitespace between items is ignored.
type parser struct {
	src []rune
	pos int
}

func parsePattern(pattern string) (spans, []string, error) {
	p := &parser{src: []rune(pattern)}
	p.skipSpace()
	set, strs, err := p.set()
	if err != nil {
		return nil, nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, nil, p.fail("trailing text")
	}
	return set, strs, nil
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() rune {
	if p.eof() {
		return -1
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(off int) rune {
	if p.pos+off >= len(p.src) {
		return -1
	}
	return p.src[p.pos+off]
}

func (p *parser) skipSpace() {
	for !p.eof() && unicode.Is(unicode.Pattern_White_Space, p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser) fail(msg string) error {
	return status.New("uset.Parse", status.PatternSyntax, fmt.Errorf("%w: %s at offset %d", ErrSyntax, msg, p.pos))
}

// startsSet reports whether a nested set or property begins at the cursor.
func (p *parser) startsSet() bool {
	switch p.peek() {
	case '[':
		return true
	case '\\':
		n := p.peekAt(1)
		return n == 'p' || n == 'P'
	}
	return false
}

func (p *parser) set() (spans, []string, error) {
	switch {
	case p.peek() == '[' && p.peekAt(1) == ':':
		return p.posixProperty()
	case p.peek() == '\\':
		return p.property()
	case p.peek() != '[':
		return nil, nil, p.fail("expected '['")
	}
	p.pos++
	negate := false
	if p.peek() == '^' {
		negate = true
		p.pos++
	}

	var (
		cur  spans
		strs []string
		op   rune
	)
	for {
		p.skipSpace()
		switch c := p.peek(); {
		case c == -1:
			return nil, nil, p.fail("missing ']'")
		case c == ']':
			p.pos++
			if op != 0 {
				return nil, nil, p.fail("operator without operand")
			}
			if negate {
				return cur.complement(), nil, nil
			}
			return cur, strs, nil
		case p.startsSet():
			nested, nstrs, err := p.set()
			if err != nil {
				return nil, nil, err
			}
			switch op {
			case '&':
				cur = cur.intersect(nested)
			case '-':
				cur = cur.subtract(nested)
			default:
				cur = cur.union(nested)
				strs = append(strs, nstrs...)
			}
			op = 0
		case (c == '&' || c == '-') && p.operatorFollows():
			if op != 0 || (len(cur) == 0 && len(strs) == 0) {
				return nil, nil, p.fail("misplaced set operator")
			}
			op = c
			p.pos++
		case c == '{':
			s, err := p.str()
			if err != nil {
				return nil, nil, err
			}
			if rs := []rune(s); len(rs) == 1 {
				cur = cur.add(rs[0], rs[0])
			} else {
				strs = append(strs, s)
			}
		default:
			lo, err := p.char()
			if err != nil {
				return nil, nil, err
			}
			hi := lo
			p.skipSpace()
			if p.peek() == '-' && p.peekAt(1) != ']' && !p.operatorFollows() {
				p.pos++
				p.skipSpace()
				if hi, err = p.char(); err != nil {
					return nil, nil, err
				}
				if hi < lo {
					return nil, nil, p.fail("range out of order")
				}
			}
			cur = cur.add(lo, hi)
		}
	}
}

// operatorFollows reports whether the '&' or '-' at the cursor is followed
// by a set operand.
func (p *parser) operatorFollows() bool {
	save := p.pos
	defer func() { p.pos = save }()
	p.pos++
	p.skipSpace()
	return p.startsSet()
}

func (p *parser) str() (string, error) {
	p.pos++
	var b strings.Builder
	for {
		switch p.peek() {
		case -1:
			return "", p.fail("missing '}'")
		case '}':
			p.pos++
			return b.String(), nil
		}
		r, err := p.char()
		if err != nil {
			return "", err
		}
		b.WriteRune(r)
	}
}

func (p *parser) char() (rune, error) {
	c := p.peek()
	switch c {
	case -1:
		return 0, p.fail("unexpected end")
	case '[', ']':
		return 0, p.fail("unexpected bracket")
	case '\\':
		return p.escape()
	}
	p.pos++
	return c, nil
}

func (p *parser) escape() (rune, error) {
	p.pos++
	c := p.peek()
	if c == -1 {
		return 0, p.escapeErr()
	}
	p.pos++
	switch c {
	case 'u':
		return p.hex(4)
	case 'U':
		return p.hex(8)
	case 'x':
		if p.peek() == '{' {
			return p.braced(func(s string) (rune, error) { return parseHex(s) })
		}
		return p.hex(2)
	case 'N':
		if p.peek() != '{' {
			return 0, p.escapeErr()
		}
		return p.braced(func(s string) (rune, error) { return uchar.CharFromName(s) })
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case 'f':
		return '\f', nil
	case 'v':
		return '\v', nil
	}
	return c, nil
}

func (p *parser) escapeErr() error {
	return status.New("uset.Parse", status.IllegalEscapeSequence, fmt.Errorf("%w at offset %d", ErrEscape, p.pos))
}

func (p *parser) hex(n int) (rune, error) {
	if p.pos+n > len(p.src) {
		return 0, p.escapeErr()
	}
	r, err := parseHex(string(p.src[p.pos : p.pos+n]))
	if err != nil {
		return 0, p.escapeErr()
	}
	p.pos += n
	return r, nil
}

func (p *parser) braced(fn func(string) (rune, error)) (rune, error) {
	end := p.pos
	for end < len(p.src) && p.src[end] != '}' {
		end++
	}
	if end == len(p.src) {
		return 0, p.escapeErr()
	}
	r, err := fn(string(p.src[p.pos+1 : end]))
	if err != nil {
		return 0, p.escapeErr()
	}
	p.pos = end + 1
	return r, nil
}

func parseHex(s string) (rune, error) {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || v > unicode.MaxRune {
		return 0, ErrEscape
	}
	return rune(v), nil
}

// property parses \p{name}, \P{name} and \p{key=value}.
func (p *parser) property() (spans, []string, error) {
	if p.peekAt(1) != 'p' && p.peekAt(1) != 'P' || p.peekAt(2) != '{' {
		return nil, nil, p.fail("expected '[' or property")
	}
	negate := p.peekAt(1) == 'P'
	p.pos += 3
	end := p.pos
	for end < len(p.src) && p.src[end] != '}' {
		end++
	}
	if end == len(p.src) {
		return nil, nil, p.fail("missing '}'")
	}
	name := string(p.src[p.pos:end])
	p.pos = end + 1
	return lookupProperty(name, negate)
}

// posixProperty parses [:name:] and [:^name:].
func (p *parser) posixProperty() (spans, []string, error) {
	p.pos += 2
	negate := false
	if p.peek() == '^' {
		negate = true
		p.pos++
	}
	end := p.pos
	for end+1 < len(p.src) && (p.src[end] != ':' || p.src[end+1] != ']') {
		end++
	}
	if end+1 >= len(p.src) {
		return nil, nil, p.fail("missing ':]'")
	}
	name := string(p.src[p.pos:end])
	p.pos = end + 2
	return lookupProperty(name, negate)
}

func lookupProperty(name string, negate bool) (spans, []string, error) {
	rt, ok := propertyTable(strings.TrimSpace(name))
	if !ok {
		return nil, nil, status.New("uset.Parse", status.InvalidParameter, fmt.Errorf("%w: %q", ErrUnknownProperty, name))
	}
	s := fromTable(rt)
	if negate {
		s = s.complement()
	}
	return s, nil, nil
}

var special = map[string]*unicode.RangeTable{
	"any":   {R32: []unicode.Range32{{Lo: 0, Hi: unicode.MaxRune, Stride: 1}}},
	"ascii": {R16: []unicode.Range16{{Lo: 0, Hi: 0x7f, Stride: 1}}},
}

func propertyTable(name string) (*unicode.RangeTable, bool) {
	if key, value, ok := strings.Cut(name, "="); ok {
		var table map[string]*unicode.RangeTable
		switch loose(key) {
		case "gc", "generalcategory":
			table = unicode.Categories
		case "sc", "script", "scx", "scriptextensions":
			table = unicode.Scripts
		default:
			return nil, false
		}
		return find(table, strings.TrimSpace(value))
	}
	if rt, ok := special[loose(name)]; ok {
		return rt, true
	}
	for _, table := range []map[string]*unicode.RangeTable{unicode.Categories, unicode.Scripts, unicode.Properties} {
		if rt, ok := find(table, name); ok {
			return rt, true
		}
	}
	return nil, false
}

// find looks name up exactly, then ignoring case, spaces, hyphens and
// underscores. Category names are short and case sensitive ("Lu", "L").
func find(table map[string]*unicode.RangeTable, name string) (*unicode.RangeTable, bool) {
	if rt, ok := table[name]; ok {
		return rt, true
	}
	want := loose(name)
	for k, rt := range table {
		if len(k) > 2 && loose(k) == want {
			return rt, true
		}
	}
	return nil, false
}

func loose(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-':
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}
