package dom

// The selector compiler: a single-pass byte scanner over a CSS-like selector
// string. A compiled Selector is a standalone value, reusable against any
// number of documents.

// attrOp is the comparison applied by an attribute predicate.
type attrOp uint8

const (
	attrOpPresent   attrOp = iota // [name]
	attrOpEquals                  // [name=v]
	attrOpIncludes                // [name~=v] whitespace-list member
	attrOpDashMatch               // [name|=v] v or v-...
	attrOpPrefix                  // [name^=v]
	attrOpSuffix                  // [name$=v]
	attrOpContains                // [name*=v]
)

type attrCheck struct {
	key  string
	op   attrOp
	val  string
	valb []byte // val as bytes, precomputed for substring matching
}

// compound is one element predicate: tag name, classes, id and attribute
// checks, all of which must hold.
type compound struct {
	tag     string // empty matches any tag, as does "*"
	id      string
	hasID   bool
	classes []string
	attrs   []attrCheck
}

// Selector is a compiled selector: compound selectors joined by descendant
// combinators, rightmost compound last.
type Selector struct {
	compounds []compound
	src       string
}

// String returns the source the selector was compiled from.
func (s *Selector) String() string { return s.src }

// CompileSelector compiles a selector string. Supported syntax: tag names,
// `*`, `.class`, `#id`, attribute predicates `[name]`, `[name=v]` and the
// `~= |= ^= $= *=` forms with optionally quoted values, and descendant
// (whitespace) combinators. Unquoted attribute values may contain ':'.
func CompileSelector(src string) (*Selector, error) {
	p := selParser{in: src}
	var cs []compound
	for {
		p.skipSpace()
		if p.pos >= len(p.in) {
			break
		}
		switch p.in[p.pos] {
		case '>', '+', '~', ',':
			return nil, &SelectorError{Kind: SelectorUnsupportedCombinator, Pos: p.pos}
		}
		c, err := p.parseCompound()
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	if len(cs) == 0 {
		return nil, &SelectorError{Kind: SelectorEmpty}
	}
	return &Selector{compounds: cs, src: src}, nil
}

type selParser struct {
	in  string
	pos int
}

func (p *selParser) skipSpace() {
	for p.pos < len(p.in) && asciiSpace[p.in[p.pos]] {
		p.pos++
	}
}

// isIdentByte matches the bytes accepted in tag, class and id tokens.
func isIdentByte(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' ||
		'0' <= c && c <= '9' || c == '-' || c == '_' || c >= 0x80
}

func (p *selParser) ident() string {
	start := p.pos
	for p.pos < len(p.in) && isIdentByte(p.in[p.pos]) {
		p.pos++
	}
	return p.in[start:p.pos]
}

// parseCompound consumes one compound selector, stopping at whitespace, a
// combinator byte, or end of input.
func (p *selParser) parseCompound() (compound, error) {
	var c compound
	if p.in[p.pos] == '*' {
		p.pos++
	} else {
		c.tag = p.ident()
	}
	for p.pos < len(p.in) {
		switch b := p.in[p.pos]; {
		case asciiSpace[b] || b == '>' || b == '+' || b == '~' || b == ',':
			return c, nil
		case b == '.':
			p.pos++
			name := p.ident()
			if name == "" {
				return c, &SelectorError{Kind: SelectorUnexpectedToken, Pos: p.pos}
			}
			c.classes = append(c.classes, name)
		case b == '#':
			p.pos++
			name := p.ident()
			if name == "" || c.hasID {
				return c, &SelectorError{Kind: SelectorUnexpectedToken, Pos: p.pos}
			}
			c.id, c.hasID = name, true
		case b == '[':
			ac, err := p.parseAttrCheck()
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, ac)
		default:
			return c, &SelectorError{Kind: SelectorUnexpectedToken, Pos: p.pos}
		}
	}
	return c, nil
}

// parseAttrCheck consumes one bracketed attribute predicate, cursor on '['.
func (p *selParser) parseAttrCheck() (attrCheck, error) {
	var ac attrCheck
	open := p.pos
	p.pos++ // '['
	p.skipSpace()

	keyStart := p.pos
	for p.pos < len(p.in) && isIdentByte(p.in[p.pos]) {
		p.pos++
	}
	if p.pos == keyStart {
		return ac, &SelectorError{Kind: SelectorUnexpectedToken, Pos: p.pos}
	}
	ac.key = p.in[keyStart:p.pos]

	p.skipSpace()
	if p.pos >= len(p.in) {
		return ac, &SelectorError{Kind: SelectorUnterminated, Pos: open}
	}
	switch p.in[p.pos] {
	case ']':
		p.pos++
		ac.op = attrOpPresent
		return ac, nil
	case '=':
		ac.op = attrOpEquals
		p.pos++
	case '~', '|', '^', '$', '*':
		switch p.in[p.pos] {
		case '~':
			ac.op = attrOpIncludes
		case '|':
			ac.op = attrOpDashMatch
		case '^':
			ac.op = attrOpPrefix
		case '$':
			ac.op = attrOpSuffix
		case '*':
			ac.op = attrOpContains
		}
		p.pos++
		if p.pos >= len(p.in) || p.in[p.pos] != '=' {
			return ac, &SelectorError{Kind: SelectorUnexpectedToken, Pos: p.pos}
		}
		p.pos++
	default:
		return ac, &SelectorError{Kind: SelectorUnexpectedToken, Pos: p.pos}
	}

	p.skipSpace()
	if p.pos >= len(p.in) {
		return ac, &SelectorError{Kind: SelectorUnterminated, Pos: open}
	}
	if q := p.in[p.pos]; q == '"' || q == '\'' {
		p.pos++
		start := p.pos
		for p.pos < len(p.in) && p.in[p.pos] != q {
			p.pos++
		}
		if p.pos >= len(p.in) {
			return ac, &SelectorError{Kind: SelectorUnterminated, Pos: open}
		}
		ac.val = p.in[start:p.pos]
		p.pos++
	} else {
		start := p.pos
		for p.pos < len(p.in) && p.in[p.pos] != ']' && !asciiSpace[p.in[p.pos]] {
			p.pos++
		}
		ac.val = p.in[start:p.pos]
	}

	p.skipSpace()
	if p.pos >= len(p.in) || p.in[p.pos] != ']' {
		return ac, &SelectorError{Kind: SelectorUnterminated, Pos: open}
	}
	p.pos++
	ac.valb = []byte(ac.val)
	return ac, nil
}
