package jsx

import (
	"fmt"
	"strings"
	"unicode"
)

// element is one parsed markup node.
type element struct {
	name        string
	attrs       []attr
	children    []child
	selfClosing bool
}

type attr struct {
	name  string
	value attrValue
}

type attrKind int

const (
	attrBare attrKind = iota // attribute with no value, truthy by convention
	attrString
	attrExpr
)

type attrValue struct {
	kind attrKind
	text string
}

type childKind int

const (
	childText childKind = iota
	childExpr
	childElement
)

type child struct {
	kind childKind
	text string
	elem *element
}

type parser struct {
	src []rune
	pos int
}

// parseElement parses a single element starting at the parser position.
func (p *parser) parseElement() (*element, error) {
	p.skipSpace()
	if !p.consume('<') {
		return nil, p.errorf("expected element start")
	}

	name := p.ident()
	if name == "" {
		return nil, p.errorf("expected element name")
	}
	el := &element{name: name}

	for {
		p.skipSpace()
		switch {
		case p.peek() == '/':
			p.pos++
			if !p.consume('>') {
				return nil, p.errorf("expected > after / in %s", name)
			}
			el.selfClosing = true
			return el, nil
		case p.peek() == '>':
			p.pos++
			if err := p.parseChildren(el); err != nil {
				return nil, err
			}
			return el, nil
		default:
			a, err := p.parseAttr()
			if err != nil {
				return nil, err
			}
			el.attrs = append(el.attrs, a)
		}
	}
}

func (p *parser) parseAttr() (attr, error) {
	name := p.ident()
	if name == "" {
		return attr{}, p.errorf("expected attribute name")
	}
	p.skipSpace()
	if !p.consume('=') {
		return attr{name: name, value: attrValue{kind: attrBare}}, nil
	}
	p.skipSpace()

	switch p.peek() {
	case '"':
		text, err := p.stringLiteral('"')
		if err != nil {
			return attr{}, err
		}
		return attr{name: name, value: attrValue{kind: attrString, text: text}}, nil
	case '\'':
		text, err := p.stringLiteral('\'')
		if err != nil {
			return attr{}, err
		}
		return attr{name: name, value: attrValue{kind: attrString, text: text}}, nil
	case '{':
		text, err := p.bracedExpr()
		if err != nil {
			return attr{}, err
		}
		return attr{name: name, value: attrValue{kind: attrExpr, text: text}}, nil
	default:
		return attr{}, p.errorf("unexpected attribute value for %q", name)
	}
}

func (p *parser) parseChildren(el *element) error {
	var text strings.Builder

	flush := func() {
		if trimmed := collapseSpace(text.String()); trimmed != "" {
			el.children = append(el.children, child{kind: childText, text: trimmed})
		}
		text.Reset()
	}

	for {
		switch {
		case p.pos >= len(p.src):
			return p.errorf("unexpected end of input inside <%s>", el.name)
		case p.peek() == '<' && p.peekAt(1) == '/':
			flush()
			p.pos += 2
			closing := p.ident()
			p.skipSpace()
			if !p.consume('>') {
				return p.errorf("malformed closing tag for <%s>", el.name)
			}
			if closing != el.name {
				return p.errorf("mismatched closing tag </%s> for <%s>", closing, el.name)
			}
			return nil
		case p.peek() == '<':
			flush()
			nested, err := p.parseElement()
			if err != nil {
				return err
			}
			el.children = append(el.children, child{kind: childElement, elem: nested})
		case p.peek() == '{':
			flush()
			expr, err := p.bracedExpr()
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(expr)
			if strings.HasPrefix(trimmed, "/*") {
				// comment child, dropped
				continue
			}
			el.children = append(el.children, child{kind: childExpr, text: trimmed})
		default:
			text.WriteRune(p.src[p.pos])
			p.pos++
		}
	}
}

// bracedExpr consumes a balanced {...} block and returns its inner text.
// Nested braces and string literals are respected.
func (p *parser) bracedExpr() (string, error) {
	if !p.consume('{') {
		return "", p.errorf("expected {")
	}
	depth := 1
	var b strings.Builder
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				p.pos++
				return b.String(), nil
			}
		case '"', '\'':
			literal, err := p.rawStringLiteral(r)
			if err != nil {
				return "", err
			}
			b.WriteString(literal)
			continue
		}
		b.WriteRune(r)
		p.pos++
	}
	return "", p.errorf("unbalanced braces")
}

// stringLiteral consumes a quoted literal and returns its unquoted content.
func (p *parser) stringLiteral(quote rune) (string, error) {
	raw, err := p.rawStringLiteral(quote)
	if err != nil {
		return "", err
	}
	return raw[1 : len(raw)-1], nil
}

// rawStringLiteral consumes a quoted literal including the quotes.
func (p *parser) rawStringLiteral(quote rune) (string, error) {
	if p.peek() != quote {
		return "", p.errorf("expected string literal")
	}
	var b strings.Builder
	b.WriteRune(quote)
	p.pos++
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		p.pos++
		b.WriteRune(r)
		if r == '\\' && p.pos < len(p.src) {
			b.WriteRune(p.src[p.pos])
			p.pos++
			continue
		}
		if r == quote {
			return b.String(), nil
		}
	}
	return "", p.errorf("unterminated string literal")
}

func (p *parser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			p.pos++
			continue
		}
		break
	}
	return string(p.src[start:p.pos])
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser) peek() rune {
	return p.peekAt(0)
}

func (p *parser) peekAt(offset int) rune {
	if p.pos+offset >= len(p.src) {
		return 0
	}
	return p.src[p.pos+offset]
}

func (p *parser) consume(r rune) bool {
	if p.peek() != r {
		return false
	}
	p.pos++
	return true
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("jsx: %s (at offset %d)", fmt.Sprintf(format, args...), p.pos)
}

func collapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
