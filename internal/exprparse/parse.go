// Package exprparse implements a small recursive-descent parser for Boolean
// expressions over declared obdd variables, used by the cmd/obdd CLI to let
// a user hand a formula on the command line instead of building it up
// through a sequence of Manager.Apply calls by hand. Grammar, in order of
// increasing precedence:
//
//	expr   := or
//	or     := xor ('|' xor)*
//	xor    := and ('^' and)*
//	and    := unary ('&' unary)*
//	unary  := '!' unary | primary
//	primary:= '(' expr ')' | IDENT | '1' | '0'
package exprparse

import (
	"fmt"
	"strings"

	"github.com/go-formal/obdd"
)

type parser struct {
	m    *obdd.Manager
	toks []string
	pos  int
}

// Parse evaluates expr against m, resolving identifiers via m.Var.
func Parse(m *obdd.Manager, expr string) (obdd.Edge, error) {
	p := &parser{m: m, toks: tokenize(expr)}
	if len(p.toks) == 0 {
		return obdd.Edge{}, fmt.Errorf("empty expression")
	}
	res, err := p.or()
	if err != nil {
		return obdd.Edge{}, err
	}
	if p.pos != len(p.toks) {
		return obdd.Edge{}, fmt.Errorf("unexpected token %q", p.toks[p.pos])
	}
	return res, nil
}

func tokenize(expr string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range expr {
		switch r {
		case '&', '|', '^', '!', '(', ')':
			flush()
			toks = append(toks, string(r))
		case ' ', '\t', '\n', '\r':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}

func (p *parser) peek() string {
	if p.pos >= len(p.toks) {
		return ""
	}
	return p.toks[p.pos]
}

func (p *parser) or() (obdd.Edge, error) {
	left, err := p.xor()
	if err != nil {
		return obdd.Edge{}, err
	}
	for p.peek() == "|" {
		p.pos++
		right, err := p.xor()
		if err != nil {
			return obdd.Edge{}, err
		}
		left, err = p.m.Apply(left, right, obdd.OPor)
		if err != nil {
			return obdd.Edge{}, err
		}
	}
	return left, nil
}

func (p *parser) xor() (obdd.Edge, error) {
	left, err := p.and()
	if err != nil {
		return obdd.Edge{}, err
	}
	for p.peek() == "^" {
		p.pos++
		right, err := p.and()
		if err != nil {
			return obdd.Edge{}, err
		}
		left, err = p.m.Apply(left, right, obdd.OPxor)
		if err != nil {
			return obdd.Edge{}, err
		}
	}
	return left, nil
}

func (p *parser) and() (obdd.Edge, error) {
	left, err := p.unary()
	if err != nil {
		return obdd.Edge{}, err
	}
	for p.peek() == "&" {
		p.pos++
		right, err := p.unary()
		if err != nil {
			return obdd.Edge{}, err
		}
		left, err = p.m.Apply(left, right, obdd.OPand)
		if err != nil {
			return obdd.Edge{}, err
		}
	}
	return left, nil
}

func (p *parser) unary() (obdd.Edge, error) {
	if p.peek() == "!" {
		p.pos++
		e, err := p.unary()
		if err != nil {
			return obdd.Edge{}, err
		}
		return p.m.Not(e)
	}
	return p.primary()
}

func (p *parser) primary() (obdd.Edge, error) {
	tok := p.peek()
	switch tok {
	case "":
		return obdd.Edge{}, fmt.Errorf("unexpected end of expression")
	case "(":
		p.pos++
		e, err := p.or()
		if err != nil {
			return obdd.Edge{}, err
		}
		if p.peek() != ")" {
			return obdd.Edge{}, fmt.Errorf("expected ')'")
		}
		p.pos++
		return e, nil
	case "1":
		p.pos++
		return p.m.True(), nil
	case "0":
		p.pos++
		return p.m.False(), nil
	default:
		p.pos++
		return p.m.Var(tok)
	}
}
