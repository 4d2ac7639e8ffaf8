package engine

import (
	"errors"
	"math"
	"strconv"
)

// Eval evaluates an infix arithmetic expression over float64.
//
// The grammar covers exactly what the engine's buffer can hold:
//
//	expr   = term { ("+" | "-") term }
//	term   = unary { ("*" | "/") unary }
//	unary  = ("+" | "-") unary | number
//	number = digits [ "." [ digits ] ] [ exponent ] | "." digits [ exponent ]
//
// '*' and '/' bind tighter than '+' and '-'; operators of equal precedence
// associate left. Division follows IEEE-754, so 1/0 is +Inf rather than a
// fault. Returns an *EvalError with ErrCodeMalformed for syntax errors and
// ErrCodeNonFinite when the result is infinite or NaN.
func Eval(expr string) (float64, error) {
	toks, err := tokenize(expr)
	if err != nil {
		return 0, err
	}
	p := &parser{expr: expr, toks: toks}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return 0, newMalformed(expr, t.pos, "unexpected %q", t.text)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, newNonFinite(expr, v)
	}
	return v, nil
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokOperator
)

type token struct {
	kind tokenKind
	text string
	pos  int
	num  float64
}

// tokenize splits expr into numbers and operators. Any other byte,
// including whitespace and parentheses, is malformed.
func tokenize(expr string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case IsOperator(c):
			toks = append(toks, token{kind: tokOperator, text: expr[i : i+1], pos: i})
			i++
		case isDigit(c) || c == '.':
			end, err := scanNumber(expr, i)
			if err != nil {
				return nil, err
			}
			text := expr[i:end]
			v, perr := strconv.ParseFloat(text, 64)
			if perr != nil {
				// overflow still yields ±Inf alongside ErrRange
				if !errors.Is(perr, strconv.ErrRange) {
					return nil, newMalformed(expr, i, "invalid number %q", text)
				}
			}
			toks = append(toks, token{kind: tokNumber, text: text, pos: i, num: v})
			i = end
		default:
			return nil, newMalformed(expr, i, "unexpected character %q", string(c))
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(expr)})
	return toks, nil
}

// scanNumber returns the end offset of the numeric literal starting at i.
func scanNumber(expr string, i int) (int, error) {
	start := i
	mant := 0
	for i < len(expr) && isDigit(expr[i]) {
		i++
		mant++
	}
	if i < len(expr) && expr[i] == '.' {
		i++
		for i < len(expr) && isDigit(expr[i]) {
			i++
			mant++
		}
	}
	if mant == 0 {
		return 0, newMalformed(expr, start, "number has no digits")
	}
	if i < len(expr) && (expr[i] == 'e' || expr[i] == 'E') {
		j := i + 1
		if j < len(expr) && (expr[j] == '+' || expr[j] == '-') {
			j++
		}
		k := j
		for k < len(expr) && isDigit(expr[k]) {
			k++
		}
		if k == j {
			return 0, newMalformed(expr, i, "exponent has no digits")
		}
		i = k
	}
	if i < len(expr) && expr[i] == '.' {
		return 0, newMalformed(expr, i, "number has a second decimal point")
	}
	return i, nil
}

type parser struct {
	expr string
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		t := p.peek()
		if t.kind != tokOperator || (t.text != "+" && t.text != "-") {
			return v, nil
		}
		p.next()
		rhs, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if t.text == "+" {
			v += rhs
		} else {
			v -= rhs
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	v, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		t := p.peek()
		if t.kind != tokOperator || (t.text != "*" && t.text != "/") {
			return v, nil
		}
		p.next()
		rhs, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if t.text == "*" {
			v *= rhs
		} else {
			v /= rhs
		}
	}
}

func (p *parser) parseUnary() (float64, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return t.num, nil
	case tokOperator:
		if t.text == "-" || t.text == "+" {
			v, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			if t.text == "-" {
				return -v, nil
			}
			return v, nil
		}
		return 0, newMalformed(p.expr, t.pos, "operator %q needs a left operand", t.text)
	default:
		return 0, newMalformed(p.expr, t.pos, "unexpected end of expression")
	}
}
