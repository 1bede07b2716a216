package symbolic

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

type tokenType int

const (
	tokEOF tokenType = iota
	tokNumber
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	typ  tokenType
	text string
	pos  int
}

type tokenizer struct {
	input []rune
	pos   int
}

func (t *tokenizer) peek() rune {
	if t.pos >= len(t.input) {
		return 0
	}
	return t.input[t.pos]
}

func (t *tokenizer) peekAt(off int) rune {
	if t.pos+off >= len(t.input) {
		return 0
	}
	return t.input[t.pos+off]
}

func (t *tokenizer) advance() rune {
	if t.pos >= len(t.input) {
		return 0
	}
	r := t.input[t.pos]
	t.pos++
	return r
}

func (t *tokenizer) next() (token, error) {
	for unicode.IsSpace(t.peek()) {
		t.advance()
	}
	start := t.pos
	if t.pos >= len(t.input) {
		return token{typ: tokEOF, pos: start}, nil
	}

	c := t.peek()
	switch {
	case c == '(':
		t.advance()
		return token{typ: tokLParen, text: "(", pos: start}, nil
	case c == ')':
		t.advance()
		return token{typ: tokRParen, text: ")", pos: start}, nil
	case c == '*':
		t.advance()
		if t.peek() == '*' {
			t.advance()
			return token{typ: tokOp, text: "^", pos: start}, nil
		}
		return token{typ: tokOp, text: "*", pos: start}, nil
	case strings.ContainsRune("+-/^", c):
		t.advance()
		return token{typ: tokOp, text: string(c), pos: start}, nil
	case unicode.IsDigit(c) || c == '.':
		return t.number(start)
	case unicode.IsLetter(c) || c == '_':
		var sb strings.Builder
		for r := t.peek(); unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'; r = t.peek() {
			sb.WriteRune(t.advance())
		}
		return token{typ: tokIdent, text: sb.String(), pos: start}, nil
	}
	return token{}, &ParseError{Pos: start, Msg: fmt.Sprintf("unexpected character %q", c)}
}

func (t *tokenizer) number(start int) (token, error) {
	var sb strings.Builder
	digits := 0
	for unicode.IsDigit(t.peek()) {
		sb.WriteRune(t.advance())
		digits++
	}
	if t.peek() == '.' {
		sb.WriteRune(t.advance())
		for unicode.IsDigit(t.peek()) {
			sb.WriteRune(t.advance())
			digits++
		}
	}
	if digits == 0 {
		return token{}, &ParseError{Pos: start, Msg: "malformed number"}
	}
	// exponent only when digits follow, so 2e is not swallowed
	if r := t.peek(); r == 'e' || r == 'E' {
		off := 1
		if s := t.peekAt(1); s == '+' || s == '-' {
			off = 2
		}
		if unicode.IsDigit(t.peekAt(off)) {
			for i := 0; i < off; i++ {
				sb.WriteRune(t.advance())
			}
			for unicode.IsDigit(t.peek()) {
				sb.WriteRune(t.advance())
			}
		}
	}
	return token{typ: tokNumber, text: sb.String(), pos: start}, nil
}

var parseFuncs = map[string]func(Expr) Expr{
	"sin":  SinOf,
	"cos":  CosOf,
	"tan":  TanOf,
	"asin": AsinOf,
	"acos": AcosOf,
	"atan": AtanOf,
	"sinh": SinhOf,
	"cosh": CoshOf,
	"tanh": TanhOf,
	"exp":  ExpOf,
	"log":  LogOf,
	"ln":   LogOf,
	"sqrt": SqrtOf,
	"abs":  AbsOf,
	"Abs":  AbsOf,
	"sign": SignOf,
}

var parseConsts = map[string]Expr{
	"pi": Pi,
	"E":  E,
	"I":  I,
}

type parser struct {
	input    string
	variable string
	lex      *tokenizer
	current  token
}

// Parse reads infix function text in the single variable v. Operators are
// + - * / and ** (or ^), with unary minus binding looser than powers, so
// -x**2 is -(x**2).
func Parse(input, v string) (Expr, error) {
	if strings.TrimSpace(input) == "" {
		return nil, &ParseError{Input: input, Msg: "empty expression"}
	}
	p := &parser{input: input, variable: v, lex: &tokenizer{input: []rune(input)}}
	if err := p.advance(); err != nil {
		return nil, p.fail(err)
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, p.fail(err)
	}
	if p.current.typ != tokEOF {
		return nil, p.fail(p.unexpected())
	}
	return e, nil
}

func (p *parser) fail(err error) error {
	if pe, ok := err.(*ParseError); ok {
		pe.Input = p.input
	}
	return err
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

func (p *parser) unexpected() error {
	if p.current.typ == tokEOF {
		return &ParseError{Pos: p.current.pos, Msg: "unexpected end of input"}
	}
	return &ParseError{Pos: p.current.pos, Msg: fmt.Sprintf("unexpected %q", p.current.text)}
}

func (p *parser) isOp(ops ...string) bool {
	if p.current.typ != tokOp {
		return false
	}
	for _, op := range ops {
		if p.current.text == op {
			return true
		}
	}
	return false
}

func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.isOp("+", "-") {
		op := p.current.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if op == "-" {
			right = Neg(right)
		}
		left = AddOf(left, right)
	}
	return left, nil
}

func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isOp("*", "/") {
		op := p.current.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op == "/" {
			left = DivOf(left, right)
		} else {
			left = MulOf(left, right)
		}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.isOp("-", "+") {
		neg := p.current.text == "-"
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if neg {
			return Neg(e), nil
		}
		return e, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if !p.isOp("^") {
		return base, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return PowOf(base, exp), nil
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.current
	switch tok.typ {
	case tokNumber:
		r, ok := parseDecimal(tok.text)
		if !ok {
			return nil, &ParseError{Pos: tok.pos, Msg: fmt.Sprintf("malformed number %q", tok.text)}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return NumFromRat(r), nil

	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.current.typ != tokRParen {
			return nil, p.unexpected()
		}
		return e, p.advance()

	case tokIdent:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if fn, ok := parseFuncs[tok.text]; ok {
			if p.current.typ != tokLParen {
				return nil, &ParseError{Pos: p.current.pos, Msg: fmt.Sprintf("%s expects an argument in parentheses", tok.text)}
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if p.current.typ != tokRParen {
				return nil, p.unexpected()
			}
			return fn(arg), p.advance()
		}
		if tok.text == p.variable {
			return S(tok.text), nil
		}
		if c, ok := parseConsts[tok.text]; ok {
			return c, nil
		}
		if p.current.typ == tokLParen {
			return nil, &ParseError{Pos: tok.pos, Msg: fmt.Sprintf("unknown function %q", tok.text)}
		}
		return nil, &ParseError{Pos: tok.pos, Msg: fmt.Sprintf("unknown symbol %q (the variable is %s)", tok.text, p.variable)}
	}
	return nil, p.unexpected()
}

// parseDecimal reads an exact rational from decimal text such as 2.5,
// .5 or 1e-3.
func parseDecimal(text string) (*big.Rat, bool) {
	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}
	text = strings.TrimSuffix(text, ".")
	r, ok := new(big.Rat).SetString(text)
	return r, ok
}
