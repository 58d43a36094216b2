package expr

import (
	"strconv"

	"github.com/matzehuels/ripple/pkg/errors"
)

type parser struct {
	tokens []token
	pos    int
}

// Parse parses script source into a Script. Parsing stops at the first
// error, which carries a line:column position.
func Parse(src string) (*Script, error) {
	toks, err := lexAll(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: toks}

	script := &Script{}
	for {
		p.skipNewlines()
		if p.current().typ == tokEOF {
			return script, nil
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		script.Stmts = append(script.Stmts, stmt)
		if err := p.expectEnd(); err != nil {
			return nil, err
		}
	}
}

func lexAll(src string) ([]token, error) {
	lex := newLexer(src)
	var toks []token
	for {
		tok, err := lex.nextToken()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.typ == tokEOF {
			return toks, nil
		}
	}
}

func (p *parser) current() token {
	if p.pos >= len(p.tokens) {
		return token{typ: tokEOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *parser) expect(tt tokenType, what string) (token, error) {
	t := p.current()
	if t.typ != tt {
		return token{}, errAt(t, "expected %s, found %s", what, describe(t))
	}
	p.next()
	return t, nil
}

func (p *parser) skipNewlines() {
	for p.current().typ == tokNewline {
		p.next()
	}
}

// expectEnd requires the current statement to stop here, at a newline or
// the end of the script.
func (p *parser) expectEnd() error {
	switch p.current().typ {
	case tokNewline:
		p.next()
		return nil
	case tokEOF:
		return nil
	default:
		t := p.current()
		return errAt(t, "unexpected %s after statement", describe(t))
	}
}

func errAt(t token, format string, args ...any) error {
	return errors.NewAt(errors.ErrCodeInvalidScript, t.pos.Line, t.pos.Col, format, args...)
}

func (p *parser) parseStmt() (Stmt, error) {
	t := p.current()
	if t.typ != tokIdent {
		return nil, errAt(t, "expected statement, found %s", describe(t))
	}
	if t.lit == "input" {
		return p.parseInput()
	}
	return p.parseAssign()
}

func (p *parser) parseInput() (*InputStmt, error) {
	kw := p.next()
	name, err := p.expect(tokIdent, "input name")
	if err != nil {
		return nil, err
	}
	stmt := &InputStmt{Pos: kw.pos, Name: name.lit}
	if p.current().typ != tokAssign {
		return stmt, nil
	}
	p.next()
	lit, err := p.parseSignedNumber()
	if err != nil {
		return nil, err
	}
	stmt.Init = lit
	return stmt, nil
}

// parseSignedNumber parses a number literal with an optional leading minus,
// folding the sign into the literal. Input initializers are plain values,
// not expressions.
func (p *parser) parseSignedNumber() (*NumberLit, error) {
	start := p.current()
	neg := false
	if start.typ == tokMinus {
		p.next()
		neg = true
	}
	numTok, err := p.expect(tokNumber, "number")
	if err != nil {
		return nil, err
	}
	lit, err := numberLit(numTok)
	if err != nil {
		return nil, err
	}
	if neg {
		lit.Pos = start.pos
		lit.Value = -lit.Value
	}
	return lit, nil
}

func numberLit(t token) (*NumberLit, error) {
	v, err := strconv.ParseFloat(t.lit, 32)
	if err != nil {
		return nil, errAt(t, "invalid number %q", t.lit)
	}
	return &NumberLit{Pos: t.pos, Value: float32(v)}, nil
}

func (p *parser) parseAssign() (*AssignStmt, error) {
	name := p.next()
	if _, err := p.expect(tokAssign, `"="`); err != nil {
		return nil, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &AssignStmt{Pos: name.pos, Name: name.lit, Expr: e}, nil
}

func (p *parser) parseExpr() (Expr, error) {
	return p.parseAdditive()
}

func (p *parser) parseAdditive() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.current().typ == tokPlus || p.current().typ == tokMinus {
		op := p.next()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &Binary{Pos: op.pos, Op: op.lit, X: left, Y: right}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.current().typ == tokStar || p.current().typ == tokSlash {
		op := p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Pos: op.pos, Op: op.lit, X: left, Y: right}
	}
	return left, nil
}

// parseUnary handles prefix minus. Exponentiation binds tighter, so -x^2
// parses as -(x^2).
func (p *parser) parseUnary() (Expr, error) {
	if p.current().typ == tokMinus {
		op := p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Pos: op.pos, Op: op.lit, X: x}, nil
	}
	return p.parsePower()
}

// parsePower handles "^", which is right-associative: 2^3^2 is 2^(3^2).
// The exponent re-enters parseUnary so 2^-3 works.
func (p *parser) parsePower() (Expr, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.current().typ != tokCaret {
		return base, nil
	}
	op := p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Binary{Pos: op.pos, Op: op.lit, X: base, Y: exp}, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.current()
	switch t.typ {
	case tokNumber:
		p.next()
		return numberLit(t)
	case tokIdent:
		p.next()
		if p.current().typ == tokLParen {
			return p.parseCall(t)
		}
		return &Ref{Pos: t.pos, Name: t.lit}, nil
	case tokLParen:
		p.next()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, `")"`); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, errAt(t, "expected expression, found %s", describe(t))
	}
}

func (p *parser) parseCall(name token) (Expr, error) {
	p.next()
	call := &Call{Pos: name.pos, Func: name.lit}
	if p.current().typ == tokRParen {
		p.next()
		return call, nil
	}
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		switch p.current().typ {
		case tokComma:
			p.next()
		case tokRParen:
			p.next()
			return call, nil
		default:
			t := p.current()
			return nil, errAt(t, `expected "," or ")", found %s`, describe(t))
		}
	}
}
