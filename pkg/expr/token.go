package expr

import (
	"fmt"
	"unicode/utf8"

	"github.com/matzehuels/ripple/pkg/errors"
)

type tokenType int

const (
	tokEOF tokenType = iota
	tokNewline
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
	tokComma
	tokAssign
)

// Pos is a 1-based source position.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

type token struct {
	typ tokenType
	lit string
	pos Pos
}

// describe renders a token for error messages.
func describe(t token) string {
	switch t.typ {
	case tokEOF:
		return "end of script"
	case tokNewline:
		return "end of line"
	default:
		return fmt.Sprintf("%q", t.lit)
	}
}

type lexer struct {
	src  string
	pos  int // byte offset
	line int
	col  int
}

func newLexer(input string) *lexer {
	return &lexer{src: input, line: 1, col: 1}
}

func (l *lexer) nextRune() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) peekRune() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r
}

// skipBlanks consumes spaces, tabs, carriage returns, and comments.
// Newlines are tokens, so they stay.
func (l *lexer) skipBlanks() {
	for {
		switch l.peekRune() {
		case ' ', '\t', '\r':
			l.nextRune()
		case '#':
			for l.peekRune() != '\n' && l.peekRune() != 0 {
				l.nextRune()
			}
		default:
			return
		}
	}
}

func (l *lexer) nextToken() (token, error) {
	l.skipBlanks()
	start := Pos{Line: l.line, Col: l.col}
	begin := l.pos
	ch := l.nextRune()
	if ch == 0 {
		return token{typ: tokEOF, pos: start}, nil
	}

	switch ch {
	case '\n':
		return token{typ: tokNewline, lit: "\n", pos: start}, nil
	case '+':
		return token{typ: tokPlus, lit: "+", pos: start}, nil
	case '-':
		return token{typ: tokMinus, lit: "-", pos: start}, nil
	case '*':
		return token{typ: tokStar, lit: "*", pos: start}, nil
	case '/':
		return token{typ: tokSlash, lit: "/", pos: start}, nil
	case '^':
		return token{typ: tokCaret, lit: "^", pos: start}, nil
	case '(':
		return token{typ: tokLParen, lit: "(", pos: start}, nil
	case ')':
		return token{typ: tokRParen, lit: ")", pos: start}, nil
	case ',':
		return token{typ: tokComma, lit: ",", pos: start}, nil
	case '=':
		return token{typ: tokAssign, lit: "=", pos: start}, nil
	}

	if isDigit(ch) {
		for isDigit(l.peekRune()) {
			l.nextRune()
		}
		if l.peekRune() == '.' {
			l.nextRune()
			for isDigit(l.peekRune()) {
				l.nextRune()
			}
		}
		return token{typ: tokNumber, lit: l.src[begin:l.pos], pos: start}, nil
	}

	if isIdentStart(ch) {
		for isIdentPart(l.peekRune()) {
			l.nextRune()
		}
		return token{typ: tokIdent, lit: l.src[begin:l.pos], pos: start}, nil
	}

	return token{}, errors.NewAt(errors.ErrCodeInvalidScript, start.Line, start.Col, "unexpected character %q", ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}
