package calculator

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a number: digits with at most one decimal point.
	tokenNum
	// tokenOp is a binary operator.
	tokenOp
	// tokenSign is a run of one or more - in operand position. The run
	// negates the following operand if its length is odd.
	tokenSign
	// tokenOpen is an open parenthesis.
	tokenOpen
	// tokenClose is a close parenthesis.
	tokenClose
)

//go:generate stringer -type=tokenKind -trimprefix=token

// Operators contains the characters which are binary operators. - is also
// unary negation.
const Operators = "^*/%+-"

var operstrs = func() []string {
	v := make([]string, len(Operators))
	for i := range Operators {
		v[i] = Operators[i : i+1]
	}
	return v
}()

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	p    lexToken
	eof  bool
	// last is the kind of the last token scanned, which decides whether a -
	// is subtraction or a sign.
	last tokenKind
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{
		src:  src,
		rune: 1,
	}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("calculator: double push")
	}
	l.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *lexer) must() lexToken {
	tok := l.p
	if tok.kind == tokenNone {
		panic("calculator: no pushed token")
	}
	l.p = lexToken{}
	return tok
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. The first time EOF is encountered,
// the result is an EOF token with a nil error. Subsequent times, if the EOF
// token is not pushed, the result is an empty token with io.EOF.
func (l *lexer) next() (lexToken, error) {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = lexToken{}
		return tok, nil
	}
	if l.eof {
		return lexToken{}, io.EOF
	}
	tok, err := l.scan()
	if err == nil {
		l.last = tok.kind
	}
	return tok, err
}

func (l *lexer) scan() (lexToken, error) {
	defer l.buf.Reset()
	tok := lexToken{pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			// Normalized input has no spaces, but the lexer accepts any.
			tok.pos++
			continue
		case isdigit(r), r == '.':
			l.unreadRune()
			if err := l.scanNum(tok.pos); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenNum
			return tok, nil
		case r == '-' && l.last != tokenNum && l.last != tokenClose:
			l.unreadRune()
			if err := l.scanSign(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenSign
			return tok, nil
		case r == '(':
			tok.text = "("
			tok.kind = tokenOpen
			return tok, nil
		case r == ')':
			tok.text = ")"
			tok.kind = tokenClose
			return tok, nil
		default:
			if k := strings.IndexRune(Operators, r); k >= 0 {
				tok.text = operstrs[k]
				tok.kind = tokenOp
				return tok, nil
			}
			return tok, &SyntaxError{Kind: InvalidCharacter, Col: tok.pos, Text: string(r)}
		}
	}
}

func (l *lexer) scanNum(pos int) error {
	var dig, dot bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if r == '.' {
			if dot {
				return &SyntaxError{Kind: MultipleDecimalPoints, Col: l.rune - 1, Text: l.buf.String() + "."}
			}
			dot = true
			l.buf.WriteRune(r)
			continue
		}
		if !isdigit(r) {
			l.unreadRune()
			break
		}
		dig = true
		l.buf.WriteRune(r)
	}
	if !dig {
		return &SyntaxError{Kind: MissingLeftOperand, Col: pos, Text: l.buf.String()}
	}
	return nil
}

// scanSign scans a run of -. Adjacent signs cancel, so the parser only looks
// at the length of the run.
func (l *lexer) scanSign() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if r != '-' {
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}
