package calculator

import (
	"errors"
	"strconv"
	"strings"
)

// Expr = Operand { op Operand }
// Operand = { sign | '(' sign ')' } ( num | '(' Expr ')' )
// op = '^' | '*' | '/' | '%' | '+' | '-'
// sign = '-' { '-' }
//
// ^ binds tightest, then * / % together, then + - together. Within a level,
// operators apply left to right. A sign binds tighter than any operator, so
// -2^2 is (-2)^2.

// Expr is a parsed expression. An Expr is immutable and may be evaluated
// concurrently.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// src is the normalized source text.
	src string
}

// Parse validates and parses an expression so it can be evaluated. The given
// options are applied in order.
func Parse(src string, opts ...ParseOption) (*Expr, error) {
	p := parseopts(opts)
	norm, err := normalize(src, &p)
	if err != nil {
		return nil, err
	}
	scan := lex(strings.NewReader(norm))
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	switch tok := scan.must(); tok.kind {
	case tokenEOF:
	case tokenClose:
		return nil, &BracketError{Col: tok.pos, Right: tok.text}
	default:
		panic("calculator: parse ended on " + tok.String())
	}
	if n == nil {
		return nil, &EmptyExpressionError{Col: 1}
	}
	return &Expr{n: n, src: norm}, nil
}

// parseterm parses a term. If there is no error, then parseterm pushes the
// last token it scans, including EOF. If the input is an empty subexpression,
// the result is nil with no error; callers must create an error in contexts
// where empty subexpressions are illegal.
func parseterm(scan *lexer, p *parsectx, until operator) (*node, error) {
	n, err := parselhs(scan, p)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	return parseops(scan, p, n, until)
}

// parseops parses the operators and operands following n while they bind more
// tightly than until.
func parseops(scan *lexer, p *parsectx, n *node, until operator) (*node, error) {
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenOp:
			prec := p.binop(tok.text)
			if prec.op == nodeNone {
				panic("calculator: unknown operator " + tok.String())
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				return nil, &SyntaxError{Kind: MissingRightOperand, Col: tok.pos, Text: tok.text}
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case tokenClose, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			// Normalization writes out implicit multiplication, and the lexer
			// scans - after a number as subtraction, so one operand can never
			// directly follow another.
			panic("calculator: operand follows operand: " + tok.String())
		}
	}
}

// parselhs parses one operand, including its sign. A sign with no operand
// after it is an error.
func parselhs(scan *lexer, p *parsectx) (*node, error) {
	n, sign, _, err := parseoperand(scan, p)
	if err != nil {
		return nil, err
	}
	if n == nil && sign.kind != tokenNone {
		return nil, &SyntaxError{Kind: MissingRightOperand, Col: sign.pos, Text: sign.text}
	}
	return n, nil
}

// parseoperand parses one operand and every sign before it. A group holding
// only signs adds them to the signs of the operand after it, so (-)-3 is
// --3. If there is no operand, the result is nil with the first sign token
// and the number of signs scanned, and the token that ended the operand is
// pushed.
func parseoperand(scan *lexer, p *parsectx) (n *node, sign lexToken, signs int, err error) {
	// spliced is set after a group of signs. The lexer scans the - that
	// follows ) as subtraction, but here it continues the sign run.
	spliced := false
	for n == nil {
		tok, err := scan.next()
		if err != nil {
			return nil, sign, 0, err
		}
		switch tok.kind {
		case tokenSign:
			if sign.kind == tokenNone {
				sign = tok
			}
			signs += len(tok.text)
			spliced = false
		case tokenOp:
			if !spliced || tok.text != "-" {
				return nil, sign, 0, &SyntaxError{Kind: MissingLeftOperand, Col: tok.pos, Text: tok.text}
			}
			signs++
			spliced = false
		case tokenNum:
			n = &node{kind: nodeNum, name: tok.text, val: parsenum(tok.text)}
		case tokenOpen:
			rhs, inner, k, err := parseoperand(scan, p)
			if err != nil {
				return nil, sign, 0, err
			}
			if rhs != nil {
				rhs, err = parseops(scan, p, rhs, exprprec)
				if err != nil {
					return nil, sign, 0, err
				}
			}
			end := scan.must()
			if end.kind != tokenClose {
				return nil, sign, 0, &BracketError{Col: tok.pos, Left: tok.text}
			}
			if rhs == nil {
				if k == 0 {
					return nil, sign, 0, &EmptyExpressionError{Col: end.pos, End: end.text}
				}
				if sign.kind == tokenNone {
					sign = inner
				}
				signs += k
				spliced = true
				continue
			}
			n = rhs
		case tokenClose, tokenEOF:
			// Empty group or expression. Let the caller decide what to do.
			scan.push(tok)
			return nil, sign, signs, nil
		default:
			panic("calculator: unexpected token: " + tok.String())
		}
	}
	if signs%2 == 1 {
		n = &node{kind: nodeNeg, left: n}
	}
	return n, sign, signs, nil
}

// parsenum parses the text of a number token. Numbers too large for a float64
// become +Inf.
func parsenum(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	switch {
	case err == nil: // do nothing
	case errors.Is(err, strconv.ErrRange):
		// ParseFloat gives ±Inf or 0 as appropriate.
	default:
		// The lexer only produces digits with at most one decimal point.
		panic("calculator: invalid number: " + s + " (" + err.Error() + ")")
	}
	return v
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b, false)
	return b.String()
}

// Normalized returns the expression's source with whitespace removed and
// implicit multiplications written out.
func (e *Expr) Normalized() string {
	return e.src
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "%":
		return operator{5, false, nodeMod}
	case "^":
		return operator{15, false, nodePow}
	default:
		return operator{}
	}
}

// binop gets a binary operator with the parse options applied.
func (p *parsectx) binop(text string) operator {
	op := binop(text)
	if op.op == nodePow && p.rpow {
		op.right = true
	}
	return op
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
