package calculator

import (
	"strings"
	"unicode"
)

// Normalize checks an expression for lexical and structural errors and
// returns it in the form the parser consumes: whitespace removed and every
// implicit multiplication written out, e.g. " 2 (3)(4)" becomes "2*(3)*(4)".
// Normalize does not check that parentheses are balanced; Parse does.
func Normalize(src string, opts ...ParseOption) (string, error) {
	p := parseopts(opts)
	return normalize(src, &p)
}

func normalize(src string, p *parsectx) (string, error) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, src)
	s = strings.ReplaceAll(s, ")(", ")*(")

	var b strings.Builder
	b.Grow(len(s) + 4)
	var last byte
	dot := false
	for _, r := range s {
		switch {
		case isdigit(r):
			if last == ')' {
				b.WriteByte('*')
				if p.parens {
					dot = false
				}
			}
		case r == '.':
			if dot {
				return "", &SyntaxError{Kind: MultipleDecimalPoints, Col: b.Len() + 1, Text: "."}
			}
			dot = true
		case r == '(':
			if isdigit(rune(last)) {
				b.WriteByte('*')
			}
			if p.parens {
				dot = false
			}
		case r == ')':
			if p.parens {
				dot = false
			}
		case strings.ContainsRune(Operators, r):
			dot = false
		default:
			return "", &SyntaxError{Kind: InvalidCharacter, Col: b.Len() + 1, Text: string(r)}
		}
		// Everything accepted so far is ASCII.
		b.WriteByte(byte(r))
		last = byte(r)
	}
	out := b.String()

	flat := flatten(out)
	if len(flat) == 0 {
		return "", &EmptyExpressionError{Col: 1}
	}

	for i := 0; i+1 < len(out); i++ {
		a, z := out[i], out[i+1]
		if a == '.' && isbracket(z) || isbracket(a) && z == '.' {
			return "", &SyntaxError{Kind: InvalidDecimalAdjacency, Col: i + 1, Text: out[i : i+2]}
		}
	}

	if err := checkOperands(flat); err != nil {
		return "", err
	}
	return out, nil
}

// flatChar is a character of an expression with parentheses removed, along
// with its column in the expression before removal.
type flatChar struct {
	c   byte
	col int
}

// flatten removes parentheses from s and collapses each run of - into one.
func flatten(s string) []flatChar {
	flat := make([]flatChar, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isbracket(c) {
			continue
		}
		if c == '-' && len(flat) > 0 && flat[len(flat)-1].c == '-' {
			continue
		}
		flat = append(flat, flatChar{c: c, col: i + 1})
	}
	return flat
}

// checkOperands verifies that every operator and decimal point in a flattened
// expression has a number on each side. A - followed by a digit is a sign and
// needs nothing on its left.
func checkOperands(flat []flatChar) error {
	at := func(k int) byte {
		if k < 0 || k >= len(flat) {
			return 0
		}
		return flat[k].c
	}
	text := func(from, to int) string {
		if from < 0 {
			from = 0
		}
		if to > len(flat) {
			to = len(flat)
		}
		var b strings.Builder
		for _, f := range flat[from:to] {
			b.WriteByte(f.c)
		}
		return b.String()
	}
	for i, f := range flat {
		c := f.c
		if c != '.' && strings.IndexByte(Operators, c) < 0 {
			continue
		}
		switch {
		case i == 0 && c != '-':
			return &SyntaxError{Kind: OperatorAtStart, Col: f.col, Text: string(c)}
		case i == len(flat)-1:
			return &SyntaxError{Kind: OperatorAtEnd, Col: f.col, Text: string(c)}
		}
		if c == '-' && isdigit(rune(at(i+1))) {
			continue
		}
		if !isdigit(rune(at(i - 1))) {
			return &SyntaxError{Kind: MissingLeftOperand, Col: f.col, Text: text(i-1, i+1)}
		}
		if !isdigit(rune(at(i+1))) && !(at(i+1) == '-' && isdigit(rune(at(i+2)))) {
			return &SyntaxError{Kind: MissingRightOperand, Col: f.col, Text: text(i, i+2)}
		}
	}
	return nil
}

func isdigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isbracket(c byte) bool {
	return c == '(' || c == ')'
}
