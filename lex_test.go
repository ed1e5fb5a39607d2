package calculator

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
	}{
		// spaces
		{"", []lexToken{{kind: tokenEOF, pos: 1}}},
		{" \t \r\n ", []lexToken{{kind: tokenEOF, pos: 7}}},
		// numbers
		{"0", []lexToken{{text: "0", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 2}}},
		{"9876543210", []lexToken{{text: "9876543210", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 11}}},
		{"1 0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "0", kind: tokenNum, pos: 3}, {kind: tokenEOF, pos: 4}}},
		{"1.25", []lexToken{{text: "1.25", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 5}}},
		{".5", []lexToken{{text: ".5", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 3}}},
		{"2.", []lexToken{{text: "2.", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 3}}},
		// operators
		{"1+0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "+", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}, {kind: tokenEOF, pos: 4}}},
		{"1%0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "%", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}, {kind: tokenEOF, pos: 4}}},
		{"2^3", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "^", kind: tokenOp, pos: 2}, {text: "3", kind: tokenNum, pos: 3}, {kind: tokenEOF, pos: 4}}},
		// signs
		{"-1", []lexToken{{text: "-", kind: tokenSign, pos: 1}, {text: "1", kind: tokenNum, pos: 2}, {kind: tokenEOF, pos: 3}}},
		{"--5", []lexToken{{text: "--", kind: tokenSign, pos: 1}, {text: "5", kind: tokenNum, pos: 3}, {kind: tokenEOF, pos: 4}}},
		{"5-3", []lexToken{{text: "5", kind: tokenNum, pos: 1}, {text: "-", kind: tokenOp, pos: 2}, {text: "3", kind: tokenNum, pos: 3}, {kind: tokenEOF, pos: 4}}},
		{"5--3", []lexToken{{text: "5", kind: tokenNum, pos: 1}, {text: "-", kind: tokenOp, pos: 2}, {text: "-", kind: tokenSign, pos: 3}, {text: "3", kind: tokenNum, pos: 4}, {kind: tokenEOF, pos: 5}}},
		{"5---3", []lexToken{{text: "5", kind: tokenNum, pos: 1}, {text: "-", kind: tokenOp, pos: 2}, {text: "--", kind: tokenSign, pos: 3}, {text: "3", kind: tokenNum, pos: 5}, {kind: tokenEOF, pos: 6}}},
		{"2*-3", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "*", kind: tokenOp, pos: 2}, {text: "-", kind: tokenSign, pos: 3}, {text: "3", kind: tokenNum, pos: 4}, {kind: tokenEOF, pos: 5}}},
		// parentheses
		{"()", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: ")", kind: tokenClose, pos: 2}, {kind: tokenEOF, pos: 3}}},
		{"(1)-2", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: "1", kind: tokenNum, pos: 2}, {text: ")", kind: tokenClose, pos: 3}, {text: "-", kind: tokenOp, pos: 4}, {text: "2", kind: tokenNum, pos: 5}, {kind: tokenEOF, pos: 6}}},
		{"(-)", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: "-", kind: tokenSign, pos: 2}, {text: ")", kind: tokenClose, pos: 3}, {kind: tokenEOF, pos: 4}}},
		{"-(-2)", []lexToken{{text: "-", kind: tokenSign, pos: 1}, {text: "(", kind: tokenOpen, pos: 2}, {text: "-", kind: tokenSign, pos: 3}, {text: "2", kind: tokenNum, pos: 4}, {text: ")", kind: tokenClose, pos: 5}, {kind: tokenEOF, pos: 6}}},
	}

	for _, c := range cases {
		scan := lex(strings.NewReader(c.src))
		for _, want := range c.tokens {
			got, err := scan.next()
			if err != nil {
				t.Errorf("scanning %q: expected token %v but got error %v", c.src, want, err)
				break
			}
			if got != want {
				t.Errorf("scanning %q: want %v, got %v", c.src, want, got)
			}
		}
		if got, err := scan.next(); err != io.EOF {
			t.Errorf("scanning %q: extra token %v with error: %v", c.src, got, err)
		}
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		src  string
		kind Kind
		col  int
	}{
		{"$", InvalidCharacter, 1},
		{"1$", InvalidCharacter, 2},
		{"1.1.1", MultipleDecimalPoints, 4},
		{".", MissingLeftOperand, 1},
		{"2+.", MissingLeftOperand, 3},
	}
	for _, c := range cases {
		scan := lex(strings.NewReader(c.src))
		var err error
		for err == nil {
			var tok lexToken
			tok, err = scan.next()
			if err == nil && tok.kind == tokenEOF {
				break
			}
		}
		if err == nil {
			t.Errorf("scanning %q gave no error", c.src)
			continue
		}
		if !errors.Is(err, c.kind) {
			t.Errorf("scanning %q gave wrong error: want %v, got %v", c.src, c.kind, err)
		}
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("scanning %q gave %#v, not *SyntaxError", c.src, err)
			continue
		}
		if se.Col != c.col {
			t.Errorf("scanning %q gave error at wrong column: want %d, got %d", c.src, c.col, se.Col)
		}
	}
}

func TestLexPush(t *testing.T) {
	scan := lex(strings.NewReader("1+2"))
	tok, err := scan.next()
	if err != nil {
		t.Fatal(err)
	}
	scan.push(tok)
	if got := scan.must(); got != tok {
		t.Errorf("must gave %v after pushing %v", got, tok)
	}
	func() {
		defer func() {
			if recover() == nil {
				t.Error("must with no pushed token didn't panic")
			}
		}()
		scan.must()
	}()
}
