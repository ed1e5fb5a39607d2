package calculator

import (
	"errors"
	"strconv"
)

// Kind classifies an invalid input. Every Kind is itself an error, so callers
// can test for a class of failure with errors.Is, e.g.
//
//	if errors.Is(err, calculator.UnbalancedParentheses) { ... }
type Kind int8

const (
	kindNone Kind = iota
	// InvalidCharacter is a rune that is not a digit, operator, decimal point,
	// or parenthesis.
	InvalidCharacter
	// MultipleDecimalPoints is a second decimal point in one number.
	MultipleDecimalPoints
	// EmptyExpression is an input or group with nothing to evaluate.
	EmptyExpression
	// InvalidDecimalAdjacency is a decimal point next to a parenthesis.
	InvalidDecimalAdjacency
	// OperatorAtStart is a binary operator or decimal point that begins the
	// expression.
	OperatorAtStart
	// OperatorAtEnd is an operator or decimal point that ends the expression.
	OperatorAtEnd
	// MissingLeftOperand is a binary operator not preceded by a number.
	MissingLeftOperand
	// MissingRightOperand is an operator not followed by a number.
	MissingRightOperand
	// UnbalancedParentheses is an open parenthesis without a matching close
	// parenthesis or vice versa.
	UnbalancedParentheses
)

func (k Kind) String() string {
	switch k {
	case kindNone:
		return "None"
	case InvalidCharacter:
		return "InvalidCharacter"
	case MultipleDecimalPoints:
		return "MultipleDecimalPoints"
	case EmptyExpression:
		return "EmptyExpression"
	case InvalidDecimalAdjacency:
		return "InvalidDecimalAdjacency"
	case OperatorAtStart:
		return "OperatorAtStart"
	case OperatorAtEnd:
		return "OperatorAtEnd"
	case MissingLeftOperand:
		return "MissingLeftOperand"
	case MissingRightOperand:
		return "MissingRightOperand"
	case UnbalancedParentheses:
		return "UnbalancedParentheses"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (k Kind) Error() string {
	switch k {
	case InvalidCharacter:
		return "invalid character"
	case MultipleDecimalPoints:
		return "multiple decimal points in a single number"
	case EmptyExpression:
		return "no expression"
	case InvalidDecimalAdjacency:
		return "invalid decimal point"
	case OperatorAtStart:
		return "operator at start of expression"
	case OperatorAtEnd:
		return "operator at end of expression"
	case MissingLeftOperand:
		return "missing left operand"
	case MissingRightOperand:
		return "missing right operand"
	case UnbalancedParentheses:
		return "unbalanced parentheses"
	default:
		return "invalid input (" + k.String() + ")"
	}
}

// KindOf returns the Kind of an error returned by this package, or the zero
// Kind if err is nil or did not come from this package.
func KindOf(err error) Kind {
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return kindNone
}

// SyntaxError indicates malformed input found while validating or scanning an
// expression. It implements InputError.
type SyntaxError struct {
	// Kind is the class of error.
	Kind Kind
	// Col is the position of the error in the normalized input.
	Col int
	// Text is the offending character or characters.
	Text string
}

func (err *SyntaxError) Error() string {
	msg := err.Kind.Error()
	switch err.Kind {
	case InvalidCharacter, OperatorAtStart, OperatorAtEnd:
		msg += ": " + strconv.Quote(err.Text)
	case InvalidDecimalAdjacency, MissingLeftOperand, MissingRightOperand:
		msg += " in " + strconv.Quote(err.Text)
	}
	return errpos(err.Col, msg)
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

func (err *SyntaxError) Unwrap() error {
	return err.Kind
}

// BracketError is an error indicating unbalanced parentheses in the input. It
// implements InputError and unwraps to UnbalancedParentheses.
type BracketError struct {
	// Col is the position of the unmatched bracket.
	Col int
	// Left is the opening bracket, if the error is an unclosed group.
	Left string
	// Right is the closing bracket, if the error is a close with no group.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Unwrap() error {
	return UnbalancedParentheses
}

// EmptyExpressionError is an error indicating an empty expression or an empty
// parenthesized group. It unwraps to EmptyExpression.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Unwrap() error {
	return EmptyExpression
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error, counted in the
	// input after whitespace removal and implicit multiplication.
	Pos() int
}

var (
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
)
