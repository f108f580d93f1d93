package parser

import (
	"errors"
	"fmt"

	"github.com/MattTheNub/fend/lexer"
)

// Structural expectation failures. All parse errors are ordinary values;
// malformed input never panics.
var (
	ErrExpectedAToken                 = errors.New("expected a token")
	ErrExpectedANumber                = errors.New("expected a number")
	ErrExpectedIdentifier             = errors.New("expected an identifier")
	ErrExpectedIdentifierAsArgument   = errors.New("expected an identifier")
	ErrExpectedIdentifierInAssignment = errors.New("expected an identifier")
	ErrUnexpectedWhitespace           = errors.New("unexpected whitespace")
	ErrUnexpectedInput                = errors.New("unexpected input found")
	ErrInvalidMixedFraction           = errors.New("invalid mixed fraction")
	ErrNestingTooDeep                 = errors.New("too much nesting")
)

// errInvalidApplyOperands signals that a juxtaposition is reserved for
// another rule (mixed fraction or implicit addition). It is control flow
// inside the multiplicative loop and must never reach a user.
var errInvalidApplyOperands = errors.New("invalid apply operands")

// ExpectedTokenError reports a mismatched fixed symbol.
type ExpectedTokenError struct {
	Found, Expected lexer.TokenType
}

func (e *ExpectedTokenError) Error() string {
	return fmt.Sprintf("found '%s' while expecting '%s'", e.Found, e.Expected)
}

// InvalidTokenError reports a non-symbol token where a fixed symbol was
// required.
type InvalidTokenError struct {
	Expected lexer.TokenType
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("found an invalid token while expecting '%s'", e.Expected)
}

// UnexpectedSymbolError reports a symbol in a position that requires a
// value.
type UnexpectedSymbolError struct {
	Symbol lexer.TokenType
}

func (e *UnexpectedSymbolError) Error() string {
	return fmt.Sprintf("expected a value, instead found '%s'", e.Symbol)
}

// LambdaSyntaxError wraps the failure to find the '.' of a lambda with a
// targeted diagnostic.
type LambdaSyntaxError struct {
	Cause error
}

func (e *LambdaSyntaxError) Error() string {
	return `missing '.' in lambda (expected e.g. \x.x)`
}

func (e *LambdaSyntaxError) Unwrap() error { return e.Cause }
