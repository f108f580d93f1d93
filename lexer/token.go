package lexer

import (
	"fmt"
	"slices"

	"github.com/MattTheNub/fend/value"
)

// TokenType is the type of token.
type TokenType int

// Token types as constants.
const (
	TokError TokenType = iota
	TokEOF

	// Literals + identifiers.
	TokNumber
	TokIdentifier
	TokString

	// Delimiters.
	TokWhitespace

	// Symbols. Everything from firstSymbol on is a fixed symbol whose
	// display form is its source spelling.
	TokParenLeft
	TokParenRight
	TokAdd
	TokSub
	TokMul
	TokDiv
	TokMod
	TokPow
	TokFactorial
	TokBackslash
	TokDot
	TokArrow
	TokEquals
	TokSemicolon
	TokTo
	TokOf

	// End of tokens.
	FinalToken
)

const firstSymbol = TokParenLeft

// String returns the display form of the token type.
func (tt TokenType) String() string {
	return tokenTypeStrings[tt]
}

// Map of token types to their display form. Symbols display as their
// source spelling so diagnostics can quote them directly.
var tokenTypeStrings = map[TokenType]string{
	TokError: "ERROR",
	TokEOF:   "EOF",

	TokNumber:     "NUMBER",
	TokIdentifier: "IDENTIFIER",
	TokString:     "STRING",

	TokWhitespace: "WHITESPACE",

	TokParenLeft:  "(",
	TokParenRight: ")",
	TokAdd:        "+",
	TokSub:        "-",
	TokMul:        "*",
	TokDiv:        "/",
	TokMod:        "%",
	TokPow:        "^",
	TokFactorial:  "!",
	TokBackslash:  `\`,
	TokDot:        ".",
	TokArrow:      "=>",
	TokEquals:     "=",
	TokSemicolon:  ";",
	TokTo:         "to",
	TokOf:         "of",
}

func (tt TokenType) IsOneOf(t ...TokenType) bool {
	return slices.Contains(t, tt)
}

// IsSymbol reports whether the token type is a fixed symbol.
func (tt TokenType) IsSymbol() bool {
	return tt >= firstSymbol && tt < FinalToken
}

// Token represents a lexical token of the calculator language.
type Token struct {
	Type  TokenType
	Value string

	// Num is set for TokNumber: the literal pre-parsed to an
	// arbitrary-precision number, so the parser never sees an invalid one.
	Num *value.Number

	pos  int
	line int
}

func (t Token) String() string {
	switch {
	case t.Type == TokEOF:
		return "EOF"
	case t.Type == TokError:
		return fmt.Sprintf("ERROR [%d:%d]: %s", t.line, t.pos, t.Value)
	case len(t.Value) > 16:
		return fmt.Sprintf("%s[%d:%d]: %.16q", t.Type, t.line, t.pos, t.Value)
	}
	return fmt.Sprintf("%s[%d:%d]: %q", t.Type, t.line, t.pos, t.Value)
}

// Error is a lexical error with its position in the input.
type Error struct {
	Line, Pos int
	Msg       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Pos, e.Msg)
}
