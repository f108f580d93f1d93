// Package parser turns the lexer's token sequence into an expression
// tree. The grammar allows juxtaposition to mean function application,
// implicit multiplication, unit attachment, or a mixed fraction; the
// parser resolves those by matching on the shapes of already-parsed
// subtrees and backtracking between candidate continuations.
//
// Backtracking works by handing each candidate an unmodified cursor (a
// slice view of the tokens) and committing to the returned cursor only
// on success, so failed attempts have no observable effect.
package parser

import (
	"github.com/MattTheNub/fend/ast"
	"github.com/MattTheNub/fend/lexer"
)

// maxDepth bounds the grammar's self-nesting rules: parentheses,
// lambdas, unary prefixes, right-associative "^", "=>" and "=" chains,
// "of" chains, and implicit-addition recursion. Pathological input
// exhausts a counter instead of the call stack.
const maxDepth = 256

type parser struct {
	depth int
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return ErrNestingTooDeep
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

// Parse parses a complete token sequence into an expression tree. The
// whole sequence must be consumed; leftover tokens are an error.
func Parse(tokens []lexer.Token) (ast.Expr, error) {
	p := &parser{}
	res, remaining, err := p.parseStatements(tokens)
	if err != nil {
		return nil, err
	}
	if len(skipWhitespace(remaining)) != 0 {
		return nil, ErrUnexpectedInput
	}
	return res, nil
}

// ParseString lexes and parses an input string.
func ParseString(input string) (ast.Expr, error) {
	tokens, err := lexer.Tokens(input)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

func skipWhitespace(in []lexer.Token) []lexer.Token {
	for len(in) > 0 && in[0].Type == lexer.TokWhitespace {
		in = in[1:]
	}
	return in
}

// parseToken returns the next token and the cursor after it.
func parseToken(in []lexer.Token, skipWS bool) (lexer.Token, []lexer.Token, error) {
	if skipWS {
		in = skipWhitespace(in)
	}
	if len(in) == 0 {
		return lexer.Token{}, nil, ErrExpectedAToken
	}
	return in[0], in[1:], nil
}

// parseFixedSymbol consumes exactly the given symbol, skipping leading
// whitespace.
func parseFixedSymbol(in []lexer.Token, sym lexer.TokenType) ([]lexer.Token, error) {
	tok, rest, err := parseToken(in, true)
	if err != nil {
		return nil, err
	}
	if !tok.Type.IsSymbol() {
		return nil, &InvalidTokenError{Expected: sym}
	}
	if tok.Type != sym {
		return nil, &ExpectedTokenError{Found: tok.Type, Expected: sym}
	}
	return rest, nil
}
