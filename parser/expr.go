package parser

import (
	"github.com/MattTheNub/fend/ast"
	"github.com/MattTheNub/fend/lexer"
	"github.com/MattTheNub/fend/value"
)

// Layering, loosest to tightest binding:
//
//	statements → assignment → function → additive → implicit addition
//	  → multiplicative → power → factorial → primary
//
// Every layer takes a cursor and returns the node plus the remaining
// cursor, or an error with nothing consumed.

func (p *parser) parseNumber(in []lexer.Token) (ast.Expr, []lexer.Token, error) {
	tok, rest, err := parseToken(in, true)
	if err != nil {
		return nil, nil, err
	}
	if tok.Type != lexer.TokNumber {
		return nil, nil, ErrExpectedANumber
	}
	return &ast.Literal{Value: tok.Num}, rest, nil
}

func (p *parser) parseIdent(in []lexer.Token) (ast.Expr, []lexer.Token, error) {
	tok, rest, err := parseToken(in, true)
	if err != nil {
		return nil, nil, err
	}
	if tok.Type != lexer.TokIdentifier {
		return nil, nil, ErrExpectedIdentifier
	}
	if rest2, err := parseFixedSymbol(rest, lexer.TokOf); err == nil {
		if err := p.enter(); err != nil {
			return nil, nil, err
		}
		defer p.leave()
		inner, rest3, err := p.parseParensOrLiteral(rest2)
		if err != nil {
			return nil, nil, err
		}
		return &ast.Of{Name: tok.Value, Inner: inner}, rest3, nil
	}
	return &ast.Ident{Name: tok.Value}, rest, nil
}

func (p *parser) parseParens(in []lexer.Token) (ast.Expr, []lexer.Token, error) {
	in, err := parseFixedSymbol(in, lexer.TokParenLeft)
	if err != nil {
		return nil, nil, err
	}
	if rest, err := parseFixedSymbol(in, lexer.TokParenRight); err == nil {
		return &ast.Literal{Value: value.Empty{}}, rest, nil
	}
	inner, in, err := p.parseStatements(in)
	if err != nil {
		return nil, nil, err
	}
	// Allow omitting the closing parenthesis, but only when the input
	// ends right here; even a trailing whitespace token still demands it.
	if len(in) != 0 {
		rest, err := parseFixedSymbol(in, lexer.TokParenRight)
		if err != nil {
			return nil, nil, err
		}
		in = rest
	}
	return &ast.Parens{Inner: inner}, in, nil
}

func (p *parser) parseBackslashLambda(in []lexer.Token) (ast.Expr, []lexer.Token, error) {
	in, err := parseFixedSymbol(in, lexer.TokBackslash)
	if err != nil {
		return nil, nil, err
	}
	// The parameter must follow the backslash immediately.
	tok, in, err := parseToken(in, false)
	if err != nil {
		return nil, nil, err
	}
	if tok.Type == lexer.TokWhitespace {
		return nil, nil, ErrUnexpectedWhitespace
	}
	if tok.Type != lexer.TokIdentifier {
		return nil, nil, ErrExpectedIdentifier
	}
	rest, err := parseFixedSymbol(in, lexer.TokDot)
	if err != nil {
		return nil, nil, &LambdaSyntaxError{Cause: err}
	}
	body, rest, err := p.parseFunction(rest)
	if err != nil {
		return nil, nil, err
	}
	return &ast.Fn{Param: tok.Value, Body: body}, rest, nil
}

// parseParensOrLiteral parses one primary expression, dispatching on the
// next token.
func (p *parser) parseParensOrLiteral(in []lexer.Token) (ast.Expr, []lexer.Token, error) {
	tok, rest, err := parseToken(in, true)
	if err != nil {
		return nil, nil, err
	}
	switch tok.Type {
	case lexer.TokNumber:
		return p.parseNumber(in)
	case lexer.TokIdentifier:
		return p.parseIdent(in)
	case lexer.TokString:
		return &ast.Literal{Value: value.String(tok.Value)}, rest, nil
	case lexer.TokParenLeft:
		if err := p.enter(); err != nil {
			return nil, nil, err
		}
		defer p.leave()
		return p.parseParens(in)
	case lexer.TokBackslash:
		if err := p.enter(); err != nil {
			return nil, nil, err
		}
		defer p.leave()
		return p.parseBackslashLambda(in)
	case lexer.TokWhitespace:
		return nil, nil, ErrUnexpectedWhitespace
	default:
		return nil, nil, &UnexpectedSymbolError{Symbol: tok.Type}
	}
}

// parseFactorial handles the postfix "!", which may repeat: "5!!!".
func (p *parser) parseFactorial(in []lexer.Token) (ast.Expr, []lexer.Token, error) {
	res, in, err := p.parseParensOrLiteral(in)
	if err != nil {
		return nil, nil, err
	}
	for {
		rest, err := parseFixedSymbol(in, lexer.TokFactorial)
		if err != nil {
			break
		}
		res = &ast.Factorial{Inner: res}
		in = rest
	}
	return res, in, nil
}

// parsePower handles prefix sign/reciprocal operators and the
// right-associative "^". A leading unary operator wraps the whole power
// expression that follows, so "-2^2" is -(2^2). The precedence of unary
// division relative to exponentiation does not matter because
// /a^b → (1/a)^b == 1/(a^b).
func (p *parser) parsePower(in []lexer.Token, allowUnary bool) (ast.Expr, []lexer.Token, error) {
	if allowUnary {
		if rest, err := parseFixedSymbol(in, lexer.TokSub); err == nil {
			if err := p.enter(); err != nil {
				return nil, nil, err
			}
			defer p.leave()
			inner, rest, err := p.parsePower(rest, true)
			if err != nil {
				return nil, nil, err
			}
			return &ast.UnaryMinus{Inner: inner}, rest, nil
		}
		if rest, err := parseFixedSymbol(in, lexer.TokAdd); err == nil {
			if err := p.enter(); err != nil {
				return nil, nil, err
			}
			defer p.leave()
			inner, rest, err := p.parsePower(rest, true)
			if err != nil {
				return nil, nil, err
			}
			return &ast.UnaryPlus{Inner: inner}, rest, nil
		}
		if rest, err := parseFixedSymbol(in, lexer.TokDiv); err == nil {
			if err := p.enter(); err != nil {
				return nil, nil, err
			}
			defer p.leave()
			inner, rest, err := p.parsePower(rest, true)
			if err != nil {
				return nil, nil, err
			}
			return &ast.UnaryDiv{Inner: inner}, rest, nil
		}
	}
	res, in, err := p.parseFactorial(in)
	if err != nil {
		return nil, nil, err
	}
	if rest, err := parseFixedSymbol(in, lexer.TokPow); err == nil {
		if err := p.enter(); err != nil {
			return nil, nil, err
		}
		defer p.leave()
		rhs, rest, err := p.parsePower(rest, true)
		if err != nil {
			return nil, nil, err
		}
		return &ast.Bop{Op: ast.Pow, Lhs: res, Rhs: rhs}, rest, nil
	}
	return res, in, nil
}

// isNumericLiteral reports whether e is a bare numeric literal.
func isNumericLiteral(e ast.Expr) bool {
	lit, ok := e.(*ast.Literal)
	if !ok {
		return false
	}
	_, ok = lit.Value.(*value.Number)
	return ok
}

// isReservedLhs reports whether a left operand has one of the shapes
// whose juxtaposition with a number is reserved for mixed fractions and
// implicit addition: a numeric literal, the negation of one, or an
// implicit multiplication.
func isReservedLhs(e ast.Expr) bool {
	switch t := e.(type) {
	case *ast.Literal:
		return isNumericLiteral(e)
	case *ast.UnaryMinus:
		return isNumericLiteral(t.Inner)
	case *ast.ApplyMul:
		return true
	}
	return false
}

// parseApplyCont resolves a juxtaposition continuation: given the parsed
// left operand, parse the next power-precedence term (with unary
// prefixes disallowed) and classify the pair.
func (p *parser) parseApplyCont(in []lexer.Token, lhs ast.Expr) (ast.Expr, []lexer.Token, error) {
	rhs, rest, err := p.parsePower(in, false)
	if err != nil {
		return nil, nil, err
	}
	if isReservedLhs(lhs) {
		// "2 3" may later parse as a mixed fraction ("1 2/3") or as an
		// implicit addition ("6 feet 1 inch"); refuse it here.
		if isNumericLiteral(rhs) {
			return nil, nil, errInvalidApplyOperands
		}
		if pow, ok := rhs.(*ast.Bop); ok && pow.Op == ast.Pow {
			if isNumericLiteral(pow.Lhs) {
				return nil, nil, errInvalidApplyOperands
			}
			return &ast.Apply{Lhs: lhs, Rhs: rhs}, rest, nil
		}
	}
	if id, ok := lhs.(*ast.Ident); ok && value.IsPrefixUnit(id.Name) && isNumericLiteral(rhs) {
		// Prefix units: "$5", "£3".
		return &ast.Apply{Lhs: lhs, Rhs: rhs}, rest, nil
	}
	if isNumericLiteral(rhs) {
		// Function-call sugar: "sin 30".
		return &ast.ApplyFunctionCall{Lhs: lhs, Rhs: rhs}, rest, nil
	}
	if isNumericLiteral(lhs) {
		// Implicit multiplication: "2 meters".
		return &ast.ApplyMul{Lhs: lhs, Rhs: rhs}, rest, nil
	}
	if _, ok := lhs.(*ast.ApplyMul); ok {
		return &ast.ApplyMul{Lhs: lhs, Rhs: rhs}, rest, nil
	}
	return &ast.Apply{Lhs: lhs, Rhs: rhs}, rest, nil
}

// parseMixedFraction recognizes "2 1/3" as 2 + 1/3. The whole
// continuation fails atomically on any mismatch so the caller can fall
// through to the next alternative.
func (p *parser) parseMixedFraction(in []lexer.Token, lhs ast.Expr) (ast.Expr, []lexer.Token, error) {
	var (
		positive    bool
		base        ast.Expr
		otherFactor ast.Expr
	)
	switch l := lhs.(type) {
	case *ast.Literal:
		if !isNumericLiteral(lhs) {
			return nil, nil, ErrInvalidMixedFraction
		}
		positive, base = true, lhs
	case *ast.UnaryMinus:
		if !isNumericLiteral(l.Inner) {
			return nil, nil, ErrInvalidMixedFraction
		}
		positive, base = false, lhs
	case *ast.Bop:
		if l.Op != ast.Mul {
			return nil, nil, ErrInvalidMixedFraction
		}
		switch r := l.Rhs.(type) {
		case *ast.Literal:
			if !isNumericLiteral(l.Rhs) {
				return nil, nil, ErrInvalidMixedFraction
			}
			positive, base, otherFactor = true, l.Rhs, l.Lhs
		case *ast.UnaryMinus:
			if !isNumericLiteral(r.Inner) {
				return nil, nil, ErrInvalidMixedFraction
			}
			positive, base, otherFactor = false, l.Rhs, l.Lhs
		default:
			return nil, nil, ErrInvalidMixedFraction
		}
	default:
		return nil, nil, ErrInvalidMixedFraction
	}
	num, in, err := p.parsePower(in, false)
	if err != nil {
		return nil, nil, err
	}
	if !isNumericLiteral(num) {
		return nil, nil, ErrInvalidMixedFraction
	}
	in, err = parseFixedSymbol(in, lexer.TokDiv)
	if err != nil {
		return nil, nil, err
	}
	den, in, err := p.parsePower(in, false)
	if err != nil {
		return nil, nil, err
	}
	if !isNumericLiteral(den) {
		return nil, nil, ErrInvalidMixedFraction
	}
	frac := &ast.Bop{Op: ast.Div, Lhs: num, Rhs: den}
	op := ast.Plus
	if !positive {
		op = ast.Minus
	}
	var res ast.Expr = &ast.Bop{Op: op, Lhs: base, Rhs: frac}
	if otherFactor != nil {
		res = &ast.Bop{Op: ast.Mul, Lhs: otherFactor, Rhs: res}
	}
	return res, in, nil
}

// parseBopCont consumes a fixed operator symbol followed by one
// power-precedence term.
func (p *parser) parseBopCont(in []lexer.Token, sym lexer.TokenType) (ast.Expr, []lexer.Token, error) {
	in, err := parseFixedSymbol(in, sym)
	if err != nil {
		return nil, nil, err
	}
	return p.parsePower(in, true)
}

// parseMultiplicative builds a left-associative chain, trying at each
// step: explicit "*", "/", "%", then a mixed fraction, then a
// juxtaposition. The first success restarts the loop with the new left
// operand; failures here are expected control flow and never propagate
// once any alternative matches.
func (p *parser) parseMultiplicative(in []lexer.Token) (ast.Expr, []lexer.Token, error) {
	res, in, err := p.parsePower(in, true)
	if err != nil {
		return nil, nil, err
	}
	for {
		if rhs, rest, err := p.parseBopCont(in, lexer.TokMul); err == nil {
			res = &ast.Bop{Op: ast.Mul, Lhs: res, Rhs: rhs}
			in = rest
		} else if rhs, rest, err := p.parseBopCont(in, lexer.TokDiv); err == nil {
			res = &ast.Bop{Op: ast.Div, Lhs: res, Rhs: rhs}
			in = rest
		} else if rhs, rest, err := p.parseBopCont(in, lexer.TokMod); err == nil {
			res = &ast.Bop{Op: ast.Mod, Lhs: res, Rhs: rhs}
			in = rest
		} else if newRes, rest, err := p.parseMixedFraction(in, res); err == nil {
			res = newRes
			in = rest
		} else if newRes, rest, err := p.parseApplyCont(in, res); err == nil {
			res = newRes
			in = rest
		} else {
			break
		}
	}
	return res, in, nil
}

// parseImplicitAddition combines adjacent implicit multiplications into
// a compound quantity: "6 feet 1 inch". Only an ApplyMul on the left and
// an ApplyMul, implicit addition, or bare literal on the right combine;
// any other adjacency is left for the caller.
func (p *parser) parseImplicitAddition(in []lexer.Token) (ast.Expr, []lexer.Token, error) {
	res, in, err := p.parseMultiplicative(in)
	if err != nil {
		return nil, nil, err
	}
	if err := p.enter(); err != nil {
		return nil, nil, err
	}
	defer p.leave()
	if rhs, rest, err := p.parseImplicitAddition(in); err == nil {
		if _, ok := res.(*ast.ApplyMul); ok && implicitAddRhsOK(rhs) {
			return &ast.Bop{Op: ast.ImplicitPlus, Lhs: res, Rhs: rhs}, rest, nil
		}
	}
	return res, in, nil
}

func implicitAddRhsOK(e ast.Expr) bool {
	switch t := e.(type) {
	case *ast.ApplyMul:
		return true
	case *ast.Bop:
		return t.Op == ast.ImplicitPlus
	case *ast.Literal:
		return true
	}
	return false
}

// parseAddCont consumes a fixed symbol followed by one implicit-addition
// term.
func (p *parser) parseAddCont(in []lexer.Token, sym lexer.TokenType) (ast.Expr, []lexer.Token, error) {
	in, err := parseFixedSymbol(in, sym)
	if err != nil {
		return nil, nil, err
	}
	return p.parseImplicitAddition(in)
}

// parseAdditive builds the left-associative chain of explicit "+", "-",
// and the conversion keyword "to".
func (p *parser) parseAdditive(in []lexer.Token) (ast.Expr, []lexer.Token, error) {
	res, in, err := p.parseImplicitAddition(in)
	if err != nil {
		return nil, nil, err
	}
	for {
		if rhs, rest, err := p.parseAddCont(in, lexer.TokAdd); err == nil {
			res = &ast.Bop{Op: ast.Plus, Lhs: res, Rhs: rhs}
			in = rest
		} else if rhs, rest, err := p.parseAddCont(in, lexer.TokSub); err == nil {
			res = &ast.Bop{Op: ast.Minus, Lhs: res, Rhs: rhs}
			in = rest
		} else if rhs, rest, err := p.parseAddCont(in, lexer.TokTo); err == nil {
			res = &ast.As{Value: res, Target: rhs}
			in = rest
		} else {
			break
		}
	}
	return res, in, nil
}

// parseFunction handles the arrow sugar "x => body". Only a bare
// identifier is accepted on the left.
func (p *parser) parseFunction(in []lexer.Token) (ast.Expr, []lexer.Token, error) {
	lhs, in, err := p.parseAdditive(in)
	if err != nil {
		return nil, nil, err
	}
	if rest, err := parseFixedSymbol(in, lexer.TokArrow); err == nil {
		id, ok := lhs.(*ast.Ident)
		if !ok {
			return nil, nil, ErrExpectedIdentifierAsArgument
		}
		if err := p.enter(); err != nil {
			return nil, nil, err
		}
		defer p.leave()
		body, rest, err := p.parseFunction(rest)
		if err != nil {
			return nil, nil, err
		}
		return &ast.Fn{Param: id.Name, Body: body}, rest, nil
	}
	return lhs, in, nil
}

// parseAssignment handles "name = rhs", right-associative so that
// "a = b = 3" assigns 3 to both.
func (p *parser) parseAssignment(in []lexer.Token) (ast.Expr, []lexer.Token, error) {
	lhs, in, err := p.parseFunction(in)
	if err != nil {
		return nil, nil, err
	}
	if rest, err := parseFixedSymbol(in, lexer.TokEquals); err == nil {
		id, ok := lhs.(*ast.Ident)
		if !ok {
			return nil, nil, ErrExpectedIdentifierInAssignment
		}
		if err := p.enter(); err != nil {
			return nil, nil, err
		}
		defer p.leave()
		rhs, rest, err := p.parseAssignment(rest)
		if err != nil {
			return nil, nil, err
		}
		return &ast.Assign{Name: id.Name, Rhs: rhs}, rest, nil
	}
	return lhs, in, nil
}

// parseStatements handles ";"-separated sequencing. Leading, trailing
// and repeated separators are skipped; empty input yields the empty
// literal.
func (p *parser) parseStatements(in []lexer.Token) (ast.Expr, []lexer.Token, error) {
	for {
		rest, err := parseFixedSymbol(in, lexer.TokSemicolon)
		if err != nil {
			break
		}
		in = rest
	}
	if len(skipWhitespace(in)) == 0 {
		return &ast.Literal{Value: value.Empty{}}, nil, nil
	}
	res, in, err := p.parseAssignment(in)
	if err != nil {
		return nil, nil, err
	}
	for {
		rest, err := parseFixedSymbol(in, lexer.TokSemicolon)
		if err != nil {
			break
		}
		// A trailing or repeated ';' does not introduce an empty statement.
		if next := skipWhitespace(rest); len(next) == 0 || next[0].Type == lexer.TokSemicolon {
			in = rest
			continue
		}
		rhs, rest, err := p.parseAssignment(rest)
		if err != nil {
			return nil, nil, err
		}
		res = &ast.Statements{First: res, Rest: rhs}
		in = rest
	}
	return res, in, nil
}
