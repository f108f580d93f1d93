// Package ast defines the expression tree produced by the parser and
// consumed by the evaluator.
package ast

import (
	"fmt"

	"github.com/MattTheNub/fend/value"
)

// Expr is a node of the expression tree. Nodes own their children
// exclusively and are never mutated after construction.
type Expr interface {
	// Dump returns a fully parenthesized source-like rendering, used for
	// debugging and tests.
	Dump() string
	expr()
}

// Literal is an opaque value handed over by primary parsing: a number,
// a string, or the empty value.
type Literal struct {
	Value value.Value
}

// Ident is an identifier left for the evaluator to resolve.
type Ident struct {
	Name string
}

// Of is qualified member access: "month of today".
type Of struct {
	Name  string
	Inner Expr
}

// Parens is explicit grouping. It is preserved rather than collapsed so
// the user's precedence intent survives into the tree.
type Parens struct {
	Inner Expr
}

// Fn is a single-parameter lambda; multi-argument functions are curried
// as nested Fn nodes.
type Fn struct {
	Param string
	Body  Expr
}

// Apply is generic application: currying, and prefix-unit attachment
// like "$5".
type Apply struct {
	Lhs, Rhs Expr
}

// ApplyFunctionCall is function-call sugar: "sin 30".
type ApplyFunctionCall struct {
	Lhs, Rhs Expr
}

// ApplyMul is implicit multiplication: "2 meters".
type ApplyMul struct {
	Lhs, Rhs Expr
}

// Bop is a binary operation.
type Bop struct {
	Op       BopKind
	Lhs, Rhs Expr
}

// UnaryMinus is the prefix "-" operator.
type UnaryMinus struct {
	Inner Expr
}

// UnaryPlus is the prefix "+" operator.
type UnaryPlus struct {
	Inner Expr
}

// UnaryDiv is the prefix "/" operator: "/x" means "1/x".
type UnaryDiv struct {
	Inner Expr
}

// Factorial is the postfix "!" operator.
type Factorial struct {
	Inner Expr
}

// Assign is "name = rhs".
type Assign struct {
	Name string
	Rhs  Expr
}

// Statements is sequential composition: evaluate First, then Rest, and
// yield Rest's value.
type Statements struct {
	First, Rest Expr
}

// As is unit or type conversion via the "to" keyword.
type As struct {
	Value, Target Expr
}

func (*Literal) expr()           {}
func (*Ident) expr()             {}
func (*Of) expr()                {}
func (*Parens) expr()            {}
func (*Fn) expr()                {}
func (*Apply) expr()             {}
func (*ApplyFunctionCall) expr() {}
func (*ApplyMul) expr()          {}
func (*Bop) expr()               {}
func (*UnaryMinus) expr()        {}
func (*UnaryPlus) expr()         {}
func (*UnaryDiv) expr()          {}
func (*Factorial) expr()         {}
func (*Assign) expr()            {}
func (*Statements) expr()        {}
func (*As) expr()                {}

func (e *Literal) Dump() string {
	if _, ok := e.Value.(value.Empty); ok {
		return "()"
	}
	return e.Value.String()
}

func (e *Ident) Dump() string { return e.Name }

func (e *Of) Dump() string { return fmt.Sprintf("(%s of %s)", e.Name, e.Inner.Dump()) }

func (e *Parens) Dump() string { return fmt.Sprintf("(%s)", e.Inner.Dump()) }

func (e *Fn) Dump() string { return fmt.Sprintf("(\\%s.%s)", e.Param, e.Body.Dump()) }

func (e *Apply) Dump() string { return fmt.Sprintf("(%s %s)", e.Lhs.Dump(), e.Rhs.Dump()) }

func (e *ApplyFunctionCall) Dump() string { return fmt.Sprintf("(%s %s)", e.Lhs.Dump(), e.Rhs.Dump()) }

func (e *ApplyMul) Dump() string { return fmt.Sprintf("(%s %s)", e.Lhs.Dump(), e.Rhs.Dump()) }

func (e *Bop) Dump() string {
	return fmt.Sprintf("(%s %s %s)", e.Lhs.Dump(), e.Op, e.Rhs.Dump())
}

func (e *UnaryMinus) Dump() string { return fmt.Sprintf("(-%s)", e.Inner.Dump()) }

func (e *UnaryPlus) Dump() string { return fmt.Sprintf("(+%s)", e.Inner.Dump()) }

func (e *UnaryDiv) Dump() string { return fmt.Sprintf("(/%s)", e.Inner.Dump()) }

func (e *Factorial) Dump() string { return fmt.Sprintf("(%s!)", e.Inner.Dump()) }

func (e *Assign) Dump() string { return fmt.Sprintf("(%s = %s)", e.Name, e.Rhs.Dump()) }

func (e *Statements) Dump() string { return fmt.Sprintf("%s; %s", e.First.Dump(), e.Rest.Dump()) }

func (e *As) Dump() string { return fmt.Sprintf("(%s to %s)", e.Value.Dump(), e.Target.Dump()) }
