// Package eval executes expression trees: it resolves identifiers
// against a scope chain, performs arbitrary-precision arithmetic and
// unit algebra, and calls closures.
package eval

import (
	"errors"
	"fmt"
	"time"

	"github.com/MattTheNub/fend/ast"
	"github.com/MattTheNub/fend/date"
	"github.com/MattTheNub/fend/parser"
	"github.com/MattTheNub/fend/value"
)

// Scope is one frame of the symbol table. Lookups walk towards the
// root; definitions always land in the current frame.
type Scope struct {
	parent *Scope
	vars   map[string]value.Value
}

// NewScope creates a scope with the given parent, which may be nil.
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, vars: map[string]value.Value{}}
}

// Lookup finds a name in this scope or any ancestor.
func (s *Scope) Lookup(name string) (value.Value, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Define binds a name in this scope.
func (s *Scope) Define(name string, v value.Value) {
	s.vars[name] = v
}

// Context holds the evaluation state that outlives a single expression:
// the global scope and the clock.
type Context struct {
	scope *Scope
	Now   func() time.Time
}

// NewContext creates a fresh evaluation context.
func NewContext() *Context {
	return &Context{scope: NewScope(nil), Now: time.Now}
}

// Evaluate executes an expression tree against the context's global
// scope.
func (c *Context) Evaluate(e ast.Expr) (value.Value, error) {
	return c.eval(e, c.scope)
}

// EvaluateString lexes, parses and evaluates an input string.
func (c *Context) EvaluateString(input string) (value.Value, error) {
	e, err := parser.ParseString(input)
	if err != nil {
		return nil, err
	}
	return c.Evaluate(e)
}

// UnknownIdentError reports an identifier that resolved to nothing: not
// a variable, builtin, unit, or date keyword.
type UnknownIdentError struct {
	Name string
}

func (e *UnknownIdentError) Error() string {
	return fmt.Sprintf("unknown identifier %q", e.Name)
}

// TypeError reports an operation applied to a value of the wrong kind.
type TypeError struct {
	Op  string
	Val value.Value
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("cannot %s a value of type %s", e.Op, e.Val.TypeName())
}

// ErrNoSuchMember reports a failed qualified access.
var ErrNoSuchMember = errors.New("no such member")

func (c *Context) eval(e ast.Expr, sc *Scope) (value.Value, error) {
	switch e := e.(type) {
	case *ast.Literal:
		return e.Value, nil
	case *ast.Ident:
		return c.resolve(e.Name, sc)
	case *ast.Parens:
		// Grouping has no semantic effect beyond having been written.
		return c.eval(e.Inner, sc)
	case *ast.Of:
		inner, err := c.eval(e.Inner, sc)
		if err != nil {
			return nil, err
		}
		m, ok := inner.(value.Member)
		if !ok {
			return nil, &TypeError{Op: "access a member of", Val: inner}
		}
		v, ok := m.Member(e.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %q of %s", ErrNoSuchMember, e.Name, inner.TypeName())
		}
		return v, nil
	case *ast.Fn:
		return &lambda{param: e.Param, body: e.Body, scope: sc}, nil
	case *ast.Apply:
		return c.apply(e.Lhs, e.Rhs, sc)
	case *ast.ApplyFunctionCall:
		fn, err := c.eval(e.Lhs, sc)
		if err != nil {
			return nil, err
		}
		call, ok := fn.(callable)
		if !ok {
			return nil, &TypeError{Op: "call", Val: fn}
		}
		arg, err := c.eval(e.Rhs, sc)
		if err != nil {
			return nil, err
		}
		return call.call(c, arg)
	case *ast.ApplyMul:
		l, err := c.evalNumber(e.Lhs, sc, "multiply")
		if err != nil {
			return nil, err
		}
		r, err := c.evalNumber(e.Rhs, sc, "multiply")
		if err != nil {
			return nil, err
		}
		return l.Mul(r)
	case *ast.Bop:
		return c.evalBop(e, sc)
	case *ast.UnaryMinus:
		n, err := c.evalNumber(e.Inner, sc, "negate")
		if err != nil {
			return nil, err
		}
		return n.Neg(), nil
	case *ast.UnaryPlus:
		n, err := c.evalNumber(e.Inner, sc, "apply a sign to")
		if err != nil {
			return nil, err
		}
		return n, nil
	case *ast.UnaryDiv:
		n, err := c.evalNumber(e.Inner, sc, "invert")
		if err != nil {
			return nil, err
		}
		return n.Recip()
	case *ast.Factorial:
		n, err := c.evalNumber(e.Inner, sc, "take the factorial of")
		if err != nil {
			return nil, err
		}
		return n.Factorial()
	case *ast.Assign:
		v, err := c.eval(e.Rhs, sc)
		if err != nil {
			return nil, err
		}
		sc.Define(e.Name, v)
		return v, nil
	case *ast.Statements:
		if _, err := c.eval(e.First, sc); err != nil {
			return nil, err
		}
		return c.eval(e.Rest, sc)
	case *ast.As:
		return c.evalAs(e, sc)
	default:
		return nil, fmt.Errorf("cannot evaluate %T", e)
	}
}

// resolve looks up an identifier: variables shadow builtins, builtins
// shadow units.
func (c *Context) resolve(name string, sc *Scope) (value.Value, error) {
	if v, ok := sc.Lookup(name); ok {
		return v, nil
	}
	if name == "today" {
		return date.Today(c.Now()), nil
	}
	if v, ok := builtins[name]; ok {
		return v, nil
	}
	if u, ok := value.LookupUnit(name); ok {
		return u.One(), nil
	}
	return nil, &UnknownIdentError{Name: name}
}

func (c *Context) evalNumber(e ast.Expr, sc *Scope, op string) (*value.Number, error) {
	v, err := c.eval(e, sc)
	if err != nil {
		return nil, err
	}
	n, ok := v.(*value.Number)
	if !ok {
		return nil, &TypeError{Op: op, Val: v}
	}
	return n, nil
}

// apply handles generic application: calling a closure, attaching a
// prefix unit, or multiplying juxtaposed groups.
func (c *Context) apply(lhsE, rhsE ast.Expr, sc *Scope) (value.Value, error) {
	lhs, err := c.eval(lhsE, sc)
	if err != nil {
		return nil, err
	}
	rhs, err := c.eval(rhsE, sc)
	if err != nil {
		return nil, err
	}
	if call, ok := lhs.(callable); ok {
		return call.call(c, rhs)
	}
	ln, ok := lhs.(*value.Number)
	if !ok {
		return nil, &TypeError{Op: "apply", Val: lhs}
	}
	rn, ok := rhs.(*value.Number)
	if !ok {
		return nil, &TypeError{Op: "apply", Val: rhs}
	}
	// Prefix units evaluate to 1 of themselves, so "$5" is 1$ * 5.
	return ln.Mul(rn)
}

func (c *Context) evalBop(e *ast.Bop, sc *Scope) (value.Value, error) {
	lhs, err := c.eval(e.Lhs, sc)
	if err != nil {
		return nil, err
	}
	// Date arithmetic: a date plus or minus a whole number of days.
	if d, ok := lhs.(date.Date); ok && (e.Op == ast.Plus || e.Op == ast.Minus) {
		return c.evalDateShift(d, e, sc)
	}
	ln, ok := lhs.(*value.Number)
	if !ok {
		return nil, &TypeError{Op: "combine", Val: lhs}
	}
	rn, err := c.evalNumber(e.Rhs, sc, "combine")
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case ast.Plus, ast.ImplicitPlus:
		return ln.Add(rn)
	case ast.Minus:
		return ln.Sub(rn)
	case ast.Mul:
		return ln.Mul(rn)
	case ast.Div:
		return ln.Div(rn)
	case ast.Mod:
		return ln.Mod(rn)
	case ast.Pow:
		return ln.Pow(rn)
	default:
		return nil, fmt.Errorf("unknown operator %q", e.Op)
	}
}

func (c *Context) evalDateShift(d date.Date, e *ast.Bop, sc *Scope) (value.Value, error) {
	rn, err := c.evalNumber(e.Rhs, sc, "add to a date")
	if err != nil {
		return nil, err
	}
	days, ok := rn.AsInt64InUnit("day")
	if !ok {
		return nil, fmt.Errorf("can only add a whole number of days to a date")
	}
	if e.Op == ast.Minus {
		days = -days
	}
	return d.AddDays(days), nil
}

// evalAs handles the "to" conversion keyword. The target is inspected
// syntactically: unit names convert the display unit, "string" and
// "date" convert the type.
func (c *Context) evalAs(e *ast.As, sc *Scope) (value.Value, error) {
	v, err := c.eval(e.Value, sc)
	if err != nil {
		return nil, err
	}
	id, ok := e.Target.(*ast.Ident)
	if !ok {
		return nil, fmt.Errorf("cannot convert to %s", e.Target.Dump())
	}
	switch id.Name {
	case "string":
		return value.String(v.String()), nil
	case "date":
		s, ok := v.(value.String)
		if !ok {
			return nil, &TypeError{Op: "convert to a date", Val: v}
		}
		return date.Parse(string(s))
	default:
		u, ok := value.LookupUnit(id.Name)
		if !ok {
			return nil, &UnknownIdentError{Name: id.Name}
		}
		n, ok := v.(*value.Number)
		if !ok {
			return nil, &TypeError{Op: "convert", Val: v}
		}
		return n.Convert(u)
	}
}
