package eval

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/zephyrtronium/bigfloat"

	"github.com/MattTheNub/fend/ast"
	"github.com/MattTheNub/fend/value"
)

// callable is any value that can sit on the left of an application.
type callable interface {
	value.Value
	call(c *Context, arg value.Value) (value.Value, error)
}

// lambda is a user-defined function. It closes over the scope it was
// written in.
type lambda struct {
	param string
	body  ast.Expr
	scope *Scope
}

func (l *lambda) TypeName() string { return "function" }

func (l *lambda) String() string {
	return fmt.Sprintf(`\%s.%s`, l.param, l.body.Dump())
}

func (l *lambda) call(c *Context, arg value.Value) (value.Value, error) {
	child := NewScope(l.scope)
	child.Define(l.param, arg)
	return c.eval(l.body, child)
}

// builtin is a named numeric function on dimensionless arguments.
type builtin struct {
	name string
	fn   func(out, in *big.Float) error
}

func (b *builtin) TypeName() string { return "function" }
func (b *builtin) String() string   { return b.name }

func (b *builtin) call(_ *Context, arg value.Value) (value.Value, error) {
	n, ok := arg.(*value.Number)
	if !ok {
		return nil, &TypeError{Op: "compute " + b.name + " of", Val: arg}
	}
	if !n.IsUnitless() {
		return nil, fmt.Errorf("%s: %w", b.name, value.ErrExpectedUnitless)
	}
	in := n.Float()
	out := new(big.Float).SetPrec(in.Prec())
	if err := b.fn(out, in); err != nil {
		return nil, fmt.Errorf("%s: %w", b.name, err)
	}
	return value.FromFloat(out), nil
}

// ErrDomain reports a mathematical function applied outside its domain.
var ErrDomain = errors.New("argument out of domain")

var builtins = map[string]value.Value{
	"pi":    value.FromFloat(bigfloat.Pi(new(big.Float).SetPrec(value.DefaultPrec))),
	"e":     value.FromFloat(eulerConst()),
	"exp":   &builtin{name: "exp", fn: builtinExp},
	"ln":    &builtin{name: "ln", fn: builtinLn},
	"log":   &builtin{name: "log", fn: builtinLog},
	"sqrt":  &builtin{name: "sqrt", fn: builtinSqrt},
	"abs":   &builtin{name: "abs", fn: builtinAbs},
	"floor": &builtin{name: "floor", fn: builtinFloor},
	"ceil":  &builtin{name: "ceil", fn: builtinCeil},
}

func eulerConst() *big.Float {
	one := new(big.Float).SetPrec(value.DefaultPrec).SetInt64(1)
	return bigfloat.Exp(new(big.Float).SetPrec(value.DefaultPrec), one)
}

func builtinExp(out, in *big.Float) error {
	bigfloat.Exp(out, in)
	return nil
}

func builtinLn(out, in *big.Float) error {
	if in.Sign() <= 0 {
		return ErrDomain
	}
	bigfloat.Log(out, in)
	return nil
}

func builtinLog(out, in *big.Float) error {
	if in.Sign() <= 0 {
		return ErrDomain
	}
	ten := new(big.Float).SetPrec(in.Prec()).SetInt64(10)
	bigfloat.Log(out, in)
	out.Quo(out, bigfloat.Log(new(big.Float).SetPrec(in.Prec()), ten))
	return nil
}

func builtinSqrt(out, in *big.Float) error {
	if in.Sign() < 0 {
		return ErrDomain
	}
	out.Sqrt(in)
	return nil
}

func builtinAbs(out, in *big.Float) error {
	out.Abs(in)
	return nil
}

// truncate rounds towards zero; floor and ceil adjust it for the
// remaining sign cases.
func truncate(out, in *big.Float) {
	i, _ := in.Int(nil)
	out.SetInt(i)
}

func builtinFloor(out, in *big.Float) error {
	truncate(out, in)
	if in.Sign() < 0 && out.Cmp(in) != 0 {
		out.Sub(out, big.NewFloat(1))
	}
	return nil
}

func builtinCeil(out, in *big.Float) error {
	truncate(out, in)
	if in.Sign() > 0 && out.Cmp(in) != 0 {
		out.Add(out, big.NewFloat(1))
	}
	return nil
}
