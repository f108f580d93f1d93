package ast

// BopKind identifies a binary operator.
type BopKind int

const (
	Plus BopKind = iota
	Minus
	Mul
	Div
	Mod
	Pow
	// ImplicitPlus joins two juxtaposed quantities, e.g. "6 feet 1 inch".
	ImplicitPlus
)

var bopStrings = map[BopKind]string{
	Plus:         "+",
	Minus:        "-",
	Mul:          "*",
	Div:          "/",
	Mod:          "%",
	Pow:          "^",
	ImplicitPlus: "+'",
}

func (k BopKind) String() string { return bopStrings[k] }
