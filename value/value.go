// Package value provides the runtime values produced by literals and by
// evaluation: arbitrary-precision numbers with attached units, strings,
// and the empty value.
package value

// Value is any value the calculator can produce or consume.
type Value interface {
	TypeName() string
	String() string
}

// Member is implemented by values that support qualified access, e.g.
// "month of today".
type Member interface {
	Member(name string) (Value, bool)
}

// String is a string value.
type String string

func (String) TypeName() string { return "string" }

func (s String) String() string { return string(s) }

// Empty is the unit value: the result of "()", of empty input, and of
// statements that produce nothing.
type Empty struct{}

func (Empty) TypeName() string { return "()" }

func (Empty) String() string { return "" }
