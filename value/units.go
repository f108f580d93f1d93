package value

import "math/big"

// Unit is a named unit of measure: a scale factor into base dimensions
// (meters, kilograms, seconds, or a currency). A prefix unit attaches in
// front of its number, like "$5".
type Unit struct {
	name   string
	scale  *big.Float
	dims   map[string]int
	prefix bool
}

// Name returns the unit's display name.
func (u *Unit) Name() string { return u.name }

func (*Unit) TypeName() string { return "unit" }

func (u *Unit) String() string { return u.name }

// IsPrefix reports whether the unit is written before its number.
func (u *Unit) IsPrefix() bool { return u.prefix }

// One returns the unit as a Number with magnitude one, which is how a
// bare unit identifier evaluates: "meters" is "1 meters", so implicit
// multiplication needs no special casing.
func (u *Unit) One() *Number {
	return FromInt(1).WithUnit(u)
}

type unitDef struct {
	scale  float64
	dim    string
	prefix bool
}

// The unit table is deliberately small: enough to cover length, mass,
// time and currency symbols. Aliases share a definition; the name the
// user wrote is kept for display.
var unitDefs = map[string]unitDef{
	"m": {1, "m", false}, "meter": {1, "m", false}, "meters": {1, "m", false},
	"cm": {0.01, "m", false}, "mm": {0.001, "m", false},
	"km": {1000, "m", false},
	"inch": {0.0254, "m", false}, "inches": {0.0254, "m", false}, "in": {0.0254, "m", false},
	"foot": {0.3048, "m", false}, "feet": {0.3048, "m", false}, "ft": {0.3048, "m", false},
	"yard": {0.9144, "m", false}, "yards": {0.9144, "m", false},
	"mile": {1609.344, "m", false}, "miles": {1609.344, "m", false},

	"kg": {1, "kg", false},
	"g":  {0.001, "kg", false}, "gram": {0.001, "kg", false}, "grams": {0.001, "kg", false},
	"lb": {0.45359237, "kg", false}, "lbs": {0.45359237, "kg", false},
	"pound": {0.45359237, "kg", false}, "pounds": {0.45359237, "kg", false},

	"s": {1, "s", false}, "second": {1, "s", false}, "seconds": {1, "s", false},
	"minute": {60, "s", false}, "minutes": {60, "s", false},
	"hour": {3600, "s", false}, "hours": {3600, "s", false},
	"day": {86400, "s", false}, "days": {86400, "s", false},

	"$": {1, "USD", true}, "USD": {1, "USD", false},
	"£": {1, "GBP", true}, "GBP": {1, "GBP", false},
	"€": {1, "EUR", true}, "EUR": {1, "EUR", false},
	"¥": {1, "JPY", true}, "JPY": {1, "JPY", false},
}

// LookupUnit finds a unit by name or alias.
func LookupUnit(name string) (*Unit, bool) {
	def, ok := unitDefs[name]
	if !ok {
		return nil, false
	}
	return &Unit{
		name:   name,
		scale:  new(big.Float).SetPrec(DefaultPrec).SetFloat64(def.scale),
		dims:   map[string]int{def.dim: 1},
		prefix: def.prefix,
	}, true
}

// IsPrefixUnit reports whether name names a prefix unit such as a
// currency symbol. The parser uses this to tell "$5" apart from
// function-call sugar.
func IsPrefixUnit(name string) bool {
	def, ok := unitDefs[name]
	return ok && def.prefix
}
