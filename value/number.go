package value

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// DefaultPrec is the precision, in bits, used for number literals.
const DefaultPrec = 128

// Arithmetic errors. All of them are reported to the user as-is.
var (
	ErrDivisionByZero    = errors.New("division by zero")
	ErrUnitMismatch      = errors.New("units are incompatible")
	ErrExpectedInteger   = errors.New("expected an integer")
	ErrNegativeFactorial = errors.New("factorial of a negative number")
	ErrFactorialTooLarge = errors.New("factorial argument too large")
	ErrExpectedUnitless  = errors.New("expected a number without a unit")
	ErrNegativeBase      = errors.New("cannot raise a negative number to a non-integer power")
)

// Number is an arbitrary-precision number with an attached unit. The
// magnitude is always stored in base units (meters, kilograms, seconds);
// disp remembers which unit the user wrote so results format back in it.
// Numbers are immutable: every operation returns a new Number.
type Number struct {
	f    *big.Float
	dims map[string]int // exponent per base dimension, nil when dimensionless
	disp *Unit
}

// ParseNumber parses a numeric literal such as "2", "3.5" or "1e6".
func ParseNumber(s string) (*Number, error) {
	f, _, err := big.ParseFloat(s, 10, DefaultPrec, big.ToNearestEven)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return &Number{f: f}, nil
}

// MustNumber is ParseNumber for known-good literals, used in tests.
func MustNumber(s string) *Number {
	n, err := ParseNumber(s)
	if err != nil {
		panic(err)
	}
	return n
}

// FromInt builds a dimensionless integer Number.
func FromInt(n int64) *Number {
	return &Number{f: new(big.Float).SetPrec(DefaultPrec).SetInt64(n)}
}

// FromFloat wraps an existing big.Float as a dimensionless Number.
func FromFloat(f *big.Float) *Number {
	return &Number{f: new(big.Float).Copy(f)}
}

func (*Number) TypeName() string { return "number" }

// Float returns a copy of the magnitude in base units.
func (n *Number) Float() *big.Float { return new(big.Float).Copy(n.f) }

// IsUnitless reports whether the number carries no unit.
func (n *Number) IsUnitless() bool { return len(n.dims) == 0 }

func (n *Number) clone() *Number {
	out := &Number{f: new(big.Float).Copy(n.f), disp: n.disp}
	if len(n.dims) > 0 {
		out.dims = make(map[string]int, len(n.dims))
		for k, v := range n.dims {
			out.dims[k] = v
		}
	}
	return out
}

func sameDims(a, b map[string]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// Add adds two numbers. The units must agree; the left operand's display
// unit wins, so "6 feet + 1 inch" formats in feet.
func (n *Number) Add(m *Number) (*Number, error) {
	if !sameDims(n.dims, m.dims) {
		return nil, ErrUnitMismatch
	}
	out := n.clone()
	out.f.Add(out.f, m.f)
	if out.disp == nil {
		out.disp = m.disp
	}
	return out, nil
}

// Sub subtracts m from n under the same unit rules as Add.
func (n *Number) Sub(m *Number) (*Number, error) {
	if !sameDims(n.dims, m.dims) {
		return nil, ErrUnitMismatch
	}
	out := n.clone()
	out.f.Sub(out.f, m.f)
	if out.disp == nil {
		out.disp = m.disp
	}
	return out, nil
}

// Mul multiplies two numbers, combining their unit exponents.
func (n *Number) Mul(m *Number) (*Number, error) {
	out := n.clone()
	out.f.Mul(out.f, m.f)
	out.dims = combineDims(n.dims, m.dims, 1)
	if out.disp == nil {
		out.disp = m.disp
	} else if m.disp != nil && m.disp != out.disp {
		// Mixed display units, fall back to base units.
		out.disp = nil
	}
	if len(out.dims) == 0 {
		out.disp = nil
	}
	return out, nil
}

// Div divides n by m, subtracting unit exponents.
func (n *Number) Div(m *Number) (*Number, error) {
	if m.f.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	out := n.clone()
	out.f.Quo(out.f, m.f)
	out.dims = combineDims(n.dims, m.dims, -1)
	if len(out.dims) == 0 || m.disp != nil {
		out.disp = nil
	}
	return out, nil
}

// Mod computes the remainder of truncated division. Both operands must
// be unitless.
func (n *Number) Mod(m *Number) (*Number, error) {
	if !n.IsUnitless() || !m.IsUnitless() {
		return nil, ErrExpectedUnitless
	}
	if m.f.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	q := new(big.Float).SetPrec(n.f.Prec()).Quo(n.f, m.f)
	i, _ := q.Int(nil)
	q.SetInt(i)
	out := n.clone()
	out.f.Sub(out.f, q.Mul(q, m.f))
	return out, nil
}

// Neg negates the number.
func (n *Number) Neg() *Number {
	out := n.clone()
	out.f.Neg(out.f)
	return out
}

// Recip computes 1/n, used by the prefix "/" operator.
func (n *Number) Recip() (*Number, error) {
	return FromInt(1).Div(n)
}

// Pow raises n to the power of m. The exponent must be unitless; a
// dimensioned or negative base additionally requires an integer exponent.
func (n *Number) Pow(m *Number) (*Number, error) {
	if !m.IsUnitless() {
		return nil, ErrExpectedUnitless
	}
	if k, ok := m.asInt(); ok {
		return n.powInt(k)
	}
	if !n.IsUnitless() {
		return nil, ErrExpectedUnitless
	}
	if n.f.Signbit() {
		return nil, ErrNegativeBase
	}
	out := &Number{f: new(big.Float).SetPrec(n.f.Prec())}
	bigfloat.Pow(out.f, n.f, m.f)
	return out, nil
}

func (n *Number) asInt() (int64, bool) {
	if !n.f.IsInt() {
		return 0, false
	}
	k, acc := n.f.Int64()
	if acc != big.Exact {
		return 0, false
	}
	return k, true
}

func (n *Number) powInt(k int64) (*Number, error) {
	neg := k < 0
	if neg {
		k = -k
	}
	out := &Number{f: new(big.Float).SetPrec(n.f.Prec()).SetInt64(1)}
	base := new(big.Float).Copy(n.f)
	e := k
	for e > 0 {
		if e&1 == 1 {
			out.f.Mul(out.f, base)
		}
		base.Mul(base, base)
		e >>= 1
	}
	if len(n.dims) > 0 && k != 0 {
		out.dims = make(map[string]int, len(n.dims))
		for d, v := range n.dims {
			out.dims[d] = v * int(k)
		}
	}
	if neg {
		return FromInt(1).Div(out)
	}
	return out, nil
}

// Factorial computes n! for nonnegative unitless integers.
func (n *Number) Factorial() (*Number, error) {
	if !n.IsUnitless() {
		return nil, ErrExpectedUnitless
	}
	k, ok := n.asInt()
	if !ok {
		return nil, ErrExpectedInteger
	}
	if k < 0 {
		return nil, ErrNegativeFactorial
	}
	if k > 10000 {
		return nil, ErrFactorialTooLarge
	}
	r := new(big.Int).MulRange(1, k)
	if k < 2 {
		r.SetInt64(1)
	}
	return &Number{f: new(big.Float).SetPrec(n.f.Prec()).SetInt(r)}, nil
}

// WithUnit attaches a unit, e.g. "2 meters": the magnitude is rescaled
// into base units and the unit's exponents are added.
func (n *Number) WithUnit(u *Unit) *Number {
	out := n.clone()
	out.f.Mul(out.f, u.scale)
	out.dims = combineDims(out.dims, u.dims, 1)
	out.disp = u
	return out
}

// AsInt64InUnit expresses the number in the named unit and returns the
// magnitude as an int64, if the dimensions match and the result is an
// exact whole number.
func (n *Number) AsInt64InUnit(name string) (int64, bool) {
	u, ok := LookupUnit(name)
	if !ok || !sameDims(n.dims, u.dims) {
		return 0, false
	}
	q := new(big.Float).SetPrec(n.f.Prec()).Quo(n.f, u.scale)
	if !q.IsInt() {
		return 0, false
	}
	k, acc := q.Int64()
	if acc != big.Exact {
		return 0, false
	}
	return k, true
}

// Convert re-expresses the number in the given unit. The unit's
// dimensions must match the number's.
func (n *Number) Convert(u *Unit) (*Number, error) {
	if !sameDims(n.dims, u.dims) {
		return nil, ErrUnitMismatch
	}
	out := n.clone()
	out.disp = u
	return out, nil
}

func combineDims(a, b map[string]int, sign int) map[string]int {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]int, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] += v * sign
		if out[k] == 0 {
			delete(out, k)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// String formats the number in its display unit if it has one, otherwise
// in base units.
func (n *Number) String() string {
	f := n.f
	if n.disp != nil {
		f = new(big.Float).SetPrec(n.f.Prec()).Quo(n.f, n.disp.scale)
	}
	s := formatFloat(f)
	switch {
	case n.disp != nil:
		if n.disp.prefix {
			return n.disp.name + s
		}
		return s + " " + n.disp.name
	case len(n.dims) > 0:
		return s + " " + dimsString(n.dims)
	default:
		return s
	}
}

func formatFloat(f *big.Float) string {
	s := f.Text('g', 10)
	// Trim a trailing ".0" style mantissa left by 'g' on exact integers.
	if strings.Contains(s, ".") && !strings.ContainsAny(s, "eE") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

func dimsString(dims map[string]int) string {
	keys := make([]string, 0, len(dims))
	for k := range dims {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		if dims[k] != 1 {
			fmt.Fprintf(&b, "^%d", dims[k])
		}
	}
	return b.String()
}
