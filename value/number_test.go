package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUnit(t *testing.T, name string) *Unit {
	t.Helper()
	u, ok := LookupUnit(name)
	require.True(t, ok, "unit %q", name)
	return u
}

func TestNumberFormatting(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2", "2"},
		{"3.5", "3.5"},
		{"1e6", "1000000"},
		{".5", "0.5"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, MustNumber(tc.in).String())
	}
}

func TestNumberArithmetic(t *testing.T) {
	sum, err := MustNumber("1").Add(MustNumber("2"))
	require.NoError(t, err)
	assert.Equal(t, "3", sum.String())

	prod, err := MustNumber("2.5").Mul(MustNumber("4"))
	require.NoError(t, err)
	assert.Equal(t, "10", prod.String())

	quot, err := MustNumber("1").Div(MustNumber("8"))
	require.NoError(t, err)
	assert.Equal(t, "0.125", quot.String())

	rem, err := MustNumber("10").Mod(MustNumber("3"))
	require.NoError(t, err)
	assert.Equal(t, "1", rem.String())

	_, err = MustNumber("1").Div(MustNumber("0"))
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestNumberPow(t *testing.T) {
	p, err := MustNumber("2").Pow(MustNumber("10"))
	require.NoError(t, err)
	assert.Equal(t, "1024", p.String())

	// Negative base with an integer exponent is fine.
	p, err = MustNumber("-2").Pow(MustNumber("3"))
	require.NoError(t, err)
	assert.Equal(t, "-8", p.String())

	// ...but not with a fractional one.
	_, err = MustNumber("-2").Pow(MustNumber("0.5"))
	require.ErrorIs(t, err, ErrNegativeBase)

	p, err = MustNumber("4").Pow(MustNumber("0.5"))
	require.NoError(t, err)
	assert.Equal(t, "2", p.String())

	// Negative integer exponents invert.
	p, err = MustNumber("2").Pow(MustNumber("-2"))
	require.NoError(t, err)
	assert.Equal(t, "0.25", p.String())
}

func TestNumberFactorial(t *testing.T) {
	f, err := MustNumber("5").Factorial()
	require.NoError(t, err)
	assert.Equal(t, "120", f.String())

	f, err = MustNumber("0").Factorial()
	require.NoError(t, err)
	assert.Equal(t, "1", f.String())

	_, err = MustNumber("-1").Factorial()
	require.ErrorIs(t, err, ErrNegativeFactorial)

	_, err = MustNumber("2.5").Factorial()
	require.ErrorIs(t, err, ErrExpectedInteger)

	_, err = MustNumber("20000").Factorial()
	require.ErrorIs(t, err, ErrFactorialTooLarge)
}

func TestNumberUnits(t *testing.T) {
	six := MustNumber("6").WithUnit(mustUnit(t, "feet"))
	assert.Equal(t, "6 feet", six.String())

	one := MustNumber("1").WithUnit(mustUnit(t, "inch"))
	sum, err := six.Add(one)
	require.NoError(t, err)
	// The left operand's display unit wins.
	assert.Equal(t, "6.083333333 feet", sum.String())

	_, err = six.Add(MustNumber("1"))
	require.ErrorIs(t, err, ErrUnitMismatch)

	_, err = six.Mod(one)
	require.ErrorIs(t, err, ErrExpectedUnitless)
}

func TestNumberConvert(t *testing.T) {
	five := MustNumber("5").WithUnit(mustUnit(t, "m"))
	cm, err := five.Convert(mustUnit(t, "cm"))
	require.NoError(t, err)
	assert.Equal(t, "500 cm", cm.String())

	_, err = five.Convert(mustUnit(t, "kg"))
	require.ErrorIs(t, err, ErrUnitMismatch)
}

func TestNumberUnitCancellation(t *testing.T) {
	dist := MustNumber("10").WithUnit(mustUnit(t, "m"))
	ratio, err := dist.Div(MustNumber("2").WithUnit(mustUnit(t, "m")))
	require.NoError(t, err)
	assert.True(t, ratio.IsUnitless())
	assert.Equal(t, "5", ratio.String())
}

func TestNumberPrefixUnitFormatting(t *testing.T) {
	five := MustNumber("5").WithUnit(mustUnit(t, "$"))
	assert.Equal(t, "$5", five.String())
}

func TestNumberAsInt64InUnit(t *testing.T) {
	three := MustNumber("3").WithUnit(mustUnit(t, "days"))
	k, ok := three.AsInt64InUnit("day")
	require.True(t, ok)
	assert.Equal(t, int64(3), k)

	half := MustNumber("0.5").WithUnit(mustUnit(t, "days"))
	_, ok = half.AsInt64InUnit("day")
	assert.False(t, ok)

	_, ok = MustNumber("3").AsInt64InUnit("day")
	assert.False(t, ok, "dimensionless number is not a day count")
}

func TestNumberDimsPow(t *testing.T) {
	area, err := MustNumber("3").WithUnit(mustUnit(t, "m")).Pow(MustNumber("2"))
	require.NoError(t, err)
	assert.Equal(t, "9 m^2", area.String())
}
