package eval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MattTheNub/fend/value"
)

func newTestContext() *Context {
	c := NewContext()
	// Pin the clock so "today" is deterministic: Friday, 5 January 2024.
	c.Now = func() time.Time {
		return time.Date(2024, time.January, 5, 12, 0, 0, 0, time.UTC)
	}
	return c
}

func evalString(t *testing.T, c *Context, input string) string {
	t.Helper()
	res, err := c.EvaluateString(input)
	require.NoError(t, err, "evaluate %q", input)
	return res.String()
}

func TestEvalArithmetic(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2", "3"},
		{"2 * 3 ^ 2", "18"},
		{"-2^2", "-4"},
		{"(-2)^2", "4"},
		{"5!", "120"},
		{"/4", "0.25"},
		{"10 % 3", "1"},
		{"1 2/3", "1.666666667"},
		{"2 * 3 1/2", "7"},
		{"sqrt 16", "4"},
		{"2 pi", "6.283185307"},
		{"", ""},
	}
	c := newTestContext()
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, evalString(t, c, tc.input))
		})
	}
}

func TestEvalUnits(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2 meters", "2 meters"},
		{"5 m to cm", "500 cm"},
		{"100 cm to m", "1 m"},
		{"6 feet + 1 inch", "6.083333333 feet"},
		{"6 feet 1 inch", "6.083333333 feet"},
		{"$5 + $3", "$8"},
		{"(10 m) / (2 m)", "5"},
		{"10 m / 2 m", "5 m^2"},
	}
	c := newTestContext()
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, evalString(t, c, tc.input))
		})
	}
}

func TestEvalVariablesAndStatements(t *testing.T) {
	c := newTestContext()
	assert.Equal(t, "8", evalString(t, c, "x = 4; x * 2"))
	// Assignments persist across evaluations in the same context.
	assert.Equal(t, "4", evalString(t, c, "x"))
	assert.Equal(t, "3", evalString(t, c, "a = b = 3; a"))
	assert.Equal(t, "2", evalString(t, c, "1;;2;"))
}

func TestEvalLambdas(t *testing.T) {
	c := newTestContext()
	assert.Equal(t, "4", evalString(t, c, "(x => x + 1) 3"))
	assert.Equal(t, "5", evalString(t, c, "f = x => y => x + y; (f 2) 3"))
	assert.Equal(t, "9", evalString(t, c, `sq = \x.x*x; sq 3`))

	// Closures capture their definition scope.
	assert.Equal(t, "11", evalString(t, c, "n = 10; addn = x => x + n; addn 1"))
}

func TestEvalBuiltins(t *testing.T) {
	c := newTestContext()
	assert.Equal(t, "3.141592654", evalString(t, c, "pi"))
	assert.Equal(t, "2.718281828", evalString(t, c, "e"))
	assert.Equal(t, "1", evalString(t, c, "ln e"))
	assert.Equal(t, "2", evalString(t, c, "log 100"))
	assert.Equal(t, "3", evalString(t, c, "abs(0 - 3)"))
	assert.Equal(t, "2", evalString(t, c, "floor 2.7"))
	assert.Equal(t, "-3", evalString(t, c, "floor(0 - 2.7)"))
	assert.Equal(t, "3", evalString(t, c, "ceil 2.3"))

	_, err := c.EvaluateString("ln(0 - 1)")
	require.ErrorIs(t, err, ErrDomain)

	_, err = c.EvaluateString("sqrt(0 - 4)")
	require.ErrorIs(t, err, ErrDomain)
}

func TestEvalDates(t *testing.T) {
	c := newTestContext()
	assert.Equal(t, "Friday, 5 January 2024", evalString(t, c, "today"))
	assert.Equal(t, "Monday, 8 January 2024", evalString(t, c, "today + 3 days"))
	assert.Equal(t, "Friday, 29 December 2023", evalString(t, c, "today - 7 days"))
	assert.Equal(t, "Friday", evalString(t, c, "day_of_week of today"))
	assert.Equal(t, "January", evalString(t, c, "month of today"))
	assert.Equal(t, "2024", evalString(t, c, "year of today"))
}

func TestEvalConversions(t *testing.T) {
	c := newTestContext()
	assert.Equal(t, "3", evalString(t, c, "1 + 2 to string"))
	res, err := c.EvaluateString("1 + 2 to string")
	require.NoError(t, err)
	assert.Equal(t, "string", res.TypeName())

	assert.Equal(t, "Friday, 5 January 2024", evalString(t, c, `"2024-01-05" to date`))
	assert.Equal(t, "Monday, 8 January 2024", evalString(t, c, `"8 Jan 2024" to date`))
}

func TestEvalErrors(t *testing.T) {
	c := newTestContext()

	_, err := c.EvaluateString("nosuchthing")
	var unknownErr *UnknownIdentError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "nosuchthing", unknownErr.Name)

	_, err = c.EvaluateString("1 / 0")
	require.ErrorIs(t, err, value.ErrDivisionByZero)

	_, err = c.EvaluateString("2 m + 3 kg")
	require.ErrorIs(t, err, value.ErrUnitMismatch)

	_, err = c.EvaluateString(`"hi" + 1`)
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)

	_, err = c.EvaluateString("x = 2; x 5")
	require.ErrorAs(t, err, &typeErr, "a number is not callable")

	_, err = c.EvaluateString("day_of_week of 3")
	require.ErrorAs(t, err, &typeErr)

	_, err = c.EvaluateString("month of today; nope of today")
	require.Error(t, err)
}

func TestEvalShadowing(t *testing.T) {
	c := newTestContext()
	// A variable shadows the unit of the same name.
	assert.Equal(t, "42", evalString(t, c, "m = 42; m"))
	// Lambda parameters shadow outer bindings without mutating them.
	assert.Equal(t, "42", evalString(t, c, "(m => m + 1) 5; m"))
}
