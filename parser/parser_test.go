package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MattTheNub/fend/ast"
)

func mustParse(t *testing.T, input string) ast.Expr {
	t.Helper()
	e, err := ParseString(input)
	require.NoError(t, err, "parse %q", input)
	return e
}

func TestParseDump(t *testing.T) {
	tests := []struct {
		input string
		dump  string
	}{
		// Precedence and associativity.
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"2 ^ 3 ^ 2", "(2 ^ (3 ^ 2))"},
		{"-2^2", "(-(2 ^ 2))"},
		{"(-2)^2", "(((-2)) ^ 2)"},
		{"5!!", "((5!)!)"},
		{"/2", "(/2)"},
		{"10 % 3", "(10 % 3)"},

		// Mixed fractions.
		{"1 2/3", "(1 + (2 / 3))"},
		{"-1 2/3", "((-1) - (2 / 3))"},
		{"2 * 3 1/2", "(2 * (3 + (1 / 2)))"},
		{"1 1/2 inches", "((1 + (1 / 2)) inches)"},

		// Juxtaposition.
		{"2 meters", "(2 meters)"},
		{"6 feet 1 inch", "((6 feet) +' (1 inch))"},
		{"2 pi 3", "((2 pi) +' 3)"},
		{"sin 30", "(sin 30)"},
		{"$5", "($ 5)"},
		{"2 pi", "(2 pi)"},
		{"a b", "(a b)"},
		{"100 km / 2 hours", "(((100 km) / 2) hours)"},

		// Conversion and member access.
		{"5 m to cm", "((5 m) to cm)"},
		{"month of today", "(month of today)"},

		// Lambdas and assignment.
		{`\x.x`, `(\x.x)`},
		{"x => x + 1", `(\x.(x + 1))`},
		{"x => y => x + y", `(\x.(\y.(x + y)))`},
		{"a = b = 3", "(a = (b = 3))"},

		// Statements and grouping.
		{"1; 2 ;; 3;", "1; 2; 3"},
		{"", "()"},
		{";;;", "()"},
		{"()", "()"},
		{"(1+2", "((1 + 2))"},
		{"(1+2)*3", "(((1 + 2)) * 3)"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.dump, mustParse(t, tc.input).Dump())
		})
	}
}

// The apply variants look the same in Dump but must not be confused:
// the evaluator treats them differently.
func TestParseApplyClassification(t *testing.T) {
	assert.IsType(t, &ast.ApplyFunctionCall{}, mustParse(t, "sin 30"))
	assert.IsType(t, &ast.Apply{}, mustParse(t, "$5"))
	assert.IsType(t, &ast.ApplyMul{}, mustParse(t, "2 pi"))
	assert.IsType(t, &ast.Apply{}, mustParse(t, "a b"))
	assert.IsType(t, &ast.Apply{}, mustParse(t, "2 x^2"))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		err   error
	}{
		{"2 3", ErrUnexpectedInput},
		{"2 3^2", ErrUnexpectedInput},
		{"1)", ErrUnexpectedInput},
		{"+", ErrExpectedAToken},
		{"1 +", ErrUnexpectedInput},
		{"(1+2 ", ErrExpectedAToken},
		{"2=3", ErrExpectedIdentifierInAssignment},
		{"3 => x", ErrExpectedIdentifierAsArgument},
		{`\ x.x`, ErrUnexpectedWhitespace},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			_, err := ParseString(tc.input)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestParseUnexpectedSymbol(t *testing.T) {
	_, err := ParseString(")")
	var symErr *UnexpectedSymbolError
	require.ErrorAs(t, err, &symErr)
	assert.Equal(t, "expected a value, instead found ')'", err.Error())
}

func TestParseLambdaMissingDot(t *testing.T) {
	_, err := ParseString(`\x x`)
	var lamErr *LambdaSyntaxError
	require.ErrorAs(t, err, &lamErr)
	assert.Equal(t, `missing '.' in lambda (expected e.g. \x.x)`, err.Error())
}

// The reserved-juxtaposition marker is internal control flow; whatever
// goes wrong, the user never sees it.
func TestParseInternalErrorNeverSurfaces(t *testing.T) {
	for _, input := range []string{"2 3", "2 3^2", "-1 2", "2 3 4"} {
		_, err := ParseString(input)
		require.Error(t, err, "parse %q", input)
		require.NotErrorIs(t, err, errInvalidApplyOperands, "parse %q", input)
	}
}

func TestParseNestingLimit(t *testing.T) {
	_, err := ParseString(strings.Repeat("(", maxDepth+1) + "1")
	require.ErrorIs(t, err, ErrNestingTooDeep)

	// One below the limit parses fine thanks to the tolerated missing
	// closing parentheses.
	_, err = ParseString(strings.Repeat("(", maxDepth-1) + "1")
	require.NoError(t, err)

	// The guard covers every self-nesting rule, not just parentheses.
	for _, input := range []string{
		strings.Repeat("-", maxDepth+1) + "1",
		"1" + strings.Repeat("^1", maxDepth+1),
		strings.Repeat("a = ", maxDepth+1) + "1",
		strings.Repeat(`\x.`, maxDepth+1) + "x",
	} {
		_, err := ParseString(input)
		require.ErrorIs(t, err, ErrNestingTooDeep, "input %.16q...", input)
	}

	// Reasonable chains stay well under the limit.
	_, err = ParseString("---1 ^ 2 ^ 3")
	require.NoError(t, err)
}

func TestParseLexicalError(t *testing.T) {
	_, err := ParseString("2e")
	require.Error(t, err)
}

func FuzzParseString(f *testing.F) {
	for _, seed := range []string{
		"1 + 2 * 3", "6 feet 1 inch", "1 2/3", `\x.x x`, "a = b = 3",
		"(1+2", "5 m to cm", "$5", ";;;", "2 3", "-2^2!",
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, input string) {
		e, err := ParseString(input)
		if err == nil && e == nil {
			t.Errorf("no error and no expression for %q", input)
		}
	})
}
