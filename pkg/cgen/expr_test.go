package cgen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cra16/cake-core-sub001/pkg/blocks"
)

func TestConvertSelectsFunctionByOperator(t *testing.T) {
	for op, want := range map[string]string{"INT": `atoi("42")`, "DOUBLE": `atof("42")`} {
		g := newTestContext()
		b := blocks.MustNew("library_stdlib_convert").SetField("OPERATORS", op)
		b.SetValue("VAR", text("42"))

		code, order, err := g.expr(b)
		require.NoError(t, err)
		require.Equal(t, want, code)
		require.Equal(t, OrderFunctionCall, order)
		require.Equal(t, []string{"stdlib"}, g.headers.values())
	}
}

func TestConvertRejectsUnknownOperator(t *testing.T) {
	g := newTestContext()
	b := blocks.MustNew("library_stdlib_convert").SetField("OPERATORS", "FLOAT")
	b.ID = "c1"

	_, _, err := g.expr(b)
	require.ErrorIs(t, err, ErrUnknownOperator)

	var opErr *OperatorError
	require.True(t, errors.As(err, &opErr))
	require.Equal(t, "FLOAT", opErr.Value)
	require.Equal(t, "OPERATORS", opErr.Field)
	require.Contains(t, err.Error(), "c1")
}

func TestEmptySocketsUseDefaults(t *testing.T) {
	g := newTestContext()

	code, _, err := g.expr(blocks.MustNew("library_string_strlen"))
	require.NoError(t, err)
	require.Equal(t, `strlen("")`, code)
	require.Equal(t, []string{"string"}, g.headers.values())

	code, _, err = g.expr(blocks.MustNew("math_arithmetic").SetField("OP", "ADD"))
	require.NoError(t, err)
	require.Equal(t, "0 + 0", code)
}

func TestLiterals(t *testing.T) {
	g := newTestContext()

	code, order, err := g.expr(text(`say "hi"` + "\n"))
	require.NoError(t, err)
	require.Equal(t, `"say \"hi\"\n"`, code)
	require.Equal(t, OrderAtomic, order)

	code, order, err = g.expr(blocks.MustNew("text_newline"))
	require.NoError(t, err)
	require.Equal(t, `\n`, code)
	require.Equal(t, OrderNone, order)

	code, order, err = g.expr(num("-3"))
	require.NoError(t, err)
	require.Equal(t, "-3", code)
	require.Equal(t, OrderUnary, order)

	for _, bad := range []string{"three", "NaN", "Inf", "-inf", "1_000", "0x1p3", "1e", "--1"} {
		_, _, err = g.expr(num(bad))
		require.Error(t, err, bad)
	}
	for _, ok := range []string{"0", "1.5", ".5", "2.", "1e3", "-2.5E-4"} {
		code, _, err = g.expr(num(ok))
		require.NoError(t, err, ok)
		require.Equal(t, ok, code)
	}

	code, _, err = g.expr(blocks.MustNew("logic_boolean").SetField("BOOL", "TRUE"))
	require.NoError(t, err)
	require.Equal(t, "1", code)
}

func TestArithmeticParenthesization(t *testing.T) {
	tests := []struct {
		name  string
		block *blocks.Block
		want  string
	}{
		{"sum inside product", arith("MULTIPLY", arith("ADD", num("1"), num("2")), num("3")), "(1 + 2) * 3"},
		{"product inside sum", arith("ADD", arith("MULTIPLY", num("1"), num("2")), num("3")), "1 * 2 + 3"},
		{"negative operand", arith("MINUS", num("5"), num("-2")), "5 - -2"},
		{"compare of sums", compare("LT", arith("ADD", varGet("a"), num("1")), varGet("b")), "a + 1 < b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, err := newTestContext().expr(tt.block)
			require.NoError(t, err)
			require.Equal(t, tt.want, code)
		})
	}
}

func TestNegateWrapsLooserOperand(t *testing.T) {
	b := blocks.MustNew("logic_negate")
	b.SetValue("BOOL", compare("EQ", varGet("a"), varGet("b")))

	code, order, err := newTestContext().expr(b)
	require.NoError(t, err)
	require.Equal(t, "!(a == b)", code)
	require.Equal(t, OrderUnary, order)
}

func TestRandBound(t *testing.T) {
	g := newTestContext()
	code, order, err := g.expr(blocks.MustNew("library_stdlib_rand"))
	require.NoError(t, err)
	require.Equal(t, "rand()", code)
	require.Equal(t, OrderFunctionCall, order)

	b := blocks.MustNew("library_stdlib_rand")
	b.SetValue("VAR", arith("ADD", varGet("n"), num("1")))
	code, order, err = g.expr(b)
	require.NoError(t, err)
	require.Equal(t, "rand() % (n + 1)", code)
	require.Equal(t, OrderMultiplicative, order)
	require.Equal(t, []string{"stdlib"}, g.headers.values())
}

func TestProcedureCallReturn(t *testing.T) {
	b := blocks.MustNew("procedures_callreturn").SetField("NAME", "add one")
	b.Extra.Params = []blocks.Param{{Name: "n"}, {Name: "m"}}
	b.SetValue("ARG0", num("41"))

	code, _, err := newTestContext().expr(b)
	require.NoError(t, err)
	require.Equal(t, "add_one(41, 0)", code)
}

func TestStatementBlockIsNotValue(t *testing.T) {
	_, _, err := newTestContext().expr(blocks.MustNew("library_stdlib_free"))
	require.ErrorIs(t, err, ErrNotValue)
}

func TestDisabledValueFallsBackToDefault(t *testing.T) {
	child := text("ignored")
	child.Disabled = true
	b := blocks.MustNew("library_string_strlen")
	b.SetValue("VAR", child)

	code, _, err := newTestContext().expr(b)
	require.NoError(t, err)
	require.Equal(t, `strlen("")`, code)
}
