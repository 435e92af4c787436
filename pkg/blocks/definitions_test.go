package blocks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKinds(t *testing.T) {
	require.Equal(t, KindPrintf, KindOf("library_stdio_printf"))
	require.Equal(t, KindInvalid, KindOf("library_stdio_puts"))
	require.Equal(t, "controls_for", KindFor.String())
	require.Equal(t, "invalid", KindInvalid.String())

	require.True(t, KindArithmetic.IsValue())
	require.True(t, KindProcedureCallReturn.IsValue())
	require.False(t, KindPrintf.IsValue())
	require.False(t, KindInvalid.IsValue())

	require.True(t, KindMain.IsScope())
	require.True(t, KindProcedureDefReturn.IsScope())
	require.False(t, KindTimeElapsed.IsScope())
}

func TestEveryKindHasOneDefinition(t *testing.T) {
	seen := make(map[Kind]bool)
	for _, d := range Definitions() {
		require.NotEqual(t, KindInvalid, d.Kind, d.Type)
		require.False(t, seen[d.Kind], "duplicate definition for %s", d.Type)
		seen[d.Kind] = true
		require.Equal(t, d.Kind, KindOf(d.Type))
		require.False(t, d.Output && (d.Previous || d.Next), "%s is both value and statement", d.Type)
	}
	require.Len(t, seen, int(KindProcedureReturn))
}

func TestDefinitionJSON(t *testing.T) {
	d, ok := Lookup("time_current")
	require.True(t, ok)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	require.Equal(t, "time_current", m["type"])
	require.Contains(t, m, "previousStatement")
	require.Contains(t, m, "nextStatement")
	require.NotContains(t, m, "output")
	require.NotContains(t, m, "args0")

	d, ok = Lookup("math_arithmetic")
	require.True(t, ok)
	data, err = json.Marshal(d)
	require.NoError(t, err)
	m = nil
	require.NoError(t, json.Unmarshal(data, &m))
	require.Contains(t, m, "output")
	require.Nil(t, m["output"])
	require.NotEmpty(t, m["args0"])

	_, ok = Lookup("nope")
	require.False(t, ok)
}
