package cgen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryKeepsFirstRegistrationOrder(t *testing.T) {
	r := newRegistry[string]()
	r.set(headerKey("time"), "time")
	r.set(headerKey("stdio"), "stdio")
	r.set(headerKey("time"), "time")

	require.Equal(t, 2, r.len())
	require.Equal(t, []string{"time", "stdio"}, r.values())

	r.set(headerKey("stdio"), "stdio.h")
	require.Equal(t, []string{"time", "stdio.h"}, r.values())
}

func TestDeclarationsAreKeyedByScope(t *testing.T) {
	g := newTestContext()
	g.decls.set(declarationKey(EntryScope, "time_currentTime"), declaration{Scope: EntryScope, Text: currentTimeDecl})
	g.decls.set(declarationKey("f", "time_currentTime"), declaration{Scope: "f", Text: currentTimeDecl})
	g.decls.set(declarationKey("f", "time_elapsedTime"), declaration{Scope: "f", Text: elapsedTimeDecl})
	g.decls.set(declarationKey("f", "time_currentTime"), declaration{Scope: "f", Text: currentTimeDecl})

	require.Len(t, g.declarationsFor(EntryScope), 1)
	f := g.declarationsFor("f")
	require.Len(t, f, 2)
	require.Equal(t, currentTimeDecl, f[0].Text)
	require.Equal(t, elapsedTimeDecl, f[1].Text)
	require.Empty(t, g.declarationsFor("g"))
}
