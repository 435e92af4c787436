package cgen

import (
	"strings"
	"unicode"

	"github.com/cra16/cake-core-sub001/pkg/blocks"
)

// ScopeID names the body a statement belongs to: EntryScope, a function
// name, or NoScope for blocks outside any function.
type ScopeID string

const (
	NoScope    ScopeID = ""
	EntryScope ScopeID = "#main"
)

// resolveScope walks surround parents up to the enclosing main or
// procedure block.
func resolveScope(b *blocks.Block) ScopeID {
	for p := b.SurroundParent(); p != nil; p = p.SurroundParent() {
		if id, ok := scopeOf(p); ok {
			return id
		}
	}
	return NoScope
}

// scopeOf returns the scope a scope-defining block opens.
func scopeOf(b *blocks.Block) (ScopeID, bool) {
	switch b.Kind {
	case blocks.KindMain:
		return EntryScope, true
	case blocks.KindProcedureDef, blocks.KindProcedureDefReturn:
		return ScopeID(procedureName(b)), true
	}
	return NoScope, false
}

func procedureName(b *blocks.Block) string {
	name := b.Field("NAME")
	if name == "" {
		name = b.Extra.Name
	}
	return identifier(name)
}

// identifier turns a label into a C identifier.
func identifier(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unnamed"
	}
	var sb strings.Builder
	for i, r := range s {
		switch {
		case r == '_' || r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if i == 0 && unicode.IsDigit(r) {
				sb.WriteByte('_')
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}
