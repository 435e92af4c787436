package blocks

// Kind is the closed set of block types the generator understands.
// Block type strings from the editor are resolved to a Kind once, at load time.
type Kind int

const (
	KindInvalid Kind = iota

	// scope-defining blocks
	KindMain
	KindProcedureDef
	KindProcedureDefReturn

	// values
	KindText
	KindNewline
	KindNumber
	KindArithmetic
	KindBoolean
	KindCompare
	KindLogicOperation
	KindNegate
	KindVariableGet
	KindConvert
	KindStrlen
	KindRand
	KindMalloc
	KindProcedureCallReturn

	// statements
	KindPrintf
	KindScanf
	KindSrand
	KindFree
	KindExit
	KindStructDefine
	KindStructDeclare
	KindVariableDeclare
	KindVariableSet
	KindTimeCurrent
	KindTimeElapsed
	KindIf
	KindWhileUntil
	KindFor
	KindFlow
	KindProcedureCall
	KindProcedureReturn
)

var kindByType = func() map[string]Kind {
	m := make(map[string]Kind, len(definitions))
	for _, d := range definitions {
		m[d.Type] = d.Kind
	}
	return m
}()

// KindOf resolves a block type tag. Unknown tags resolve to KindInvalid.
func KindOf(typ string) Kind {
	return kindByType[typ]
}

func (k Kind) String() string {
	if d, ok := definitionFor(k); ok {
		return d.Type
	}
	return "invalid"
}

// IsValue reports whether blocks of this kind plug into value sockets.
func (k Kind) IsValue() bool {
	d, ok := definitionFor(k)
	return ok && d.Output
}

// IsScope reports whether blocks of this kind open a function body.
func (k Kind) IsScope() bool {
	switch k {
	case KindMain, KindProcedureDef, KindProcedureDefReturn:
		return true
	}
	return false
}
