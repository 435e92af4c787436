package cgen

import "github.com/cra16/cake-core-sub001/pkg/blocks"

// programGenerator is one generation pass: initialize resets all pass
// state for a workspace, generate walks it and returns the program text.
type programGenerator interface {
	initialize(ws *blocks.Workspace)
	generate() (string, error)
}

func createProgramGenerator(opts Options) programGenerator {
	return newDefaultProgramGenerator(opts)
}
