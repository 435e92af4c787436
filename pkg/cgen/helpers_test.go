package cgen

import (
	"github.com/cra16/cake-core-sub001/pkg/blocks"
)

func newTestContext() *genContext {
	return newGenContext(Defaults().normalize())
}

func noBanner() Options {
	opts := Defaults()
	opts.Banner = false
	return opts
}

func num(n string) *blocks.Block {
	return blocks.MustNew("math_number").SetField("NUM", n)
}

func text(s string) *blocks.Block {
	return blocks.MustNew("text").SetField("TEXT", s)
}

func varGet(name string) *blocks.Block {
	return blocks.MustNew("variables_get").SetField("VAR", name)
}

func arith(op string, a, b *blocks.Block) *blocks.Block {
	blk := blocks.MustNew("math_arithmetic").SetField("OP", op)
	blk.SetValue("A", a)
	blk.SetValue("B", b)
	return blk
}

func compare(op string, a, b *blocks.Block) *blocks.Block {
	blk := blocks.MustNew("logic_compare").SetField("OP", op)
	blk.SetValue("A", a)
	blk.SetValue("B", b)
	return blk
}

func printf(args ...*blocks.Block) *blocks.Block {
	blk := blocks.MustNew("library_stdio_printf")
	blk.Extra.ArgCount = len(args)
	for i, a := range args {
		blk.SetValue("VAR"+string(rune('0'+i)), a)
	}
	return blk
}

func mainWith(stmts ...*blocks.Block) *blocks.Block {
	return blocks.MustNew("main_block").SetStatement("STACK", blocks.Chain(stmts...))
}

func procedure(name string, stmts ...*blocks.Block) *blocks.Block {
	return blocks.MustNew("procedures_defnoreturn").
		SetField("NAME", name).
		SetStatement("STACK", blocks.Chain(stmts...))
}

func workspace(top ...*blocks.Block) *blocks.Workspace {
	return &blocks.Workspace{TopBlocks: top}
}
