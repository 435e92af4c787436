package cgen

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/cra16/cake-core-sub001/pkg/blocks"
)

// genContext holds all state of one generation pass. It is created fresh
// for every pass and threaded through every emitter.
type genContext struct {
	opts    Options
	log     *slog.Logger
	headers *registry[string]
	decls   *registry[declaration]
	symbols *symbolTable
}

func newGenContext(opts Options) *genContext {
	return &genContext{
		opts:    opts,
		log:     opts.Logger,
		headers: newRegistry[string](),
		decls:   newRegistry[declaration](),
		symbols: newSymbolTable(),
	}
}

// requireHeader registers <module.h> for the include section.
func (g *genContext) requireHeader(module string) {
	g.headers.set(headerKey(module), module)
}

// hoist registers a declaration at the top of the body enclosing b.
func (g *genContext) hoist(b *blocks.Block, purpose, text string) error {
	scope := resolveScope(b)
	if scope == NoScope && !g.opts.HoistOrphansToFileScope {
		return fmt.Errorf("%s%s: %w", b.Type, blockRef(b), ErrNoScope)
	}
	g.decls.set(declarationKey(scope, purpose), declaration{Scope: scope, Purpose: purpose, Text: text})
	g.log.Debug("hoisted declaration", "purpose", purpose, "scope", string(scope))
	return nil
}

// declarationsFor returns the declarations hoisted into scope, in
// registration order.
func (g *genContext) declarationsFor(scope ScopeID) []declaration {
	var out []declaration
	for _, d := range g.decls.values() {
		if d.Scope == scope {
			out = append(out, d)
		}
	}
	return out
}

// collectSymbols builds the name to type table from the workspace variable
// map and every declaring block, before any code is emitted.
func (g *genContext) collectSymbols(ws *blocks.Workspace) {
	for _, v := range ws.Variables {
		g.symbols.define(v.Name, v.Type)
	}
	for _, head := range ws.TopBlocks {
		blocks.Walk(head, func(b *blocks.Block) {
			switch b.Kind {
			case blocks.KindStructDeclare:
				g.symbols.define(b.Field("NAME"), b.Field("TYPE"))
			case blocks.KindVariableDeclare:
				g.symbols.define(b.Field("VAR"), b.Field("TYPE"))
			case blocks.KindProcedureDef, blocks.KindProcedureDefReturn:
				for _, p := range b.Extra.Params {
					g.symbols.define(p.Name, paramType(p))
				}
			}
		})
	}
}

// valueToCode emits the block in socket name, parenthesized for outer.
// An empty socket yields def.
func (g *genContext) valueToCode(b *blocks.Block, name string, outer Order, def string) (string, error) {
	child := b.Value(name)
	if child == nil {
		return def, nil
	}
	code, inner, err := g.expr(child)
	if err != nil {
		return "", err
	}
	return parenthesize(code, inner, outer), nil
}

// statementToCode emits the chain in socket name, indented one level.
func (g *genContext) statementToCode(b *blocks.Block, name string) (string, error) {
	code, err := g.chain(b.Statement(name))
	if err != nil {
		return "", err
	}
	return prefixLines(code, g.opts.indent()), nil
}

// chain emits head and every block after it. Disabled blocks are skipped.
func (g *genContext) chain(head *blocks.Block) (string, error) {
	var sb strings.Builder
	for b := head; b != nil; b = b.Next {
		if b.Disabled {
			continue
		}
		code, err := g.stmt(b)
		if err != nil {
			return "", err
		}
		sb.WriteString(code)
	}
	return sb.String(), nil
}

func prefixLines(code, prefix string) string {
	if code == "" {
		return ""
	}
	var sb strings.Builder
	for _, line := range strings.SplitAfter(code, "\n") {
		if line == "" {
			continue
		}
		if line != "\n" {
			sb.WriteString(prefix)
		}
		sb.WriteString(line)
	}
	return sb.String()
}

func writeLine(b *strings.Builder, indent string, s string) {
	b.WriteString(indent)
	b.WriteString(s)
	b.WriteByte('\n')
}

func blockRef(b *blocks.Block) string {
	if b.ID == "" {
		return ""
	}
	return " (block " + b.ID + ")"
}

func paramType(p blocks.Param) string {
	if p.Type == "" {
		return "int"
	}
	return p.Type
}
