package cgen

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/cra16/cake-core-sub001/pkg/blocks"
)

//go:embed program.tmpl
var templateFS embed.FS

var programTemplate = template.Must(template.ParseFS(templateFS, "program.tmpl"))

type programData struct {
	Banner     string
	Includes   []string
	Typedefs   []string
	FileScope  string
	Prototypes []string
	Functions  []functionData
}

type functionData struct {
	Signature string
	Decls     string
	Body      string
	Tail      string
}

type functionUnit struct {
	scope     ScopeID
	signature string
	body      string
	tail      string
	entry     bool
}

// defaultProgramGenerator runs the pass in three steps:
// initialize -> generateTopLevel -> output.
// Declarations are only placed during output, after every block has been
// emitted and the registries are complete.
type defaultProgramGenerator struct {
	opts      Options
	ws        *blocks.Workspace
	ctx       *genContext
	typedefs  []string
	fileScope strings.Builder
	units     []functionUnit
	seen      map[string]bool
}

func newDefaultProgramGenerator(opts Options) *defaultProgramGenerator {
	return &defaultProgramGenerator{opts: opts}
}

func (g *defaultProgramGenerator) initialize(ws *blocks.Workspace) {
	g.ws = ws
	g.ctx = newGenContext(g.opts)
	g.ctx.collectSymbols(ws)
	g.typedefs = nil
	g.fileScope.Reset()
	g.units = nil
	g.seen = make(map[string]bool)
}

func (g *defaultProgramGenerator) generateTopLevel() error {
	for _, head := range g.ws.TopBlocks {
		for b := head; b != nil; b = b.Next {
			if b.Disabled {
				continue
			}
			switch {
			case b.Kind == blocks.KindStructDefine:
				g.typedefs = append(g.typedefs, g.ctx.structDefine(b))
			case b.Kind.IsScope():
				if err := g.generateFunction(b); err != nil {
					return err
				}
			case b.Kind.IsValue():
				g.ctx.log.Debug("skipping detached value block", "type", b.Type, "id", b.ID)
			default:
				code, err := g.ctx.stmt(b)
				if err != nil {
					return err
				}
				g.fileScope.WriteString(code)
			}
		}
	}
	return nil
}

func (g *defaultProgramGenerator) generateFunction(b *blocks.Block) error {
	scope, _ := scopeOf(b)
	name := functionName(scope)
	if g.seen[name] {
		return fmt.Errorf("%s%s: %q: %w", b.Type, blockRef(b), name, ErrDuplicateScope)
	}
	g.seen[name] = true

	body, err := g.ctx.statementToCode(b, "STACK")
	if err != nil {
		return err
	}
	unit := functionUnit{scope: scope, body: body}
	indent := g.opts.indent()
	switch b.Kind {
	case blocks.KindMain:
		unit.signature = "int main(void)"
		unit.tail = indent + "return 0;\n"
		unit.entry = true
	case blocks.KindProcedureDef:
		unit.signature = "void " + string(scope) + "(" + paramList(b.Extra.Params) + ")"
	case blocks.KindProcedureDefReturn:
		typ := strings.TrimSpace(b.Field("TYPE"))
		if typ == "" {
			typ = "int"
		}
		ret, err := g.ctx.valueToCode(b, "RETURN", OrderNone, "0")
		if err != nil {
			return err
		}
		unit.signature = typ + " " + string(scope) + "(" + paramList(b.Extra.Params) + ")"
		unit.tail = indent + "return " + ret + ";\n"
	}
	g.units = append(g.units, unit)
	return nil
}

func (g *defaultProgramGenerator) output() (string, error) {
	data := programData{
		Includes: g.ctx.headers.values(),
		Typedefs: g.typedefs,
	}
	if g.opts.Banner {
		data.Banner = banner(g.opts.SourceName)
	}

	var fileScope strings.Builder
	for _, d := range g.ctx.declarationsFor(NoScope) {
		writeLine(&fileScope, "", d.Text)
	}
	fileScope.WriteString(g.fileScope.String())
	data.FileScope = fileScope.String()

	indent := g.opts.indent()
	for _, u := range g.units {
		if !u.entry {
			data.Prototypes = append(data.Prototypes, u.signature)
		}
		var decls strings.Builder
		for _, d := range g.ctx.declarationsFor(u.scope) {
			writeLine(&decls, "", d.Text)
		}
		data.Functions = append(data.Functions, functionData{
			Signature: u.signature,
			Decls:     prefixLines(decls.String(), indent),
			Body:      u.body,
			Tail:      u.tail,
		})
	}

	var b strings.Builder
	if err := programTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render program: %w", err)
	}
	g.ctx.log.Debug("generated program",
		"functions", len(g.units),
		"headers", g.ctx.headers.len(),
		"declarations", g.ctx.decls.len(),
	)
	return b.String(), nil
}

func (g *defaultProgramGenerator) generate() (string, error) {
	if err := g.generateTopLevel(); err != nil {
		return "", err
	}
	return g.output()
}

func banner(source string) string {
	var b strings.Builder
	writeLine(&b, "", "/*")
	writeLine(&b, "", " * This program was generated from a block workspace by cake.")
	if source != "" {
		writeLine(&b, "", " * Source: "+source)
	}
	writeLine(&b, "", " */")
	return b.String()
}

// functionName is the C name a scope is emitted under.
func functionName(scope ScopeID) string {
	if scope == EntryScope {
		return "main"
	}
	return string(scope)
}

func paramList(params []blocks.Param) string {
	if len(params) == 0 {
		return "void"
	}
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, paramType(p)+" "+p.Name)
	}
	return strings.Join(parts, ", ")
}

// Generate translates a workspace into one C program. The same workspace
// and options always produce the same text.
func Generate(ws *blocks.Workspace, opts Options) (string, error) {
	if ws == nil {
		return "", errors.New("nil workspace")
	}
	if err := opts.Validate(); err != nil {
		return "", err
	}
	opts = opts.normalize()

	gen := createProgramGenerator(opts)
	gen.initialize(ws)
	return gen.generate()
}

// WorkspaceToCode is Generate with default options.
func WorkspaceToCode(ws *blocks.Workspace) (string, error) {
	return Generate(ws, Defaults())
}
