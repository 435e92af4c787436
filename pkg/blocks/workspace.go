package blocks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

var (
	// ErrUnknownBlock is returned for block types without a definition.
	ErrUnknownBlock = errors.New("unknown block type")
	// ErrSocketMismatch is returned when a statement block is plugged into a
	// value socket or a value block into a statement socket.
	ErrSocketMismatch = errors.New("block does not fit socket")
)

// Variable is a typed entry of the workspace variable map.
type Variable struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Workspace is a loaded block program: its top-level chains in editor order
// and its typed variables.
type Workspace struct {
	TopBlocks []*Block
	Variables []Variable
}

type jsonWorkspace struct {
	Blocks struct {
		Blocks []jsonBlock `json:"blocks"`
	} `json:"blocks"`
	Variables []Variable `json:"variables"`
}

type jsonBlock struct {
	Type       string                     `json:"type"`
	ID         string                     `json:"id"`
	Enabled    *bool                      `json:"enabled"`
	Fields     map[string]json.RawMessage `json:"fields"`
	Inputs     map[string]jsonInput       `json:"inputs"`
	Next       *jsonInput                 `json:"next"`
	ExtraState json.RawMessage            `json:"extraState"`
}

type jsonInput struct {
	Block  *jsonBlock `json:"block"`
	Shadow *jsonBlock `json:"shadow"`
}

func (in *jsonInput) target() *jsonBlock {
	if in == nil {
		return nil
	}
	if in.Block != nil {
		return in.Block
	}
	return in.Shadow
}

// UnmarshalJSON accepts both {"name": ..., "type": ...} objects and bare
// names, which is how callers record their argument list.
func (p *Param) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*p = Param{Name: name}
		return nil
	}
	type plain Param
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Param(v)
	return nil
}

// Load decodes a workspace saved in the editor's JSON serialization format.
func Load(r io.Reader) (*Workspace, error) {
	var raw jsonWorkspace
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode workspace: %w", err)
	}
	l := loader{vars: make(map[string]string, len(raw.Variables))}
	for _, v := range raw.Variables {
		l.vars[v.ID] = v.Name
	}
	ws := &Workspace{Variables: raw.Variables}
	for i := range raw.Blocks.Blocks {
		b, err := l.chain(&raw.Blocks.Blocks[i])
		if err != nil {
			return nil, err
		}
		ws.TopBlocks = append(ws.TopBlocks, b)
	}
	return ws, nil
}

// LoadFile reads a workspace from path; "-" reads standard input.
func LoadFile(path string) (*Workspace, error) {
	if path == "-" {
		return Load(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ws, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ws, nil
}

type loader struct {
	vars map[string]string
}

func (l *loader) chain(head *jsonBlock) (*Block, error) {
	first, err := l.block(head)
	if err != nil {
		return nil, err
	}
	cur, next := first, head.Next.target()
	for next != nil {
		b, err := l.block(next)
		if err != nil {
			return nil, err
		}
		cur = cur.SetNext(b)
		next = next.Next.target()
	}
	return first, nil
}

func (l *loader) block(jb *jsonBlock) (*Block, error) {
	b, err := New(jb.Type)
	if err != nil {
		if jb.ID != "" {
			return nil, fmt.Errorf("block %s: %w", jb.ID, err)
		}
		return nil, err
	}
	b.ID = jb.ID
	def, _ := definitionFor(b.Kind)
	b.Disabled = jb.Enabled != nil && !*jb.Enabled
	for name, rawField := range jb.Fields {
		v, err := l.field(rawField)
		if err != nil {
			return nil, fmt.Errorf("block %s field %s: %w", jb.ID, name, err)
		}
		b.Fields[name] = v
	}
	if len(jb.ExtraState) > 0 && !bytes.Equal(jb.ExtraState, []byte("null")) {
		if err := json.Unmarshal(jb.ExtraState, &b.Extra); err != nil {
			return nil, fmt.Errorf("block %s extraState: %w", jb.ID, err)
		}
	}
	for _, name := range sortedKeys(jb.Inputs) {
		in := jb.Inputs[name]
		target := in.target()
		if target == nil {
			continue
		}
		child, err := l.chain(target)
		if err != nil {
			return nil, err
		}
		asValue := child.Kind.IsValue()
		if want, ok := def.socket(name); ok && (want == "input_value") != asValue {
			return nil, fmt.Errorf("block %s input %s: %s: %w", jb.ID, name, child.Type, ErrSocketMismatch)
		}
		if asValue {
			b.SetValue(name, child)
		} else {
			b.SetStatement(name, child)
		}
	}
	return b, nil
}

// field flattens a serialized field value to text. Variable fields are
// stored as {"id": ...} references into the variable map.
func (l *loader) field(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		err := json.Unmarshal(trimmed, &s)
		return s, err
	case '{':
		var ref struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(trimmed, &ref); err != nil {
			return "", err
		}
		if name, ok := l.vars[ref.ID]; ok {
			return name, nil
		}
		if ref.Name != "" {
			return ref.Name, nil
		}
		return "", fmt.Errorf("unknown variable id %q", ref.ID)
	default:
		return strings.TrimSpace(string(trimmed)), nil
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
