package blocks

import (
	"fmt"
)

// Member is one struct member recorded by a structure_define block.
type Member struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Param is one parameter of a procedure definition or call.
type Param struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Extra carries the mutation state a block records beyond its fields.
type Extra struct {
	Name        string   `json:"name,omitempty"`
	ArgCount    int      `json:"argCount,omitempty"`
	Members     []Member `json:"members,omitempty"`
	Params      []Param  `json:"params,omitempty"`
	ElseIfCount int      `json:"elseIfCount,omitempty"`
	HasElse     bool     `json:"hasElse,omitempty"`
}

// Block is one node of a block program.
type Block struct {
	ID       string
	Type     string
	Kind     Kind
	Disabled bool

	Fields     map[string]string
	Values     map[string]*Block
	Statements map[string]*Block
	Next       *Block
	Extra      Extra

	parent *Block
}

// New returns a detached block of a known type.
func New(typ string) (*Block, error) {
	k := KindOf(typ)
	if k == KindInvalid {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlock, typ)
	}
	return &Block{
		Type:       typ,
		Kind:       k,
		Fields:     make(map[string]string),
		Values:     make(map[string]*Block),
		Statements: make(map[string]*Block),
	}, nil
}

// MustNew is like New but panics on an unknown type.
func MustNew(typ string) *Block {
	b, err := New(typ)
	if err != nil {
		panic(err)
	}
	return b
}

// Field returns a field value, or "" when the field is unset.
func (b *Block) Field(name string) string {
	return b.Fields[name]
}

// Value returns the enabled block connected to a value socket, if any.
func (b *Block) Value(name string) *Block {
	c := b.Values[name]
	if c == nil || c.Disabled {
		return nil
	}
	return c
}

// Statement returns the head of the chain connected to a statement socket.
func (b *Block) Statement(name string) *Block {
	return b.Statements[name]
}

// Parent returns the block this one hangs from: the previous block of its
// chain or the block owning the socket it is plugged into.
func (b *Block) Parent() *Block {
	return b.parent
}

// SurroundParent returns the closest block whose socket (directly or through
// a statement chain) contains this block. Top-level blocks have none.
func (b *Block) SurroundParent() *Block {
	prev := b
	for p := b.parent; p != nil; p = p.parent {
		if p.Next != prev {
			return p
		}
		prev = p
	}
	return nil
}

// SetField sets a field value and returns the block for chaining.
func (b *Block) SetField(name, v string) *Block {
	b.Fields[name] = v
	return b
}

// SetValue plugs child into a value socket.
func (b *Block) SetValue(name string, child *Block) *Block {
	b.Values[name] = child
	if child != nil {
		child.parent = b
	}
	return b
}

// SetStatement connects a chain head to a statement socket.
func (b *Block) SetStatement(name string, head *Block) *Block {
	b.Statements[name] = head
	if head != nil {
		head.parent = b
	}
	return b
}

// SetNext appends next after b and returns next.
func (b *Block) SetNext(next *Block) *Block {
	b.Next = next
	if next != nil {
		next.parent = b
	}
	return next
}

// Chain links blocks in order and returns the first one.
func Chain(bs ...*Block) *Block {
	if len(bs) == 0 {
		return nil
	}
	for i := 0; i+1 < len(bs); i++ {
		bs[i].SetNext(bs[i+1])
	}
	return bs[0]
}

// Walk visits b, its sockets and its chain successors depth-first.
func Walk(b *Block, visit func(*Block)) {
	for ; b != nil; b = b.Next {
		visit(b)
		for _, name := range sortedKeys(b.Values) {
			Walk(b.Values[name], visit)
		}
		for _, name := range sortedKeys(b.Statements) {
			Walk(b.Statements[name], visit)
		}
	}
}
