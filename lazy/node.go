package lazy

import (
	"github.com/wippyai/rawtransfer/ast"
	"github.com/wippyai/rawtransfer/schema"
)

// Node is a view of one node struct in the buffer.
type Node struct {
	s    *Session
	t    *schema.Type
	pos  uint32
	name string
	over []overlay

	decoded *ast.Node
}

// TypeName returns the output type of the node.
func (n *Node) TypeName() string { return n.name }

// Pos returns the byte offset of the node struct.
func (n *Node) Pos() uint32 { return n.pos }

// Span returns the node's source range. The typed program starts at its
// first statement and typed template elements cover their delimiters.
func (n *Node) Span() (start, end uint32) {
	d := n.s.dec
	if d.Flavor() == schema.FlavorTyped {
		switch {
		case n.t == d.Schema().Program:
			return d.ProgramStart(n.pos), d.U32(n.pos + 4)
		case n.t.Hook == schema.HookTemplateElement:
			if dn, err := n.Decode(); err == nil {
				return dn.Start, dn.End
			}
		}
	}
	return d.U32(n.pos), d.U32(n.pos + 4)
}

// Get returns the value of key, or nil when the key is absent or cannot
// be decoded.
func (n *Node) Get(key string) any {
	v, _ := n.Lookup(key)
	return v
}

// Lookup returns the value of key. Child nodes come back as *Node, vectors
// as *List, and lists assembled from several members as []any.
func (n *Node) Lookup(key string) (any, error) {
	switch key {
	case "type":
		return n.name, nil
	case "start":
		start, _ := n.Span()
		return start, nil
	case "end":
		_, end := n.Span()
		return end, nil
	}

	switch n.t.Hook {
	case schema.HookLiteralRaw, schema.HookBigInt, schema.HookRegExp,
		schema.HookTemplateElement, schema.HookComment, schema.HookShorthandTarget,
		schema.HookMappedType, schema.HookEnumMember, schema.HookClassImplements:
		d, err := n.Decode()
		if err != nil {
			return nil, err
		}
		return d.Get(key), nil
	}

	for i := len(n.over) - 1; i >= 0; i-- {
		if o := n.over[i]; o.f.Key == key {
			return n.s.field(o.f, o.pos)
		}
	}

	var (
		out       any
		held      []any
		found     bool
		prepended bool
	)
	for _, f := range n.t.Members(n.s.dec.Flavor()) {
		if f.Key != key {
			continue
		}
		v, err := n.s.field(f, n.pos)
		if err != nil {
			return nil, err
		}
		switch {
		case f.Prepend:
			held, prepended = splice(held, v), true
			continue
		case found && f.Append:
			out = splice(splice(nil, out), v)
			continue
		}
		out, found = v, true
		if prepended {
			out, held, prepended = splice(held, v), nil, false
		}
	}
	return out, nil
}

// Keys returns the output keys of the node in order.
func (n *Node) Keys() []string {
	keys := []string{"type", "start", "end"}
	seen := make(map[string]bool)
	for _, f := range n.t.Members(n.s.dec.Flavor()) {
		if !f.Prepend && !seen[f.Key] {
			seen[f.Key] = true
			keys = append(keys, f.Key)
		}
	}
	for _, o := range n.over {
		if !seen[o.f.Key] {
			seen[o.f.Key] = true
			keys = append(keys, o.f.Key)
		}
	}
	return keys
}

// Decode materializes the node and its subtree. The result is kept.
func (n *Node) Decode() (*ast.Node, error) {
	if n.decoded != nil {
		return n.decoded, nil
	}
	v, err := n.s.dec.DecodeType(n.t, n.pos)
	if err != nil {
		return nil, err
	}
	d, _ := v.(*ast.Node)
	n.decoded = d
	return d, nil
}

// List is a view of a vector.
type List struct {
	s    *Session
	elem *schema.Type
	ptr  uint32
	n    uint32
}

// Len returns the number of elements.
func (l *List) Len() int { return int(l.n) }

// At returns element i, or nil when it cannot be read.
func (l *List) At(i int) any {
	v, _ := l.Lookup(i)
	return v
}

// Lookup returns element i.
func (l *List) Lookup(i int) (any, error) {
	if i < 0 || uint32(i) >= l.n {
		return nil, nil
	}
	return l.s.value(l.elem, l.ptr+uint32(i)*l.elem.Size)
}

// Values returns every element in order.
func (l *List) Values() []any {
	out := make([]any, 0, l.n)
	for i := 0; i < int(l.n); i++ {
		out = append(out, l.At(i))
	}
	return out
}
