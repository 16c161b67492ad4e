package visitor

import "github.com/wippyai/rawtransfer/ast"

// Walk runs the table over a decoded tree, depth first in property order.
// Nodes whose type has no id, such as synthetic comments, are skipped.
func (t *Table) Walk(root *ast.Node) error {
	return ast.Walk(root,
		func(n *ast.Node) error {
			e, leaf := t.entryFor(n.Type)
			switch {
			case e == nil:
				return nil
			case leaf:
				return call(e.Leaf, n)
			default:
				return call(e.Enter, n)
			}
		},
		func(n *ast.Node) error {
			if e, leaf := t.entryFor(n.Type); e != nil && !leaf {
				return call(e.Exit, n)
			}
			return nil
		},
	)
}

func (t *Table) entryFor(name string) (*Entry, bool) {
	id, ok := t.schema.NodeTypeID(name)
	if !ok {
		return nil, false
	}
	return t.entries[id], t.schema.IsLeaf(id)
}

func call(fn Func, n Node) error {
	if fn == nil {
		return nil
	}
	return fn(n)
}
