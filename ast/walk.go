package ast

// WalkFunc is called for every node reached by Walk.
type WalkFunc func(n *Node) error

// Walk visits n and every node nested in its properties, depth first and in
// property order. enter runs before a node's children and exit after; either
// may be nil. The first error stops the walk.
func Walk(n *Node, enter, exit WalkFunc) error {
	if n == nil {
		return nil
	}
	if enter != nil {
		if err := enter(n); err != nil {
			return err
		}
	}
	for _, p := range n.Props {
		if err := walkValue(p.Value, enter, exit); err != nil {
			return err
		}
	}
	if exit != nil {
		return exit(n)
	}
	return nil
}

func walkValue(v any, enter, exit WalkFunc) error {
	switch v := v.(type) {
	case *Node:
		return Walk(v, enter, exit)
	case []any:
		for _, e := range v {
			if err := walkValue(e, enter, exit); err != nil {
				return err
			}
		}
	}
	return nil
}

// SetParents links every node below n to its nearest enclosing node.
// n itself gets a nil parent.
func SetParents(n *Node) {
	var stack []*Node
	_ = Walk(n, func(c *Node) error {
		c.Parent = nil
		if len(stack) > 0 {
			c.Parent = stack[len(stack)-1]
		}
		stack = append(stack, c)
		return nil
	}, func(*Node) error {
		stack = stack[:len(stack)-1]
		return nil
	})
}
