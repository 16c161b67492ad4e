package deserialize

import (
	"github.com/wippyai/rawtransfer/ast"
	"github.com/wippyai/rawtransfer/schema"
)

// parenthesized keeps the wrapper unless the session drops parentheses.
func parenthesized(s *Session, _ *schema.Type, _ uint32, n *ast.Node) (any, error) {
	if !s.noParens || len(n.Props) == 0 {
		return n, nil
	}
	return n.Props[0].Value, nil
}

// shorthandTarget builds the value of `{a}` and `{a = b}` in assignment
// targets: an identifier copied from the key, wrapped in an assignment
// pattern spanning the property when a default is present.
func shorthandTarget(s *Session, _ *schema.Type, _ uint32, n *ast.Node) (any, error) {
	key := n.Child("key")
	if key == nil {
		return n, nil
	}
	ident := s.node("Identifier", key.Start, key.End, copyProps(key.Props)...)
	init := n.Get("value")
	if init == nil {
		n.Set("value", ident)
		return n, nil
	}
	props := []ast.Prop{{Key: "left", Value: ident}, {Key: "right", Value: init}}
	if s.flavor == schema.FlavorTyped {
		props = []ast.Prop{
			{Key: "decorators", Value: []any{}},
			props[0],
			props[1],
			{Key: "optional", Value: false},
			{Key: "typeAnnotation", Value: nil},
		}
	}
	n.Set("value", s.node("AssignmentPattern", n.Start, n.End, props...))
	return n, nil
}

// copyProps copies props, giving empty lists a fresh backing array.
func copyProps(props []ast.Prop) []ast.Prop {
	out := make([]ast.Prop, len(props))
	for i, p := range props {
		if l, ok := p.Value.([]any); ok && len(l) == 0 {
			p.Value = []any{}
		}
		out[i] = p
	}
	return out
}

// jsxElement marks the opening element self-closing when there is no
// closing element.
func jsxElement(_ *Session, _ *schema.Type, _ uint32, n *ast.Node) (any, error) {
	if n.Get("closingElement") == nil {
		if open := n.Child("openingElement"); open != nil {
			open.Set("selfClosing", true)
		}
	}
	return n, nil
}
