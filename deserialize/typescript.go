package deserialize

import (
	"github.com/wippyai/rawtransfer/ast"
	"github.com/wippyai/rawtransfer/schema"
)

// moduleDeclaration folds `namespace a.b.c {}` chains into one declaration
// whose id is a qualified name. Inner links are decoded first, so each
// level only splices its own id onto an already flattened body.
func moduleDeclaration(s *Session, _ *schema.Type, _ uint32, n *ast.Node) (any, error) {
	body := n.Child("body")
	if body == nil {
		n.Delete("body")
		return n, nil
	}
	if body.Type != "TSModuleDeclaration" {
		return n, nil
	}

	id := n.Child("id")
	inner := body.Child("id")
	if inner.Type == "Identifier" {
		n.Set("id", s.qualifiedName(id, inner, id.Start, inner.End))
	} else {
		q := inner
		for {
			q.Start = id.Start
			left := q.Child("left")
			if left == nil || left.Type == "Identifier" {
				break
			}
			q = left
		}
		if left := q.Child("left"); left != nil {
			q.Set("left", s.qualifiedName(id, left, id.Start, left.End))
		}
		n.Set("id", inner)
	}
	// an inner declaration without a body stays in place as the body
	if innerBody, ok := body.Get("body").(*ast.Node); ok && body.Has("body") {
		n.Set("body", innerBody)
	}
	return n, nil
}

func (s *Session) qualifiedName(left, right *ast.Node, start, end uint32) *ast.Node {
	return s.node("TSQualifiedName", start, end,
		ast.Prop{Key: "left", Value: left},
		ast.Prop{Key: "right", Value: right},
	)
}

// formalParameter decodes a parameter as its binding pattern or, when it
// carries an accessibility, readonly or override modifier, as a
// TSParameterProperty wrapping that pattern.
func formalParameter(s *Session, _ *schema.Type, _ uint32, n *ast.Node) (any, error) {
	pattern, _ := n.Get("pattern").(*ast.Node)
	if s.flavor != schema.FlavorTyped {
		return pattern, nil
	}
	access := n.Get("accessibility")
	readonly, _ := n.Get("readonly").(bool)
	override, _ := n.Get("override").(bool)
	if access == nil && !readonly && !override {
		if pattern != nil {
			pattern.Set("decorators", n.Get("decorators"))
		}
		return pattern, nil
	}
	return s.node("TSParameterProperty", n.Start, n.End,
		ast.Prop{Key: "accessibility", Value: access},
		ast.Prop{Key: "decorators", Value: n.Get("decorators")},
		ast.Prop{Key: "override", Value: override},
		ast.Prop{Key: "parameter", Value: pattern},
		ast.Prop{Key: "readonly", Value: readonly},
		ast.Prop{Key: "static", Value: false},
	), nil
}

// mappedType lifts the key and constraint out of the mapped type parameter.
// A bare modifier decodes to true and an absent optional to false.
func mappedType(_ *Session, _ *schema.Type, _ uint32, n *ast.Node) (any, error) {
	if tp := n.Child("key"); tp != nil {
		n.Set("key", tp.Get("name"))
		n.Set("constraint", tp.Get("constraint"))
	}
	for _, k := range []string{"optional", "readonly"} {
		if n.Get(k) == "true" {
			n.Set(k, true)
		}
	}
	if n.Get("optional") == nil {
		n.Set("optional", false)
	}
	return n, nil
}

// enumMember marks members named by a computed string or template literal.
func enumMember(s *Session, t *schema.Type, pos uint32, n *ast.Node) (any, error) {
	n.Set("computed", s.U8(pos+t.Field("id").Offset) > 1)
	return n, nil
}

// classImplements renders a qualified heritage name as a chain of member
// expressions.
func classImplements(s *Session, _ *schema.Type, _ uint32, n *ast.Node) (any, error) {
	expr := n.Child("expression")
	if expr == nil || expr.Type != "TSQualifiedName" {
		return n, nil
	}
	n.Set("expression", s.memberChain(expr))
	return n, nil
}

func (s *Session) memberChain(q *ast.Node) *ast.Node {
	object := q.Get("left")
	if left, ok := object.(*ast.Node); ok && left.Type == "TSQualifiedName" {
		object = s.memberChain(left)
	}
	return s.node("MemberExpression", q.Start, q.End,
		ast.Prop{Key: "object", Value: object},
		ast.Prop{Key: "property", Value: q.Get("right")},
		ast.Prop{Key: "optional", Value: false},
		ast.Prop{Key: "computed", Value: false},
	)
}
