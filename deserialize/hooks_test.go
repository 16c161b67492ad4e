package deserialize_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/rawtransfer/ast"
	"github.com/wippyai/rawtransfer/deserialize"
	"github.com/wippyai/rawtransfer/internal/testbuf"
	"github.com/wippyai/rawtransfer/schema"
)

// decodeTree encodes program as the root program and decodes it.
func decodeTree(t *testing.T, source string, flavor schema.Flavor, program testbuf.M, opts ...deserialize.Option) *deserialize.Result {
	t.Helper()
	buf, err := testbuf.New(schema.Default(), source, flavor).Encode(testbuf.M{"program": program})
	require.NoError(t, err)
	s, err := deserialize.NewSession(buf, source, uint32(len(source)), opts...)
	require.NoError(t, err)
	res, err := s.Deserialize()
	require.NoError(t, err)
	return res
}

func parenProgram() testbuf.M {
	return testbuf.M{"end": 4, "statements": []any{
		testbuf.M{"$": "ExpressionStatement", "end": 4, "expression": testbuf.M{
			"$": "ParenthesizedExpression", "start": 0, "end": 3,
			"expression": testbuf.M{"$": "IdentifierReference", "start": 1, "end": 2, "name": "a"},
		}},
	}}
}

func TestParenthesesKept(t *testing.T) {
	expr := body(t, decodeTree(t, "(a);", schema.FlavorPlain, parenProgram()), 0).Child("expression")
	assert.Equal(t, "ParenthesizedExpression", expr.Type)
	assert.Equal(t, "a", expr.Child("expression").Get("name"))
}

func TestWithoutParens(t *testing.T) {
	res := decodeTree(t, "(a);", schema.FlavorPlain, parenProgram(), deserialize.WithoutParens())
	expr := body(t, res, 0).Child("expression")
	assert.Equal(t, "Identifier", expr.Type)
	assert.Equal(t, [2]uint32{1, 2}, [2]uint32{expr.Start, expr.End})
}

func TestWithRange(t *testing.T) {
	res := decodeTree(t, "(a);", schema.FlavorPlain, parenProgram(), deserialize.WithRange())
	stmt := body(t, res, 0)
	assert.Equal(t, []any{uint32(0), uint32(4)}, stmt.Get("range"))

	out, err := json.Marshal(stmt.Child("expression").Child("expression"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Identifier","name":"a","start":1,"end":2,"range":[1,2]}`, string(out))

	plain := body(t, decodeTree(t, "(a);", schema.FlavorPlain, parenProgram()), 0)
	assert.Nil(t, plain.Get("range"))
}

func TestWithParent(t *testing.T) {
	res := decodeTree(t, "(a);", schema.FlavorPlain, parenProgram(), deserialize.WithParent())
	stmt := body(t, res, 0)
	paren := stmt.Child("expression")
	assert.Same(t, res.Program, stmt.Parent)
	assert.Same(t, stmt, paren.Parent)
	assert.Same(t, paren, paren.Child("expression").Parent)
	assert.Nil(t, res.Program.Parent)
}

func TestShorthandTarget(t *testing.T) {
	loop := body(t, decodeCase(t, "shorthand-target"), 0)
	prop := loop.Child("left").List("properties")[0].(*ast.Node)
	assert.Equal(t, "Property", prop.Type)
	assert.Equal(t, true, prop.Get("shorthand"))

	key, value := prop.Child("key"), prop.Child("value")
	require.NotNil(t, value)
	assert.Equal(t, "Identifier", value.Type)
	assert.Equal(t, "a", value.Get("name"))
	assert.NotSame(t, key, value, "value is a copy of the key")
}

func TestShorthandTargetDefault(t *testing.T) {
	const source = "for ({a = c} of b);"
	program := func() testbuf.M {
		return testbuf.M{"end": 19, "statements": []any{
			testbuf.M{"$": "ForOfStatement", "end": 19,
				"left": testbuf.M{"$": "ObjectAssignmentTarget", "start": 5, "end": 12,
					"properties": []any{testbuf.M{
						"$": "AssignmentTargetPropertyIdentifier", "start": 6, "end": 11,
						"key":  testbuf.M{"start": 6, "end": 7, "name": "a"},
						"init": testbuf.M{"$": "IdentifierReference", "start": 10, "end": 11, "name": "c"},
					}}},
				"right": testbuf.M{"$": "IdentifierReference", "start": 16, "end": 17, "name": "b"},
				"body":  testbuf.M{"$": "EmptyStatement", "start": 18, "end": 19},
			},
		}}
	}

	for _, tt := range []struct {
		flavor schema.Flavor
		keys   []string
	}{
		{schema.FlavorPlain, []string{"left", "right"}},
		{schema.FlavorTyped, []string{"decorators", "left", "right", "optional", "typeAnnotation"}},
	} {
		t.Run(tt.flavor.String(), func(t *testing.T) {
			loop := body(t, decodeTree(t, source, tt.flavor, program()), 0)
			prop := loop.Child("left").List("properties")[0].(*ast.Node)
			pat := prop.Child("value")
			require.Equal(t, "AssignmentPattern", pat.Type)
			assert.Equal(t, [2]uint32{6, 11}, [2]uint32{pat.Start, pat.End})
			assert.Equal(t, tt.keys, pat.Keys())
			assert.Equal(t, "a", pat.Child("left").Get("name"))
			assert.Equal(t, "c", pat.Child("right").Get("name"))
		})
	}
}

func TestThisParamPrepended(t *testing.T) {
	fn := body(t, decodeCase(t, "typed-params"), 0)
	params := fn.List("params")
	require.Len(t, params, 2)

	this := params[0].(*ast.Node)
	assert.Equal(t, "Identifier", this.Type)
	assert.Equal(t, "this", this.Get("name"))
	assert.Equal(t, "TSTypeAnnotation", this.Child("typeAnnotation").Type)

	a := params[1].(*ast.Node)
	assert.Equal(t, "a", a.Get("name"))
	assert.Equal(t, true, a.Get("optional"))
	assert.Equal(t, []any{}, a.Get("decorators"))
	assert.Equal(t, "TSTypeAnnotation", a.Child("typeAnnotation").Type)
}

func TestParameterProperty(t *testing.T) {
	c := corpusCase(t, "typed-params")
	fn := c.Program["statements"].([]any)[0].(testbuf.M)
	item := fn["params"].(testbuf.M)["items"].([]any)[0].(testbuf.M)
	item["accessibility"] = "private"
	item["readonly"] = true
	buf, err := c.Encode(schema.Default())
	require.NoError(t, err)

	params := body(t, decode(t, buf, c.Source), 0).List("params")
	prop := params[1].(*ast.Node)
	require.Equal(t, "TSParameterProperty", prop.Type)
	assert.Equal(t, [2]uint32{25, 35}, [2]uint32{prop.Start, prop.End})
	assert.Equal(t, []string{"accessibility", "decorators", "override", "parameter", "readonly", "static"}, prop.Keys())
	assert.Equal(t, "private", prop.Get("accessibility"))
	assert.Equal(t, true, prop.Get("readonly"))
	assert.Equal(t, false, prop.Get("static"))
	assert.Equal(t, "a", prop.Child("parameter").Get("name"))
}

func TestMappedType(t *testing.T) {
	const source = "type T = {+readonly [K in U]?: V}"
	mapped := func(optional, readonly any) testbuf.M {
		return testbuf.M{"end": 33, "statements": []any{
			testbuf.M{"$": "TSTypeAliasDeclaration", "end": 33,
				"id": testbuf.M{"start": 5, "end": 6, "name": "T"},
				"typeAnnotation": testbuf.M{"$": "TSMappedType", "start": 9, "end": 33,
					"typeParameter": testbuf.M{"start": 21, "end": 27,
						"name": testbuf.M{"start": 21, "end": 22, "name": "K"},
						"constraint": testbuf.M{"$": "TSTypeReference", "start": 26, "end": 27,
							"typeName": testbuf.M{"$": "IdentifierReference", "start": 26, "end": 27, "name": "U"}},
					},
					"optional": optional,
					"readonly": readonly,
				},
			},
		}}
	}

	typ := body(t, decodeTree(t, source, schema.FlavorTyped, mapped("true", "+")), 0).Child("typeAnnotation")
	require.Equal(t, "TSMappedType", typ.Type)
	assert.Equal(t, "K", typ.Child("key").Get("name"))
	assert.Equal(t, "TSTypeReference", typ.Child("constraint").Type)
	assert.Equal(t, true, typ.Get("optional"))
	assert.Equal(t, "+", typ.Get("readonly"))

	typ = body(t, decodeTree(t, source, schema.FlavorTyped, mapped(nil, nil)), 0).Child("typeAnnotation")
	assert.Equal(t, false, typ.Get("optional"))
	assert.Nil(t, typ.Get("readonly"))
}

func TestJSXSelfClosing(t *testing.T) {
	element := func(closing any) testbuf.M {
		return testbuf.M{"end": 8, "statements": []any{
			testbuf.M{"$": "ExpressionStatement", "end": 8, "expression": testbuf.M{
				"$": "JSXElement", "start": 0, "end": 7,
				"openingElement": testbuf.M{"start": 0, "end": 3,
					"name": testbuf.M{"$": "JSXIdentifier", "start": 1, "end": 2, "name": "a"}},
				"closingElement": closing,
			}},
		}}
	}

	open := body(t, decodeTree(t, "<a></a>;", schema.FlavorPlain, element(nil)), 0).
		Child("expression").Child("openingElement")
	assert.Equal(t, true, open.Get("selfClosing"))

	closed := element(testbuf.M{"start": 3, "end": 7,
		"name": testbuf.M{"$": "JSXIdentifier", "start": 5, "end": 6, "name": "a"}})
	open = body(t, decodeTree(t, "<a></a>;", schema.FlavorPlain, closed), 0).
		Child("expression").Child("openingElement")
	assert.Equal(t, false, open.Get("selfClosing"))
}

func TestEnumMemberComputed(t *testing.T) {
	const source = `enum E {a, ["b"]}`
	res := decodeTree(t, source, schema.FlavorTyped, testbuf.M{"end": 17, "statements": []any{
		testbuf.M{"$": "TSEnumDeclaration", "end": 17,
			"id": testbuf.M{"start": 5, "end": 6, "name": "E"},
			"body": testbuf.M{"start": 7, "end": 17, "members": []any{
				testbuf.M{"start": 8, "end": 9,
					"id": testbuf.M{"$": "IdentifierName", "start": 8, "end": 9, "name": "a"}},
				testbuf.M{"start": 11, "end": 16,
					"id": testbuf.M{"#": 2, "start": 12, "end": 15, "value": "b", "raw": `"b"`}},
			}},
		},
	}})
	members := body(t, res, 0).Child("body").List("members")
	require.Len(t, members, 2)
	assert.Equal(t, false, members[0].(*ast.Node).Get("computed"))

	computed := members[1].(*ast.Node)
	assert.Equal(t, true, computed.Get("computed"))
	assert.Equal(t, "Literal", computed.Child("id").Type)
}

func TestClassImplementsChain(t *testing.T) {
	const source = "class C implements a.b.c {}"
	ident := func(start uint32, name string) testbuf.M {
		return testbuf.M{"start": start, "end": start + 1, "name": name}
	}
	res := decodeTree(t, source, schema.FlavorTyped, testbuf.M{"end": 27, "statements": []any{
		testbuf.M{"$": "Class", "end": 27, "type": "ClassDeclaration",
			"id":   ident(6, "C"),
			"body": testbuf.M{"start": 25, "end": 27},
			"implements": []any{testbuf.M{"start": 19, "end": 24,
				"expression": testbuf.M{"$": "TSQualifiedName", "start": 19, "end": 24,
					"left": testbuf.M{"$": "TSQualifiedName", "start": 19, "end": 22,
						"left":  testbuf.M{"$": "IdentifierReference", "start": 19, "end": 20, "name": "a"},
						"right": ident(21, "b")},
					"right": ident(23, "c")},
			}},
		},
	}})

	impl := body(t, res, 0).List("implements")[0].(*ast.Node)
	outer := impl.Child("expression")
	require.Equal(t, "MemberExpression", outer.Type)
	assert.Equal(t, [2]uint32{19, 24}, [2]uint32{outer.Start, outer.End})
	assert.Equal(t, "c", outer.Child("property").Get("name"))
	assert.Equal(t, false, outer.Get("computed"))

	inner := outer.Child("object")
	require.Equal(t, "MemberExpression", inner.Type)
	assert.Equal(t, "a", inner.Child("object").Get("name"))
	assert.Equal(t, "b", inner.Child("property").Get("name"))
}

func TestImportAttributes(t *testing.T) {
	const source = `import "b" with {t: "j"}`
	program := func(with any) testbuf.M {
		d := testbuf.M{"$": "ImportDeclaration", "start": 0, "end": 24,
			"source": testbuf.M{"start": 7, "end": 10, "value": "b", "raw": `"b"`}}
		if with != nil {
			d["withClause"] = with
		}
		return testbuf.M{"end": 24, "sourceType": "module", "statements": []any{d}}
	}

	imp := body(t, decodeTree(t, source, schema.FlavorPlain, program(testbuf.M{
		"attributes": []any{testbuf.M{"start": 17, "end": 23,
			"key":   testbuf.M{"$": "IdentifierName", "start": 17, "end": 18, "name": "t"},
			"value": testbuf.M{"start": 20, "end": 23, "value": "j", "raw": `"j"`}}},
	})), 0)
	attrs := imp.List("attributes")
	require.Len(t, attrs, 1)
	attr := attrs[0].(*ast.Node)
	assert.Equal(t, "ImportAttribute", attr.Type)
	assert.Equal(t, "t", attr.Child("key").Get("name"))
	assert.Equal(t, "j", attr.Child("value").Get("value"))

	bare := body(t, decodeTree(t, source, schema.FlavorPlain, program(nil)), 0)
	assert.Equal(t, []any{}, bare.Get("attributes"))
}
