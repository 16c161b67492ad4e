package deserialize_test

import (
	"encoding/json"
	"math/big"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/rawtransfer/ast"
	"github.com/wippyai/rawtransfer/buffer"
	"github.com/wippyai/rawtransfer/deserialize"
	rterrors "github.com/wippyai/rawtransfer/errors"
	"github.com/wippyai/rawtransfer/internal/testbuf"
	"github.com/wippyai/rawtransfer/schema"
)

func corpusCase(t *testing.T, name string) testbuf.Case {
	t.Helper()
	cases, err := testbuf.Corpus()
	require.NoError(t, err)
	for _, c := range cases {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("corpus case %s missing", name)
	return testbuf.Case{}
}

func decodeCase(t *testing.T, name string) *deserialize.Result {
	t.Helper()
	c := corpusCase(t, name)
	buf, err := c.Encode(schema.Default())
	require.NoError(t, err)
	return decode(t, buf, c.Source)
}

func decode(t *testing.T, buf *buffer.Buffer, source string) *deserialize.Result {
	t.Helper()
	s, err := deserialize.NewSession(buf, source, uint32(len(source)))
	require.NoError(t, err)
	res, err := s.Deserialize()
	require.NoError(t, err)
	return res
}

func body(t *testing.T, res *deserialize.Result, i int) *ast.Node {
	t.Helper()
	list := res.Program.List("body")
	require.Greater(t, len(list), i)
	n, ok := list[i].(*ast.Node)
	require.True(t, ok, "body[%d] is %T", i, list[i])
	return n
}

func TestNumericRoundTrip(t *testing.T) {
	res := decodeCase(t, "numeric")
	out, err := json.Marshal(res.Program)
	require.NoError(t, err)
	want := `{"type":"Program","body":[{"type":"ExpressionStatement","expression":{"type":"Literal","value":42,"raw":"42","start":0,"end":2},"start":0,"end":2}],"sourceType":"script","hashbang":null,"start":0,"end":2}`
	assert.Equal(t, want, string(out))
	assert.Empty(t, res.Comments)
	assert.Empty(t, res.Errors)
}

func TestDeterministic(t *testing.T) {
	cases, err := testbuf.Corpus()
	require.NoError(t, err)
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			buf, err := c.Encode(schema.Default())
			require.NoError(t, err)
			a, err := json.Marshal(decode(t, buf, c.Source).Program)
			require.NoError(t, err)
			b, err := json.Marshal(decode(t, buf, c.Source).Program)
			require.NoError(t, err)
			assert.Equal(t, string(a), string(b))
		})
	}
}

func TestVariableDeclaration(t *testing.T) {
	decl := body(t, decodeCase(t, "variable"), 0)
	assert.Equal(t, "VariableDeclaration", decl.Type)
	assert.Equal(t, "let", decl.Get("kind"))
	assert.False(t, decl.Has("declare"), "declare is typed only")

	d := decl.List("declarations")[0].(*ast.Node)
	assert.Equal(t, "x", d.Child("id").Get("name"))
	init := d.Child("init")
	assert.Equal(t, "BinaryExpression", init.Type)
	assert.Equal(t, "+", init.Get("operator"))
	assert.Equal(t, []string{"left", "operator", "right"}, init.Keys())
}

func TestArrowExpressionBody(t *testing.T) {
	decl := body(t, decodeCase(t, "arrow"), 0)
	arrow := decl.List("declarations")[0].(*ast.Node).Child("init")
	require.Equal(t, "ArrowFunctionExpression", arrow.Type)

	assert.Equal(t, true, arrow.Get("expression"))
	assert.Nil(t, arrow.Get("id"))
	b := arrow.Child("body")
	require.NotNil(t, b)
	assert.Equal(t, "Identifier", b.Type)
	assert.Equal(t, "a", b.Get("name"))

	params := arrow.List("params")
	require.Len(t, params, 2)
	assert.Equal(t, "Identifier", params[0].(*ast.Node).Type)
	rest := params[1].(*ast.Node)
	assert.Equal(t, "RestElement", rest.Type)
	assert.Equal(t, "r", rest.Child("argument").Get("name"))
}

func TestDirectiveAndTemplate(t *testing.T) {
	res := decodeCase(t, "directive-call")
	dir := body(t, res, 0)
	assert.Equal(t, "ExpressionStatement", dir.Type)
	assert.Equal(t, "use strict", dir.Get("directive"))
	lit := dir.Child("expression")
	assert.Equal(t, "Literal", lit.Type)
	assert.Equal(t, `"use strict"`, lit.Get("raw"))

	call := body(t, res, 1).Child("expression")
	args := call.List("arguments")
	require.Len(t, args, 2)
	tpl := args[0].(*ast.Node)
	quasis := tpl.List("quasis")
	require.Len(t, quasis, 2)
	first := quasis[0].(*ast.Node)
	value := first.Get("value").(*ast.Object)
	assert.Equal(t, "a", value.Get("raw"))
	assert.Equal(t, "a", value.Get("cooked"))
	assert.Equal(t, false, first.Get("tail"))
	assert.Equal(t, true, quasis[1].(*ast.Node).Get("tail"))
	assert.Equal(t, "SpreadElement", args[1].(*ast.Node).Type)
}

func TestLiterals(t *testing.T) {
	assign := body(t, decodeCase(t, "literals"), 0).Child("expression")
	elems := assign.Child("right").List("elements")
	require.Len(t, elems, 6)

	boolean := elems[0].(*ast.Node)
	assert.Equal(t, true, boolean.Get("value"))
	assert.Equal(t, "true", boolean.Get("raw"))

	null := elems[1].(*ast.Node)
	assert.Nil(t, null.Get("value"))
	assert.Equal(t, "null", null.Get("raw"))

	re := elems[2].(*ast.Node)
	regex := re.Get("regex").(*ast.Object)
	assert.Equal(t, "a+", regex.Get("pattern"))
	assert.Equal(t, "gi", regex.Get("flags"))
	compiled, ok := re.Get("value").(*regexp.Regexp)
	require.True(t, ok)
	assert.True(t, compiled.MatchString("AA"))

	bi := elems[3].(*ast.Node)
	assert.Equal(t, "10", bi.Get("bigint"))
	assert.Equal(t, "10n", bi.Get("raw"))
	assert.Equal(t, 0, bi.Get("value").(*big.Int).Cmp(big.NewInt(10)))

	assert.Nil(t, elems[4], "elision decodes to a hole")
	assert.Equal(t, "s", elems[5].(*ast.Node).Get("value"))
}

func TestSyntheticLiteralRaw(t *testing.T) {
	source := "x"
	buf, err := testbuf.New(schema.Default(), source, schema.FlavorPlain).Encode(testbuf.M{
		"program": testbuf.M{"end": 1, "statements": []any{
			testbuf.M{"$": "ExpressionStatement", "expression": testbuf.M{"$": "BooleanLiteral", "value": true}},
		}},
	})
	require.NoError(t, err)
	lit := body(t, decode(t, buf, source), 0).Child("expression")
	assert.Nil(t, lit.Get("raw"))
}

func TestBigIntCleaning(t *testing.T) {
	tests := map[string]string{
		"10n":     "10",
		"1_000n":  "1000",
		"0xF_Fn":  "0xFF",
		"0b1010n": "0b1010",
	}
	for raw, want := range tests {
		assert.Equal(t, want, deserialize.CleanBigInt(raw), raw)
	}
}

func TestRegExpFlags(t *testing.T) {
	assert.Equal(t, "dgimsuvy", deserialize.RegExpFlags(0xff))
	assert.Equal(t, "gy", deserialize.RegExpFlags(1|32))
	assert.Equal(t, "", deserialize.RegExpFlags(0))
}

func TestRegExpFailureRecovers(t *testing.T) {
	assert.Nil(t, deserialize.CompileRegExp(`(?<=a)b`, ""))
	assert.Nil(t, deserialize.CompileRegExp(`a(`, "g"))

	re, ok := deserialize.CompileRegExp(`^b$`, "m").(*regexp.Regexp)
	require.True(t, ok)
	assert.True(t, re.MatchString("a\nb"))

	source := "/(?<=a)b/"
	buf, err := testbuf.New(schema.Default(), source, schema.FlavorPlain).Encode(testbuf.M{
		"program": testbuf.M{"end": 9, "statements": []any{
			testbuf.M{"$": "ExpressionStatement", "end": 9, "expression": testbuf.M{
				"$": "RegExpLiteral", "end": 9, "pattern": "(?<=a)b", "raw": source,
			}},
		}},
	})
	require.NoError(t, err)
	lit := body(t, decode(t, buf, source), 0).Child("expression")
	assert.Nil(t, lit.Get("value"))
	assert.Equal(t, "(?<=a)b", lit.Get("regex").(*ast.Object).Get("pattern"))
}

func TestEscapedStrings(t *testing.T) {
	source := "'\\ud800' `x`"
	buf, err := testbuf.New(schema.Default(), source, schema.FlavorPlain).NoSourceStrings().Encode(testbuf.M{
		"program": testbuf.M{"end": 12, "statements": []any{
			testbuf.M{"$": "ExpressionStatement", "expression": testbuf.M{
				"$": "StringLiteral", "value": "a\uFFFD0042", "loneSurrogates": true,
			}},
			testbuf.M{"$": "ExpressionStatement", "expression": testbuf.M{
				"$": "StringLiteral", "value": "a\uFFFD0042",
			}},
			testbuf.M{"$": "ExpressionStatement", "expression": testbuf.M{
				"$": "TemplateLiteral", "quasis": []any{
					testbuf.M{"raw": "x", "cooked": "\uFFFD0043", "escaped": true, "tail": true},
				},
			}},
		}},
	})
	require.NoError(t, err)
	res := decode(t, buf, source)

	assert.Equal(t, "aB", body(t, res, 0).Child("expression").Get("value"))
	assert.Equal(t, "a\uFFFD0042", body(t, res, 1).Child("expression").Get("value"))
	quasi := body(t, res, 2).Child("expression").List("quasis")[0].(*ast.Node)
	assert.Equal(t, "C", quasi.Get("value").(*ast.Object).Get("cooked"))
}

func TestComments(t *testing.T) {
	res := decodeCase(t, "comments")
	require.Len(t, res.Comments, 2)
	assert.Equal(t, "Line", res.Comments[0].Type)
	assert.Equal(t, " hi", res.Comments[0].Get("value"))
	assert.Equal(t, "Block", res.Comments[1].Type)
	assert.Equal(t, " x ", res.Comments[1].Get("value"))
}

func TestHashbangPlain(t *testing.T) {
	res := decodeCase(t, "hashbang-plain")
	hb := res.Program.Child("hashbang")
	require.NotNil(t, hb)
	assert.Equal(t, "Hashbang", hb.Type)
	assert.Equal(t, "/usr/bin/env node", hb.Get("value"))
	assert.Empty(t, res.Comments)
	assert.Equal(t, uint32(0), res.Program.Start)
}

func TestHashbangTyped(t *testing.T) {
	res := decodeCase(t, "decorated-export")
	hb := res.Program.Child("hashbang")
	require.NotNil(t, hb, "the program keeps its hashbang in both flavors")
	assert.Equal(t, "/usr/bin/env node", hb.Get("value"))
	require.NotEmpty(t, res.Comments)
	sb := res.Comments[0]
	assert.Equal(t, "Shebang", sb.Type)
	assert.Equal(t, "/usr/bin/env node", sb.Get("value"))
	assert.Equal(t, uint32(0), sb.Start)
	assert.Equal(t, uint32(19), sb.End)
}

func TestTypedProgramStart(t *testing.T) {
	res := decodeCase(t, "decorated-export")
	assert.Equal(t, uint32(20), res.Program.Start, "start moves to the decorator")

	export := body(t, res, 0)
	class := export.Child("declaration")
	assert.Equal(t, "ClassDeclaration", class.Type)
	assert.Equal(t, false, class.Get("abstract"))

	source := "  "
	buf, err := testbuf.New(schema.Default(), source, schema.FlavorTyped).Encode(testbuf.M{
		"program": testbuf.M{"start": 0, "end": 2},
	})
	require.NoError(t, err)
	empty := decode(t, buf, source)
	assert.Equal(t, uint32(2), empty.Program.Start, "empty body starts at its end")
}

func TestTypedIdentifier(t *testing.T) {
	c := corpusCase(t, "variable")
	c.Flavor = "typed"
	buf, err := c.Encode(schema.Default())
	require.NoError(t, err)
	decl := body(t, decode(t, buf, c.Source), 0)
	init := decl.List("declarations")[0].(*ast.Node).Child("init")
	left := init.Child("left")
	assert.Equal(t, []string{"decorators", "name", "optional", "typeAnnotation"}, left.Keys())
	assert.Equal(t, []any{}, left.Get("decorators"))
	assert.Equal(t, false, decl.Get("declare"))
}

func TestModuleChainFlattening(t *testing.T) {
	for _, flavor := range []string{"typed", "plain"} {
		t.Run(flavor, func(t *testing.T) {
			c := corpusCase(t, "namespace-chain")
			c.Flavor = flavor
			buf, err := c.Encode(schema.Default())
			require.NoError(t, err)
			decl := body(t, decode(t, buf, c.Source), 0)
			assert.Equal(t, "TSModuleDeclaration", decl.Type)
			assert.Equal(t, uint32(0), decl.Start)
			assert.Equal(t, uint32(18), decl.End)
			assert.Equal(t, false, decl.Get("global"))
			assert.Equal(t, []string{"id", "body", "kind", "declare", "global"}, decl.Keys())

			id := decl.Child("id")
			require.Equal(t, "TSQualifiedName", id.Type)
			assert.Equal(t, [2]uint32{10, 15}, [2]uint32{id.Start, id.End})
			assert.Equal(t, "c", id.Child("right").Get("name"))

			left := id.Child("left")
			require.Equal(t, "TSQualifiedName", left.Type)
			assert.Equal(t, [2]uint32{10, 13}, [2]uint32{left.Start, left.End})
			assert.Equal(t, "a", left.Child("left").Get("name"))
			assert.Equal(t, "b", left.Child("right").Get("name"))

			assert.Equal(t, "TSModuleBlock", decl.Child("body").Type)
		})
	}
}

func TestModuleWithoutBody(t *testing.T) {
	source := `declare module "m"`
	buf, err := testbuf.New(schema.Default(), source, schema.FlavorTyped).Encode(testbuf.M{
		"program": testbuf.M{"end": 18, "statements": []any{
			testbuf.M{"$": "TSModuleDeclaration", "end": 18, "kind": "module", "declare": true, "body": nil,
				"id": testbuf.M{"$": "StringLiteral", "start": 15, "end": 18, "value": "m", "raw": `"m"`}},
		}},
	})
	require.NoError(t, err)
	decl := body(t, decode(t, buf, source), 0)
	assert.False(t, decl.Has("body"))
	assert.Equal(t, []string{"id", "kind", "declare", "global"}, decl.Keys())
	assert.Equal(t, false, decl.Get("global"))
	assert.Equal(t, "Literal", decl.Child("id").Type)
}

func TestNestedModuleWithoutBody(t *testing.T) {
	source := "namespace a.b"
	buf, err := testbuf.New(schema.Default(), source, schema.FlavorPlain).Encode(testbuf.M{
		"program": testbuf.M{"end": 13, "statements": []any{
			testbuf.M{"$": "TSModuleDeclaration", "end": 13, "kind": "namespace",
				"id": testbuf.M{"$": "BindingIdentifier", "start": 10, "end": 11, "name": "a"},
				"body": testbuf.M{"$": "TSModuleDeclaration", "start": 12, "end": 13, "kind": "namespace", "body": nil,
					"id": testbuf.M{"$": "BindingIdentifier", "start": 12, "end": 13, "name": "b"}},
			},
		}},
	})
	require.NoError(t, err)
	decl := body(t, decode(t, buf, source), 0)
	assert.Equal(t, "TSQualifiedName", decl.Child("id").Type)
	inner := decl.Child("body")
	require.NotNil(t, inner, "a bodiless inner declaration stays as the body")
	assert.Equal(t, "TSModuleDeclaration", inner.Type)
	assert.False(t, inner.Has("body"))
}

func TestGlobalDeclaration(t *testing.T) {
	source := "declare global {}"
	buf, err := testbuf.New(schema.Default(), source, schema.FlavorTyped).Encode(testbuf.M{
		"program": testbuf.M{"end": 17, "statements": []any{
			testbuf.M{"$": "TSGlobalDeclaration", "start": 0, "end": 17, "declare": true,
				"keyword": testbuf.M{"start": 8, "end": 14},
				"body":    testbuf.M{"start": 15, "end": 17}},
		}},
	})
	require.NoError(t, err)
	decl := body(t, decode(t, buf, source), 0)
	assert.Equal(t, "TSModuleDeclaration", decl.Type)
	assert.Equal(t, true, decl.Get("global"))
	assert.Equal(t, "global", decl.Get("kind"))
	id := decl.Child("id")
	assert.Equal(t, "Identifier", id.Type)
	assert.Equal(t, "global", id.Get("name"))
	assert.Equal(t, [2]uint32{8, 14}, [2]uint32{id.Start, id.End})
	assert.Equal(t, "TSModuleBlock", decl.Child("body").Type)
}

func TestDiagnostics(t *testing.T) {
	source := "a b"
	buf, err := testbuf.New(schema.Default(), source, schema.FlavorPlain).Encode(testbuf.M{
		"program": testbuf.M{"end": 3},
		"errors": []any{testbuf.M{
			"message":  "Expected a semicolon",
			"severity": "Error",
			"labels":   []any{testbuf.M{"start": 1, "end": 2, "message": nil}},
		}},
	})
	require.NoError(t, err)
	res := decode(t, buf, source)
	require.Len(t, res.Errors, 1)
	e := res.Errors[0]
	assert.Equal(t, "Error", e.Get("severity"))
	assert.Equal(t, "Expected a semicolon", e.Get("message"))
	assert.Nil(t, e.Get("helpMessage"))
	label := e.Get("labels").([]any)[0].(*ast.Object)
	assert.Equal(t, uint32(1), label.Get("start"))
	assert.Nil(t, label.Get("message"))
}

func TestUnknownDiscriminant(t *testing.T) {
	c := corpusCase(t, "numeric")
	buf, err := c.Encode(schema.Default())
	require.NoError(t, err)

	prog := schema.Default().Program
	bodyPos := buf.Trailer().Root + prog.Field("statements").Offset
	buf.PutU8(buf.U32(bodyPos), 200)

	s, err := deserialize.NewSession(buf, c.Source, uint32(len(c.Source)))
	require.NoError(t, err)
	_, err = s.Deserialize()
	require.Error(t, err)
	assert.ErrorIs(t, err, rterrors.New(rterrors.PhaseDecode, rterrors.KindInvalidDiscriminant).Build())
	assert.Contains(t, err.Error(), "unknown discriminant 200 for Statement")
	assert.True(t, strings.Contains(err.Error(), "at program.body[0]"), err.Error())
}

func TestTrailerBounds(t *testing.T) {
	c := corpusCase(t, "numeric")
	buf, err := c.Encode(schema.Default())
	require.NoError(t, err)
	bounds := rterrors.New(rterrors.PhaseDecode, rterrors.KindOutOfBounds).Build()

	_, err = deserialize.NewSession(buf, c.Source, buf.DataLimit()+1)
	assert.ErrorIs(t, err, bounds, "source longer than the data region")

	tr := buf.Trailer()
	tr.Root = buf.DataLimit() - 8
	buf.SetTrailer(tr)
	_, err = deserialize.NewSession(buf, c.Source, uint32(len(c.Source)))
	assert.ErrorIs(t, err, bounds, "root record past the data region")
}

func TestFlavorFromTrailer(t *testing.T) {
	c := corpusCase(t, "numeric")
	buf, err := c.Encode(schema.Default())
	require.NoError(t, err)
	s, err := deserialize.NewSession(buf, c.Source, uint32(len(c.Source)))
	require.NoError(t, err)
	assert.Equal(t, schema.FlavorPlain, s.Flavor())

	buf.PutBool(uint32(buf.Len()-4), true)
	s, err = deserialize.NewSession(buf, c.Source, uint32(len(c.Source)))
	require.NoError(t, err)
	assert.Equal(t, schema.FlavorTyped, s.Flavor())
}

func TestNonASCIISource(t *testing.T) {
	source := "'é'"
	buf, err := testbuf.New(schema.Default(), source, schema.FlavorPlain).Encode(testbuf.M{
		"program": testbuf.M{"end": 4, "statements": []any{
			testbuf.M{"$": "ExpressionStatement", "end": 4, "expression": testbuf.M{
				"$": "StringLiteral", "end": 4, "value": "é", "raw": source,
			}},
		}},
	})
	require.NoError(t, err)
	lit := body(t, decode(t, buf, source), 0).Child("expression")
	assert.Equal(t, "é", lit.Get("value"))
	assert.Equal(t, "'é'", lit.Get("raw"))
}

func TestASCIIFromByteScan(t *testing.T) {
	c := corpusCase(t, "numeric")
	buf, err := c.Encode(schema.Default())
	require.NoError(t, err)

	s, err := deserialize.NewSession(buf, c.Source, uint32(len(c.Source)))
	require.NoError(t, err)
	assert.True(t, s.ASCII())

	s, err = deserialize.NewSession(buf, c.Source, uint32(len(c.Source))+1)
	require.NoError(t, err)
	assert.False(t, s.ASCII(), "recorded length disagrees with the text")
}

func TestInvalidUTF8Source(t *testing.T) {
	source := "'\xff'"
	buf, err := testbuf.New(schema.Default(), source, schema.FlavorPlain).Encode(testbuf.M{
		"program": testbuf.M{"end": 3, "statements": []any{
			testbuf.M{"$": "ExpressionStatement", "end": 3, "expression": testbuf.M{
				"$": "StringLiteral", "end": 3, "value": "\xff", "raw": source,
			}},
		}},
	})
	require.NoError(t, err)
	s, err := deserialize.NewSession(buf, source, uint32(len(source)))
	require.NoError(t, err)
	assert.False(t, s.ASCII())

	res, err := s.Deserialize()
	require.NoError(t, err)
	lit := body(t, res, 0).Child("expression")
	assert.Equal(t, "\uFFFD", lit.Get("value"))
	assert.Equal(t, "'\uFFFD'", lit.Get("raw"))
}
