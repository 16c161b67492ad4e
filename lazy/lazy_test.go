package lazy_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/rawtransfer/ast"
	"github.com/wippyai/rawtransfer/buffer"
	"github.com/wippyai/rawtransfer/deserialize"
	rterrors "github.com/wippyai/rawtransfer/errors"
	"github.com/wippyai/rawtransfer/internal/testbuf"
	"github.com/wippyai/rawtransfer/lazy"
	"github.com/wippyai/rawtransfer/schema"
	"github.com/wippyai/rawtransfer/visitor"
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

func open(t *testing.T, name string) *lazy.Session {
	t.Helper()
	c := corpusCase(t, name)
	buf, err := c.Encode(schema.Default())
	require.NoError(t, err)
	s, err := lazy.Open(buf, c.Source)
	require.NoError(t, err)
	return s
}

// tracer records every enter and exit with the node span and, for nodes
// carrying one, the name.
func tracer(t *testing.T, trace *[]string) *visitor.Table {
	t.Helper()
	rec := func(prefix string) func(visitor.Node) {
		return func(n visitor.Node) {
			s, e := n.Span()
			line := prefix + n.TypeName() + "@" + strconv.Itoa(int(s)) + "-" + strconv.Itoa(int(e))
			if name, ok := n.Get("name").(string); ok {
				line += " " + name
			}
			*trace = append(*trace, line)
		}
	}
	m := visitor.Map{}
	for _, name := range schema.Default().NodeTypes() {
		m[name] = rec("+")
		m[name+visitor.ExitSuffix] = rec("-")
	}
	tab, err := visitor.Compile(m)
	require.NoError(t, err)
	return tab
}

func TestTraceMatchesEager(t *testing.T) {
	cases, err := testbuf.Corpus()
	require.NoError(t, err)
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			buf, err := c.Encode(schema.Default())
			require.NoError(t, err)

			var eager []string
			dec, err := deserialize.NewSession(buf, c.Source, uint32(len(c.Source)))
			require.NoError(t, err)
			res, err := dec.Deserialize()
			require.NoError(t, err)
			require.NoError(t, tracer(t, &eager).Walk(res.Program))

			var walked []string
			s, err := lazy.Open(buf, c.Source)
			require.NoError(t, err)
			require.NoError(t, s.Walk(tracer(t, &walked)))

			require.NotEmpty(t, eager)
			if c.LazyTrace != nil {
				assert.Equal(t, c.LazyTrace, walked)
				assert.NotEqual(t, eager, walked)
				return
			}
			assert.Equal(t, eager, walked)
		})
	}
}

func TestViewsOnlyForCallbacks(t *testing.T) {
	s := open(t, "variable")
	var names []string
	tab, err := visitor.Compile(visitor.Map{
		"Identifier": func(n visitor.Node) { names = append(names, n.Get("name").(string)) },
	})
	require.NoError(t, err)

	require.NoError(t, s.Walk(tab))
	assert.Equal(t, []string{"x", "a"}, names)
	assert.Equal(t, 2, s.Views())

	empty, err := visitor.Compile(visitor.Map{})
	require.NoError(t, err)
	fresh := open(t, "variable")
	require.NoError(t, fresh.Walk(empty))
	assert.Zero(t, fresh.Views())
}

func TestEnterExitShareView(t *testing.T) {
	s := open(t, "variable")
	var entered, exited visitor.Node
	tab, err := visitor.Compile(visitor.Map{
		"BinaryExpression":      func(n visitor.Node) { entered = n },
		"BinaryExpression:exit": func(n visitor.Node) { exited = n },
	})
	require.NoError(t, err)
	require.NoError(t, s.Walk(tab))
	require.NotNil(t, entered)
	assert.Same(t, entered, exited)
	assert.Equal(t, "+", entered.Get("operator"))
}

func TestCallbackErrorPropagates(t *testing.T) {
	s := open(t, "variable")
	stop := errors.New("stop")
	calls := 0
	tab, err := visitor.Compile(visitor.Map{
		"Identifier": func(visitor.Node) error {
			calls++
			return stop
		},
	})
	require.NoError(t, err)

	err = s.Walk(tab)
	assert.Equal(t, stop, err)
	assert.Equal(t, 1, calls)
}

func TestNodeGet(t *testing.T) {
	s := open(t, "numeric")
	prog := s.Program()
	assert.Equal(t, "Program", prog.TypeName())
	assert.Equal(t, "script", prog.Get("sourceType"))
	assert.Nil(t, prog.Get("hashbang"))
	assert.Equal(t, []string{"type", "start", "end", "body", "sourceType", "hashbang"}, prog.Keys())

	body, ok := prog.Get("body").([]any)
	require.True(t, ok, "body is %T", prog.Get("body"))
	require.Len(t, body, 1)
	stmt := body[0].(*lazy.Node)
	assert.Equal(t, "ExpressionStatement", stmt.TypeName())

	lit := stmt.Get("expression").(*lazy.Node)
	assert.Equal(t, "Literal", lit.TypeName())
	assert.Equal(t, 42.0, lit.Get("value"))
	assert.Equal(t, "42", lit.Get("raw"))
	start, end := lit.Span()
	assert.Equal(t, uint32(0), start)
	assert.Equal(t, uint32(2), end)
	assert.Equal(t, uint32(2), lit.Get("end"))

	assert.Same(t, stmt, body[0], "views are cached per position")
}

func TestArrowBodyUnwrapped(t *testing.T) {
	s := open(t, "arrow")
	body := s.Program().Get("body").([]any)
	decl := body[0].(*lazy.Node)
	declarators := decl.Get("declarations").(*lazy.List)
	require.Equal(t, 1, declarators.Len())
	arrow := declarators.At(0).(*lazy.Node).Get("init").(*lazy.Node)
	require.Equal(t, "ArrowFunctionExpression", arrow.TypeName())

	assert.Equal(t, true, arrow.Get("expression"))
	b := arrow.Get("body").(*lazy.Node)
	assert.Equal(t, "Identifier", b.TypeName())
	assert.Equal(t, "a", b.Get("name"))

	params := arrow.Get("params").([]any)
	require.Len(t, params, 2)
	assert.Equal(t, "Identifier", params[0].(*lazy.Node).TypeName())
	assert.Equal(t, "RestElement", params[1].(*lazy.Node).TypeName())
}

func TestComments(t *testing.T) {
	s := open(t, "comments")
	comments := s.Comments()
	require.Equal(t, 2, comments.Len())
	line := comments.At(0).(*lazy.Node)
	assert.Equal(t, "Line", line.TypeName())
	assert.Equal(t, " hi", line.Get("value"))
	assert.Equal(t, "Block", comments.At(1).(*lazy.Node).TypeName())
	assert.Nil(t, comments.At(2))

	errs, err := s.Errors()
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestTypedProgramSpan(t *testing.T) {
	s := open(t, "decorated-export")
	start, _ := s.Program().Span()
	assert.Equal(t, uint32(20), start)
	hashbang := s.Program().Get("hashbang").(*lazy.Node)
	assert.Equal(t, "/usr/bin/env node", hashbang.Get("value"))
}

func TestModuleGlobalFlag(t *testing.T) {
	s := open(t, "namespace-chain")
	mod := s.Program().Get("body").([]any)[0].(*lazy.Node)
	require.Equal(t, "TSModuleDeclaration", mod.TypeName())
	assert.Equal(t, false, mod.Get("global"))
	assert.Equal(t, "namespace", mod.Get("kind"))
}

func TestDisposeAndReacquire(t *testing.T) {
	pool := buffer.NewPool(buffer.WithSize(64 << 10))

	first := corpusCase(t, "variable")
	buf, err := pool.Acquire()
	require.NoError(t, err)
	require.NoError(t, testbuf.New(schema.Default(), first.Source, first.FlavorOf()).EncodeInto(buf, first.Root()))

	s, err := lazy.Open(buf, first.Source, lazy.WithPool(pool))
	require.NoError(t, err)
	decl := s.Program().Get("body").([]any)[0].(*lazy.Node)
	assert.Equal(t, "VariableDeclaration", decl.TypeName())
	assert.Positive(t, s.Cached())
	assert.True(t, s.Live())

	require.NoError(t, s.Dispose())
	assert.Zero(t, s.Cached())
	assert.False(t, s.Live())
	err = s.Dispose()
	assert.ErrorIs(t, err, rterrors.New(rterrors.PhasePool, rterrors.KindDoubleRelease).Build())

	second := corpusCase(t, "numeric")
	again, err := pool.Acquire()
	require.NoError(t, err)
	assert.Same(t, buf, again)
	require.NoError(t, testbuf.New(schema.Default(), second.Source, second.FlavorOf()).EncodeInto(again, second.Root()))

	s2, err := lazy.Open(again, second.Source, lazy.WithPool(pool))
	require.NoError(t, err)
	stmt := s2.Program().Get("body").([]any)[0].(*lazy.Node)
	assert.Equal(t, "ExpressionStatement", stmt.TypeName())
	assert.Equal(t, "Literal", stmt.Get("expression").(*lazy.Node).TypeName())
	require.NoError(t, s2.Dispose())

	stats := pool.Stats()
	assert.Equal(t, 1, stats.Allocated)
	assert.Equal(t, 1, stats.Reused)
	assert.Equal(t, 2, stats.Released)
}

func TestWalkUnknownDiscriminant(t *testing.T) {
	c := corpusCase(t, "numeric")
	buf, err := c.Encode(schema.Default())
	require.NoError(t, err)
	bodyPos := buf.Trailer().Root + schema.Default().Program.Field("statements").Offset
	buf.PutU8(buf.U32(bodyPos), 200)

	s, err := lazy.Open(buf, c.Source)
	require.NoError(t, err)
	tab, err := visitor.Compile(visitor.Map{})
	require.NoError(t, err)

	err = s.Walk(tab)
	require.Error(t, err)
	assert.ErrorIs(t, err, rterrors.New(rterrors.PhaseWalk, rterrors.KindInvalidDiscriminant).Build())
	assert.Contains(t, err.Error(), "unknown discriminant 200 for Statement")
}

func openTree(t *testing.T, source string, f schema.Flavor, program testbuf.M) *lazy.Session {
	t.Helper()
	buf, err := testbuf.New(schema.Default(), source, f).Encode(testbuf.M{"program": program})
	require.NoError(t, err)
	s, err := lazy.Open(buf, source)
	require.NoError(t, err)
	return s
}

func TestTypedPatternOverlay(t *testing.T) {
	s := open(t, "typed-params")
	fn := s.Program().Get("body").([]any)[0].(*lazy.Node)
	require.Equal(t, "FunctionDeclaration", fn.TypeName())

	params := fn.Get("params").([]any)
	require.Len(t, params, 2)
	this := params[0].(*lazy.Node)
	assert.Equal(t, "this", this.Get("name"))

	a := params[1].(*lazy.Node)
	assert.Equal(t, "a", a.Get("name"))
	assert.Equal(t, true, a.Get("optional"))
	ann := a.Get("typeAnnotation").(*lazy.Node)
	assert.Equal(t, "TSTypeAnnotation", ann.TypeName())
	assert.Equal(t, "TSNumberKeyword", ann.Get("typeAnnotation").(*lazy.Node).TypeName())
	assert.Equal(t, 0, a.Get("decorators").(*lazy.List).Len())
	assert.Equal(t, []string{"type", "start", "end", "decorators", "name", "optional", "typeAnnotation"}, a.Keys())
}

func TestOverlayDuringWalk(t *testing.T) {
	s := open(t, "typed-params")
	var optional []any
	tab, err := visitor.Compile(visitor.Map{
		"Identifier": func(n visitor.Node) { optional = append(optional, n.Get("optional")) },
	})
	require.NoError(t, err)
	require.NoError(t, s.Walk(tab))
	assert.Equal(t, []any{false, false, true}, optional)
}

func TestWithClauseAttributes(t *testing.T) {
	const source = `import "b" with {t: "j"}`
	decl := func(with testbuf.M) testbuf.M {
		d := testbuf.M{
			"$":     "ImportDeclaration",
			"start": 0,
			"end":   24,
			"source": testbuf.M{
				"start": 7, "end": 10, "value": "b", "raw": `"b"`,
			},
		}
		if with != nil {
			d["withClause"] = with
		}
		return testbuf.M{"start": 0, "end": 24, "sourceType": "module", "statements": []any{d}}
	}

	s := openTree(t, source, schema.FlavorPlain, decl(testbuf.M{
		"attributes": []any{testbuf.M{
			"start": 17, "end": 23,
			"key":   testbuf.M{"$": "IdentifierName", "start": 17, "end": 18, "name": "t"},
			"value": testbuf.M{"start": 20, "end": 23, "value": "j", "raw": `"j"`},
		}},
	}))
	imp := s.Program().Get("body").([]any)[0].(*lazy.Node)
	attrs := imp.Get("attributes").(*lazy.List)
	require.Equal(t, 1, attrs.Len())
	attr := attrs.At(0).(*lazy.Node)
	assert.Equal(t, "ImportAttribute", attr.TypeName())
	assert.Equal(t, "t", attr.Get("key").(*lazy.Node).Get("name"))
	assert.Equal(t, 0, imp.Get("specifiers").(*lazy.List).Len())

	bare := openTree(t, source, schema.FlavorPlain, decl(nil))
	imp = bare.Program().Get("body").([]any)[0].(*lazy.Node)
	assert.Equal(t, 0, imp.Get("attributes").(*lazy.List).Len())
}

func TestTypedTemplateSpan(t *testing.T) {
	const source = "`a${b}c`"
	s := openTree(t, source, schema.FlavorTyped, testbuf.M{
		"start": 0, "end": 8, "sourceType": "module",
		"statements": []any{testbuf.M{
			"$": "ExpressionStatement", "start": 0, "end": 8,
			"expression": testbuf.M{
				"$": "TemplateLiteral", "start": 0, "end": 8,
				"quasis": []any{
					testbuf.M{"start": 1, "end": 2, "raw": "a", "cooked": "a"},
					testbuf.M{"start": 6, "end": 7, "raw": "c", "cooked": "c", "tail": true},
				},
				"expressions": []any{
					testbuf.M{"$": "IdentifierReference", "start": 4, "end": 5, "name": "b"},
				},
			},
		}},
	})
	stmt := s.Program().Get("body").([]any)[0].(*lazy.Node)
	quasis := stmt.Get("expression").(*lazy.Node).Get("quasis").(*lazy.List)
	head, tail := quasis.At(0).(*lazy.Node), quasis.At(1).(*lazy.Node)

	start, end := head.Span()
	assert.Equal(t, []uint32{0, 4}, []uint32{start, end})
	start, end = tail.Span()
	assert.Equal(t, []uint32{5, 8}, []uint32{start, end})
	assert.Equal(t, uint32(5), tail.Get("start"))
}

func TestDecodedHooks(t *testing.T) {
	s := open(t, "shorthand-target")
	forOf := s.Program().Get("body").([]any)[0].(*lazy.Node)
	prop := forOf.Get("left").(*lazy.Node).Get("properties").([]any)[0].(*lazy.Node)
	assert.Equal(t, "Property", prop.TypeName())
	assert.Equal(t, true, prop.Get("shorthand"))
	value, ok := prop.Get("value").(*ast.Node)
	require.True(t, ok, "value is %T", prop.Get("value"))
	assert.Equal(t, "a", value.Get("name"))
}
