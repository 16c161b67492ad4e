// Package visitor compiles a sparse map of node-type callbacks into a dense
// table indexed by node-type id.
//
// Keys are node type names ("CallExpression") for enter callbacks and the
// name with an ":exit" suffix for exit callbacks. A node type that can never
// have children gets a single leaf callback: registering both forms on it
// composes them, enter first. Several visitors can share one table through
// Add.
package visitor

import (
	"strings"

	"github.com/wippyai/rawtransfer/errors"
	"github.com/wippyai/rawtransfer/schema"
)

// ExitSuffix marks exit callbacks in visitor keys.
const ExitSuffix = ":exit"

// Node is what callbacks receive. Both decoded ast nodes and lazy views
// implement it.
type Node interface {
	TypeName() string
	Span() (start, end uint32)
	Get(key string) any
}

// Func is a compiled callback.
type Func func(Node) error

// Map is a visitor definition.
type Map map[string]any

// Entry holds the callbacks of one node type. Leaf is set for types without
// children; Enter and Exit otherwise.
type Entry struct {
	Leaf  Func
	Enter Func
	Exit  Func
}

// Table is a compiled visitor.
type Table struct {
	schema  *schema.Schema
	entries []*Entry
	count   int
}

// Option configures compilation.
type Option func(*Table)

// WithSchema resolves type names against s instead of schema.Default().
func WithSchema(s *schema.Schema) Option {
	return func(t *Table) { t.schema = s }
}

// NewTable returns an empty table. Visitors are merged into it with Add.
func NewTable(opts ...Option) *Table {
	t := &Table{}
	for _, opt := range opts {
		opt(t)
	}
	if t.schema == nil {
		t.schema = schema.Default()
	}
	t.entries = make([]*Entry, t.schema.NumNodeTypes())
	return t
}

// Compile builds a dispatch table from v, a Map or map[string]any whose
// values are func(Node) error, func(Node) or Func. Nil values are skipped.
func Compile(v any, opts ...Option) (*Table, error) {
	t := NewTable(opts...)
	if err := t.Add(v); err != nil {
		return nil, err
	}
	return t, nil
}

// Add merges another visitor into the table. Callbacks already registered
// for a node type run before the new ones, for enter and exit alike, and
// a leaf runs each visitor's enter and exit together. A visitor that fails
// to compile leaves the table unchanged.
func (t *Table) Add(v any) error {
	var m map[string]any
	switch v := v.(type) {
	case Map:
		m = v
	case map[string]any:
		m = v
	default:
		return errors.New(errors.PhaseCompile, errors.KindInvalidVisitor).
			Value(v).
			Detail("visitor must be an object, got %T", v).
			Build()
	}

	local := make(map[int]*Entry)
	for key, val := range m {
		if err := t.collect(local, key, val); err != nil {
			return err
		}
	}
	for id, add := range local {
		e := t.entries[id]
		if e == nil {
			e = &Entry{}
			t.entries[id] = e
			t.count++
		}
		if t.schema.IsLeaf(id) {
			e.Leaf = chain(e.Leaf, chain(add.Enter, add.Exit))
			continue
		}
		e.Enter = chain(e.Enter, add.Enter)
		e.Exit = chain(e.Exit, add.Exit)
	}
	return nil
}

// collect records one visitor key in local without touching the table.
func (t *Table) collect(local map[int]*Entry, key string, val any) error {
	if val == nil {
		return nil
	}
	fn, ok := toFunc(val)
	if !ok {
		return errors.NotFunction(errors.PhaseCompile, key, val)
	}

	name, exit := strings.CutSuffix(key, ExitSuffix)
	id, ok := t.schema.NodeTypeID(name)
	if !ok {
		return errors.UnknownType(errors.PhaseCompile, name)
	}

	e := local[id]
	if e == nil {
		e = &Entry{}
		local[id] = e
	}
	if exit {
		e.Exit = fn
	} else {
		e.Enter = fn
	}
	return nil
}

// chain runs first and then second, stopping at the first error.
func chain(first, second Func) Func {
	switch {
	case first == nil:
		return second
	case second == nil:
		return first
	}
	return func(n Node) error {
		if err := first(n); err != nil {
			return err
		}
		return second(n)
	}
}

func toFunc(v any) (Func, bool) {
	switch fn := v.(type) {
	case Func:
		return fn, fn != nil
	case func(Node) error:
		return fn, fn != nil
	case func(Node):
		if fn == nil {
			return nil, false
		}
		return func(n Node) error { fn(n); return nil }, true
	}
	return nil, false
}

// Entry returns the callbacks for node-type id, or nil.
func (t *Table) Entry(id int) *Entry {
	if id < 0 || id >= len(t.entries) {
		return nil
	}
	return t.entries[id]
}

// Lookup returns the callbacks for a node type name, or nil.
func (t *Table) Lookup(name string) *Entry {
	id, ok := t.schema.NodeTypeID(name)
	if !ok {
		return nil
	}
	return t.entries[id]
}

// Len returns the number of node types with callbacks.
func (t *Table) Len() int { return t.count }

// Schema returns the schema the table was compiled against.
func (t *Table) Schema() *schema.Schema { return t.schema }
