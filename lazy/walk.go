package lazy

import (
	"sync"

	"github.com/wippyai/rawtransfer/errors"
	"github.com/wippyai/rawtransfer/schema"
	"github.com/wippyai/rawtransfer/visitor"
)

// walkFn traverses the value stored at pos.
type walkFn func(w *walker, pos uint32) error

type walker struct {
	s     *Session
	table *visitor.Table
	plan  *walkPlan
}

// walkPlan holds one traversal function per walkable type for one flavor.
type walkPlan struct {
	flavor schema.Flavor
	cells  map[*schema.Type]*walkFn
}

type walkKey struct {
	schema *schema.Schema
	flavor schema.Flavor
}

var (
	walkPlansMu sync.Mutex
	walkPlans   = make(map[walkKey]*walkPlan)

	skip walkFn = func(*walker, uint32) error { return nil }
)

func walkPlanFor(s *schema.Schema, f schema.Flavor) *walkPlan {
	walkPlansMu.Lock()
	defer walkPlansMu.Unlock()

	key := walkKey{s, f}
	if p, ok := walkPlans[key]; ok {
		return p
	}
	p := &walkPlan{flavor: f, cells: make(map[*schema.Type]*walkFn)}
	for _, t := range s.Types() {
		p.cell(t)
	}
	walkPlans[key] = p
	return p
}

// Walk runs table over the program, depth first. Callbacks fire only for
// node types registered in the table, and a view is built only for them.
// A callback error stops the walk and is returned as is.
func (s *Session) Walk(table *visitor.Table) error {
	if table.Schema() != s.dec.Schema() {
		return errors.InvalidInput(errors.PhaseWalk, "visitor table was compiled against a different schema")
	}
	w := &walker{s: s, table: table, plan: walkPlanFor(s.dec.Schema(), s.dec.Flavor())}
	return w.run(s.dec.Schema().Program, s.dec.ProgramPos())
}

func (w *walker) run(t *schema.Type, pos uint32) error {
	return (*w.plan.lookup(t))(w, pos)
}

func (p *walkPlan) lookup(t *schema.Type) *walkFn {
	if c, ok := p.cells[t]; ok {
		return c
	}
	return &skip
}

func (p *walkPlan) cell(t *schema.Type) *walkFn {
	if !t.Walk() {
		return &skip
	}
	if c, ok := p.cells[t]; ok {
		return c
	}
	c := new(walkFn)
	p.cells[t] = c
	*c = p.compile(t)
	return c
}

func (p *walkPlan) compile(t *schema.Type) walkFn {
	switch t.Kind {
	case schema.KindBox:
		elem := p.cell(t.Elem)
		return func(w *walker, pos uint32) error {
			return (*elem)(w, w.s.dec.U32(pos))
		}
	case schema.KindOption:
		et := t.Elem
		elem := p.cell(et)
		return func(w *walker, pos uint32) error {
			if schema.IsNone(w.s.dec.Buffer(), et, pos) {
				return nil
			}
			return (*elem)(w, pos)
		}
	case schema.KindVec:
		elem := p.cell(t.Elem)
		stride := t.Elem.Size
		return func(w *walker, pos uint32) error {
			ptr, n := w.s.dec.U32(pos), w.s.dec.U32(pos+8)
			for i := uint32(0); i < n; i++ {
				if err := (*elem)(w, ptr+i*stride); err != nil {
					return err
				}
			}
			return nil
		}
	case schema.KindEnum:
		var table [256]*walkFn
		for _, v := range t.Variants {
			table[v.Disc] = p.cell(v.Payload)
		}
		name := t.Name
		return func(w *walker, pos uint32) error {
			d := w.s.dec.U8(pos)
			fn := table[d]
			if fn == nil {
				return errors.InvalidDiscriminant(errors.PhaseWalk, name, d, pos)
			}
			return (*fn)(w, pos+8)
		}
	case schema.KindStruct:
		return p.compileStruct(t)
	}
	return skip
}

func (p *walkPlan) compileStruct(t *schema.Type) walkFn {
	members := t.Members(p.flavor)
	if t.Shape == schema.ShapeTransparent && len(members) > 0 {
		members = members[:1]
	}
	overlays := p.overlays(t, members)
	var children []walkFn
	for _, f := range members {
		if f.Const == schema.NotConst && f.Walk() {
			children = append(children, p.compileField(f))
		}
	}
	walkChildren := func(w *walker, pos uint32) error {
		if overlays != nil {
			overlays(w.s, pos)
		}
		for _, c := range children {
			if err := c(w, pos); err != nil {
				return err
			}
		}
		return nil
	}
	if !t.IsNode() {
		return walkChildren
	}

	tf := t.TypeField
	return func(w *walker, pos uint32) error {
		var b uint8
		if tf != nil {
			b = w.s.dec.U8(pos + tf.Offset)
		}
		id := t.NodeID(b)
		if id < 0 {
			return errors.InvalidDiscriminant(errors.PhaseWalk, tf.Type.Name, b, pos+tf.Offset)
		}

		e := w.table.Entry(id)
		switch {
		case e == nil:
			return walkChildren(w, pos)
		case e.Leaf != nil:
			return e.Leaf(w.s.node(t, pos))
		}

		n := w.s.node(t, pos)
		if e.Enter != nil {
			if err := e.Enter(n); err != nil {
				return err
			}
		}
		if err := walkChildren(w, pos); err != nil {
			return err
		}
		if e.Exit != nil {
			return e.Exit(n)
		}
		return nil
	}
}

// overlays returns the step that attaches the typed members of merged
// patterns and parameters to the node they wrap, so callbacks see them
// during the walk. It is nil when t wraps nothing.
func (p *walkPlan) overlays(t *schema.Type, members []*schema.Field) func(*Session, uint32) {
	if p.flavor != schema.FlavorTyped {
		return nil
	}
	switch {
	case t.Shape == schema.ShapeMerge && len(members) > 1:
		return func(s *Session, pos uint32) { s.wrap(t, pos, members[1:]) }
	case t.Shape == schema.ShapeCustom && t.Hook == schema.HookFormalParameter:
		pf, df := t.Field("pattern"), t.Field("decorators")
		return func(s *Session, pos uint32) {
			if !modified(s.dec, t, pos) {
				s.wrapAt(pf.Type, pos+pf.Offset, []overlay{{f: df, pos: pos}})
			}
		}
	}
	return nil
}

func (p *walkPlan) compileField(f *schema.Field) walkFn {
	off := f.Offset
	inner := p.cell(f.Type)
	flag := f.UnwrapFlag()
	if flag < 0 {
		return func(w *walker, pos uint32) error {
			return (*inner)(w, pos+off)
		}
	}
	ft, path := f.Type, f.Unwrap
	return func(w *walker, pos uint32) error {
		if w.s.dec.Bool(pos + uint32(flag)) {
			if t, tpos, ok := schema.Follow(w.s.dec.Buffer(), ft, pos+off, path); ok {
				return w.run(t, tpos)
			}
		}
		return (*inner)(w, pos+off)
	}
}
