package lazy

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wippyai/rawtransfer/ast"
	"github.com/wippyai/rawtransfer/buffer"
	"github.com/wippyai/rawtransfer/deserialize"
	"github.com/wippyai/rawtransfer/errors"
	"github.com/wippyai/rawtransfer/schema"
)

// Session gives view access to one buffer.
type Session struct {
	id   uuid.UUID
	dec  *deserialize.Session
	pool *buffer.Pool
	gen  uint64

	nodes    map[viewKey]*Node
	overlays map[viewKey][]overlay
	views    int
	disposed bool
}

type viewKey struct {
	t   *schema.Type
	pos uint32
}

// overlay is a member of an enclosing struct that replaces or extends a
// key of the node it wraps, such as the type annotation of a binding.
type overlay struct {
	f   *schema.Field
	pos uint32
}

type config struct {
	pool   *buffer.Pool
	schema *schema.Schema
}

// Option configures a Session.
type Option func(*config)

// WithPool makes Dispose return the buffer to p.
func WithPool(p *buffer.Pool) Option {
	return func(c *config) { c.pool = p }
}

// WithSchema reads against s instead of schema.Default().
func WithSchema(s *schema.Schema) Option {
	return func(c *config) { c.schema = s }
}

// Open validates buf and returns a session over it.
func Open(buf *buffer.Buffer, source string, opts ...Option) (*Session, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	var dopts []deserialize.Option
	if cfg.schema != nil {
		dopts = append(dopts, deserialize.WithSchema(cfg.schema))
	}
	dec, err := deserialize.NewSession(buf, source, uint32(len(source)), dopts...)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:    uuid.New(),
		dec:   dec,
		pool:  cfg.pool,
		gen:   buf.Generation(),
		nodes:    make(map[viewKey]*Node),
		overlays: make(map[viewKey][]overlay),
	}
	Logger().Debug("session opened",
		zap.String("session", s.id.String()),
		zap.Int("buffer", buf.ID()),
		zap.Stringer("flavor", dec.Flavor()))
	return s, nil
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID { return s.id }

// Flavor returns the flavor recorded in the buffer.
func (s *Session) Flavor() schema.Flavor { return s.dec.Flavor() }

// Schema returns the schema the session reads against.
func (s *Session) Schema() *schema.Schema { return s.dec.Schema() }

// Live reports whether the session has not been disposed and its buffer
// is still in the generation the session was opened on.
func (s *Session) Live() bool {
	return !s.disposed && s.dec.Buffer().Generation() == s.gen
}

// Program returns the view of the program node.
func (s *Session) Program() *Node {
	return s.node(s.dec.Schema().Program, s.dec.ProgramPos())
}

// Comments returns the comment list of the buffer.
func (s *Session) Comments() *List {
	f := s.dec.Schema().Root.Field("comments")
	pos := s.dec.Root() + f.Offset
	return s.list(f.Type, pos)
}

// Errors decodes the diagnostics recorded in the buffer.
func (s *Session) Errors() ([]*ast.Object, error) {
	f := s.dec.Schema().Root.Field("errors")
	v, err := s.dec.DecodeType(f.Type, s.dec.Root()+f.Offset)
	if err != nil {
		return nil, errors.WithPath(err, f.Name)
	}
	list, _ := v.([]any)
	out := make([]*ast.Object, 0, len(list))
	for _, e := range list {
		if o, ok := e.(*ast.Object); ok {
			out = append(out, o)
		}
	}
	return out, nil
}

// Views returns how many node views the session has built.
func (s *Session) Views() int { return s.views }

// Cached returns the number of node views currently held by the session.
func (s *Session) Cached() int { return len(s.nodes) }

// Dispose drops cached views and returns the buffer to the pool the
// session was opened with.
func (s *Session) Dispose() error {
	if s.disposed {
		return errors.New(errors.PhasePool, errors.KindDoubleRelease).
			Detail("session %s disposed twice", s.id).
			Build()
	}
	s.disposed = true
	clear(s.nodes)
	clear(s.overlays)
	Logger().Debug("session disposed",
		zap.String("session", s.id.String()),
		zap.Int("views", s.views))
	if s.pool == nil {
		return nil
	}
	return s.pool.Release(s.dec.Buffer())
}

// node returns the view of the node struct t at pos, building it once.
func (s *Session) node(t *schema.Type, pos uint32) *Node {
	key := viewKey{t, pos}
	if n, ok := s.nodes[key]; ok {
		return n
	}
	n := &Node{s: s, t: t, pos: pos, name: t.NodeType, over: s.overlays[key]}
	if tf := t.TypeField; tf != nil {
		n.name = t.OutputType(s.dec.U8(pos + tf.Offset))
	}
	s.nodes[key] = n
	s.views++
	return n
}

func (s *Session) list(t *schema.Type, pos uint32) *List {
	return &List{s: s, elem: t.Elem, ptr: s.dec.U32(pos), n: s.dec.U32(pos + 8)}
}

// field reads one output member of the struct at pos. Members that can hold
// nodes yield views, everything else is decoded.
func (s *Session) field(f *schema.Field, pos uint32) (any, error) {
	if f.Const != schema.NotConst || !f.Walk() {
		return s.dec.DecodeField(f, pos)
	}
	t, p := f.Type, pos+f.Offset
	if len(f.Select) > 0 {
		st, sp, ok := schema.Follow(s.dec.Buffer(), t, p, f.Select)
		if !ok {
			return &List{s: s}, nil
		}
		t, p = st, sp
	}
	if flag := f.UnwrapFlag(); flag >= 0 && s.dec.Bool(pos+uint32(flag)) {
		if ut, up, ok := schema.Follow(s.dec.Buffer(), t, p, f.Unwrap); ok {
			t, p = ut, up
		}
	}
	v, err := s.value(t, p)
	if err != nil {
		return nil, errors.WithPath(err, f.Key)
	}
	if v == nil && f.EmptyIfNil {
		return &List{s: s}, nil
	}
	return v, nil
}

// value resolves the slot of type t at pos to a view, a list or a decoded
// scalar.
func (s *Session) value(t *schema.Type, pos uint32) (any, error) {
	for {
		switch t.Kind {
		case schema.KindBox:
			t, pos = t.Elem, s.dec.U32(pos)
		case schema.KindOption:
			if s.dec.IsNone(t, pos) {
				return nil, nil
			}
			t = t.Elem
		case schema.KindEnum:
			d := s.dec.U8(pos)
			v := t.Table[d]
			if v == nil {
				return nil, errors.InvalidDiscriminant(errors.PhaseDecode, t.Name, d, pos)
			}
			t, pos = v.Payload, pos+8
		case schema.KindVec:
			return s.list(t, pos), nil
		case schema.KindStruct:
			return s.structValue(t, pos)
		default:
			return s.dec.DecodeType(t, pos)
		}
	}
}

func (s *Session) structValue(t *schema.Type, pos uint32) (any, error) {
	switch t.Shape {
	case schema.ShapeNode:
		if t.TypeField != nil && t.OutputType(s.dec.U8(pos+t.TypeField.Offset)) == "" {
			b := s.dec.U8(pos + t.TypeField.Offset)
			return nil, errors.InvalidDiscriminant(errors.PhaseDecode, t.TypeField.Type.Name, b, pos+t.TypeField.Offset)
		}
		return s.node(t, pos), nil
	case schema.ShapeNull:
		return nil, nil
	case schema.ShapeTransparent:
		members := t.Members(s.dec.Flavor())
		if len(members) == 0 {
			return nil, nil
		}
		return s.field(members[0], pos)
	case schema.ShapeMerge:
		members := t.Members(s.dec.Flavor())
		s.wrap(t, pos, members[1:])
		return s.field(members[0], pos)
	case schema.ShapeCustom:
		if t.Hook == schema.HookFormalParameter {
			return s.parameter(t, pos)
		}
	case schema.ShapeList:
		out := []any{}
		for _, f := range t.Members(s.dec.Flavor()) {
			v, err := s.field(f, pos)
			if err != nil {
				return nil, err
			}
			out = splice(out, v)
		}
		return out, nil
	}
	return s.dec.DecodeType(t, pos)
}

// parameter resolves a formal parameter to the view of its pattern. Typed
// parameters carrying modifiers are decoded, as they become parameter
// properties.
func (s *Session) parameter(t *schema.Type, pos uint32) (any, error) {
	pf := t.Field("pattern")
	if s.dec.Flavor() == schema.FlavorTyped {
		if modified(s.dec, t, pos) {
			return s.dec.DecodeType(t, pos)
		}
		s.wrapAt(pf.Type, pos+pf.Offset, []overlay{{f: t.Field("decorators"), pos: pos}})
	}
	return s.value(pf.Type, pos+pf.Offset)
}

// modified reports whether a typed parameter has an accessibility,
// readonly or override modifier.
func modified(d *deserialize.Session, t *schema.Type, pos uint32) bool {
	acc := t.Field("accessibility")
	return !d.IsNone(acc.Type, pos+acc.Offset) ||
		d.Bool(pos+t.Field("readonly").Offset) ||
		d.Bool(pos+t.Field("override").Offset)
}

// wrap records the members after the base of the merged struct t at pos as
// overlays of the base node.
func (s *Session) wrap(t *schema.Type, pos uint32, extra []*schema.Field) {
	if len(extra) == 0 {
		return
	}
	over := make([]overlay, len(extra))
	for i, f := range extra {
		over[i] = overlay{f: f, pos: pos}
	}
	base := t.Members(s.dec.Flavor())[0]
	s.wrapAt(base.Type, pos+base.Offset, over)
}

// wrapAt attaches over to the node the slot of type t at pos designates.
// Merged structs on the way pass their own overlays down as well.
func (s *Session) wrapAt(t *schema.Type, pos uint32, over []overlay) {
	bt, bpos, ok := schema.Deref(s.dec.Buffer(), t, pos)
	if !ok {
		return
	}
	if bt.Shape == schema.ShapeMerge {
		members := bt.Members(s.dec.Flavor())
		s.wrap(bt, bpos, members[1:])
		s.wrapAt(members[0].Type, bpos+members[0].Offset, over)
		return
	}
	key := viewKey{bt, bpos}
	if s.hasOverlays(key, over) {
		return
	}
	s.overlays[key] = append(s.overlays[key], over...)
	if n, ok := s.nodes[key]; ok {
		n.over = s.overlays[key]
	}
}

func (s *Session) hasOverlays(key viewKey, over []overlay) bool {
	for _, o := range s.overlays[key] {
		if o == over[0] {
			return true
		}
	}
	return false
}

// splice appends v to list, expanding lists and dropping nil.
func splice(list []any, v any) []any {
	switch v := v.(type) {
	case nil:
	case []any:
		list = append(list, v...)
	case *List:
		list = append(list, v.Values()...)
	default:
		list = append(list, v)
	}
	return list
}
