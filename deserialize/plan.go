package deserialize

import (
	"strconv"
	"sync"

	"github.com/wippyai/rawtransfer/ast"
	"github.com/wippyai/rawtransfer/errors"
	"github.com/wippyai/rawtransfer/schema"
)

// decodeFn decodes the value stored at pos.
type decodeFn func(s *Session, pos uint32) (any, error)

// plan holds one compiled decoder per schema type for one flavor.
// Plans are immutable once built.
type plan struct {
	flavor schema.Flavor
	cells  map[*schema.Type]*decodeFn
	fields map[*schema.Field]decodeFn
}

type planKey struct {
	schema *schema.Schema
	flavor schema.Flavor
}

var (
	plansMu sync.Mutex
	plans   = make(map[planKey]*plan)
)

func planFor(s *schema.Schema, f schema.Flavor) *plan {
	plansMu.Lock()
	defer plansMu.Unlock()

	key := planKey{s, f}
	if p, ok := plans[key]; ok {
		return p
	}
	p := &plan{
		flavor: f,
		cells:  make(map[*schema.Type]*decodeFn),
		fields: make(map[*schema.Field]decodeFn),
	}
	for _, t := range s.Types() {
		p.cell(t)
	}
	plans[key] = p
	return p
}

func (p *plan) decoder(t *schema.Type) decodeFn {
	return *p.cells[t]
}

// cell returns the slot holding t's decoder, compiling it on first use.
// The slot exists before compilation so recursive types resolve.
func (p *plan) cell(t *schema.Type) *decodeFn {
	if c, ok := p.cells[t]; ok {
		return c
	}
	c := new(decodeFn)
	p.cells[t] = c
	*c = p.compile(t)
	return c
}

func (p *plan) compile(t *schema.Type) decodeFn {
	switch t.Kind {
	case schema.KindBool:
		return func(s *Session, pos uint32) (any, error) { return s.Bool(pos), nil }
	case schema.KindU8:
		return func(s *Session, pos uint32) (any, error) { return s.U8(pos), nil }
	case schema.KindU32:
		return func(s *Session, pos uint32) (any, error) { return s.U32(pos), nil }
	case schema.KindF64:
		return func(s *Session, pos uint32) (any, error) { return s.F64(pos), nil }
	case schema.KindStr:
		return func(s *Session, pos uint32) (any, error) { return s.Str(pos), nil }
	case schema.KindPlain:
		return compilePlain(t)
	case schema.KindBox:
		elem := p.cell(t.Elem)
		return func(s *Session, pos uint32) (any, error) {
			return (*elem)(s, s.U32(pos))
		}
	case schema.KindVec:
		return p.compileVec(t)
	case schema.KindOption:
		et := t.Elem
		elem := p.cell(et)
		return func(s *Session, pos uint32) (any, error) {
			if schema.IsNone(s.buf, et, pos) {
				return nil, nil
			}
			return (*elem)(s, pos)
		}
	case schema.KindEnum:
		return p.compileEnum(t)
	case schema.KindStruct:
		return p.compileStruct(t)
	}
	return func(*Session, uint32) (any, error) {
		return nil, errors.Unsupported(errors.PhaseDecode, "type kind "+t.Kind.String())
	}
}

func compilePlain(t *schema.Type) decodeFn {
	name := t.Name
	values := t.Values
	return func(s *Session, pos uint32) (any, error) {
		b := s.U8(pos)
		if int(b) >= len(values) {
			return nil, errors.InvalidDiscriminant(errors.PhaseDecode, name, b, pos)
		}
		return values[b], nil
	}
}

func (p *plan) compileVec(t *schema.Type) decodeFn {
	elem := p.cell(t.Elem)
	stride := t.Elem.Size
	return func(s *Session, pos uint32) (any, error) {
		ptr, n := s.U32(pos), s.U32(pos+8)
		out := make([]any, n)
		for i := uint32(0); i < n; i++ {
			v, err := (*elem)(s, ptr+i*stride)
			if err != nil {
				return nil, errors.WithPath(err, "["+strconv.Itoa(int(i))+"]")
			}
			out[i] = v
		}
		return out, nil
	}
}

func (p *plan) compileEnum(t *schema.Type) decodeFn {
	var table [256]*decodeFn
	for _, v := range t.Variants {
		table[v.Disc] = p.cell(v.Payload)
	}
	name := t.Name
	return func(s *Session, pos uint32) (any, error) {
		d := s.U8(pos)
		fn := table[d]
		if fn == nil {
			return nil, errors.InvalidDiscriminant(errors.PhaseDecode, name, d, pos)
		}
		return (*fn)(s, pos+8)
	}
}

// member is one compiled output property of a struct.
type member struct {
	key     string
	target  int // index of the property an appending member extends, -1 otherwise
	prepend bool
	decode  decodeFn
}

func (p *plan) compileStruct(t *schema.Type) decodeFn {
	if t.Shape == schema.ShapeNull {
		return func(*Session, uint32) (any, error) { return nil, nil }
	}

	fields := t.Members(p.flavor)
	members := make([]member, 0, len(fields))
	index := make(map[string]int)
	for _, f := range fields {
		m := member{key: f.Key, target: -1, prepend: f.Prepend, decode: p.compileField(f)}
		p.fields[f] = m.decode
		switch {
		case f.Append:
			m.target = index[f.Key]
		case !f.Prepend:
			index[f.Key] = len(index)
		}
		members = append(members, m)
	}

	assemble := func(s *Session, pos uint32) ([]ast.Prop, error) {
		props := make([]ast.Prop, 0, len(index))
		var held []ast.Prop
		for i := range members {
			m := &members[i]
			v, err := m.decode(s, pos)
			if err != nil {
				return nil, err
			}
			switch {
			case m.prepend:
				held = append(held, ast.Prop{Key: m.key, Value: v})
				continue
			case m.target >= 0:
				props[m.target].Value = concat(props[m.target].Value, v)
				continue
			}
			if len(held) > 0 {
				v, held = release(held, m.key, v)
			}
			props = append(props, ast.Prop{Key: m.key, Value: v})
		}
		return props, nil
	}

	hook := hookFor(t.Hook)
	typeName := t.Name
	finish := func(s *Session, t *schema.Type, pos uint32, n *ast.Node) (any, error) {
		if hook == nil {
			return n, nil
		}
		v, err := hook(s, t, pos, n)
		if err != nil {
			return nil, errors.WithPath(err, typeName)
		}
		return v, nil
	}

	switch t.Shape {
	case schema.ShapeTransparent:
		return func(s *Session, pos uint32) (any, error) {
			props, err := assemble(s, pos)
			if err != nil {
				return nil, err
			}
			return props[0].Value, nil
		}
	case schema.ShapeList:
		return func(s *Session, pos uint32) (any, error) {
			props, err := assemble(s, pos)
			if err != nil {
				return nil, err
			}
			out := []any{}
			for _, pr := range props {
				out = concat(out, pr.Value)
			}
			return out, nil
		}
	case schema.ShapeRecord:
		spanned := hasSpan(fields)
		return func(s *Session, pos uint32) (any, error) {
			props, err := assemble(s, pos)
			if err != nil {
				return nil, err
			}
			o := &ast.Object{Props: props}
			if spanned && s.ranges {
				o.Props = append(o.Props, ast.Prop{Key: "range", Value: []any{o.Get("start"), o.Get("end")}})
			}
			return o, nil
		}
	case schema.ShapeMerge:
		return func(s *Session, pos uint32) (any, error) {
			props, err := assemble(s, pos)
			if err != nil {
				return nil, err
			}
			base, ok := props[0].Value.(*ast.Node)
			if !ok {
				return nil, errors.InvalidData(errors.PhaseDecode, []string{typeName}, "merge base is not a node")
			}
			for _, pr := range props[1:] {
				base.Set(pr.Key, pr.Value)
			}
			return base, nil
		}
	case schema.ShapeCustom:
		return func(s *Session, pos uint32) (any, error) {
			props, err := assemble(s, pos)
			if err != nil {
				return nil, err
			}
			return finish(s, t, pos, s.node("", s.U32(pos), s.U32(pos+4), props...))
		}
	}

	return func(s *Session, pos uint32) (any, error) {
		nodeType := t.NodeType
		if tf := t.TypeField; tf != nil {
			b := s.U8(pos + tf.Offset)
			if nodeType = t.OutputType(b); nodeType == "" {
				return nil, errors.InvalidDiscriminant(errors.PhaseDecode, tf.Type.Name, b, pos+tf.Offset)
			}
		}
		props, err := assemble(s, pos)
		if err != nil {
			return nil, err
		}
		return finish(s, t, pos, s.node(nodeType, s.U32(pos), s.U32(pos+4), props...))
	}
}

// release splices held values for key ahead of v and drops them from held.
func release(held []ast.Prop, key string, v any) (any, []ast.Prop) {
	var out []any
	rest := held[:0]
	for _, h := range held {
		if h.Key == key {
			out = concat(out, h.Value)
			continue
		}
		rest = append(rest, h)
	}
	if out == nil {
		return v, rest
	}
	return concat(out, v), rest
}

func hasSpan(fields []*schema.Field) bool {
	var start, end bool
	for _, f := range fields {
		start = start || f.Key == "start"
		end = end || f.Key == "end"
	}
	return start && end
}

// node builds a node carrying the session's range setting.
func (s *Session) node(typ string, start, end uint32, props ...ast.Prop) *ast.Node {
	return &ast.Node{Type: typ, Start: start, End: end, Props: props, Range: s.ranges}
}

func (p *plan) compileField(f *schema.Field) decodeFn {
	switch f.Const {
	case schema.ConstValue:
		v := f.Value
		return func(*Session, uint32) (any, error) { return v, nil }
	case schema.ConstEmptyList:
		return func(*Session, uint32) (any, error) { return []any{}, nil }
	}

	off := f.Offset
	inner := p.cell(f.Type)
	fn := func(s *Session, pos uint32) (any, error) {
		return (*inner)(s, pos+off)
	}

	if f.Escape >= 0 {
		flag := uint32(f.Escape)
		base := fn
		fn = func(s *Session, pos uint32) (any, error) {
			v, err := base(s, pos)
			if err == nil && s.Bool(pos+flag) {
				if str, ok := v.(string); ok {
					v = unescapeLossy(str)
				}
			}
			return v, err
		}
	}

	if f.EmptyIfNil {
		base := fn
		fn = func(s *Session, pos uint32) (any, error) {
			v, err := base(s, pos)
			if err == nil && v == nil {
				v = []any{}
			}
			return v, err
		}
	}

	if flag := f.UnwrapFlag(); flag >= 0 {
		ft, path := f.Type, f.Unwrap
		base := fn
		fn = func(s *Session, pos uint32) (any, error) {
			if s.Bool(pos + uint32(flag)) {
				if t, tpos, ok := schema.Follow(s.buf, ft, pos+off, path); ok {
					return (*p.cells[t])(s, tpos)
				}
			}
			return base(s, pos)
		}
	}

	if len(f.Select) > 0 {
		ft, path := f.Type, f.Select
		fn = func(s *Session, pos uint32) (any, error) {
			if t, tpos, ok := schema.Follow(s.buf, ft, pos+off, path); ok {
				return (*p.cells[t])(s, tpos)
			}
			return []any{}, nil
		}
	}

	seg := f.Key
	base := fn
	return func(s *Session, pos uint32) (any, error) {
		v, err := base(s, pos)
		if err != nil {
			return nil, errors.WithPath(err, seg)
		}
		return v, nil
	}
}

// concat appends v to the list a. Lists are spliced, nil is dropped and any
// other value is one element.
func concat(a, v any) []any {
	list, _ := a.([]any)
	switch v := v.(type) {
	case nil:
	case []any:
		list = append(list, v...)
	default:
		list = append(list, v)
	}
	return list
}
