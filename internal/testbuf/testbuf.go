// Package testbuf encodes value trees into transfer buffers the way a
// producer would, driven by the same schema the decoders use.
//
// Values are maps keyed by layout field names. "$" names the struct when
// an enum slot must pick a variant, "#" forces a raw discriminant and
// "start"/"end" give a node span. A nil value encodes an absent option.
// Wrapper structs that are not nodes themselves, such as a binding pattern
// around its kind, accept the wrapped value directly.
package testbuf

import (
	"fmt"
	"math"
	"strings"

	"github.com/wippyai/rawtransfer/buffer"
	"github.com/wippyai/rawtransfer/schema"
)

// M is one struct or enum value.
type M = map[string]any

// Builder encodes trees for one source text.
type Builder struct {
	schema   *schema.Schema
	source   string
	flavor   schema.Flavor
	inSource bool

	data []byte
}

// New returns a builder for source in the given flavor.
func New(s *schema.Schema, source string, flavor schema.Flavor) *Builder {
	return &Builder{schema: s, source: source, flavor: flavor, inSource: true}
}

// NoSourceStrings stores every string in the arena instead of pointing
// into the source text.
func (b *Builder) NoSourceStrings() *Builder {
	b.inSource = false
	return b
}

// Encode returns a standalone buffer holding root, a RawTransferData value.
func (b *Builder) Encode(root M) (*buffer.Buffer, error) {
	rootPos, err := b.build(root)
	if err != nil {
		return nil, err
	}
	buf := buffer.New(len(b.data) + buffer.TrailerSize + 16)
	b.finish(buf, rootPos)
	return buf, nil
}

// EncodeInto writes root into buf, which must be large enough.
func (b *Builder) EncodeInto(buf *buffer.Buffer, root M) error {
	rootPos, err := b.build(root)
	if err != nil {
		return err
	}
	if uint32(len(b.data)) > buf.DataLimit() {
		return fmt.Errorf("testbuf: tree needs %d bytes, buffer holds %d", len(b.data), buf.DataLimit())
	}
	buf.Clear(buf.Len())
	b.finish(buf, rootPos)
	return nil
}

func (b *Builder) finish(buf *buffer.Buffer, rootPos uint32) {
	buf.Write(0, b.data)
	buf.SetTrailer(buffer.Trailer{Root: rootPos, IsTS: b.flavor == schema.FlavorTyped})
}

func (b *Builder) build(root M) (uint32, error) {
	b.data = append(b.data[:0], b.source...)
	if len(b.data) < 8 {
		b.data = append(b.data, make([]byte, 8-len(b.data))...)
	}
	t := b.schema.Root
	pos := b.alloc(t.Size)
	if err := b.encode(t, pos, root); err != nil {
		return 0, err
	}
	return pos, nil
}

// alloc reserves n zeroed bytes at an 8-aligned position.
func (b *Builder) alloc(n uint32) uint32 {
	for len(b.data)%8 != 0 {
		b.data = append(b.data, 0)
	}
	pos := uint32(len(b.data))
	b.data = append(b.data, make([]byte, n)...)
	return pos
}

func (b *Builder) put32(pos, v uint32) {
	b.data[pos] = byte(v)
	b.data[pos+1] = byte(v >> 8)
	b.data[pos+2] = byte(v >> 16)
	b.data[pos+3] = byte(v >> 24)
}

func (b *Builder) putStr(pos uint32, s string) {
	var ptr uint32
	if i := strings.Index(b.source, s); b.inSource && s != "" && i >= 0 {
		ptr = uint32(i)
	} else {
		ptr = b.alloc(uint32(len(s)))
		copy(b.data[ptr:], s)
	}
	b.put32(pos, ptr)
	b.put32(pos+8, uint32(len(s)))
}

func (b *Builder) encode(t *schema.Type, pos uint32, v any) error {
	switch t.Kind {
	case schema.KindBool:
		if v == true {
			b.data[pos] = 1
		}
	case schema.KindU8:
		n, err := toInt(v)
		if err != nil {
			return err
		}
		b.data[pos] = byte(n)
	case schema.KindU32:
		n, err := toInt(v)
		if err != nil {
			return err
		}
		b.put32(pos, uint32(n))
	case schema.KindF64:
		f, err := toFloat(v)
		if err != nil {
			return err
		}
		bits := math.Float64bits(f)
		b.put32(pos, uint32(bits))
		b.put32(pos+4, uint32(bits>>32))
	case schema.KindStr:
		s, _ := v.(string)
		b.putStr(pos, s)
	case schema.KindPlain:
		return b.encodePlain(t, pos, v)
	case schema.KindBox:
		ptr := b.alloc(t.Elem.Size)
		b.put32(pos, ptr)
		return b.encode(t.Elem, ptr, v)
	case schema.KindVec:
		list, _ := v.([]any)
		stride := t.Elem.Size
		ptr := b.alloc(stride * uint32(len(list)))
		b.put32(pos, ptr)
		b.put32(pos+8, uint32(len(list)))
		for i, e := range list {
			if err := b.encode(t.Elem, ptr+uint32(i)*stride, e); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
	case schema.KindOption:
		if v == nil {
			return b.encodeNone(t.Elem, pos)
		}
		return b.encode(t.Elem, pos, v)
	case schema.KindEnum:
		return b.encodeEnum(t, pos, v)
	case schema.KindStruct:
		return b.encodeStruct(t, pos, v)
	}
	return nil
}

func (b *Builder) encodeNone(t *schema.Type, pos uint32) error {
	switch n := t.Niche; n.Kind {
	case schema.NichePointer:
		b.put32(pos+n.Offset, 0)
		b.put32(pos+n.Offset+4, 0)
	case schema.NicheByte:
		b.data[pos+n.Offset] = n.Value
	default:
		return fmt.Errorf("testbuf: %s has no niche", t.Name)
	}
	return nil
}

func (b *Builder) encodePlain(t *schema.Type, pos uint32, v any) error {
	if s, ok := v.(string); ok {
		for i, val := range t.Values {
			if val == s {
				b.data[pos] = byte(i)
				return nil
			}
		}
		return fmt.Errorf("testbuf: %q is not a %s value", s, t.Name)
	}
	if v == nil {
		return nil
	}
	n, err := toInt(v)
	if err != nil {
		return err
	}
	b.data[pos] = byte(n)
	return nil
}

func (b *Builder) encodeEnum(t *schema.Type, pos uint32, v any) error {
	m, ok := v.(M)
	if !ok {
		return fmt.Errorf("testbuf: %s needs a map value, got %T", t.Name, v)
	}
	if d, ok := m["#"]; ok {
		n, err := toInt(d)
		if err != nil {
			return err
		}
		b.data[pos] = byte(n)
		if vr := t.Table[byte(n)]; vr != nil {
			return b.encode(vr.Payload, pos+8, m)
		}
		return nil
	}
	name, _ := m["$"].(string)
	for _, vr := range t.Variants {
		st := vr.Payload
		if st.Kind == schema.KindBox {
			st = st.Elem
		}
		if st.Name == name {
			b.data[pos] = vr.Disc
			return b.encode(vr.Payload, pos+8, m)
		}
	}
	return fmt.Errorf("testbuf: %s has no variant %q", t.Name, name)
}

func (b *Builder) encodeStruct(t *schema.Type, pos uint32, v any) error {
	m, _ := v.(M)
	if name, ok := m["$"].(string); ok && name != t.Name {
		if inner := wrapped(t); inner != nil {
			return b.encodeStruct(t, pos, M{inner.Name: m})
		}
		return fmt.Errorf("testbuf: expected %s, got %s", t.Name, name)
	}
	if spanSlot(t) {
		for i, key := range []string{"start", "end"} {
			if sv, ok := m[key]; ok {
				n, err := toInt(sv)
				if err != nil {
					return err
				}
				b.put32(pos+uint32(i*4), uint32(n))
			}
		}
	}
	for k := range m {
		switch k {
		case "$", "#", "start", "end":
			continue
		}
		if f := t.Field(k); f == nil || f.Const != schema.NotConst {
			return fmt.Errorf("testbuf: %s has no layout field %q", t.Name, k)
		}
	}
	for _, f := range t.Fields {
		if f.Const != schema.NotConst {
			continue
		}
		fv, ok := m[f.Name]
		if !ok {
			if err := b.zero(f.Type, pos+f.Offset); err != nil {
				return fmt.Errorf("%s.%s: %w", t.Name, f.Name, err)
			}
			continue
		}
		if err := b.encode(f.Type, pos+f.Offset, fv); err != nil {
			return fmt.Errorf("%s.%s: %w", t.Name, f.Name, err)
		}
	}
	return nil
}

// spanSlot reports whether the first 8 bytes of t hold an implicit span.
func spanSlot(t *schema.Type) bool {
	for _, f := range t.Fields {
		if f.Const == schema.NotConst && f.Offset < 8 {
			return false
		}
	}
	return t.Size >= 8
}

// wrapped returns the field a wrapper struct holds its value in: the first
// field reaching a struct or enum, for structs that decode to something
// other than their own node.
func wrapped(t *schema.Type) *schema.Field {
	switch t.Shape {
	case schema.ShapeTransparent, schema.ShapeMerge, schema.ShapeCustom:
	default:
		return nil
	}
	for _, f := range t.Fields {
		if f.Const != schema.NotConst {
			continue
		}
		ft := f.Type
		for ft.Kind == schema.KindBox || ft.Kind == schema.KindOption {
			ft = ft.Elem
		}
		if ft.Kind == schema.KindStruct || ft.Kind == schema.KindEnum {
			return f
		}
	}
	return nil
}

// zero encodes the value a missing field stands for.
func (b *Builder) zero(t *schema.Type, pos uint32) error {
	switch t.Kind {
	case schema.KindOption:
		return b.encodeNone(t.Elem, pos)
	case schema.KindVec, schema.KindStr:
		return b.encode(t, pos, nil)
	case schema.KindStruct:
		return b.encodeStruct(t, pos, M{})
	case schema.KindBox, schema.KindEnum:
		return fmt.Errorf("testbuf: required %s missing", t.Name)
	}
	return nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint32:
		return int(n), nil
	case float64:
		return int(n), nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("testbuf: want integer, got %T", v)
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case string:
		switch n {
		case "NaN":
			return math.NaN(), nil
		case "Infinity":
			return math.Inf(1), nil
		}
	}
	return 0, fmt.Errorf("testbuf: want number, got %T", v)
}
