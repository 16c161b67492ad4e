package schema

// Reader is the subset of buffer access the schema needs to follow paths.
type Reader interface {
	U8(pos uint32) uint8
	U32(pos uint32) uint32
}

// Follow starts at a slot holding a value of type t and steps through path,
// one struct field name per step. Boxes are dereferenced, enums descend into
// their payload and vectors into their first element along the way.
// It returns the type and position of the final field's slot.
func Follow(r Reader, t *Type, pos uint32, path []string) (*Type, uint32, bool) {
	for _, name := range path {
		st, spos, ok := toStruct(r, t, pos)
		if !ok {
			return nil, 0, false
		}
		f := st.Field(name)
		if f == nil || f.Const != NotConst {
			return nil, 0, false
		}
		t, pos = f.Type, spos+f.Offset
	}
	return t, pos, true
}

// Deref resolves the slot at pos to the struct it designates: boxes are
// dereferenced, enums and present options descend, vectors yield their
// first element. It fails on absent options and empty vectors.
func Deref(r Reader, t *Type, pos uint32) (*Type, uint32, bool) {
	return toStruct(r, t, pos)
}

func toStruct(r Reader, t *Type, pos uint32) (*Type, uint32, bool) {
	for {
		switch t.Kind {
		case KindStruct:
			return t, pos, true
		case KindBox:
			t, pos = t.Elem, r.U32(pos)
		case KindVec:
			if r.U32(pos+8) == 0 {
				return nil, 0, false
			}
			t, pos = t.Elem, r.U32(pos)
		case KindOption:
			if IsNone(r, t.Elem, pos) {
				return nil, 0, false
			}
			t = t.Elem
		case KindEnum:
			v := t.Table[r.U8(pos)]
			if v == nil {
				return nil, 0, false
			}
			t, pos = v.Payload, pos+8
		default:
			return nil, 0, false
		}
	}
}
