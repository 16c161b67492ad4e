package schema

// nicheCalc derives the absent encoding of Option<T> from T's layout.
//
// Every type offers a number of invalid byte patterns ("room"). A struct
// borrows the niche of the member with the most room, lowest offset first.
type nicheCalc struct {
	done map[*Type]bool
}

func newNicheCalc() *nicheCalc {
	return &nicheCalc{done: make(map[*Type]bool)}
}

func (c *nicheCalc) niche(t *Type) Niche {
	if c.done[t] {
		return t.Niche
	}
	c.done[t] = true

	var n Niche
	switch t.Kind {
	case KindBool:
		n = Niche{Kind: NicheByte, Value: 2, room: 254}
	case KindPlain:
		n = Niche{Kind: NicheByte, Value: uint8(len(t.Values)), room: 256 - len(t.Values)}
	case KindEnum:
		n = Niche{Kind: NicheByte, Value: t.None, room: 256 - len(t.Variants)}
	case KindBox, KindStr, KindVec:
		n = Niche{Kind: NichePointer, room: 1}
	case KindStruct:
		for _, f := range t.Fields {
			if f.Const != NotConst {
				continue
			}
			fn := c.niche(f.Type)
			if fn.Kind == NicheNone {
				continue
			}
			fn.Offset += f.Offset
			if n.Kind == NicheNone || fn.room > n.room || (fn.room == n.room && fn.Offset < n.Offset) {
				n = fn
			}
		}
	}
	t.Niche = n
	return n
}

// IsNone reports whether the Option<T> slot at pos is absent, where t is T.
func IsNone(r Reader, t *Type, pos uint32) bool {
	n := &t.Niche
	switch n.Kind {
	case NichePointer:
		return r.U32(pos+n.Offset) == 0 && r.U32(pos+n.Offset+4) == 0
	case NicheByte:
		return r.U8(pos+n.Offset) == n.Value
	}
	return false
}
