package schema

// walkCalc decides which types can contain visitable nodes.
type walkCalc struct {
	memo     map[*Type]bool
	visiting map[*Type]bool
}

func newWalkCalc() *walkCalc {
	return &walkCalc{
		memo:     make(map[*Type]bool),
		visiting: make(map[*Type]bool),
	}
}

func (c *walkCalc) walk(t *Type) bool {
	if v, ok := c.memo[t]; ok {
		return v
	}
	if c.visiting[t] {
		return false
	}
	c.visiting[t] = true
	defer delete(c.visiting, t)

	var v bool
	switch t.Kind {
	case KindStruct:
		switch {
		case t.Trivia, t.Shape == ShapeNull:
			v = false
		case t.IsNode():
			v = true
		default:
			for _, f := range t.Fields {
				if f.Const == NotConst && c.walk(f.Type) {
					v = true
					break
				}
			}
		}
	case KindEnum:
		for _, vr := range t.Variants {
			if c.walk(vr.Payload) {
				v = true
				break
			}
		}
	case KindBox, KindVec, KindOption:
		v = c.walk(t.Elem)
	}
	c.memo[t] = v
	return v
}
