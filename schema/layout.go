package schema

import "fmt"

const (
	strSize = 16
	vecSize = 24
	boxSize = 8
	// payloads start after the 8-byte discriminant slot
	payloadOffset = 8
)

// layoutCalc computes sizes and alignments, caching enums which are the only
// types whose size depends on other types.
type layoutCalc struct {
	cache    map[*Type]bool
	visiting map[*Type]bool
}

func newLayoutCalc() *layoutCalc {
	return &layoutCalc{
		cache:    make(map[*Type]bool),
		visiting: make(map[*Type]bool),
	}
}

func (c *layoutCalc) calculate(t *Type) error {
	if c.cache[t] {
		return nil
	}
	switch t.Kind {
	case KindBool, KindU8, KindPlain:
		t.Size, t.Align = 1, 1
	case KindU32:
		t.Size, t.Align = 4, 4
	case KindF64:
		t.Size, t.Align = 8, 8
	case KindStr:
		t.Size, t.Align = strSize, 8
	case KindVec:
		t.Size, t.Align = vecSize, 8
	case KindBox:
		t.Size, t.Align = boxSize, 8
	case KindStruct:
		// declared size
		t.Align = 8
		if t.Size%8 != 0 {
			t.Align = 4
		}
	case KindOption:
		if err := c.calculate(t.Elem); err != nil {
			return err
		}
		t.Size, t.Align = t.Elem.Size, t.Elem.Align
	case KindEnum:
		if err := c.calculateEnum(t); err != nil {
			return err
		}
	}
	c.cache[t] = true
	return nil
}

func (c *layoutCalc) calculateEnum(t *Type) error {
	if c.visiting[t] {
		return fmt.Errorf("enum %s contains itself inline", t.Name)
	}
	c.visiting[t] = true
	defer delete(c.visiting, t)

	maxSize := uint32(0)
	for _, v := range t.Variants {
		if err := c.calculate(v.Payload); err != nil {
			return err
		}
		if v.Payload.Size > maxSize {
			maxSize = v.Payload.Size
		}
	}
	t.Size = alignTo(payloadOffset+maxSize, 8)
	t.Align = 8
	return nil
}

func alignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}
