package schema

import (
	"fmt"
	"sort"
	"strings"
)

// builder resolves Defs into linked Types.
type builder struct {
	types map[string]*Type
	order []*Type
	defs  map[*Type]*Def
}

// Build resolves defs into a Schema. rootName names the record at the
// buffer's root position and programName the tree that is walked.
func Build(defs []*Def, rootName, programName string) (*Schema, error) {
	b := &builder{
		types: make(map[string]*Type),
		defs:  make(map[*Type]*Def),
	}

	for _, d := range defs {
		if _, ok := b.types[d.name]; ok {
			return nil, fmt.Errorf("schema: duplicate type %s", d.name)
		}
		t := &Type{Name: d.name, Kind: d.kind, Size: d.size, NodeType: d.node, Shape: d.shape, Hook: d.hook, Trivia: d.trivia, Emits: d.emits}
		if d.kind == KindStruct && d.node == "" && d.typeFrom == "" && d.shape == ShapeNode {
			return nil, fmt.Errorf("schema: struct %s has neither node type nor shape", d.name)
		}
		b.types[d.name] = t
		b.order = append(b.order, t)
		b.defs[t] = d
	}

	for _, t := range b.named() {
		d := b.defs[t]
		switch t.Kind {
		case KindPlain:
			t.Values = d.values
		case KindEnum:
			if err := b.resolveEnum(t, d); err != nil {
				return nil, err
			}
		}
	}

	calc := newLayoutCalc()
	for _, t := range b.order {
		if err := calc.calculate(t); err != nil {
			return nil, fmt.Errorf("schema: %w", err)
		}
	}

	for _, t := range b.named() {
		if t.Kind != KindStruct {
			continue
		}
		if err := b.resolveStruct(t, b.defs[t], calc); err != nil {
			return nil, err
		}
	}

	// fields may have interned new composite types
	for _, t := range b.order {
		if err := calc.calculate(t); err != nil {
			return nil, fmt.Errorf("schema: %w", err)
		}
	}

	nc := newNicheCalc()
	for _, t := range b.order {
		nc.niche(t)
	}
	for _, t := range b.order {
		if t.Kind == KindOption && t.Elem.Niche.Kind == NicheNone {
			return nil, fmt.Errorf("schema: %s has no niche to encode absence", t.Name)
		}
	}

	wc := newWalkCalc()
	for _, t := range b.order {
		t.walk = wc.walk(t)
	}
	for _, t := range b.named() {
		if t.Kind != KindStruct {
			continue
		}
		if err := finishStruct(t); err != nil {
			return nil, err
		}
	}

	s := &Schema{
		types:   b.types,
		order:   b.order,
		Root:    b.types[rootName],
		Program: b.types[programName],
	}
	if s.Root == nil || s.Program == nil {
		return nil, fmt.Errorf("schema: root %s or program %s not declared", rootName, programName)
	}
	s.assignNodeIDs()
	s.fingerprint = fingerprint(s.order)
	return s, nil
}

func (b *builder) named() []*Type {
	out := make([]*Type, 0, len(b.defs))
	for _, t := range b.order {
		if _, ok := b.defs[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// resolve parses a type expression such as "Vec<Option<BindingPattern>>",
// interning composite types by their canonical name.
func (b *builder) resolve(expr string) (*Type, error) {
	expr = strings.TrimSpace(expr)
	if t, ok := b.types[expr]; ok {
		return t, nil
	}

	var k Kind
	switch expr {
	case "bool":
		k = KindBool
	case "u8":
		k = KindU8
	case "u32":
		k = KindU32
	case "f64":
		k = KindF64
	case "Str":
		k = KindStr
	default:
		open := strings.IndexByte(expr, '<')
		if open < 0 || !strings.HasSuffix(expr, ">") {
			return nil, fmt.Errorf("schema: unknown type %q", expr)
		}
		switch expr[:open] {
		case "Box":
			k = KindBox
		case "Vec":
			k = KindVec
		case "Option":
			k = KindOption
		default:
			return nil, fmt.Errorf("schema: unknown type constructor in %q", expr)
		}
		elem, err := b.resolve(expr[open+1 : len(expr)-1])
		if err != nil {
			return nil, err
		}
		if k == KindOption && elem.Kind == KindOption {
			return nil, fmt.Errorf("schema: nested option %q", expr)
		}
		name := expr[:open] + "<" + elem.Name + ">"
		if t, ok := b.types[name]; ok {
			return t, nil
		}
		t := &Type{Name: name, Kind: k, Elem: elem}
		b.types[name] = t
		b.order = append(b.order, t)
		return t, nil
	}

	t := &Type{Name: expr, Kind: k}
	b.types[expr] = t
	b.order = append(b.order, t)
	return t, nil
}

func (b *builder) resolveEnum(t *Type, d *Def) error {
	maxDisc := -1
	for _, vd := range d.variants {
		if t.Table[vd.Disc] != nil {
			return fmt.Errorf("schema: %s discriminant %d declared twice", t.Name, vd.Disc)
		}
		payload, err := b.resolve(vd.Type)
		if err != nil {
			return fmt.Errorf("schema: %s variant %d: %w", t.Name, vd.Disc, err)
		}
		if payload.Kind != KindBox && payload.Kind != KindStruct {
			return fmt.Errorf("schema: %s variant %d must be a box or inline struct, got %s", t.Name, vd.Disc, payload.Name)
		}
		v := &Variant{Disc: vd.Disc, Payload: payload}
		t.Variants = append(t.Variants, v)
		t.Table[vd.Disc] = v
		if int(vd.Disc) > maxDisc {
			maxDisc = int(vd.Disc)
		}
	}
	if len(t.Variants) == 0 {
		return fmt.Errorf("schema: enum %s has no variants", t.Name)
	}

	sort.Slice(t.Variants, func(i, j int) bool { return t.Variants[i].Disc < t.Variants[j].Disc })

	none := d.none
	if none < 0 {
		none = maxDisc + 1
	}
	if none > 255 || t.Table[none] != nil {
		return fmt.Errorf("schema: %s absent sentinel %d collides with a variant", t.Name, none)
	}
	t.None = uint8(none)
	return nil
}

func (b *builder) resolveStruct(t *Type, d *Def, calc *layoutCalc) error {
	t.byName = make(map[string]*Field, len(d.fields))
	for _, fd := range d.fields {
		if _, ok := t.byName[fd.name]; ok {
			return fmt.Errorf("schema: %s field %s declared twice", t.Name, fd.name)
		}
		f := &Field{
			Name:       fd.name,
			Key:        fd.key,
			Offset:     fd.offset,
			Flavors:    fd.flavors,
			Append:     fd.append,
			Prepend:    fd.prepend,
			Escape:     fd.escape,
			EmptyIfNil: fd.emptyIfNil,
			Unwrap:     fd.unwrap,
			Select:     fd.sel,
			Const:      fd.constKind,
			Value:      fd.value,
			unwrapFlag: fd.unwrapFlag,
		}
		if f.Const == NotConst {
			ft, err := b.resolve(fd.expr)
			if err != nil {
				return fmt.Errorf("schema: %s.%s: %w", t.Name, fd.name, err)
			}
			if err := calc.calculate(ft); err != nil {
				return fmt.Errorf("schema: %w", err)
			}
			if fd.offset+ft.Size > t.Size {
				return fmt.Errorf("schema: %s.%s at %d (size %d) overflows struct size %d", t.Name, fd.name, fd.offset, ft.Size, t.Size)
			}
			if fd.offset%ft.Align != 0 {
				return fmt.Errorf("schema: %s.%s at %d is not %d-aligned", t.Name, fd.name, fd.offset, ft.Align)
			}
			if t.IsNode() && fd.offset < 8 {
				return fmt.Errorf("schema: %s.%s overlaps the span", t.Name, fd.name)
			}
			f.Type = ft
		}
		if len(f.Select) > 0 {
			if f.Type == nil {
				return fmt.Errorf("schema: %s.%s selects from a constant", t.Name, fd.name)
			}
			st, ok := b.selectType(f.Type, f.Select)
			if !ok {
				return fmt.Errorf("schema: %s.%s select path %v does not resolve", t.Name, fd.name, f.Select)
			}
			f.selType = st
		}
		if f.Escape >= 0 && (f.Type == nil || (f.Type.Kind != KindStr && !(f.Type.Kind == KindOption && f.Type.Elem.Kind == KindStr))) {
			return fmt.Errorf("schema: %s.%s escape flag on a non-string field", t.Name, fd.name)
		}
		t.Fields = append(t.Fields, f)
		t.byName[f.Name] = f
	}

	if d.typeFrom != "" {
		f := t.byName[d.typeFrom]
		if f == nil || f.Type == nil || f.Type.Kind != KindPlain {
			return fmt.Errorf("schema: %s type field %s must be a plain enum", t.Name, d.typeFrom)
		}
		t.TypeField = f
	}
	return nil
}

// selectType resolves path statically through boxes and options, the only
// steps a Select may take.
func (b *builder) selectType(t *Type, path []string) (*Type, bool) {
	for _, name := range path {
		for t.Kind == KindBox || t.Kind == KindOption {
			t = t.Elem
		}
		if t.Kind != KindStruct {
			return nil, false
		}
		d, ok := b.defs[t]
		if !ok {
			return nil, false
		}
		var next *Type
		for _, fd := range d.fields {
			if fd.name == name && fd.constKind == NotConst {
				rt, err := b.resolve(fd.expr)
				if err != nil {
					return nil, false
				}
				next = rt
			}
		}
		if next == nil {
			return nil, false
		}
		t = next
	}
	return t, true
}

// finishStruct computes per-flavor member lists and validates output shape
// rules once walkability is known.
func finishStruct(t *Type) error {
	for _, fl := range []Flavor{FlavorPlain, FlavorTyped} {
		seen := make(map[string]bool)
		pending := make(map[string]bool)
		var members []*Field
		for _, f := range t.Fields {
			if !f.Flavors.Has(fl) {
				continue
			}
			if f.Type != nil {
				f.walk = f.Type.walk
				if f.selType != nil {
					f.walk = f.selType.walk
				}
			}
			if f.Key == "" {
				if f.walk {
					return fmt.Errorf("schema: %s.%s is hidden but contains nodes", t.Name, f.Name)
				}
				continue
			}
			switch {
			case f.Prepend:
				if seen[f.Key] {
					return fmt.Errorf("schema: %s.%s prepends to an emitted key %q", t.Name, f.Name, f.Key)
				}
				pending[f.Key] = true
			case f.Append:
				if !seen[f.Key] {
					return fmt.Errorf("schema: %s.%s appends to missing key %q", t.Name, f.Name, f.Key)
				}
			default:
				if seen[f.Key] {
					return fmt.Errorf("schema: %s key %q emitted twice", t.Name, f.Key)
				}
				seen[f.Key] = true
				delete(pending, f.Key)
			}
			members = append(members, f)
		}
		for _, f := range members {
			if f.Prepend && pending[f.Key] {
				return fmt.Errorf("schema: %s.%s prepends to missing key %q", t.Name, f.Name, f.Key)
			}
		}
		switch t.Shape {
		case ShapeTransparent:
			if len(seen) != 1 {
				return fmt.Errorf("schema: transparent %s must emit exactly one key", t.Name)
			}
		case ShapeMerge:
			if len(members) == 0 || members[0].Append || members[0].Prepend {
				return fmt.Errorf("schema: merged %s must lead with its base member", t.Name)
			}
		}
		t.members[fl] = members
	}
	return nil
}
