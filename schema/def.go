package schema

// Def declares one named type. Defs are resolved into Types by Build.
type Def struct {
	name     string
	kind     Kind
	size     uint32
	node     string
	shape    Shape
	hook     Hook
	trivia   bool
	typeFrom string
	fields   []FieldDef
	variants []VariantDef
	values   []string
	emits    []string
	none     int
}

// FieldDef declares one struct member.
type FieldDef struct {
	name       string
	key        string
	offset     uint32
	expr       string
	flavors    Flavors
	append     bool
	prepend    bool
	escape     int32
	emptyIfNil bool
	unwrapFlag int32
	unwrap     []string
	sel        []string
	constKind  ConstKind
	value      any
}

// VariantDef declares one tagged-union case.
type VariantDef struct {
	Disc uint8
	Type string
}

// Struct declares a struct of the given byte size. A non-empty node name makes
// it a node with an implicit span (start u32 @0, end u32 @4).
func Struct(name string, size uint32, node string, fields ...FieldDef) *Def {
	return &Def{name: name, kind: KindStruct, size: size, node: node, fields: fields, none: -1}
}

// Record declares a struct that decodes to a record without type or span.
func Record(name string, size uint32, fields ...FieldDef) *Def {
	return &Def{name: name, kind: KindStruct, size: size, shape: ShapeRecord, fields: fields, none: -1}
}

// Enum declares a tagged union from one or more variant groups. Groups are
// plain slices so unions sharing a discriminant range share one declaration.
func Enum(name string, groups ...[]VariantDef) *Def {
	var vs []VariantDef
	for _, g := range groups {
		vs = append(vs, g...)
	}
	return &Def{name: name, kind: KindEnum, variants: vs, none: -1}
}

// Plain declares a fieldless enum; byte i decodes to values[i].
func Plain(name string, values ...string) *Def {
	return &Def{name: name, kind: KindPlain, values: values, none: -1}
}

// Shape overrides the decoded shape.
func (d *Def) Shape(s Shape) *Def { d.shape = s; return d }

// Hook attaches node-specific post-processing.
func (d *Def) Hook(h Hook) *Def { d.hook = h; return d }

// Trivia marks a node struct that sits outside the walked tree.
func (d *Def) Trivia() *Def { d.trivia = true; return d }

// TypeFrom names the plain enum field whose value gives the output type.
func (d *Def) TypeFrom(field string) *Def { d.typeFrom = field; return d }

// Emits names node types a ShapeCustom hook can produce besides the
// types of its fields.
func (d *Def) Emits(names ...string) *Def { d.emits = names; return d }

// None pins the absent sentinel of an enum. Without it the sentinel is the
// largest discriminant plus one.
func (d *Def) None(disc uint8) *Def { d.none = int(disc); return d }

// V declares a variant.
func V(disc uint8, typ string) VariantDef { return VariantDef{Disc: disc, Type: typ} }

// F declares a field emitted under its own name in every flavor.
func F(name string, offset uint32, expr string) FieldDef {
	return FieldDef{name: name, key: name, offset: offset, expr: expr, flavors: AllFlavors, escape: -1, unwrapFlag: -1}
}

// Const declares an output member with a fixed value.
func Const(key string, value any) FieldDef {
	return FieldDef{name: "$" + key, key: key, flavors: AllFlavors, escape: -1, unwrapFlag: -1, constKind: ConstValue, value: value}
}

// EmptyList declares an output member that is always a fresh empty list.
func EmptyList(key string) FieldDef {
	return FieldDef{name: "$" + key, key: key, flavors: AllFlavors, escape: -1, unwrapFlag: -1, constKind: ConstEmptyList}
}

// As renames the output key.
func (f FieldDef) As(key string) FieldDef { f.key = key; return f }

// Hidden decodes the field for hooks but never emits it.
func (f FieldDef) Hidden() FieldDef { f.key = ""; return f }

// Typed restricts the member to the typed flavor.
func (f FieldDef) Typed() FieldDef { f.flavors = OnlyTyped; return f }

// Plain restricts the member to the plain flavor.
func (f FieldDef) Plain() FieldDef { f.flavors = OnlyPlain; return f }

// Append concatenates this field onto the previous member with the same key.
func (f FieldDef) Append() FieldDef { f.append = true; return f }

// Prepend places this field ahead of the next member with the same key.
func (f FieldDef) Prepend() FieldDef { f.prepend = true; return f }

// EscapeIf enables escape-marker replacement when the bool at flag is set.
func (f FieldDef) EscapeIf(flag uint32) FieldDef { f.escape = int32(flag); return f }

// EmptyIfNil decodes an absent Option<Vec> as an empty list.
func (f FieldDef) EmptyIfNil() FieldDef { f.emptyIfNil = true; return f }

// UnwrapIf replaces the value by the one found along path when the bool at flag is set.
func (f FieldDef) UnwrapIf(flag uint32, path ...string) FieldDef {
	f.unwrapFlag = int32(flag)
	f.unwrap = path
	return f
}

// Select emits the value found along path instead of the field itself, or a
// fresh empty list when the path cannot be followed.
func (f FieldDef) Select(path ...string) FieldDef {
	f.sel = path
	return f
}
