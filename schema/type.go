package schema

// NicheKind says how an Option over a type encodes absence.
type NicheKind uint8

const (
	NicheNone    NicheKind = iota // type cannot be wrapped in Option
	NichePointer                  // both u32 words at Offset are zero
	NicheByte                     // byte at Offset equals Value
)

// Niche locates the absent marker of Option<T> inside T's bytes.
type Niche struct {
	Kind   NicheKind
	Offset uint32
	Value  uint8
	room   int
}

// Type is one layout type: a named struct, enum or plain enum, or a
// composite such as Vec<Statement> interned by its expression.
type Type struct {
	Name  string
	Kind  Kind
	Size  uint32
	Align uint32

	// Box, Vec, Option
	Elem *Type

	// Struct
	NodeType  string // output type name; empty for ShapeRecord and friends
	Shape     Shape
	Hook      Hook
	Trivia    bool     // node-shaped but never walked nor visitable
	TypeField *Field   // plain enum field whose value names the output type
	Emits     []string // extra node types a ShapeCustom hook produces
	Fields    []*Field
	NodeIDs   []int // node-type id per TypeField value, or a single id
	members   [2][]*Field
	byName    map[string]*Field

	// Enum
	Variants []*Variant
	Table    [256]*Variant
	None     uint8

	// Plain
	Values []string

	Niche Niche

	walk bool
}

// Variant is one case of a tagged union. Payload begins at node start + 8.
type Variant struct {
	Disc    uint8
	Payload *Type
}

// ConstKind is set for output members that are not read from the buffer.
type ConstKind uint8

const (
	NotConst ConstKind = iota
	ConstValue
	ConstEmptyList // a fresh empty list per node
)

// Field is one member of a struct.
type Field struct {
	Name    string // layout name, unique within the struct
	Key     string // output key; empty means decoded but not emitted
	Offset  uint32
	Type    *Type
	Flavors Flavors

	Append     bool     // concatenate onto the previous member with the same Key
	Prepend    bool     // splice ahead of the next member with the same Key
	Escape     int32    // offset of the bool enabling escape-marker replacement, -1 if none
	EmptyIfNil bool     // absent Option<Vec> decodes to an empty list
	Unwrap     []string // layout field path followed when the unwrap flag is set
	Select     []string // layout field path always followed; empty list when absent

	Const ConstKind
	Value any

	unwrapFlag int32
	selType    *Type
	walk       bool
}

// Walk reports whether the field can contain nodes.
func (f *Field) Walk() bool { return f.walk }

// SelectType returns the type at the end of the Select path, or nil.
func (f *Field) SelectType() *Type { return f.selType }

// UnwrapFlag returns the offset of the flag that enables Unwrap, or -1.
func (f *Field) UnwrapFlag() int32 { return f.unwrapFlag }

// IsNode reports whether a struct decodes to a visitable node.
func (t *Type) IsNode() bool {
	return t.Kind == KindStruct && t.Shape == ShapeNode && !t.Trivia
}

// Walk reports whether values of this type can contain visitable nodes.
func (t *Type) Walk() bool { return t.walk }

// Members returns the struct members emitted in flavor f, in output order.
func (t *Type) Members(f Flavor) []*Field {
	return t.members[f]
}

// Field returns the struct member with the given layout name.
func (t *Type) Field(name string) *Field {
	return t.byName[name]
}

// NodeID returns the node-type id for a node of this struct, given the raw
// TypeField byte (ignored for structs with a fixed output type).
func (t *Type) NodeID(typeByte uint8) int {
	if t.TypeField == nil {
		return t.NodeIDs[0]
	}
	if int(typeByte) < len(t.NodeIDs) {
		return t.NodeIDs[typeByte]
	}
	return -1
}

// OutputType returns the output type name for a struct given its TypeField byte.
func (t *Type) OutputType(typeByte uint8) string {
	if t.TypeField == nil {
		return t.NodeType
	}
	vals := t.TypeField.Type.Values
	if int(typeByte) < len(vals) {
		return vals[typeByte]
	}
	return ""
}

// Value returns the plain enum string for b, and false if b is out of range.
func (t *Type) Value(b uint8) (string, bool) {
	if int(b) < len(t.Values) {
		return t.Values[b], true
	}
	return "", false
}
