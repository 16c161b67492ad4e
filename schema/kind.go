package schema

// Kind is the layout category of a Type.
type Kind uint8

const (
	KindBool Kind = iota
	KindU8
	KindU32
	KindF64
	KindStr
	KindStruct
	KindEnum  // tagged union: discriminant byte, payload at +8
	KindPlain // fieldless enum: one byte naming a string value
	KindBox
	KindVec
	KindOption
)

var kindNames = [...]string{
	KindBool:   "bool",
	KindU8:     "u8",
	KindU32:    "u32",
	KindF64:    "f64",
	KindStr:    "str",
	KindStruct: "struct",
	KindEnum:   "enum",
	KindPlain:  "plain",
	KindBox:    "box",
	KindVec:    "vec",
	KindOption: "option",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsScalar reports whether values of this kind are read directly from a fixed offset.
func (k Kind) IsScalar() bool {
	return k <= KindStr || k == KindPlain
}

// Flavor selects which optional fields accompany a node shape.
type Flavor uint8

const (
	FlavorPlain Flavor = iota // JavaScript ESTree
	FlavorTyped               // TypeScript ESTree
)

func (f Flavor) String() string {
	switch f {
	case FlavorPlain:
		return "plain"
	case FlavorTyped:
		return "typed"
	default:
		return "unknown"
	}
}

// ParseFlavor accepts "plain"/"js" and "typed"/"ts".
func ParseFlavor(s string) (Flavor, bool) {
	switch s {
	case "plain", "js":
		return FlavorPlain, true
	case "typed", "ts":
		return FlavorTyped, true
	}
	return 0, false
}

// Flavors is a set of flavors a field is emitted in.
type Flavors uint8

const (
	OnlyPlain  Flavors = 1 << FlavorPlain
	OnlyTyped  Flavors = 1 << FlavorTyped
	AllFlavors         = OnlyPlain | OnlyTyped
)

// Has reports whether f is in the set.
func (fs Flavors) Has(f Flavor) bool { return fs&(1<<f) != 0 }

// Shape controls what a struct decodes to.
type Shape uint8

const (
	ShapeNode        Shape = iota // node record with type and span
	ShapeTransparent              // the value of its only output field
	ShapeList                     // list concatenating its output fields
	ShapeNull                     // always nil
	ShapeRecord                   // record without type or span
	ShapeMerge                    // the first member's node with the other members set on it
	ShapeCustom                   // built entirely by the struct's hook
)

// Hook names node-specific post-processing applied after generic field decoding.
type Hook uint8

const (
	HookNone              Hook = iota
	HookLiteralRaw             // boolean and null literal raw text
	HookBigInt                 // cleaned bigint text and big integer value
	HookRegExp                 // regex record and compiled value
	HookTemplateElement        // {raw, cooked} value record
	HookModuleDeclaration      // nested module chain flattening
	HookProgram                // typed program start
	HookComment                // comment value from source text
	HookParenthesized          // inner value when parentheses are dropped
	HookFormalParameter        // plain pattern or TSParameterProperty
	HookShorthandTarget        // shorthand assignment target value
	HookMappedType             // key and constraint lifted from the type parameter
	HookJSXElement             // selfClosing from the closing element
	HookEnumMember             // computed from the member name variant
	HookClassImplements        // qualified names rewritten as member expressions
)

var hookNames = [...]string{
	HookNone:              "none",
	HookLiteralRaw:        "literal_raw",
	HookBigInt:            "bigint",
	HookRegExp:            "regexp",
	HookTemplateElement:   "template_element",
	HookModuleDeclaration: "module_declaration",
	HookProgram:           "program",
	HookComment:           "comment",
	HookParenthesized:     "parenthesized",
	HookFormalParameter:   "formal_parameter",
	HookShorthandTarget:   "shorthand_target",
	HookMappedType:        "mapped_type",
	HookJSXElement:        "jsx_element",
	HookEnumMember:        "enum_member",
	HookClassImplements:   "class_implements",
}

func (h Hook) String() string {
	if int(h) < len(hookNames) {
		return hookNames[h]
	}
	return "unknown"
}
