package deserialize

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/wippyai/rawtransfer/ast"
	"github.com/wippyai/rawtransfer/schema"
)

// hookFn adjusts a node after its fields are decoded and returns the value
// that replaces it, usually the node itself.
type hookFn func(s *Session, t *schema.Type, pos uint32, n *ast.Node) (any, error)

func hookFor(h schema.Hook) hookFn {
	switch h {
	case schema.HookLiteralRaw:
		return literalRaw
	case schema.HookBigInt:
		return bigIntLiteral
	case schema.HookRegExp:
		return regExpLiteral
	case schema.HookTemplateElement:
		return templateElement
	case schema.HookModuleDeclaration:
		return moduleDeclaration
	case schema.HookProgram:
		return program
	case schema.HookComment:
		return comment
	case schema.HookParenthesized:
		return parenthesized
	case schema.HookFormalParameter:
		return formalParameter
	case schema.HookShorthandTarget:
		return shorthandTarget
	case schema.HookMappedType:
		return mappedType
	case schema.HookJSXElement:
		return jsxElement
	case schema.HookEnumMember:
		return enumMember
	case schema.HookClassImplements:
		return classImplements
	}
	return nil
}

// literalRaw derives raw text for boolean and null literals. Literals the
// producer synthesized carry an empty 0-0 span and no raw text.
func literalRaw(_ *Session, _ *schema.Type, _ uint32, n *ast.Node) (any, error) {
	if n.Start == 0 && n.End == 0 {
		n.Set("raw", nil)
		return n, nil
	}
	switch v := n.Get("value").(type) {
	case bool:
		n.Set("raw", strconv.FormatBool(v))
	case nil:
		n.Set("raw", "null")
	}
	return n, nil
}

// bigIntLiteral parses the producer's bigint text, which has neither the
// "n" suffix nor separators, into the literal value.
func bigIntLiteral(_ *Session, _ *schema.Type, _ uint32, n *ast.Node) (any, error) {
	text, _ := n.Get("bigint").(string)
	if v, ok := new(big.Int).SetString(CleanBigInt(text), 0); ok {
		n.Set("value", v)
	} else {
		n.Set("value", nil)
	}
	return n, nil
}

// CleanBigInt strips the trailing "n" and every numeric separator.
func CleanBigInt(raw string) string {
	return strings.ReplaceAll(strings.TrimSuffix(raw, "n"), "_", "")
}

func regExpLiteral(s *Session, t *schema.Type, pos uint32, n *ast.Node) (any, error) {
	pattern := s.Str(pos + t.Field("pattern").Offset)
	flags := RegExpFlags(s.U8(pos + t.Field("flags").Offset))
	n.Set("regex", ast.NewObject("pattern", pattern, "flags", flags))
	n.Set("value", CompileRegExp(pattern, flags))
	return n, nil
}

// regExpFlagBits lists flag letters in output order with their bit.
var regExpFlagBits = [...]struct {
	bit  uint8
	flag byte
}{
	{64, 'd'}, {1, 'g'}, {2, 'i'}, {4, 'm'}, {8, 's'}, {16, 'u'}, {128, 'v'}, {32, 'y'},
}

// RegExpFlags renders a flags byte in dgimsuvy order.
func RegExpFlags(bits uint8) string {
	var b strings.Builder
	for _, f := range regExpFlagBits {
		if bits&f.bit != 0 {
			b.WriteByte(f.flag)
		}
	}
	return b.String()
}

// CompileRegExp compiles pattern with the i, m and s flags mapped onto RE2
// inline flags. Patterns RE2 cannot express yield nil.
func CompileRegExp(pattern, flags string) any {
	var inline strings.Builder
	for i := 0; i < len(flags); i++ {
		switch c := flags[i]; c {
		case 'i', 'm', 's':
			inline.WriteByte(c)
		}
	}
	expr := pattern
	if inline.Len() > 0 {
		expr = "(?" + inline.String() + ")" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil
	}
	return re
}

func templateElement(s *Session, t *schema.Type, pos uint32, n *ast.Node) (any, error) {
	raw := s.Str(pos + t.Field("raw").Offset)
	f := t.Field("cooked")
	var cooked any
	if c, ok := s.OptionStr(pos + f.Offset); ok {
		if f.Escape >= 0 && s.Bool(pos+uint32(f.Escape)) {
			c = unescapeLossy(c)
		}
		cooked = c
	}
	n.Set("value", ast.NewObject("raw", raw, "cooked", cooked))
	if s.flavor == schema.FlavorTyped {
		// typed spans cover the delimiters: the leading backtick or brace,
		// and the closing backtick or "${"
		n.Start--
		n.End += 2
		if n.Get("tail") == true {
			n.End--
		}
	}
	return n, nil
}

func comment(s *Session, _ *schema.Type, _ uint32, n *ast.Node) (any, error) {
	cut := uint32(2)
	if n.Type == "Line" {
		cut = 0
	}
	n.Set("value", sliceSource(s.source, n.Start+2, n.End-cut))
	return n, nil
}

func sliceSource(src string, start, end uint32) string {
	if end > uint32(len(src)) {
		end = uint32(len(src))
	}
	if start >= end {
		return ""
	}
	return src[start:end]
}

func program(s *Session, _ *schema.Type, pos uint32, n *ast.Node) (any, error) {
	if s.flavor == schema.FlavorTyped {
		n.Start = s.ProgramStart(pos)
	}
	return n, nil
}

// ProgramStart computes the typed program start: the start of the first
// body element, moved back to the first decorator of an exported class,
// or the program end when the body is empty.
func (s *Session) ProgramStart(pos uint32) uint32 {
	t := s.schema.Program
	end := s.U32(pos + 4)

	first, fpos, ok := s.firstBody(t, pos)
	if !ok {
		return end
	}
	start := s.U32(fpos)
	if first.NodeType != "ExportNamedDeclaration" && first.NodeType != "ExportDefaultDeclaration" {
		return start
	}
	df := first.Field("declaration")
	decl, dpos, ok := schema.Deref(s.buf, df.Type, fpos+df.Offset)
	if !ok || decl.TypeField == nil || decl.OutputType(s.U8(dpos+decl.TypeField.Offset)) != "ClassDeclaration" {
		return start
	}
	decos := decl.Field("decorators")
	if _, ppos, ok := schema.Deref(s.buf, decos.Type, dpos+decos.Offset); ok {
		if ds := s.U32(ppos); ds < start {
			start = ds
		}
	}
	return start
}

// firstBody finds the first element of the program body, directives first.
func (s *Session) firstBody(t *schema.Type, pos uint32) (*schema.Type, uint32, bool) {
	for _, f := range t.Members(s.flavor) {
		if f.Key != "body" {
			continue
		}
		if st, spos, ok := schema.Deref(s.buf, f.Type, pos+f.Offset); ok {
			return st, spos, true
		}
	}
	return nil, 0, false
}
