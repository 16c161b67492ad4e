package deserialize

import (
	"github.com/wippyai/rawtransfer/ast"
	"github.com/wippyai/rawtransfer/errors"
	"github.com/wippyai/rawtransfer/schema"
)

// Result is a fully materialized buffer. It holds no references into the
// buffer, which may be released once Deserialize returns.
type Result struct {
	Program  *ast.Node
	Comments []*ast.Node
	Module   *ast.Object
	Errors   []*ast.Object
}

// Deserialize decodes the root record.
func (s *Session) Deserialize() (*Result, error) {
	root := s.schema.Root

	programNode, err := s.DeserializeProgram()
	if err != nil {
		return nil, err
	}
	res := &Result{Program: programNode}

	if sb := s.shebang(); sb != nil {
		res.Comments = append(res.Comments, sb)
	}

	if f := root.Field("comments"); f != nil {
		v, err := s.decodeRootField(f)
		if err != nil {
			return nil, err
		}
		for _, c := range asList(v) {
			if n, ok := c.(*ast.Node); ok {
				res.Comments = append(res.Comments, n)
			}
		}
	}

	if f := root.Field("module"); f != nil {
		v, err := s.decodeRootField(f)
		if err != nil {
			return nil, err
		}
		res.Module, _ = v.(*ast.Object)
	}

	if f := root.Field("errors"); f != nil {
		v, err := s.decodeRootField(f)
		if err != nil {
			return nil, err
		}
		for _, e := range asList(v) {
			if o, ok := e.(*ast.Object); ok {
				res.Errors = append(res.Errors, o)
			}
		}
	}
	return res, nil
}

// DeserializeProgram decodes only the program tree.
func (s *Session) DeserializeProgram() (*ast.Node, error) {
	prog, err := s.decodeRootField(s.schema.Root.Field("program"))
	if err != nil {
		return nil, err
	}
	n, ok := prog.(*ast.Node)
	if !ok {
		return nil, errors.InvalidData(errors.PhaseDecode, []string{"program"}, "program did not decode to a node")
	}
	if s.parents {
		ast.SetParents(n)
	}
	return n, nil
}

func (s *Session) decodeRootField(f *schema.Field) (any, error) {
	v, err := s.DecodeType(f.Type, s.root+f.Offset)
	if err != nil {
		return nil, errors.WithPath(err, f.Name)
	}
	return v, nil
}

// shebang returns the typed flavor's synthetic leading comment for a
// hashbang line. The program keeps its hashbang member in both flavors.
func (s *Session) shebang() *ast.Node {
	if s.flavor != schema.FlavorTyped {
		return nil
	}
	f := s.schema.Program.Field("hashbang")
	if f == nil {
		return nil
	}
	pos := s.ProgramPos() + f.Offset
	if schema.IsNone(s.buf, f.Type.Elem, pos) {
		return nil
	}
	return s.node("Shebang", s.U32(pos), s.U32(pos+4),
		ast.Prop{Key: "value", Value: s.Str(pos + f.Type.Elem.Field("value").Offset)})
}

func asList(v any) []any {
	l, _ := v.([]any)
	return l
}
