package schema

import (
	"sort"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Schema is a resolved set of layout types.
type Schema struct {
	Root    *Type // record at the buffer's root position
	Program *Type // walked tree

	types       map[string]*Type
	order       []*Type
	nodeTypes   []string
	nodeIDs     map[string]int
	leaf        []bool
	fingerprint uint64
}

// Type returns the type with the given name or type expression, or nil.
func (s *Schema) Type(name string) *Type { return s.types[name] }

// Types returns every type in declaration order, composites after the
// declaration that first used them.
func (s *Schema) Types() []*Type { return s.order }

// NodeTypes returns the visitable node type names sorted by id.
func (s *Schema) NodeTypes() []string { return s.nodeTypes }

// NumNodeTypes returns the number of visitable node types.
func (s *Schema) NumNodeTypes() int { return len(s.nodeTypes) }

// NodeTypeID returns the dense id of a node type name.
func (s *Schema) NodeTypeID(name string) (int, bool) {
	id, ok := s.nodeIDs[name]
	return id, ok
}

// NodeTypeName returns the name for id.
func (s *Schema) NodeTypeName(id int) string {
	if id < 0 || id >= len(s.nodeTypes) {
		return ""
	}
	return s.nodeTypes[id]
}

// IsLeaf reports whether no node of type id can have child nodes in any flavor.
func (s *Schema) IsLeaf(id int) bool { return s.leaf[id] }

// Fingerprint is the xxhash of the layout: type names, sizes, field offsets,
// variant discriminants and plain enum values. Producers record it in the
// buffer trailer.
func (s *Schema) Fingerprint() uint64 { return s.fingerprint }

func (s *Schema) assignNodeIDs() {
	seen := make(map[string]bool)
	for _, t := range s.order {
		for _, n := range t.Emits {
			seen[n] = true
		}
		if !t.IsNode() {
			continue
		}
		for _, n := range outputNames(t) {
			seen[n] = true
		}
	}
	for n := range seen {
		s.nodeTypes = append(s.nodeTypes, n)
	}
	sort.Strings(s.nodeTypes)

	s.nodeIDs = make(map[string]int, len(s.nodeTypes))
	for i, n := range s.nodeTypes {
		s.nodeIDs[n] = i
	}

	s.leaf = make([]bool, len(s.nodeTypes))
	for i := range s.leaf {
		s.leaf[i] = true
	}
	for _, t := range s.order {
		if t.walk {
			for _, n := range t.Emits {
				s.leaf[s.nodeIDs[n]] = false
			}
		}
		if !t.IsNode() {
			continue
		}
		names := outputNames(t)
		t.NodeIDs = make([]int, len(names))
		composite := false
		for _, f := range t.Fields {
			if f.Const == NotConst && f.Type.walk {
				composite = true
			}
		}
		for i, n := range names {
			id := s.nodeIDs[n]
			t.NodeIDs[i] = id
			if composite {
				s.leaf[id] = false
			}
		}
	}
}

func outputNames(t *Type) []string {
	if t.TypeField != nil {
		return t.TypeField.Type.Values
	}
	return []string{t.NodeType}
}

func fingerprint(types []*Type) uint64 {
	d := xxhash.New()
	w := func(s string) {
		_, _ = d.WriteString(s)
		_, _ = d.WriteString("\x00")
	}
	u := func(v uint32) { w(strconv.FormatUint(uint64(v), 10)) }

	for _, t := range types {
		w(t.Name)
		w(t.Kind.String())
		u(t.Size)
		for _, f := range t.Fields {
			if f.Const != NotConst {
				continue
			}
			w(f.Name)
			u(f.Offset)
			w(f.Type.Name)
		}
		for _, v := range t.Variants {
			u(uint32(v.Disc))
			w(v.Payload.Name)
		}
		if t.Kind == KindEnum {
			u(uint32(t.None))
		}
		for _, v := range t.Values {
			w(v)
		}
	}
	return d.Sum64()
}

// estreeDefs declares the ESTree mapping of the transfer layout.
func estreeDefs() []*Def {
	var defs []*Def
	defs = append(defs, jsDefs()...)
	defs = append(defs, jsxDefs()...)
	defs = append(defs, tsDefs()...)
	return append(defs, moduleDefs()...)
}

var (
	defaultSchema *Schema
	defaultOnce   sync.Once
)

// Default returns the ESTree schema. It panics if the built-in declarations
// are inconsistent, which is a programming error caught by the package tests.
func Default() *Schema {
	defaultOnce.Do(func() {
		s, err := Build(estreeDefs(), "RawTransferData", "Program")
		if err != nil {
			panic(err)
		}
		defaultSchema = s
	})
	return defaultSchema
}
