package deserialize_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/rawtransfer/buffer"
	"github.com/wippyai/rawtransfer/deserialize"
)

// importBuffer lays out `import {a} from "b"` byte by byte at the offsets
// the producer uses, independent of the schema tables.
func importBuffer(isTS bool) *buffer.Buffer {
	const source = `import {a} from "b"`
	buf := buffer.New(1024)
	buf.Write(0, []byte(source))

	// RawTransferData at 64: program @0, comments @128, module @152, errors @256
	const root = 64
	buf.PutU32(root+0, 0)          // program.start
	buf.PutU32(root+4, 19)         // program.end
	buf.PutU32(root+96, 352)       // program.statements ptr (hashbang @48 and directives @72 stay empty)
	buf.PutU32(root+104, 1)        // program.statements len
	buf.PutU8(root+125, 1)         // program.sourceType = module
	buf.PutBool(root+152+96, true) // module.hasModuleSyntax

	// Statement: ImportDeclaration is discriminant 64
	buf.PutU8(352, 64)
	buf.PutU32(360, 368)

	// ImportDeclaration at 368
	buf.PutU32(368, 0)
	buf.PutU32(372, 19)
	buf.PutU32(368+8, 464) // specifiers ptr
	buf.PutU32(368+16, 1)  // specifiers len
	buf.PutU32(368+32, 16) // source.start
	buf.PutU32(368+36, 19) // source.end
	buf.PutU32(368+40, 17) // source.value ptr
	buf.PutU32(368+48, 1)  // source.value len
	buf.PutU32(368+56, 16) // source.raw ptr
	buf.PutU32(368+64, 3)  // source.raw len
	buf.PutU8(368+88, 2)   // phase: none (withClause @80 stays null)
	buf.PutU8(368+89, 0)   // importKind = value

	// ImportDeclarationSpecifier: ImportSpecifier is discriminant 0
	buf.PutU8(464, 0)
	buf.PutU32(472, 480)

	// ImportSpecifier at 480: imported @8, local @64, importKind @96
	buf.PutU32(480, 8)
	buf.PutU32(484, 9)
	buf.PutU8(480+8, 0) // ModuleExportName::IdentifierName
	buf.PutU32(480+16, 8)
	buf.PutU32(480+20, 9)
	buf.PutU32(480+24, 8)
	buf.PutU32(480+32, 1)
	buf.PutU32(480+64, 8)
	buf.PutU32(480+68, 9)
	buf.PutU32(480+72, 8)
	buf.PutU32(480+80, 1)
	buf.PutU8(480+96, 0)

	// trailer: root at size-8, typed flag at size-4
	buf.PutU32(1024-8, root)
	buf.PutBool(1024-4, isTS)
	return buf
}

func TestGoldenImportPlain(t *testing.T) {
	const source = `import {a} from "b"`
	buf := importBuffer(false)
	s, err := deserialize.NewSession(buf, source, uint32(len(source)))
	require.NoError(t, err)
	res, err := s.Deserialize()
	require.NoError(t, err)

	out, err := json.Marshal(res.Program)
	require.NoError(t, err)
	ident := `{"type":"Identifier","name":"a","start":8,"end":9}`
	want := `{"type":"Program","body":[{"type":"ImportDeclaration","specifiers":[` +
		`{"type":"ImportSpecifier","imported":` + ident + `,"local":` + ident + `,"start":8,"end":9}],` +
		`"source":{"type":"Literal","value":"b","raw":"\"b\"","start":16,"end":19},` +
		`"phase":null,"attributes":[],"start":0,"end":19}],` +
		`"sourceType":"module","hashbang":null,"start":0,"end":19}`
	assert.Equal(t, want, string(out))

	require.NotNil(t, res.Module)
	assert.Equal(t, true, res.Module.Get("hasModuleSyntax"))
	assert.Equal(t, []any{}, res.Module.Get("staticImports"))
	assert.Empty(t, res.Comments)
	assert.Empty(t, res.Errors)
}

func TestGoldenImportTyped(t *testing.T) {
	const source = `import {a} from "b"`
	buf := importBuffer(true)
	s, err := deserialize.NewSession(buf, source, uint32(len(source)))
	require.NoError(t, err)
	prog, err := s.DeserializeProgram()
	require.NoError(t, err)

	out, err := json.Marshal(prog)
	require.NoError(t, err)
	ident := `{"type":"Identifier","decorators":[],"name":"a","optional":false,"typeAnnotation":null,"start":8,"end":9}`
	want := `{"type":"Program","body":[{"type":"ImportDeclaration","specifiers":[` +
		`{"type":"ImportSpecifier","imported":` + ident + `,"local":` + ident + `,"importKind":"value","start":8,"end":9}],` +
		`"source":{"type":"Literal","value":"b","raw":"\"b\"","start":16,"end":19},` +
		`"phase":null,"attributes":[],"importKind":"value","start":0,"end":19}],` +
		`"sourceType":"module","hashbang":null,"start":0,"end":19}`
	assert.Equal(t, want, string(out))
}
