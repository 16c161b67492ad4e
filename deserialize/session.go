package deserialize

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/wippyai/rawtransfer/buffer"
	"github.com/wippyai/rawtransfer/errors"
	"github.com/wippyai/rawtransfer/schema"
)

// shortStringLimit is the longest run decoded byte by byte before handing
// over to the general UTF-8 decoder.
const shortStringLimit = 50

// Session holds the decode state for one buffer.
type Session struct {
	buf    *buffer.Buffer
	schema *schema.Schema
	flavor schema.Flavor
	plan   *plan
	root   uint32

	source string
	srcLen uint32
	ascii  bool

	ranges   bool
	parents  bool
	noParens bool

	utf8 *encoding.Decoder
}

// Option configures a Session.
type Option func(*Session)

// WithSchema decodes against s instead of schema.Default().
func WithSchema(s *schema.Schema) Option {
	return func(sess *Session) { sess.schema = s }
}

// WithRange adds a [start, end] range after the span of every node and of
// every record carrying a span.
func WithRange() Option {
	return func(sess *Session) { sess.ranges = true }
}

// WithParent links every decoded node to its nearest enclosing node.
func WithParent() Option {
	return func(sess *Session) { sess.parents = true }
}

// WithoutParens replaces parenthesized expressions and types by their
// contents.
func WithoutParens() Option {
	return func(sess *Session) { sess.noParens = true }
}

// NewSession validates the buffer trailer and prepares decoding. source is
// the text the producer copied to the start of the buffer and sourceByteLen
// its length in bytes as the producer recorded it.
func NewSession(buf *buffer.Buffer, source string, sourceByteLen uint32, opts ...Option) (*Session, error) {
	s := &Session{
		buf:    buf,
		source: source,
		srcLen: sourceByteLen,
		ascii:  sourceByteLen == uint32(len(source)) && isASCII(source),
		utf8:   unicode.UTF8.NewDecoder(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.schema == nil {
		s.schema = schema.Default()
	}

	tr := buf.Trailer()
	if sourceByteLen > buf.DataLimit() {
		return nil, errors.OutOfBounds(errors.PhaseDecode, []string{"source"}, int(sourceByteLen), int(buf.DataLimit()))
	}
	if tr.Root+s.schema.Root.Size > buf.DataLimit() {
		return nil, errors.OutOfBounds(errors.PhaseDecode, nil, int(tr.Root), int(buf.DataLimit()))
	}
	s.flavor = schema.FlavorPlain
	if tr.IsTS {
		s.flavor = schema.FlavorTyped
	}
	s.root = tr.Root
	s.plan = planFor(s.schema, s.flavor)
	return s, nil
}

// isASCII reports whether no byte of src has the high bit set.
func isASCII(src string) bool {
	for i := 0; i < len(src); i++ {
		if src[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Buffer returns the underlying buffer.
func (s *Session) Buffer() *buffer.Buffer { return s.buf }

// Schema returns the schema the session decodes against.
func (s *Session) Schema() *schema.Schema { return s.schema }

// Flavor returns the flavor the buffer trailer selects.
func (s *Session) Flavor() schema.Flavor { return s.flavor }

// Root returns the position of the root record.
func (s *Session) Root() uint32 { return s.root }

// Source returns the source text.
func (s *Session) Source() string { return s.source }

// ASCII reports whether the source text is pure ASCII.
func (s *Session) ASCII() bool { return s.ascii }

// Ranges reports whether nodes carry a range pair.
func (s *Session) Ranges() bool { return s.ranges }

// DropsParens reports whether parenthesized wrappers are replaced by their
// contents.
func (s *Session) DropsParens() bool { return s.noParens }

// ProgramPos returns the position of the program struct.
func (s *Session) ProgramPos() uint32 {
	return s.root + s.schema.Root.Field("program").Offset
}

// U8 reads a byte.
func (s *Session) U8(pos uint32) uint8 { return s.buf.U8(pos) }

// U32 reads a u32.
func (s *Session) U32(pos uint32) uint32 { return s.buf.U32(pos) }

// U64 reads low + high*2^32.
func (s *Session) U64(pos uint32) uint64 { return s.buf.U64(pos) }

// F64 reads a double.
func (s *Session) F64(pos uint32) float64 { return s.buf.F64(pos) }

// Bool reads a bool; only 1 is true.
func (s *Session) Bool(pos uint32) bool { return s.buf.Bool(pos) }

// Str decodes the string slot at pos.
func (s *Session) Str(pos uint32) string {
	n := s.buf.U32(pos + 8)
	if n == 0 {
		return ""
	}
	ptr := s.buf.U32(pos)
	if s.ascii && ptr < s.srcLen {
		return s.source[ptr : ptr+n]
	}
	return s.decodeBytes(s.buf.Slice(ptr, n))
}

// OptionStr decodes an Option<Str> slot, reporting false when absent.
func (s *Session) OptionStr(pos uint32) (string, bool) {
	if s.buf.U32(pos) == 0 && s.buf.U32(pos+4) == 0 {
		return "", false
	}
	return s.Str(pos), true
}

func (s *Session) decodeBytes(b []byte) string {
	if len(b) > shortStringLimit {
		return s.decodeUTF8(b)
	}
	for i, c := range b {
		if c >= utf8.RuneSelf {
			return string(b[:i]) + s.decodeUTF8(b[i:])
		}
	}
	return string(b)
}

// decodeUTF8 replaces invalid sequences with U+FFFD.
func (s *Session) decodeUTF8(b []byte) string {
	out, err := s.utf8.Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

// DecodeType decodes the value of type t stored at pos.
func (s *Session) DecodeType(t *schema.Type, pos uint32) (any, error) {
	return s.plan.decoder(t)(s, pos)
}

// DecodeField decodes one output member of the struct at pos, applying the
// member's constant, escape, empty-list and unwrap rules.
func (s *Session) DecodeField(f *schema.Field, pos uint32) (any, error) {
	fn, ok := s.plan.fields[f]
	if !ok {
		return nil, errors.InvalidInput(errors.PhaseDecode, "field %s is not emitted in the %s flavor", f.Name, s.flavor)
	}
	return fn(s, pos)
}

// IsNone reports whether the Option slot of type t at pos is absent.
func (s *Session) IsNone(t *schema.Type, pos uint32) bool {
	return schema.IsNone(s.buf, t.Elem, pos)
}
