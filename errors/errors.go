package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode  Phase = "decode"  // buffer to host records
	PhaseCompile Phase = "compile" // visitor compilation
	PhaseWalk    Phase = "walk"    // lazy traversal
	PhasePool    Phase = "pool"    // buffer checkout and release
	PhaseProduce Phase = "produce" // producer invocation
	PhaseLoad    Phase = "load"    // snapshot and module loading
	PhaseConfig  Phase = "config"  // configuration parsing
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidDiscriminant Kind = "invalid_discriminant"
	KindLayoutMismatch      Kind = "layout_mismatch"
	KindOutOfBounds         Kind = "out_of_bounds"
	KindInvalidData         Kind = "invalid_data"
	KindUnsupported         Kind = "unsupported"
	KindUnknownType         Kind = "unknown_type"
	KindNotFunction         Kind = "not_function"
	KindInvalidVisitor      Kind = "invalid_visitor"
	KindInvalidInput        Kind = "invalid_input"
	KindDoubleRelease       Kind = "double_release"
	KindForeignBuffer       Kind = "foreign_buffer"
	KindExhausted           Kind = "exhausted"
	KindInstantiation       Kind = "instantiation"
	KindNotFound            Kind = "not_found"
	KindChecksum            Kind = "checksum"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	TypeName string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(joinPath(e.Path))
	}

	if e.TypeName != "" {
		b.WriteString(": type ")
		b.WriteString(e.TypeName)
	}

	if e.Detail != "" {
		if e.TypeName != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// joinPath renders a path, attaching index segments ("[3]") without a dot
func joinPath(path []string) string {
	var b strings.Builder
	for i, seg := range path {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// TypeName sets the schema type name
func (b *Builder) TypeName(t string) *Builder {
	b.err.TypeName = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// WithPath prepends a path segment to err if it is an *Error.
// Decoders call it while unwinding so the path is only built on failure.
func WithPath(err error, seg string) error {
	if e, ok := err.(*Error); ok {
		e.Path = append([]string{seg}, e.Path...)
	}
	return err
}

// Convenience constructors for common error patterns

// InvalidDiscriminant creates an unknown discriminant error for a tagged union
func InvalidDiscriminant(phase Phase, union string, disc uint8, pos uint32) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindInvalidDiscriminant,
		TypeName: union,
		Detail:   fmt.Sprintf("unknown discriminant %d for %s at offset %d", disc, union, pos),
		Value:    disc,
	}
}

// LayoutMismatch creates an error for a buffer written against another layout
func LayoutMismatch(phase Phase, want, got uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindLayoutMismatch,
		Detail: fmt.Sprintf("layout fingerprint %016x does not match decoder %016x", got, want),
		Value:  got,
	}
}

// UnknownType creates an error for a node type name that does not exist
func UnknownType(phase Phase, name string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindUnknownType,
		TypeName: name,
		Detail:   fmt.Sprintf("unknown node type %q", name),
	}
}

// NotFunction creates an error for a visitor entry that is not callable
func NotFunction(phase Phase, key string, value any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFunction,
		Path:   []string{key},
		Detail: fmt.Sprintf("'%s' property in visitor object is not a function (got %T)", key, value),
		Value:  value,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
