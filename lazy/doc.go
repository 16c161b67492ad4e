// Package lazy reads nodes straight out of a transfer buffer.
//
// A Session wraps one buffer. Node and List are views holding only a
// position: fields decode when read and child nodes come back as further
// views. Walk drives a compiled visitor table over the buffer and builds a
// view only for node types that have a callback.
//
// Walk follows the buffer, not the decoded tree. Nested namespace
// declarations are entered one by one with plain identifier names, a
// shorthand assignment target visits its key once, and the annotation of
// a typed binding is visited after the binding exits. Directives are
// walked as expression statements.
//
// Views share the buffer. Once the session is disposed and the buffer goes
// back to its pool, every view taken from it is invalid.
package lazy
