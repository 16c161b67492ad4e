// Package deserialize decodes a transfer buffer into ast records.
//
// A Session binds one buffer to its source text and schema flavor. Decoding
// follows the schema: each type is compiled once per flavor into a decoder
// closure, and tagged unions dispatch through a 256-entry table, so session
// state never lives in package variables.
package deserialize
