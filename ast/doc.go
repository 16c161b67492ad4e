// Package ast holds the materialized form of a decoded tree.
//
// A Node is an ordered record with a type name and a byte span. Property
// values are one of: nil, bool, string, float64, uint8, uint32, *big.Int,
// *regexp.Regexp, *Node, *Object or []any of those.
package ast
