// Package errors provides structured error types for the rawtransfer module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the field path into the tree, the schema type name and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidDiscriminant).
//		Path("program", "body", "[2]").
//		TypeName("Statement").
//		Detail("unknown discriminant %d", 99).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidDiscriminant(errors.PhaseDecode, "Expression", 99, pos)
//	err := errors.UnknownType(errors.PhaseCompile, "Identifer")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
