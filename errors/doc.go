// Package errors provides structured error types for the assembler.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// Parse and encode errors carry the 1-based source line and its raw text so
// diagnostics can point at the offending input.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParse, errors.KindSyntax).
//		At(12, "add r0, r1").
//		Detail("bad register %q", "r99").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownOpcode(4, line, "foo")
//	err := errors.Arity(7, line, "add", 3, 2)
//
// All errors implement the standard error interface and support errors.Is/As.
// errors.Is matches on Phase and Kind; a target with an empty Kind matches
// any error of that Phase.
package errors
