// Package errors provides structured error types for the candid module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the field path inside the value tree, the expected and actual
// Candid type names, a human-readable detail, and an optional cause.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindMalformed).
//		Path("args", "0", "name").
//		Want("text").
//		Detail("invalid UTF-8 sequence").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseAccess, nil, "bool", "nat64")
//	err := errors.Overflow(errors.PhaseNumeric, nil, "300", "nat8")
//
// Callers branch on the kind rather than on messages:
//
//	if errors.IsKind(err, errors.KindSyntax) {
//		// re-prompt
//	}
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
