// Package errors provides structured error types for the vhpi library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes context: object path, Go type and native format names, and
// a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseWrite, errors.KindTypeMismatch).
//		Path("TOP", "CLK").
//		GoType("vhpi.Str").
//		Format("LogicVal").
//		Detail("cannot deposit a string on a logic scalar").
//		Build()
//
// Failures reported by the simulator itself carry a *Diagnostic as their cause.
// A Diagnostic is the snapshot of the native error record taken right after the
// failing call:
//
//	var diag *errors.Diagnostic
//	if stderrors.As(err, &diag) && diag.Severity >= errors.SeverityError { ... }
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
