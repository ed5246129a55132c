// Package errors provides structured error types for gmsbind.
//
// Errors are categorized by Phase (which build step failed) and Kind (error category).
// The Error type carries the session or function name, a source path and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParse, errors.KindInvalidSignature).
//		Name("node_y").
//		Path("rope.go:12").
//		Detail("variadic parameters are not supported").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NoActiveSession("append")
//	err := errors.WriteFailed(path, cause)
//
// All errors implement the standard error interface and support errors.Is/As.
// Every error is fatal to the build step that produced it.
package errors
