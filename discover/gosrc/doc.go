// Package gosrc discovers bound functions in a Go package.
//
// A package declares its descriptor once and marks each exported function:
//
//	//gms:bind-start Rope rope.dll rope
//	package rope
//
//	//gms:bind
//	//export node_y
//	func node_y(handle *C.char) C.double { ... }
//
//	//gms:bind-end
//
// Pointer types (*T and unsafe.Pointer) are Text, everything else Number.
// Classification is syntactic: Go string and []byte parameters are Number,
// so pass text as *C.char. Every //gms:bind must sit in the doc comment
// directly above a function; anywhere else it fails discovery.
// Methods, generic functions, variadic parameters and functions with more
// than one result are rejected.
//
// Files are parsed and walked concurrently, one goroutine per file, so
// records reach the registry in nondeterministic order. Every record
// carries its source position; use session.WithStableOrder for
// reproducible output.
package gosrc
