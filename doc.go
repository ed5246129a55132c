// Package gmsbind generates GameMaker extension descriptors for native
// libraries.
//
// A build step opens a session naming the extension, the library file and a
// function prefix, lets a discovery front end record every exported
// function, closes the session and writes one XML descriptor the host reads
// to load the library and call its functions.
//
// # Architecture Overview
//
//	gmsbind/
//	├── binding/          Argument type buckets and function records
//	├── session/          Start/append/end registry shared by discovery sites
//	├── descriptor/       Extension document model and XML encoding
//	├── emit/             Sinks: directory, S3 bucket, memory
//	├── discover/         Front ends producing function records
//	│   ├── gosrc/        Go packages annotated with //gms:bind directives
//	│   ├── witsig/       WIT function declarations
//	│   └── wasmexport/   Exports of a compiled wasm core module
//	├── driver/           One start, discover, end, build, persist pass
//	├── config/           YAML, .env and environment settings
//	├── errors/           Structured error types
//	└── cmd/gmsbind/      Command line tool
//
// # Quick Start
//
// Describe a Go package built with -buildmode=c-shared:
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
// then run:
//
//	gmsbind go ./rope --out build/extensions
//
// From Go code:
//
//	pkg, _ := gosrc.Load(ctx, "./rope")
//	target, _ := pkg.Target()
//	doc, err := driver.Run(ctx, session.NewRegistry(), pkg, target,
//		&emit.FileSink{Dir: "build/extensions"})
//
// # Argument Types
//
// The host knows two value types. Pointer-like parameters (Go pointers,
// unsafe.Pointer, WIT strings and lists, wasm externref) are Text with code 1;
// everything else is Number with code 2. A function with no result returns
// Number.
//
// # Concurrency
//
// session.Registry is safe for concurrent use. Records appended from several
// goroutines keep lock-acquisition order unless the registry was created with
// session.WithStableOrder, which sorts them by source position when the
// session ends.
package gmsbind
