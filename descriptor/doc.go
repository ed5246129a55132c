// Package descriptor assembles a finished session into the extension
// descriptor document read by the host.
//
// The document is an <extension> tree: fixed packaging metadata, then one
// <file> for the session's artifact holding one <function> per record.
// Build is pure and deterministic; Marshal produces identical bytes for
// identical documents.
package descriptor
