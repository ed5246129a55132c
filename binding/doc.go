// Package binding describes exported functions in the two-type vocabulary
// of the extension host.
//
// # Key Types
//
//   - ArgType: Number or Text, the only marshalled types the host supports
//   - TypeDesc: structural type description produced by a discovery front end
//   - Signature: ordered parameter descriptions plus an optional result
//   - FunctionRecord: the captured shape of one exported function
//
// Classification is total: a TypeDesc with the Indirect flag set is Text,
// everything else (including no declared type) is Number. Front ends decide
// what counts as indirection in their own syntax.
package binding
