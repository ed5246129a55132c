// Package discover holds the discovery front ends that feed a session.
//
// Each front end turns its own signature syntax into binding.Signature
// values and appends the resulting records to a session.Registry:
//
//	discover/gosrc       Go packages annotated with //gms:bind directives
//	discover/witsig      WIT function declarations
//	discover/wasmexport  exported functions of a compiled wasm core module
//
// Signatures a front end cannot describe are rejected with
// KindInvalidSignature before they reach the registry.
package discover

import (
	"context"

	"github.com/wippyai/gmsbind/session"
)

// Source is implemented by every front end.
type Source interface {
	Discover(ctx context.Context, reg *session.Registry) error
}
