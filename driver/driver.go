// Package driver runs one discovery pass from session start to emission.
package driver

import (
	"context"

	"github.com/wippyai/gmsbind/descriptor"
	"github.com/wippyai/gmsbind/discover"
	"github.com/wippyai/gmsbind/emit"
	"github.com/wippyai/gmsbind/session"
)

// Run starts a session for target, lets src append its records, ends the
// session and persists the built document under the session name. A
// failed discovery ends the session and drops it; nothing is emitted.
// A nil sink skips emission.
func Run(ctx context.Context, reg *session.Registry, src discover.Source, target session.Target, sink emit.Sink) (*descriptor.Document, error) {
	if _, err := reg.Start(target); err != nil {
		return nil, err
	}

	if err := src.Discover(ctx, reg); err != nil {
		_, _ = reg.End()
		return nil, err
	}

	b, err := reg.End()
	if err != nil {
		return nil, err
	}

	doc := descriptor.Build(b)
	if sink == nil {
		return doc, nil
	}
	if err := sink.Persist(ctx, doc, b.Name); err != nil {
		return nil, err
	}
	return doc, nil
}
