package driver

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/gmsbind/binding"
	"github.com/wippyai/gmsbind/descriptor"
	"github.com/wippyai/gmsbind/emit"
	"github.com/wippyai/gmsbind/errors"
	"github.com/wippyai/gmsbind/session"
)

type sourceFunc func(ctx context.Context, reg *session.Registry) error

func (f sourceFunc) Discover(ctx context.Context, reg *session.Registry) error { return f(ctx, reg) }

type failingSink struct{ calls int }

func (s *failingSink) Persist(context.Context, *descriptor.Document, string) error {
	s.calls++
	return errors.WriteFailed("nowhere", fmt.Errorf("disk full"))
}

var rope = session.Target{Name: "Rope", FileName: "rope.dll", Prefix: "rope"}

func records(names ...string) sourceFunc {
	return func(_ context.Context, reg *session.Registry) error {
		for _, n := range names {
			sig := binding.Signature{Params: []binding.TypeDesc{binding.Pointer("Node")}}
			if err := reg.Append(binding.Record(n, sig)); err != nil {
				return err
			}
		}
		return nil
	}
}

func TestRun(t *testing.T) {
	reg := session.NewRegistry()
	sink := emit.NewMemorySink()

	doc, err := Run(context.Background(), reg, records("node_x", "node_y"), rope, sink)
	require.NoError(t, err)
	assert.False(t, reg.Active())

	require.Len(t, doc.Files.File.Functions.Items, 2)
	assert.Equal(t, "rope_node_x", doc.Files.File.Functions.Items[0].Name)

	data, ok := sink.Get("Rope")
	require.True(t, ok)
	want, err := descriptor.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, want, data)
}

func TestRun_EmptySession(t *testing.T) {
	sink := emit.NewMemorySink()
	doc, err := Run(context.Background(), session.NewRegistry(), records(), rope, sink)
	require.NoError(t, err)
	assert.Empty(t, doc.Files.File.Functions.Items)
	assert.Equal(t, 1, sink.Len())
}

func TestRun_DiscoveryFailure(t *testing.T) {
	reg := session.NewRegistry()
	sink := emit.NewMemorySink()
	failing := sourceFunc(func(_ context.Context, reg *session.Registry) error {
		_ = reg.Append(binding.Record("partial", binding.Signature{}))
		return errors.InvalidSignature(nil, "bad", "variadic parameters are not supported")
	})

	_, err := Run(context.Background(), reg, failing, rope, sink)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseParse, Kind: errors.KindInvalidSignature})
	assert.False(t, reg.Active(), "failed session is dropped")
	assert.Zero(t, sink.Len())

	// the next run sees none of the partial records
	doc, err := Run(context.Background(), reg, records("ok"), rope, sink)
	require.NoError(t, err)
	require.Len(t, doc.Files.File.Functions.Items, 1)
	assert.Equal(t, "ok", doc.Files.File.Functions.Items[0].ExternalName)
}

func TestRun_SinkFailure(t *testing.T) {
	sink := &failingSink{}
	_, err := Run(context.Background(), session.NewRegistry(), records("a"), rope, sink)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseEmit, Kind: errors.KindWriteFailed})
	assert.Equal(t, 1, sink.calls)
}

func TestRun_RejectPolicy(t *testing.T) {
	reg := session.NewRegistry(session.WithRestartPolicy(session.RestartReject))
	_, err := reg.Start(session.Target{Name: "Other"})
	require.NoError(t, err)

	_, err = Run(context.Background(), reg, records("a"), rope, nil)
	assert.ErrorIs(t, err, errors.ErrSessionAlreadyActive)
}

func TestRun_NilSink(t *testing.T) {
	doc, err := Run(context.Background(), session.NewRegistry(), records("a"), rope, nil)
	require.NoError(t, err)
	assert.Equal(t, "Rope", doc.Name)
}
