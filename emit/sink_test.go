package emit

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/gmsbind/binding"
	"github.com/wippyai/gmsbind/descriptor"
	"github.com/wippyai/gmsbind/errors"
	"github.com/wippyai/gmsbind/session"
)

func buildDoc(t *testing.T, fns ...string) *descriptor.Document {
	t.Helper()
	reg := session.NewRegistry()
	_, err := reg.Start(session.Target{Name: "Rope", FileName: "rope.dll", Prefix: "rope"})
	require.NoError(t, err)
	for _, f := range fns {
		require.NoError(t, reg.Append(binding.Record(f, binding.Signature{})))
	}
	b, err := reg.End()
	require.NoError(t, err)
	return descriptor.Build(b)
}

func TestFileSink_WritesDerivedPath(t *testing.T) {
	dir := t.TempDir()
	sink := &FileSink{Dir: dir}

	require.NoError(t, sink.Persist(context.Background(), buildDoc(t, "a"), "Rope"))

	path := filepath.Join(dir, "Rope.xml")
	assert.Equal(t, path, sink.Path("Rope"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want, err := descriptor.Marshal(buildDoc(t, "a"))
	require.NoError(t, err)
	assert.Equal(t, want, data)
}

func TestFileSink_Overwrites(t *testing.T) {
	dir := t.TempDir()
	sink := &FileSink{Dir: dir, Ext: ".extension.gmx"}
	ctx := context.Background()

	require.NoError(t, sink.Persist(ctx, buildDoc(t, "a", "b"), "Rope"))
	require.NoError(t, sink.Persist(ctx, buildDoc(t, "c"), "Rope"))

	data, err := os.ReadFile(filepath.Join(dir, "Rope.extension.gmx"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "rope_c")
	assert.NotContains(t, string(data), "rope_a")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileSink_MissingDirectory(t *testing.T) {
	sink := &FileSink{Dir: filepath.Join(t.TempDir(), "missing")}
	err := sink.Persist(context.Background(), buildDoc(t), "Rope")
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseEmit, Kind: errors.KindWriteFailed})
}

func TestFileSink_MkdirAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	sink := &FileSink{Dir: dir, MkdirAll: true}
	require.NoError(t, sink.Persist(context.Background(), buildDoc(t), "Rope"))
	assert.FileExists(t, filepath.Join(dir, "Rope.xml"))
}

func TestFileSink_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sink := &FileSink{Dir: t.TempDir()}
	assert.ErrorIs(t, sink.Persist(ctx, buildDoc(t), "Rope"), context.Canceled)
}

func TestSinks_RejectBadNames(t *testing.T) {
	sinks := map[string]Sink{
		"file":   &FileSink{Dir: t.TempDir()},
		"memory": NewMemorySink(),
	}
	for sinkName, sink := range sinks {
		for _, name := range []string{"", "  ", "../Rope", `dir\Rope`} {
			t.Run(sinkName+"/"+name, func(t *testing.T) {
				err := sink.Persist(context.Background(), buildDoc(t), name)
				assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseEmit, Kind: errors.KindInvalidInput})
			})
		}
	}
}

func TestMemorySink(t *testing.T) {
	sink := NewMemorySink()
	ctx := context.Background()

	_, ok := sink.Get("Rope")
	assert.False(t, ok)

	require.NoError(t, sink.Persist(ctx, buildDoc(t, "a"), "Rope"))
	require.NoError(t, sink.Persist(ctx, buildDoc(t, "b"), "Rope"))
	require.NoError(t, sink.Persist(ctx, buildDoc(t), "Other"))

	assert.Equal(t, 2, sink.Len())
	data, ok := sink.Get("Rope")
	require.True(t, ok)
	assert.Contains(t, string(data), "rope_b")
}

func TestNewS3Sink_Validation(t *testing.T) {
	valid := S3Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "descriptors"}

	tests := []struct {
		name   string
		mutate func(*S3Config)
	}{
		{"no endpoint", func(c *S3Config) { c.Endpoint = "" }},
		{"no access key", func(c *S3Config) { c.AccessKey = "" }},
		{"no secret", func(c *S3Config) { c.SecretKey = " " }},
		{"no bucket", func(c *S3Config) { c.Bucket = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			_, err := NewS3Sink(cfg)
			assert.Error(t, err)
		})
	}

	sink, err := NewS3Sink(valid)
	require.NoError(t, err)
	assert.Equal(t, "Rope.xml", sink.Key("Rope"))

	cfg := valid
	cfg.KeyPrefix = "extensions/"
	cfg.Ext = ".extension.gmx"
	sink, err = NewS3Sink(cfg)
	require.NoError(t, err)
	assert.Equal(t, "extensions/Rope.extension.gmx", sink.Key("Rope"))
}
