package emit

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/gmsbind/descriptor"
	"github.com/wippyai/gmsbind/errors"
)

// DefaultExt is appended to the session name when no extension is configured.
const DefaultExt = ".xml"

// Sink stores a finished descriptor under a location derived from name.
type Sink interface {
	Persist(ctx context.Context, doc *descriptor.Document, name string) error
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.InvalidInput(errors.PhaseEmit, "descriptor name is required")
	}
	if strings.ContainsAny(name, `/\`) {
		return errors.InvalidInput(errors.PhaseEmit, "descriptor name must not contain path separators: "+name)
	}
	return nil
}

func extOrDefault(ext string) string {
	if ext == "" {
		return DefaultExt
	}
	return ext
}

// FileSink writes descriptors into a directory.
type FileSink struct {
	Dir string
	Ext string
	// MkdirAll creates Dir when it does not exist.
	MkdirAll bool
}

// Path returns the file a descriptor named name is written to.
func (s *FileSink) Path(name string) string {
	return filepath.Join(s.Dir, name+extOrDefault(s.Ext))
}

func (s *FileSink) Persist(ctx context.Context, doc *descriptor.Document, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := descriptor.Marshal(doc)
	if err != nil {
		return err
	}

	path := s.Path(name)
	if s.MkdirAll {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			return errors.WriteFailed(s.Dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WriteFailed(path, err)
	}

	Logger().Info("descriptor written",
		zap.String("name", name),
		zap.String("path", path),
		zap.Int("bytes", len(data)))
	return nil
}

// MemorySink keeps the last descriptor written under each name.
type MemorySink struct {
	docs map[string][]byte
	mu   sync.Mutex
}

func NewMemorySink() *MemorySink {
	return &MemorySink{docs: make(map[string][]byte)}
}

func (s *MemorySink) Persist(_ context.Context, doc *descriptor.Document, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	data, err := descriptor.Marshal(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.docs[name] = data
	s.mu.Unlock()
	return nil
}

// Get returns the bytes stored under name.
func (s *MemorySink) Get(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.docs[name]
	return data, ok
}

// Len reports how many distinct names have been written.
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}
