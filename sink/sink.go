// Package sink provides output destinations for generated source files.
package sink

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// OutputSink receives generated file content. Implementations must be
// safe for concurrent calls.
type OutputSink interface {
	// WriteFile writes content to a path relative to the sink's root.
	WriteFile(ctx context.Context, path string, content []byte) error
}

// FilesystemSink writes to a directory on the local filesystem.
// Writes are atomic: content lands in a temp file first and is renamed
// into place, so readers never observe a half-written module.
type FilesystemSink struct {
	// Root is the base directory for all writes.
	Root string

	// Mode is the file permission mode (default 0644).
	Mode os.FileMode
}

// NewFilesystemSink creates a FilesystemSink rooted at dir.
func NewFilesystemSink(dir string) *FilesystemSink {
	return &FilesystemSink{Root: dir, Mode: 0644}
}

// WriteFile writes content to path under the root, creating parent
// directories as needed.
func (s *FilesystemSink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := validatePath(path); err != nil {
		return errors.Wrapf(err, "invalid path %q", path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath := filepath.Join(s.Root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	mode := s.Mode
	if mode == 0 {
		mode = 0644
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".telegen-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrap(err, "writing temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "setting file mode")
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "renaming temp file")
	}
	return nil
}

// MemorySink stores generated files in memory. Safe for concurrent use.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// WriteFile stores a copy of content under path.
func (s *MemorySink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := validatePath(path); err != nil {
		return errors.Wrapf(err, "invalid path %q", path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = append([]byte(nil), content...)
	return nil
}

// Get returns the content of a single file, or nil if not found.
func (s *MemorySink) Get(path string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.files[path]
	if !ok {
		return nil
	}
	return append([]byte(nil), content...)
}

// validatePath rejects paths that could escape the sink root.
func validatePath(path string) error {
	switch {
	case path == "":
		return errors.New("path is empty")
	case filepath.IsAbs(path):
		return errors.New("absolute paths not allowed")
	case strings.Contains(path, ".."):
		return errors.New("path traversal not allowed")
	}
	return nil
}
