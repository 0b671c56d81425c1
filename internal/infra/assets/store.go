// Package assets gives read-only access to pre-recorded audio files.
package assets

import (
	"io"

	"github.com/spf13/afero"
)

// Store probes and opens audio assets on a filesystem.
type Store struct {
	fs afero.Fs
}

// NewStore wraps fs as a read-only asset store.
func NewStore(fs afero.Fs) *Store {
	return &Store{fs: afero.NewReadOnlyFs(fs)}
}

// NewOSStore returns a store backed by the operating system filesystem.
func NewOSStore() *Store {
	return NewStore(afero.NewOsFs())
}

// AssetExists reports whether path is an existing regular file.
func (s *Store) AssetExists(path string) bool {
	info, err := s.fs.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Open opens the asset at path. The caller closes the reader.
func (s *Store) Open(path string) (io.ReadCloser, int64, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return nil, 0, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, err
	}

	return f, info.Size(), nil
}
