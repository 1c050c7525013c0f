// Package cas implements the content addressed archive cache.
package cas

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.ArchiveStore using a file-per-archive strategy.
// Archives are keyed by package, version and download URL, so a republished
// archive at a new URL never collides with a stale one.
type Store struct {
	dir string
}

// NewStore creates a new ArchiveStore rooted at the cache directory of settings.
func NewStore(settings *domain.Settings) *Store {
	return newStoreWithPath(settings.CacheDir)
}

// newStoreWithPath creates a Store rooted at dir (used for testing).
func newStoreWithPath(dir string) *Store {
	return &Store{dir: filepath.Clean(dir)}
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	return s.dir
}

// Get returns the cached archive of pkg.
func (s *Store) Get(pkg *domain.PackageMetadata) (string, bool, error) {
	filename := s.getFilename(pkg)

	info, err := os.Stat(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, zerr.With(zerr.Wrap(err, domain.ErrArchiveCacheFailed.Error()), "path", filename)
	}

	if !info.Mode().IsRegular() {
		return "", false, zerr.With(domain.ErrArchiveCacheFailed, "path", filename)
	}

	return filename, true, nil
}

// Path returns where the archive of pkg must be stored, creating the cache directory.
func (s *Store) Path(pkg *domain.PackageMetadata) (string, error) {
	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrArchiveCacheFailed.Error()), "path", s.dir)
	}
	return s.getFilename(pkg), nil
}

// Clean removes every cached archive.
func (s *Store) Clean() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", s.dir)
	}
	return nil
}

func (s *Store) getFilename(pkg *domain.PackageMetadata) string {
	h := xxhash.New()
	_, _ = h.WriteString(pkg.Key.String())
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(pkg.Version)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(pkg.DownloadURL)

	name := pkg.Ref().String() + "-" + strconv.FormatUint(h.Sum64(), 16) + ".zip"
	return filepath.Join(s.dir, name)
}
