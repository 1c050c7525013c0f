package ports

import "go.trai.ch/modpack/internal/core/domain"

// ArchiveStore defines the interface of the downloaded archive cache.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ArchiveStore interface {
	// Get returns the cached archive of pkg.
	// It returns "", false, nil when the archive has not been downloaded yet.
	Get(pkg *domain.PackageMetadata) (string, bool, error)

	// Path returns the location where the archive of pkg must be stored,
	// creating the cache directory if needed.
	Path(pkg *domain.PackageMetadata) (string, error)

	// Clean removes every cached archive.
	Clean() error
}
