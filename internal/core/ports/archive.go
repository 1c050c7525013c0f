package ports

import (
	"context"

	"go.trai.ch/modpack/internal/core/domain"
)

// ArchiveFetcher defines the interface for downloading package archives.
//
//go:generate mockgen -source=archive.go -destination=mocks/mock_archive.go -package=mocks
type ArchiveFetcher interface {
	// Download stores the archive at url in dst and returns the number of bytes written.
	// dst is only created once the download has completed.
	Download(ctx context.Context, url, dst string) (int64, error)
}

// Extractor defines the interface for laying archives out into a modpack directory.
type Extractor interface {
	// Prepare creates the modpack directory skeleton. It fails if dir already exists.
	Prepare(dir string) error

	// Extract unpacks the archive of pkg into dir following the mod loader's conventions.
	Extract(pkg *domain.PackageMetadata, archivePath, dir string) error
}
