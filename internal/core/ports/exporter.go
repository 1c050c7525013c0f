package ports

import (
	"io"
	"iter"
	"time"

	"go.trai.ch/modpack/internal/core/domain"
)

// ManifestExporter defines the interface for rendering a resolved set for humans.
//
//go:generate mockgen -source=exporter.go -destination=mocks/mock_exporter.go -package=mocks
type ManifestExporter interface {
	// Entries projects the set into manifest entries, ages computed relative to now.
	Entries(set *domain.ResolvedSet, now time.Time) iter.Seq[domain.OutputManifestEntry]

	// ExportFile writes the manifest to path, "-" meaning w.
	ExportFile(path string, w io.Writer, set *domain.ResolvedSet, now time.Time) error

	// Summary writes the update status of the requested packages to w.
	Summary(w io.Writer, set *domain.ResolvedSet, now time.Time) error
}
