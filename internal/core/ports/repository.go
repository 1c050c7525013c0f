package ports

import (
	"context"

	"go.trai.ch/modpack/internal/core/domain"
)

// RepositoryClient defines the interface for querying the package repository.
//
//go:generate mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks
type RepositoryClient interface {
	// Fetch returns the metadata of ref. An unpinned ref resolves to the latest version.
	// It fails with domain.ErrPackageNotFound when the package or version does not exist
	// and with domain.ErrRepositoryRequestFailed on transport failures.
	Fetch(ctx context.Context, ref domain.PackageRef) (*domain.PackageMetadata, error)
}

// DependencyResolver defines the interface for expanding requested packages into an installable set.
type DependencyResolver interface {
	// Resolve returns every requested package plus its transitive dependencies,
	// one version per package.
	Resolve(ctx context.Context, refs []domain.PackageRef) (*domain.ResolvedSet, error)
}
