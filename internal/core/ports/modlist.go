package ports

import "go.trai.ch/modpack/internal/core/domain"

// ModListLoader defines the interface for reading the requested packages.
//
//go:generate mockgen -source=modlist.go -destination=mocks/mock_modlist.go -package=mocks
type ModListLoader interface {
	// Load parses the mod list at path, in file order.
	Load(path string) ([]domain.PackageRef, error)
}
