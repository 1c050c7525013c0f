package ports

import "go.trai.ch/modpack/internal/core/domain"

// SettingsLoader defines the interface for loading run settings.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type SettingsLoader interface {
	// Load reads the settings for the given working directory.
	// Missing configuration files are not an error; defaults apply.
	Load(cwd string) (*domain.Settings, error)
}
