// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/modpack/internal/adapters/archive"
	_ "go.trai.ch/modpack/internal/adapters/cas"
	_ "go.trai.ch/modpack/internal/adapters/config"
	_ "go.trai.ch/modpack/internal/adapters/logger"
	_ "go.trai.ch/modpack/internal/adapters/manifest"
	_ "go.trai.ch/modpack/internal/adapters/modlist"
	_ "go.trai.ch/modpack/internal/adapters/thunderstore"
	// Register app and engine nodes.
	_ "go.trai.ch/modpack/internal/app"
	_ "go.trai.ch/modpack/internal/engine/resolver"
)
