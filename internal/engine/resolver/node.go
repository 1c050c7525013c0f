package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modpack/internal/adapters/config"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/modpack/internal/adapters/logger"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/modpack/internal/adapters/thunderstore" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/modpack/internal/core/ports"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[ports.DependencyResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			thunderstore.NodeID,
			logger.NodeID,
			config.SettingsNodeID,
		},
		Run: func(ctx context.Context) (ports.DependencyResolver, error) {
			client, err := graft.Dep[ports.RepositoryClient](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}

			return NewResolver(client, log, settings.VersionPolicy), nil
		},
	})
}
