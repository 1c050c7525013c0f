package thunderstore

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modpack/internal/adapters/config"
	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/modpack/internal/core/ports"
)

// NodeID is the unique identifier for the repository client Graft node.
const NodeID graft.ID = "adapter.repository_client"

func init() {
	graft.Register(graft.Node[ports.RepositoryClient]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.RepositoryClient, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			client, err := NewClient(settings)
			if err != nil {
				return nil, err
			}
			return client, nil
		},
	})
}
