package modlist

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modpack/internal/adapters/config"
	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/modpack/internal/core/ports"
)

// NodeID is the unique identifier for the mod list loader Graft node.
const NodeID graft.ID = "adapter.modlist_loader"

func init() {
	graft.Register(graft.Node[ports.ModListLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.ModListLoader, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			loader, err := NewLoader(settings)
			if err != nil {
				return nil, err
			}
			return loader, nil
		},
	})
}
