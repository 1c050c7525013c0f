package archive

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modpack/internal/adapters/config"
	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/modpack/internal/core/ports"
)

const (
	// FetcherNodeID is the unique identifier for the archive fetcher Graft node.
	FetcherNodeID graft.ID = "adapter.archive_fetcher"

	// ExtractorNodeID is the unique identifier for the extractor Graft node.
	ExtractorNodeID graft.ID = "adapter.extractor"
)

func init() {
	graft.Register(graft.Node[ports.ArchiveFetcher]{
		ID:        FetcherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.ArchiveFetcher, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewFetcher(settings), nil
		},
	})

	graft.Register(graft.Node[ports.Extractor]{
		ID:        ExtractorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.Extractor, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewExtractor(settings), nil
		},
	})
}
