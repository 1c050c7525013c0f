package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modpack/internal/adapters/archive"  //nolint:depguard // Wired in app layer
	"go.trai.ch/modpack/internal/adapters/cas"      //nolint:depguard // Wired in app layer
	"go.trai.ch/modpack/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/modpack/internal/adapters/manifest" //nolint:depguard // Wired in app layer
	"go.trai.ch/modpack/internal/adapters/modlist"  //nolint:depguard // Wired in app layer
	"go.trai.ch/modpack/internal/core/ports"
	"go.trai.ch/modpack/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			modlist.NodeID,
			resolver.NodeID,
			manifest.NodeID,
			cas.NodeID,
			archive.FetcherNodeID,
			archive.ExtractorNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ModListLoader](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[ports.DependencyResolver](ctx)
	if err != nil {
		return nil, err
	}

	exporter, err := graft.Dep[ports.ManifestExporter](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ArchiveStore](ctx)
	if err != nil {
		return nil, err
	}

	fetcher, err := graft.Dep[ports.ArchiveFetcher](ctx)
	if err != nil {
		return nil, err
	}

	extractor, err := graft.Dep[ports.Extractor](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, res, exporter, store, fetcher, extractor, log), nil
}
