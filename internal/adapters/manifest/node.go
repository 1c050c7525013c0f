package manifest

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modpack/internal/core/ports"
)

// NodeID is the unique identifier for the manifest exporter Graft node.
const NodeID graft.ID = "adapter.manifest_exporter"

func init() {
	graft.Register(graft.Node[ports.ManifestExporter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestExporter, error) {
			return NewExporter(), nil
		},
	})
}
