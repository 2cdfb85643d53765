package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/softmesh/internal/adapters/config"
	"go.trai.ch/softmesh/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Logger, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			l := New()
			l.SetFormat(Format(loader.Settings().LogFormat))
			return l, nil
		},
	})
}
