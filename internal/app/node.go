package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/softmesh/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/softmesh/internal/adapters/gmsh"               //nolint:depguard // Wired in app layer
	"go.trai.ch/softmesh/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/softmesh/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/softmesh/internal/core/ports"
	"go.trai.ch/softmesh/internal/engine/mesher"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			mesher.NodeID,
			mesher.PipelineNodeID,
			logger.NodeID,
			progrock.NodeID,
			gmsh.NodeID,
		},
		Run: runAppNode,
	})

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
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	service, err := graft.Dep[*mesher.Service](ctx)
	if err != nil {
		return nil, err
	}

	pipeline, err := graft.Dep[*mesher.Pipeline](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	kernel, err := graft.Dep[ports.GeometryKernel](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, service, pipeline, log, telemetry, kernel), nil
}
