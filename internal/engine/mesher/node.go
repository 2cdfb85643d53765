package mesher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/softmesh/internal/adapters/cas"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/softmesh/internal/adapters/config"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/softmesh/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/softmesh/internal/adapters/generator"          //nolint:depguard // Wired in engine wiring
	"go.trai.ch/softmesh/internal/adapters/gmsh"               //nolint:depguard // Wired in engine wiring
	"go.trai.ch/softmesh/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/softmesh/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/softmesh/internal/adapters/worker"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/softmesh/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the mesh service Graft node.
	NodeID graft.ID = "engine.mesher"
	// PipelineNodeID is the unique identifier for the worker-side mesh pipeline Graft node.
	PipelineNodeID graft.ID = "engine.mesher.pipeline"
)

func init() {
	graft.Register(graft.Node[*Service]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			worker.NodeID,
			cas.NodeID,
			fs.HasherNodeID,
			fs.VerifierNodeID,
			generator.NodeID,
			gmsh.NodeID,
			progrock.NodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: runServiceNode,
	})

	graft.Register(graft.Node[*Pipeline]{
		ID:        PipelineNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			generator.NodeID,
			gmsh.NodeID,
			cas.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			generators, err := graft.Dep[ports.GeneratorRegistry](ctx)
			if err != nil {
				return nil, err
			}

			kernel, err := graft.Dep[ports.GeometryKernel](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.MeshStore](ctx)
			if err != nil {
				return nil, err
			}

			return NewPipeline(generators, kernel, store), nil
		},
	})
}

func runServiceNode(ctx context.Context) (*Service, error) {
	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.MeshStore](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	verifier, err := graft.Dep[ports.ArtifactVerifier](ctx)
	if err != nil {
		return nil, err
	}

	generators, err := graft.Dep[ports.GeneratorRegistry](ctx)
	if err != nil {
		return nil, err
	}

	kernel, err := graft.Dep[ports.GeometryKernel](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	return NewService(
		executor,
		store,
		hasher,
		verifier,
		generators,
		kernel,
		telemetry,
		log,
		loader.Settings(),
	), nil
}
