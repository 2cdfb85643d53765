package mesher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.trai.ch/softmesh/internal/core/domain"
	"go.trai.ch/softmesh/internal/core/ports"
	"go.trai.ch/zerr"
)

// Pipeline is the worker side of mesh generation. It renders the geometry, derives its
// identifier from the kernel's canonical description and meshes it on a cache miss.
type Pipeline struct {
	generators ports.GeneratorRegistry
	kernel     ports.GeometryKernel
	store      ports.MeshStore
}

// NewPipeline creates a new Pipeline.
func NewPipeline(generators ports.GeneratorRegistry, kernel ports.GeometryKernel, store ports.MeshStore) *Pipeline {
	return &Pipeline{
		generators: generators,
		kernel:     kernel,
		store:      store,
	}
}

// Handle decodes MeshArgs and runs Mesh. Its signature matches a worker handler.
func (p *Pipeline) Handle(ctx context.Context, raw json.RawMessage, log io.Writer) (any, error) {
	var args MeshArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, zerr.Wrap(errors.Join(domain.ErrWorkerResultInvalid, err), "failed to decode mesh arguments")
	}
	return p.Mesh(ctx, args, log)
}

// Mesh returns the artifact of the requested geometry, generating it if needed.
func (p *Pipeline) Mesh(ctx context.Context, args MeshArgs, log io.Writer) (MeshResult, error) {
	mode, err := domain.ParseMeshMode(args.Mode)
	if err != nil {
		return MeshResult{}, err
	}

	gen, err := resolveGenerator(p.generators, args.Generator, args.Template)
	if err != nil {
		return MeshResult{}, err
	}

	geometry, err := gen.Generate(args.Parameters)
	if err != nil {
		return MeshResult{}, zerr.With(zerr.Wrap(err, "failed to generate geometry"), "generator", gen.Name())
	}

	canonical, err := p.kernel.Describe(ctx, geometry, log)
	if err != nil {
		return MeshResult{}, zerr.Wrap(err, "failed to describe geometry")
	}
	id := domain.NewIdentifier(gen.Name(), canonical)

	if path, ok, err := p.store.Lookup(args.Dir, id, mode); err != nil {
		return MeshResult{}, err
	} else if ok {
		return MeshResult{Path: path, Identifier: id, Cached: true}, nil
	}

	unlock, err := p.store.Lock(ctx, args.Dir, id)
	if err != nil {
		return MeshResult{}, err
	}
	defer func() { _ = unlock() }()

	// Another process may have committed it while we waited for the lock.
	if path, ok, err := p.store.Lookup(args.Dir, id, mode); err != nil {
		return MeshResult{}, err
	} else if ok {
		return MeshResult{Path: path, Identifier: id, Cached: true}, nil
	}

	path, err := p.store.Commit(args.Dir, id, mode, func(tmp string) error {
		return p.kernel.Mesh(ctx, geometry, mode, args.Refine, tmp, log)
	})
	if err != nil {
		return MeshResult{}, zerr.With(zerr.Wrap(err, "failed to mesh geometry"), "identifier", id)
	}

	rec := domain.MeshRecord{
		Identifier: id,
		Generator:  gen.Name(),
		Parameters: args.Parameters,
		Modes:      []string{mode.String()},
		Refined:    args.Refine,
	}
	// The artifact is committed; a missing sidecar only loses listing metadata.
	if err := p.store.Record(args.Dir, rec); err != nil {
		_, _ = fmt.Fprintf(log, "warning: failed to record metadata of %s: %v\n", id, err)
	}

	return MeshResult{Path: path, Identifier: id}, nil
}

func resolveGenerator(reg ports.GeneratorRegistry, name, template string) (ports.Generator, error) {
	if template != "" {
		return reg.LoadTemplate(name, template)
	}
	return reg.Lookup(name)
}
