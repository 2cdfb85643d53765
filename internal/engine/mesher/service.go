package mesher

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.trai.ch/softmesh/internal/core/domain"
	"go.trai.ch/softmesh/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Service is the parent side of the mesh cache. It manages mesh directories, dedups
// identical requests and dispatches mesh jobs to isolated workers.
type Service struct {
	executor   ports.Executor
	store      ports.MeshStore
	hasher     ports.Hasher
	verifier   ports.ArtifactVerifier
	generators ports.GeneratorRegistry
	kernel     ports.GeometryKernel
	telemetry  ports.Telemetry
	logger     ports.Logger
	settings   domain.Settings

	group singleflight.Group
	memo  *expirable.LRU[string, string]
}

// NewService creates a new Service.
func NewService(
	executor ports.Executor,
	store ports.MeshStore,
	hasher ports.Hasher,
	verifier ports.ArtifactVerifier,
	generators ports.GeneratorRegistry,
	kernel ports.GeometryKernel,
	telemetry ports.Telemetry,
	logger ports.Logger,
	settings domain.Settings,
) *Service {
	size := settings.MemoSize
	if size <= 0 {
		size = 1
	}
	return &Service{
		executor:   executor,
		store:      store,
		hasher:     hasher,
		verifier:   verifier,
		generators: generators,
		kernel:     kernel,
		telemetry:  telemetry,
		logger:     logger,
		settings:   settings,
		memo:       expirable.NewLRU[string, string](size, nil, settings.MemoTTL),
	}
}

// Settings returns the settings the service was created with.
func (s *Service) Settings() domain.Settings {
	return s.settings
}

// WithTimeout returns a copy of the service using timeout for new jobs.
// The copy shares the memo but not in-flight requests.
func (s *Service) WithTimeout(timeout time.Duration) *Service {
	c := &Service{
		executor:   s.executor,
		store:      s.store,
		hasher:     s.hasher,
		verifier:   s.verifier,
		generators: s.generators,
		kernel:     s.kernel,
		telemetry:  s.telemetry,
		logger:     s.logger,
		settings:   s.settings,
		memo:       s.memo,
	}
	c.settings.Timeout = timeout
	return c
}

// ManageDirectories creates the base and optimization-loop mesh directories of model
// and warns when the loop cache grew past the configured threshold. Nothing is deleted.
func (s *Service) ManageDirectories(model *domain.ModelConfig) error {
	for _, dir := range []string{model.BaseMeshesDir(), model.MeshesDir(true)} {
		created, err := s.store.Prepare(dir)
		if err != nil {
			return zerr.Wrap(errors.Join(domain.ErrCacheUnavailable, err), "failed to prepare mesh directories")
		}
		if created {
			s.logger.Info(fmt.Sprintf("created mesh directory %s", dir))
		}
	}

	usage, err := s.store.Usage(model.MeshesDir(true))
	if err != nil {
		return zerr.Wrap(errors.Join(domain.ErrCacheUnavailable, err), "failed to measure mesh cache")
	}
	if usage.Exceeds(s.settings.CacheWarnMiB) {
		s.logger.Warn(fmt.Sprintf(
			"mesh cache %s holds %d files totalling %s, consider running 'softmesh cache clean %s'",
			usage.Dir, usage.Files, humanize.IBytes(uint64(usage.Bytes)), model.Name, //nolint:gosec // sizes are non-negative
		))
	}
	return nil
}

// GetOrCreateMeshPath returns the path of the artifact matching req, meshing it in an
// isolated worker on a cache miss. loop selects the optimization-loop cache directory.
func (s *Service) GetOrCreateMeshPath(
	ctx context.Context,
	model *domain.ModelConfig,
	req domain.GenerationRequest,
	loop bool,
) (string, error) {
	if err := s.ManageDirectories(model); err != nil {
		return "", err
	}

	dir := model.MeshesDir(loop)
	key := s.hasher.RequestKey(dir, req)

	if path, ok := s.remembered(key); ok {
		_, vertex := s.telemetry.Record(ctx, vertexName(model, req))
		vertex.Log(domain.LogLevelInfo, transition(domain.StateRequested, domain.StateCacheHit))
		vertex.Cached()
		vertex.Complete(nil)
		return path, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		path, err := s.generate(ctx, model, dir, req)
		if err != nil {
			return "", err
		}
		s.memo.Add(key, path)
		return path, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil //nolint:forcetypeassert // group.Do only stores strings
}

// MeshAll resolves one artifact per mode concurrently. Paths are returned in the order
// of modes.
func (s *Service) MeshAll(
	ctx context.Context,
	model *domain.ModelConfig,
	modes []domain.MeshMode,
	refine bool,
	loop bool,
) ([]string, error) {
	params := model.Parameters()
	paths := make([]string, len(modes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, mode := range modes {
		req := domain.NewGenerationRequest(mode, refine, model.Generator, params)
		g.Go(func() error {
			path, err := s.GetOrCreateMeshPath(ctx, model, req, loop)
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to resolve mesh"), "mode", mode.String())
			}
			paths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func (s *Service) remembered(key string) (string, bool) {
	path, ok := s.memo.Get(key)
	if !ok {
		return "", false
	}
	if exists, err := s.verifier.Verify([]string{path}); err != nil || !exists {
		s.memo.Remove(key)
		return "", false
	}
	return path, true
}

func (s *Service) generate(ctx context.Context, model *domain.ModelConfig, dir string, req domain.GenerationRequest) (string, error) {
	ctx, vertex := s.telemetry.Record(ctx, vertexName(model, req))
	vertex.Log(domain.LogLevelInfo, transition(domain.StateRequested, domain.StateGenerating))

	args := MeshArgs{
		Dir:        dir,
		Generator:  req.Generator(),
		Template:   model.Template,
		Mode:       req.Mode().String(),
		Refine:     req.Refine(),
		Parameters: req.Parameters(),
	}
	job := domain.Job{Worker: MeshWorker, Args: args.jobArgs(), Timeout: s.settings.Timeout}

	outcome, err := s.executor.Run(ctx, job, vertex.Stdout(), vertex.Stderr())
	switch outcome.Status {
	case domain.OutcomeTimedOut:
		s.logger.Warn("shape generation takes too much time, worker terminated")
		vertex.Log(domain.LogLevelWarn, transition(domain.StateGenerating, domain.StateTimedOut))
	case domain.OutcomeFailed:
		vertex.Log(domain.LogLevelError, transition(domain.StateGenerating, domain.StateFailed))
	case domain.OutcomeSucceeded:
		if err == nil {
			s.logger.Info("shape generation went well")
		}
	}
	if err != nil {
		err = zerr.With(zerr.With(zerr.Wrap(err, "mesh generation failed"), "model", model.Name), "mode", req.Mode().String())
		vertex.Complete(err)
		return "", err
	}

	var res MeshResult
	if err := outcome.Decode(&res); err != nil || res.Path == "" {
		err = zerr.Wrap(errors.Join(domain.ErrGenerationFailed, domain.ErrWorkerResultInvalid, err), "failed to decode mesh result")
		vertex.Complete(err)
		return "", err
	}

	if res.Cached {
		vertex.Log(domain.LogLevelInfo, transition(domain.StateGenerating, domain.StateCacheHit))
		vertex.Cached()
	} else {
		vertex.Log(domain.LogLevelInfo, transition(domain.StateGenerating, domain.StateMeshed))
		vertex.Log(domain.LogLevelInfo, transition(domain.StateMeshed, domain.StateWritten))
	}
	vertex.Log(domain.LogLevelInfo, fmt.Sprintf("%s: %s", domain.StateReturned, res.Path))
	vertex.Complete(nil)
	return res.Path, nil
}

func vertexName(model *domain.ModelConfig, req domain.GenerationRequest) string {
	name := fmt.Sprintf("mesh %s %s", model.Name, req.Mode())
	if req.Refine() {
		name += " refined"
	}
	return name
}

func transition(from, to domain.RequestState) string {
	return fmt.Sprintf("%s -> %s", from, to)
}
