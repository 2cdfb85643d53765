// Package app implements the application layer for softmesh.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	recorder "go.trai.ch/softmesh/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/softmesh/internal/adapters/worker"                      //nolint:depguard // Wired in app layer
	"go.trai.ch/softmesh/internal/core/domain"
	"go.trai.ch/softmesh/internal/core/ports"
	"go.trai.ch/softmesh/internal/engine/mesher"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	service      *mesher.Service
	pipeline     *mesher.Pipeline
	logger       ports.Logger
	telemetry    ports.Telemetry
	kernel       ports.GeometryKernel
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	service *mesher.Service,
	pipeline *mesher.Pipeline,
	log ports.Logger,
	telemetry ports.Telemetry,
	kernel ports.GeometryKernel,
) *App {
	return &App{
		configLoader: loader,
		service:      service,
		pipeline:     pipeline,
		logger:       log,
		telemetry:    telemetry,
		kernel:       kernel,
	}
}

// MeshOptions configures the Mesh method.
type MeshOptions struct {
	Modes   []string
	Refine  bool
	Loop    bool
	Set     []string
	Timeout time.Duration
}

// Mesh resolves the artifacts of model for every requested mode, generating the
// missing ones. Paths are returned in the order of opts.Modes.
func (a *App) Mesh(ctx context.Context, model string, opts MeshOptions) ([]string, error) {
	cfg, err := a.loadModel(model, opts.Set)
	if err != nil {
		return nil, err
	}

	modes, err := parseModes(opts.Modes)
	if err != nil {
		return nil, err
	}

	svc := a.service
	if opts.Timeout > 0 {
		svc = svc.WithTimeout(opts.Timeout)
	}

	paths, err := svc.MeshAll(ctx, cfg, modes, opts.Refine, opts.Loop)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to mesh model"), "model", cfg.Name)
	}
	return paths, nil
}

// Save copies an artifact to an explicit destination.
func (a *App) Save(_ context.Context, source, dest string) error {
	return a.service.Save(source, dest)
}

// Show opens the geometry of model in the kernel's viewer.
func (a *App) Show(ctx context.Context, model string, set []string) error {
	cfg, err := a.loadModel(model, set)
	if err != nil {
		return err
	}
	return a.service.Show(ctx, cfg)
}

// CacheStatus is the usage of a mesh directory and whether it crossed the warning threshold.
type CacheStatus struct {
	Usage    domain.CacheUsage
	LimitMiB int64
	Exceeded bool
}

// CacheStatus reports the usage of the selected mesh directory of model.
func (a *App) CacheStatus(_ context.Context, model string, loop bool) (CacheStatus, error) {
	cfg, err := a.configLoader.LoadModel(model)
	if err != nil {
		return CacheStatus{}, err
	}

	usage, err := a.service.Status(cfg, loop)
	if err != nil {
		return CacheStatus{}, err
	}

	limit := a.configLoader.Settings().CacheWarnMiB
	return CacheStatus{Usage: usage, LimitMiB: limit, Exceeded: usage.Exceeds(limit)}, nil
}

// CacheList returns the artifacts of the selected mesh directory of model.
func (a *App) CacheList(_ context.Context, model string, loop, checksum bool) ([]mesher.Artifact, error) {
	cfg, err := a.configLoader.LoadModel(model)
	if err != nil {
		return nil, err
	}
	return a.service.List(cfg, loop, checksum)
}

// CacheClean removes the optimization-loop cache of model.
func (a *App) CacheClean(_ context.Context, model string) (mesher.CleanReport, error) {
	cfg, err := a.configLoader.LoadModel(model)
	if err != nil {
		return mesher.CleanReport{}, err
	}
	return a.service.Clean(cfg)
}

// Design returns model with the assignments applied. Rejected assignments are logged
// and leave their variable unchanged.
func (a *App) Design(_ context.Context, model string, set []string) (*domain.ModelConfig, error) {
	return a.loadModel(model, set)
}

// Objectives returns model and, when assess is not empty, the assessment context of
// the named objectives.
func (a *App) Objectives(_ context.Context, model string, assess []string) (*domain.ModelConfig, *domain.AssessmentContext, error) {
	cfg, err := a.configLoader.LoadModel(model)
	if err != nil {
		return nil, nil, err
	}
	if len(assess) == 0 {
		return cfg, nil, nil
	}

	actx, err := cfg.Assess(assess)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, &actx, nil
}

// Models returns the names of the available models.
func (a *App) Models() ([]string, error) {
	return a.configLoader.Models()
}

// KernelVersion returns the version reported by the geometry kernel, if it reports one.
func (a *App) KernelVersion(ctx context.Context) (string, error) {
	v, ok := a.kernel.(interface {
		Version(ctx context.Context) (string, error)
	})
	if !ok {
		return "", nil
	}
	return v.Version(ctx)
}

// Summary describes the mesh requests recorded so far, if the telemetry keeps one.
func (a *App) Summary() (string, bool) {
	s, ok := a.telemetry.(summarizer)
	if !ok {
		return "", false
	}
	return s.Summary().String(), true
}

// Close flushes the telemetry session.
func (a *App) Close() error {
	return a.telemetry.Close()
}

// Worker serves one job as the child side of the executor. The job arguments are read
// from args and the single result is written to result.
func (a *App) Worker(ctx context.Context, name string, args io.Reader, result, log io.Writer) error {
	reg := worker.NewRegistry()
	reg.Register(mesher.MeshWorker, a.pipeline.Handle)
	return worker.Serve(ctx, reg, name, args, result, log)
}

type summarizer interface {
	Summary() recorder.Summary
}

// loadModel loads model and applies the name=value assignments in set.
func (a *App) loadModel(model string, set []string) (*domain.ModelConfig, error) {
	cfg, err := a.configLoader.LoadModel(model)
	if err != nil {
		return nil, err
	}

	assignments := make([]domain.Assignment, 0, len(set))
	for _, s := range set {
		as, err := domain.ParseAssignment(s)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, as)
	}

	if err := cfg.Variables.Apply(assignments); err != nil {
		for _, rejected := range unjoin(err) {
			a.logger.Warn(fmt.Sprintf("design variable kept its value: %s", rejected))
		}
	}
	return cfg, nil
}

func parseModes(names []string) ([]domain.MeshMode, error) {
	if len(names) == 0 {
		return []domain.MeshMode{domain.ModeSurface}, nil
	}

	modes := make([]domain.MeshMode, 0, len(names))
	seen := make(map[domain.MeshMode]bool, len(names))
	for _, name := range names {
		for _, part := range strings.Split(name, ",") {
			mode, err := domain.ParseMeshMode(part)
			if err != nil {
				return nil, err
			}
			if !seen[mode] {
				seen[mode] = true
				modes = append(modes, mode)
			}
		}
	}
	return modes, nil
}

func unjoin(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok { //nolint:errorlint // only the top level is split
		return joined.Unwrap()
	}
	return []error{err}
}
