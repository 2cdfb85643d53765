package mesher

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/softmesh/internal/core/domain"
	"go.trai.ch/zerr"
)

// Artifact is a cache entry with its optional content digest and sidecar record.
type Artifact struct {
	domain.CacheEntry
	Digest string
	Record *domain.MeshRecord
}

// CleanReport summarizes what Clean removed.
type CleanReport struct {
	CacheDir string
	Partials int
}

// Save copies an artifact to an explicit destination.
func (s *Service) Save(source, dest string) error {
	if err := s.store.Save(source, dest); err != nil {
		return err
	}
	s.logger.Info(fmt.Sprintf("saved %s to %s", source, dest))
	return nil
}

// Status reports the usage of the selected mesh directory of model.
func (s *Service) Status(model *domain.ModelConfig, loop bool) (domain.CacheUsage, error) {
	return s.store.Usage(model.MeshesDir(loop))
}

// List returns the artifacts of the selected mesh directory of model. With checksum set,
// each artifact carries the digest of its content.
func (s *Service) List(model *domain.ModelConfig, loop, checksum bool) ([]Artifact, error) {
	dir := model.MeshesDir(loop)
	entries, err := s.store.List(dir)
	if err != nil {
		return nil, err
	}

	records := make(map[string]*domain.MeshRecord)
	artifacts := make([]Artifact, 0, len(entries))
	for _, entry := range entries {
		a := Artifact{CacheEntry: entry}

		rec, seen := records[entry.Identifier]
		if !seen {
			rec, err = s.store.ReadRecord(dir, entry.Identifier)
			if err != nil {
				return nil, err
			}
			records[entry.Identifier] = rec
		}
		a.Record = rec

		if checksum {
			a.Digest, err = s.hasher.FileDigest(entry.Path)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to checksum artifact"), "path", entry.Path)
			}
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, nil
}

// Clean removes the optimization-loop cache of model and abandoned in-progress
// artifacts of its base mesh directory. Committed base artifacts are kept, and so are
// partials young enough to belong to a worker that is still within its deadline.
func (s *Service) Clean(model *domain.ModelConfig) (CleanReport, error) {
	report := CleanReport{CacheDir: model.MeshesDir(true)}

	if err := s.store.Purge(report.CacheDir); err != nil {
		return report, err
	}
	s.logger.Info(fmt.Sprintf("removed mesh cache %s", report.CacheDir))

	n, err := s.store.RemovePartials(model.BaseMeshesDir(), s.partialMinAge())
	if err != nil {
		return report, err
	}
	report.Partials = n
	if n > 0 {
		s.logger.Info(fmt.Sprintf("removed %d partial artifacts from %s", n, model.BaseMeshesDir()))
	}
	return report, nil
}

// Show renders the geometry of model at its current design and opens it in the
// kernel's viewer. It blocks until the viewer is closed.
func (s *Service) Show(ctx context.Context, model *domain.ModelConfig) error {
	gen, err := resolveGenerator(s.generators, model.Generator, model.Template)
	if err != nil {
		return err
	}

	geometry, err := gen.Generate(model.Parameters())
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to generate geometry"), "generator", gen.Name())
	}

	return s.kernel.Show(ctx, geometry)
}

// partialMinAge is the age past which no live worker can still own a partial artifact.
func (s *Service) partialMinAge() time.Duration {
	timeout := s.settings.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultGenerationTimeout
	}
	return timeout + domain.DefaultResultGrace
}
