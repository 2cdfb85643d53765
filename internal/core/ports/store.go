package ports

import (
	"context"
	"time"

	"go.trai.ch/softmesh/internal/core/domain"
)

// MeshStore manages artifacts inside a mesh directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type MeshStore interface {
	// Prepare creates dir and its metadata directories if needed.
	// It reports whether dir itself had to be created.
	Prepare(dir string) (bool, error)

	// Lookup returns the artifact path of identifier for mode and whether it exists.
	Lookup(dir, identifier string, mode domain.MeshMode) (string, bool, error)

	// Lock takes the cross-process lock of identifier. The returned function releases it.
	Lock(ctx context.Context, dir, identifier string) (func() error, error)

	// Commit calls produce with a temporary path in dir and atomically renames the
	// result to the artifact path. Nothing is left at the artifact path if produce fails.
	Commit(dir, identifier string, mode domain.MeshMode, produce func(tmp string) error) (string, error)

	// Record merges rec into the sidecar metadata of its identifier.
	Record(dir string, rec domain.MeshRecord) error

	// ReadRecord returns the sidecar metadata of identifier, or nil if none exists.
	ReadRecord(dir, identifier string) (*domain.MeshRecord, error)

	// Usage sums the regular files directly inside dir.
	Usage(dir string) (domain.CacheUsage, error)

	// List returns the artifacts found under dir.
	List(dir string) ([]domain.CacheEntry, error)

	// RemovePartials deletes in-progress artifacts under dir that were last written
	// more than minAge ago. Younger partials may still belong to a running worker.
	RemovePartials(dir string, minAge time.Duration) (int, error)

	// Save copies an artifact to an explicit destination.
	Save(source, dest string) error

	// Purge removes dir and everything below it.
	Purge(dir string) error
}
