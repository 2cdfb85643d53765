// Package cas implements the content-addressed mesh store.
package cas

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"go.trai.ch/softmesh/internal/core/domain"
	"go.trai.ch/zerr"
)

const lockRetryDelay = 50 * time.Millisecond

// Store implements ports.MeshStore on the local filesystem.
//
// Artifacts live directly inside a mesh directory, named by identifier and mode suffix.
// Locks and sidecar records live under the hidden metadata directory next to them.
type Store struct {
	mu  sync.Mutex
	now func() time.Time
}

// NewStore creates a new mesh store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Prepare creates dir and its metadata directories if needed.
// It reports whether dir itself had to be created.
func (s *Store) Prepare(dir string) (bool, error) {
	created := false
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		created = true
	}

	for _, d := range []string{
		dir,
		filepath.Join(dir, domain.MetaDirName, domain.LockDirName),
		filepath.Join(dir, domain.MetaDirName, domain.IndexDirName),
	} {
		if err := os.MkdirAll(d, domain.DirPerm); err != nil {
			return false, zerr.With(zerr.Wrap(errors.Join(domain.ErrCacheUnavailable, err), "failed to create mesh directory"), "dir", d)
		}
	}
	return created, nil
}

// Lookup returns the artifact path of identifier for mode and whether it exists.
func (s *Store) Lookup(dir, identifier string, mode domain.MeshMode) (string, bool, error) {
	path := domain.ArtifactPath(dir, identifier, mode)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path, false, nil
		}
		return path, false, zerr.With(zerr.Wrap(errors.Join(domain.ErrCacheUnavailable, err), "failed to stat artifact"), "path", path)
	}
	return path, info.Mode().IsRegular(), nil
}

// Lock takes the cross-process lock of identifier. It blocks until the lock is held
// or ctx is done.
func (s *Store) Lock(ctx context.Context, dir, identifier string) (func() error, error) {
	path := domain.LockPath(dir, identifier)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrLockFailed, err), "failed to create lock directory"), "path", path)
	}

	fl := flock.New(path)
	ok, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrLockFailed, err), "failed to acquire lock"), "identifier", identifier)
	}
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrLockFailed, "lock not acquired"), "identifier", identifier)
	}

	return func() error {
		if err := fl.Unlock(); err != nil {
			return zerr.With(zerr.Wrap(errors.Join(domain.ErrLockFailed, err), "failed to release lock"), "identifier", identifier)
		}
		return nil
	}, nil
}

// Commit calls produce with a temporary path in dir and renames the result into place.
// The temporary name keeps the artifact's extension so producers can infer the format.
func (s *Store) Commit(
	dir, identifier string,
	mode domain.MeshMode,
	produce func(tmp string) error,
) (string, error) {
	final := domain.ArtifactPath(dir, identifier, mode)

	f, err := os.CreateTemp(dir, domain.PartialPrefix+"*-"+filepath.Base(final))
	if err != nil {
		return "", zerr.With(zerr.Wrap(errors.Join(domain.ErrArtifactCommitFailed, err), "failed to create temporary artifact"), "dir", dir)
	}
	tmp := f.Name()
	_ = f.Close()

	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmp)
		}
	}()

	if err := produce(tmp); err != nil {
		return "", err
	}

	info, err := os.Stat(tmp)
	if err != nil || info.Size() == 0 {
		return "", zerr.With(zerr.Wrap(domain.ErrArtifactCommitFailed, "producer left no artifact"), "path", final)
	}

	if err := os.Rename(tmp, final); err != nil {
		return "", zerr.With(zerr.Wrap(errors.Join(domain.ErrArtifactCommitFailed, err), "failed to rename artifact"), "path", final)
	}
	committed = true

	return final, nil
}

// Record merges rec into the sidecar metadata of its identifier.
func (s *Store) Record(dir string, rec domain.MeshRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.ReadRecord(dir, rec.Identifier)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	merged := rec
	merged.CreatedAt = now
	if existing != nil {
		merged.CreatedAt = existing.CreatedAt
		merged.Refined = existing.Refined || rec.Refined
		merged.Modes = mergeModes(existing.Modes, rec.Modes)
		if len(merged.Parameters) == 0 {
			merged.Parameters = existing.Parameters
		}
	}
	merged.UpdatedAt = now

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return zerr.Wrap(errors.Join(domain.ErrIndexWriteFailed, err), "failed to marshal mesh record")
	}

	path := domain.IndexPath(dir, rec.Identifier)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrIndexWriteFailed, err), "failed to create index directory"), "path", path)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrIndexWriteFailed, err), "failed to write mesh record"), "path", path)
	}
	return nil
}

// ReadRecord returns the sidecar metadata of identifier, or nil if none exists.
func (s *Store) ReadRecord(dir, identifier string) (*domain.MeshRecord, error) {
	path := domain.IndexPath(dir, identifier)

	//nolint:gosec // Path is derived from a generated identifier
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read mesh record"), "path", path)
	}

	var rec domain.MeshRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to unmarshal mesh record"), "path", path)
	}
	return &rec, nil
}

// Usage sums the regular files directly inside dir. A missing directory is empty.
func (s *Store) Usage(dir string) (domain.CacheUsage, error) {
	usage := domain.CacheUsage{Dir: dir}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return usage, nil
		}
		return usage, zerr.With(zerr.Wrap(errors.Join(domain.ErrCacheUnavailable, err), "failed to read mesh directory"), "dir", dir)
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		usage.Files++
		usage.Bytes += info.Size()
	}
	return usage, nil
}

// List returns the artifacts found directly inside dir, ordered by identifier and mode.
func (s *Store) List(dir string) ([]domain.CacheEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrCacheUnavailable, err), "failed to read mesh directory"), "dir", dir)
	}

	var out []domain.CacheEntry
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		id, mode, ok := domain.ParseArtifactName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		out = append(out, domain.CacheEntry{
			Identifier: id,
			Path:       filepath.Join(dir, entry.Name()),
			Mode:       mode,
			Size:       info.Size(),
			ModTime:    info.ModTime(),
		})
	}

	slices.SortFunc(out, func(a, b domain.CacheEntry) int {
		if c := strings.Compare(a.Identifier, b.Identifier); c != 0 {
			return c
		}
		return int(a.Mode) - int(b.Mode)
	})
	return out, nil
}

// RemovePartials deletes in-progress artifacts directly inside dir whose last write is
// older than minAge.
func (s *Store) RemovePartials(dir string, minAge time.Duration) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, zerr.With(zerr.Wrap(errors.Join(domain.ErrCacheUnavailable, err), "failed to read mesh directory"), "dir", dir)
	}

	cutoff := s.now().Add(-minAge)
	removed := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasPrefix(entry.Name(), domain.PartialPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, zerr.With(zerr.Wrap(err, "failed to remove partial artifact"), "name", entry.Name())
		}
		removed++
	}
	return removed, nil
}

// Save copies an artifact to dest, creating its parent directory.
// The copy is written next to dest and renamed into place.
func (s *Store) Save(source, dest string) error {
	//nolint:gosec // Source is a cache artifact path
	in, err := os.Open(source)
	if err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrArtifactCopyFailed, err), "failed to open artifact"), "source", source)
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrArtifactCopyFailed, err), "failed to create destination directory"), "dest", dest)
	}

	out, err := os.CreateTemp(filepath.Dir(dest), domain.PartialPrefix+"*-"+filepath.Base(dest))
	if err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrArtifactCopyFailed, err), "failed to create destination"), "dest", dest)
	}
	tmp := out.Name()

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrArtifactCopyFailed, err), "failed to copy artifact"), "dest", dest)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrArtifactCopyFailed, err), "failed to close destination"), "dest", dest)
	}
	if err := os.Chmod(tmp, domain.FilePerm); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrArtifactCopyFailed, err), "failed to set destination mode"), "dest", dest)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrArtifactCopyFailed, err), "failed to rename destination"), "dest", dest)
	}
	return nil
}

// Purge removes dir and everything below it. A missing directory is not an error.
func (s *Store) Purge(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrCacheUnavailable, err), "failed to remove mesh directory"), "dir", dir)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), domain.PartialPrefix+"*.json")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, domain.FilePerm); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func mergeModes(a, b []string) []string {
	out := slices.Clone(a)
	for _, m := range b {
		if !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	slices.Sort(out)
	return out
}
