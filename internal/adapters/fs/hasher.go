package fs

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/softmesh/internal/core/domain"
	"go.trai.ch/softmesh/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher provides hashing functionality for generation requests and artifacts.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// RequestKey computes a single hash representing the target directory, the generator,
// the mesh mode, the refinement flag and the parameters of a request.
func (h *Hasher) RequestKey(dir string, req domain.GenerationRequest) string {
	hasher := xxhash.New()

	_, _ = hasher.WriteString(dir)
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(req.Generator())
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(req.Mode().String())
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(strconv.FormatBool(req.Refine()))
	_, _ = hasher.Write([]byte{0})

	h.hashParameters(req.Parameters(), hasher)

	return fmt.Sprintf("%016x", hasher.Sum64())
}

// hashParameters hashes parameters in a deterministic order.
func (h *Hasher) hashParameters(params domain.Parameters, hasher *xxhash.Digest) {
	for _, k := range params.Keys() {
		_, _ = hasher.WriteString(k)
		_, _ = hasher.Write([]byte{'='})
		_, _ = hasher.WriteString(strconv.FormatFloat(params[k], 'g', -1, 64))
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})
}

// FileDigest computes the XXHash of a file's content.
func (h *Hasher) FileDigest(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}
