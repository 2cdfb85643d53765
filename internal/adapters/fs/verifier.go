package fs

import (
	"errors"
	iofs "io/fs"
	"os"

	"go.trai.ch/softmesh/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactVerifier = (*Verifier)(nil)

// Verifier provides functionality to verify the existence of artifacts.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// Verify checks that every path is a non-empty regular file.
// It returns true if all artifacts exist, false otherwise.
func (v *Verifier) Verify(paths []string) (bool, error) {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				return false, nil
			}
			return false, zerr.With(zerr.Wrap(err, "failed to stat artifact"), "path", path)
		}
		if !info.Mode().IsRegular() || info.Size() == 0 {
			return false, nil
		}
	}
	return true, nil
}
