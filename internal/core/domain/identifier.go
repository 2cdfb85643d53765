package domain

import (
	"crypto/md5" //nolint:gosec // content fingerprint, not a security boundary
	"encoding/hex"
	"path/filepath"
	"strings"
)

// NewIdentifier derives the cache identifier of a geometry from its canonical description.
// Identical descriptions always yield the same identifier.
func NewIdentifier(generator string, canonical []byte) string {
	sum := md5.Sum(canonical) //nolint:gosec // see import
	return generator + "_" + hex.EncodeToString(sum[:])
}

// ArtifactPath returns where the artifact of an identifier lives for the given mode.
func ArtifactPath(meshesDir, identifier string, mode MeshMode) string {
	return filepath.Join(meshesDir, identifier+mode.Suffix())
}

// ParseArtifactName splits an artifact file name into its identifier and mode.
// It returns false for files that are not cache artifacts.
func ParseArtifactName(name string) (string, MeshMode, bool) {
	if strings.HasPrefix(name, ".") {
		return "", 0, false
	}
	for _, mode := range []MeshMode{ModeSurface, ModeVolume, ModeStep} {
		if id, ok := strings.CutSuffix(name, mode.Suffix()); ok && id != "" {
			return id, mode, true
		}
	}
	return "", 0, false
}
