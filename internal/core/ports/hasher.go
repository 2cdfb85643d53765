package ports

import "go.trai.ch/softmesh/internal/core/domain"

// Hasher derives in-process keys for generation requests and digests artifacts.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// RequestKey returns a stable key for req targeting dir. Equal requests yield equal keys.
	RequestKey(dir string, req domain.GenerationRequest) string

	// FileDigest returns the content digest of the file at path.
	FileDigest(path string) (string, error)
}
