package ports

// ArtifactVerifier checks that previously produced artifacts are still usable.
//
//go:generate go run go.uber.org/mock/mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type ArtifactVerifier interface {
	// Verify reports whether every path is a non-empty regular file.
	Verify(paths []string) (bool, error)
}
