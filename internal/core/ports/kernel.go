package ports

import (
	"context"
	"io"

	"go.trai.ch/softmesh/internal/core/domain"
)

// GeometryKernel builds, serializes and meshes geometries.
//
//go:generate go run go.uber.org/mock/mockgen -source=kernel.go -destination=mocks/mock_kernel.go -package=mocks
type GeometryKernel interface {
	// Describe returns the canonical serialized form of the geometry.
	// Identical geometries must produce byte-identical descriptions.
	Describe(ctx context.Context, geometry domain.Geometry, log io.Writer) ([]byte, error)

	// Mesh meshes the geometry for the given mode, optionally refines it, and writes the
	// artifact to dst.
	Mesh(ctx context.Context, geometry domain.Geometry, mode domain.MeshMode, refine bool, dst string, log io.Writer) error

	// Show opens the geometry in the kernel's interactive viewer and blocks until it closes.
	Show(ctx context.Context, geometry domain.Geometry) error
}
