package domain

import (
	"maps"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// MeshMode selects which artifact a generation request produces.
type MeshMode uint8

const (
	// ModeStep exports the raw geometry as a STEP file without meshing.
	ModeStep MeshMode = iota
	// ModeSurface produces a 2-D surface mesh in STL format.
	ModeSurface
	// ModeVolume produces a 3-D volume mesh in VTK format.
	ModeVolume
)

// ParseMeshMode converts a case-insensitive mode name into a MeshMode.
func ParseMeshMode(s string) (MeshMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "step":
		return ModeStep, nil
	case "surface":
		return ModeSurface, nil
	case "volume":
		return ModeVolume, nil
	default:
		return 0, zerr.With(zerr.Wrap(ErrUnknownMeshMode, "parse mesh mode"), "mode", s)
	}
}

// String returns the canonical name of the mode.
func (m MeshMode) String() string {
	switch m {
	case ModeStep:
		return "Step"
	case ModeSurface:
		return "Surface"
	case ModeVolume:
		return "Volume"
	default:
		return "Unknown"
	}
}

// Suffix returns the file name suffix appended to an identifier for this mode.
func (m MeshMode) Suffix() string {
	switch m {
	case ModeSurface:
		return "_surface.stl"
	case ModeVolume:
		return "_volume.vtk"
	default:
		return ".step"
	}
}

// Dimension returns the mesh dimension generated for this mode, 0 meaning geometry only.
func (m MeshMode) Dimension() int {
	switch m {
	case ModeSurface:
		return 2
	case ModeVolume:
		return 3
	default:
		return 0
	}
}

// Parameters maps parameter names to values passed to a generating function.
type Parameters map[string]float64

// Keys returns the parameter names in sorted order.
func (p Parameters) Keys() []string {
	return slices.Sorted(maps.Keys(p))
}

// Clone returns an independent copy of the parameters.
func (p Parameters) Clone() Parameters {
	if p == nil {
		return Parameters{}
	}
	return maps.Clone(p)
}

// GenerationRequest describes one mesh request. It is immutable once constructed.
type GenerationRequest struct {
	mode       MeshMode
	refine     bool
	generator  string
	parameters Parameters
}

// NewGenerationRequest builds a request, copying the parameters.
func NewGenerationRequest(mode MeshMode, refine bool, generator string, params Parameters) GenerationRequest {
	return GenerationRequest{
		mode:       mode,
		refine:     refine,
		generator:  generator,
		parameters: params.Clone(),
	}
}

// Mode returns the requested mesh mode.
func (r GenerationRequest) Mode() MeshMode { return r.mode }

// Refine reports whether a refinement pass follows meshing.
func (r GenerationRequest) Refine() bool { return r.refine }

// Generator returns the name of the generating function.
func (r GenerationRequest) Generator() string { return r.generator }

// Parameters returns a copy of the request parameters.
func (r GenerationRequest) Parameters() Parameters { return r.parameters.Clone() }

// Geometry is the output of a generating function: a script the geometry kernel understands.
type Geometry struct {
	Generator string
	Script    []byte
}
