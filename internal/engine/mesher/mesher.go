// Package mesher implements the content-addressed mesh cache on top of the
// timeout-bounded executor.
package mesher

import (
	"go.trai.ch/softmesh/internal/core/domain"
)

// MeshWorker is the name of the worker function that generates and meshes a geometry.
const MeshWorker = "mesh"

// MeshArgs are the arguments of a MeshWorker job.
type MeshArgs struct {
	Dir        string            `json:"dir"`
	Generator  string            `json:"generator"`
	Template   string            `json:"template,omitempty"`
	Mode       string            `json:"mode"`
	Refine     bool              `json:"refine,omitempty"`
	Parameters domain.Parameters `json:"parameters"`
}

// MeshResult is the value delivered by a MeshWorker job.
type MeshResult struct {
	Path       string `json:"path"`
	Identifier string `json:"identifier"`
	Cached     bool   `json:"cached,omitempty"`
}

// jobArgs flattens args into the argument mapping of an executor job.
func (a MeshArgs) jobArgs() map[string]any {
	m := map[string]any{
		"dir":        a.Dir,
		"generator":  a.Generator,
		"mode":       a.Mode,
		"refine":     a.Refine,
		"parameters": a.Parameters,
	}
	if a.Template != "" {
		m["template"] = a.Template
	}
	return m
}
