package domain

import (
	"path/filepath"

	"go.trai.ch/zerr"
)

// ModelConfig describes a robot model: its design variables, objectives and mesh layout.
type ModelConfig struct {
	Name             string
	Dir              string
	Generator        string
	Variables        *DesignSpace
	Objectives       []Objective
	AssessedTogether [][]string

	// Template is the script template of a model-local generator. Empty for built-ins.
	Template string
	// Constants are generator parameters that are not design variables.
	Constants Parameters
}

// SceneFile returns the name of the simulation scene script loaded by the optimization driver.
func (m *ModelConfig) SceneFile() string {
	return m.Name + ".py"
}

// DesignGenerationScript returns the name of the design generation script.
func (m *ModelConfig) DesignGenerationScript() string {
	return DesignGenerationScript
}

// MeshesDir returns where meshes are written: the base Meshes directory, or its Cache
// subdirectory while inside an optimization loop.
func (m *ModelConfig) MeshesDir(inOptimizationLoop bool) string {
	if inOptimizationLoop {
		return CacheMeshesPath(m.Dir)
	}
	return BaseMeshesPath(m.Dir)
}

// BaseMeshesDir returns the model's base Meshes directory.
func (m *ModelConfig) BaseMeshesDir() string {
	return BaseMeshesPath(m.Dir)
}

// Parameters snapshots the constants overlaid with the current design variable values.
func (m *ModelConfig) Parameters() Parameters {
	params := m.Constants.Clone()
	if m.Variables != nil {
		for k, v := range m.Variables.Parameters() {
			params[k] = v
		}
	}
	return params
}

// Objective returns the declared objective with the given name.
func (m *ModelConfig) Objective(name string) (Objective, bool) {
	for _, o := range m.Objectives {
		if o.Name == name {
			return o, true
		}
	}
	return Objective{}, false
}

// Assess builds the assessment context for objectives evaluated together.
// The names must be declared objectives forming one declared group.
func (m *ModelConfig) Assess(names []string) (AssessmentContext, error) {
	ctx := AssessmentContext{Objectives: make([]Objective, 0, len(names))}
	for _, name := range names {
		o, ok := m.Objective(name)
		if !ok {
			return AssessmentContext{}, zerr.With(zerr.Wrap(ErrUnknownObjective, "assess objectives"), "objective", name)
		}
		ctx.Objectives = append(ctx.Objectives, o)
	}
	for _, group := range m.AssessedTogether {
		if sameGroup(group, names) {
			return ctx, nil
		}
	}
	return AssessmentContext{}, groupError(names)
}

// Clone returns a copy whose design variables can be changed independently.
func (m *ModelConfig) Clone() *ModelConfig {
	c := *m
	c.Constants = m.Constants.Clone()
	if m.Variables != nil {
		c.Variables = m.Variables.Clone()
	}
	return &c
}

// ModelFilePath returns the model definition file inside a model directory.
func ModelFilePath(modelDir string) string {
	return filepath.Join(modelDir, ModelFileName)
}
