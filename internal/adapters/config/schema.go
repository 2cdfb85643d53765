package config

import (
	"gopkg.in/yaml.v3"
)

// SettingsFile represents the structure of the softmesh.yaml configuration file.
type SettingsFile struct {
	Version      string `yaml:"version"`
	ModelsDir    string `yaml:"models_dir"`
	Gmsh         string `yaml:"gmsh"`
	Timeout      string `yaml:"timeout"`
	CacheWarnMiB *int64 `yaml:"cache_warn_mib"`
	MemoSize     *int   `yaml:"memo_size"`
	MemoTTL      string `yaml:"memo_ttl"`
	LogFormat    string `yaml:"log_format"`
}

// ModelFile represents the structure of a model.yaml file.
type ModelFile struct {
	Name             string             `yaml:"name"`
	Generator        GeneratorDTO       `yaml:"generator"`
	Constants        map[string]float64 `yaml:"constants"`
	Variables        []VariableDTO      `yaml:"variables"`
	Objectives       []ObjectiveDTO     `yaml:"objectives"`
	AssessedTogether [][]string         `yaml:"assessed_together"`
}

// GeneratorDTO names a built-in generator, or a model-local template.
// It accepts either a plain name or a mapping with name and template.
type GeneratorDTO struct {
	Name     string `yaml:"name"`
	Template string `yaml:"template"`
}

// UnmarshalYAML accepts the scalar shorthand for built-in generators.
func (g *GeneratorDTO) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		g.Name = value.Value
		return nil
	}
	type plain GeneratorDTO
	return value.Decode((*plain)(g))
}

// VariableDTO represents a design variable definition.
type VariableDTO struct {
	Name    string  `yaml:"name"`
	Value   float64 `yaml:"value"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Integer bool    `yaml:"integer"`
}

// ObjectiveDTO represents an objective definition.
type ObjectiveDTO struct {
	Name      string `yaml:"name"`
	Direction string `yaml:"direction"`
	Horizon   int    `yaml:"horizon"`
}
