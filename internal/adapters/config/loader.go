// Package config loads project settings and model definitions.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"slices"

	fsadapter "go.trai.ch/softmesh/internal/adapters/fs"
	"go.trai.ch/softmesh/internal/core/domain"
	"go.trai.ch/softmesh/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using YAML files.
type Loader struct {
	settings domain.Settings
	walker   *fsadapter.Walker
}

// NewLoader creates a loader with settings resolved from cwd.
func NewLoader(cwd string, walker *fsadapter.Walker) (*Loader, error) {
	settings, err := LoadSettings(cwd)
	if err != nil {
		return nil, err
	}
	return NewLoaderWithSettings(settings, walker), nil
}

// NewLoaderWithSettings creates a loader with explicit settings.
func NewLoaderWithSettings(settings domain.Settings, walker *fsadapter.Walker) *Loader {
	return &Loader{settings: settings, walker: walker}
}

// Settings returns the resolved project settings.
func (l *Loader) Settings() domain.Settings {
	return l.settings
}

// LoadModel reads and validates the definition of the named model.
func (l *Loader) LoadModel(name string) (*domain.ModelConfig, error) {
	dir := domain.ModelDir(l.settings.ModelsDir, name)
	return LoadModelFile(domain.ModelFilePath(dir))
}

// Models returns the names of the model directories holding a model file.
func (l *Loader) Models() ([]string, error) {
	root := l.settings.ModelsDir
	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrConfigReadFailed, err), "failed to read models directory"), "dir", root)
	}

	var names []string
	for path := range l.walker.WalkFiles(root, []string{domain.MeshesDirName}) {
		if filepath.Base(path) != domain.ModelFileName {
			continue
		}
		dir := filepath.Dir(path)
		if filepath.Dir(dir) != filepath.Clean(root) {
			continue
		}
		names = append(names, filepath.Base(dir))
	}
	slices.Sort(names)
	return names, nil
}

// LoadModelFile reads a model file. The model directory is the file's directory.
func LoadModelFile(path string) (*domain.ModelConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the models directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrModelNotFound, "failed to load model"), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrConfigReadFailed, err), "failed to load model"), "path", path)
	}

	var file ModelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrConfigParseFailed, err), "failed to parse model"), "path", path)
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve model directory"), "path", path)
	}

	model, err := buildModel(dir, &file)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return model, nil
}

func buildModel(dir string, file *ModelFile) (*domain.ModelConfig, error) {
	name := file.Name
	if name == "" {
		name = filepath.Base(dir)
	}

	if file.Generator.Name == "" {
		return nil, invalid("generator is required")
	}

	template := file.Generator.Template
	if template != "" && !filepath.IsAbs(template) {
		template = filepath.Join(dir, template)
	}

	vars, err := buildVariables(file.Variables)
	if err != nil {
		return nil, err
	}

	objectives, err := buildObjectives(file.Objectives)
	if err != nil {
		return nil, err
	}

	model := &domain.ModelConfig{
		Name:             name,
		Dir:              dir,
		Generator:        file.Generator.Name,
		Template:         template,
		Constants:        domain.Parameters(file.Constants).Clone(),
		Variables:        domain.NewDesignSpace(vars...),
		Objectives:       objectives,
		AssessedTogether: file.AssessedTogether,
	}

	if err := validateGroups(model); err != nil {
		return nil, err
	}
	return model, nil
}

func buildVariables(dtos []VariableDTO) ([]domain.DesignVariable, error) {
	vars := make([]domain.DesignVariable, 0, len(dtos))
	seen := make(map[string]bool, len(dtos))

	for _, dto := range dtos {
		if dto.Name == "" {
			return nil, invalid("design variable without a name")
		}
		if seen[dto.Name] {
			return nil, zerr.With(invalid("duplicate design variable"), "variable", dto.Name)
		}
		seen[dto.Name] = true

		if dto.Min > dto.Max {
			return nil, zerr.With(invalid(fmt.Sprintf("min %g is greater than max %g", dto.Min, dto.Max)), "variable", dto.Name)
		}
		if dto.Value < dto.Min || dto.Value > dto.Max {
			return nil, zerr.With(invalid(fmt.Sprintf("value %g is outside [%g, %g]", dto.Value, dto.Min, dto.Max)), "variable", dto.Name)
		}

		value := domain.RealValue(dto.Value)
		if dto.Integer {
			if dto.Value != math.Trunc(dto.Value) {
				return nil, zerr.With(invalid("integer variable has a fractional value"), "variable", dto.Name)
			}
			value = domain.IntValue(int64(dto.Value))
		}

		vars = append(vars, domain.DesignVariable{Name: dto.Name, Value: value, Min: dto.Min, Max: dto.Max})
	}
	return vars, nil
}

func buildObjectives(dtos []ObjectiveDTO) ([]domain.Objective, error) {
	objectives := make([]domain.Objective, 0, len(dtos))
	seen := make(map[string]bool, len(dtos))

	for _, dto := range dtos {
		if dto.Name == "" {
			return nil, invalid("objective without a name")
		}
		if seen[dto.Name] {
			return nil, zerr.With(invalid("duplicate objective"), "objective", dto.Name)
		}
		seen[dto.Name] = true

		dir, ok := domain.ParseDirection(dto.Direction)
		if !ok {
			return nil, zerr.With(zerr.With(invalid("direction must be minimize or maximize"), "objective", dto.Name), "direction", dto.Direction)
		}
		if dto.Horizon <= 0 {
			return nil, zerr.With(invalid("horizon must be positive"), "objective", dto.Name)
		}

		objectives = append(objectives, domain.Objective{Name: dto.Name, Direction: dir, Horizon: dto.Horizon})
	}
	return objectives, nil
}

func validateGroups(model *domain.ModelConfig) error {
	for i, group := range model.AssessedTogether {
		if len(group) == 0 {
			return zerr.With(invalid("empty objective group"), "group", i)
		}
		for _, name := range group {
			if _, ok := model.Objective(name); !ok {
				return zerr.With(zerr.With(invalid("group references an undeclared objective"), "group", i), "objective", name)
			}
		}
	}
	return nil
}

func invalid(msg string) error {
	return zerr.Wrap(domain.ErrInvalidModel, msg)
}
