package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/softmesh/internal/adapters/config"
	fsadapter "go.trai.ch/softmesh/internal/adapters/fs"
	"go.trai.ch/softmesh/internal/core/domain"
)

const trunkModel = `
name: CabledTrunk
generator: cabled_trunk
constants:
  n_cables: 4
variables:
  - name: length
    value: 195
    min: 150
    max: 250
  - name: n_modules
    value: 9
    min: 4
    max: 12
    integer: true
objectives:
  - name: ShapeMatchingBigS
    direction: minimize
    horizon: 40
  - name: GraspingEnergy
    direction: maximize
    horizon: 180
  - name: IncrementalForceTransmissionX
    direction: maximize
    horizon: 180
assessed_together:
  - [ShapeMatchingBigS]
  - [GraspingEnergy, IncrementalForceTransmissionX]
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvGmsh, config.EnvModelsDir, config.EnvTimeout,
		config.EnvLogFormat, config.EnvCacheWarnMiB,
	} {
		t.Setenv(key, "")
	}
}

func TestLoadSettings_Defaults(t *testing.T) {
	clearEnv(t)
	cwd := t.TempDir()

	settings, err := config.LoadSettings(cwd)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cwd, domain.DefaultModelsDir), settings.ModelsDir)
	assert.Equal(t, "gmsh", settings.GmshPath)
	assert.Equal(t, domain.DefaultGenerationTimeout, settings.Timeout)
	assert.Equal(t, int64(domain.DefaultCacheWarnMiB), settings.CacheWarnMiB)
}

func TestLoadSettings_File(t *testing.T) {
	clearEnv(t)
	cwd := t.TempDir()
	writeFile(t, filepath.Join(cwd, domain.ConfigFileName), `
version: "1"
models_dir: robots
gmsh: /opt/gmsh/bin/gmsh
timeout: 30s
cache_warn_mib: 50
memo_size: 8
memo_ttl: 1m
log_format: json
`)

	settings, err := config.LoadSettings(cwd)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cwd, "robots"), settings.ModelsDir)
	assert.Equal(t, "/opt/gmsh/bin/gmsh", settings.GmshPath)
	assert.Equal(t, 30*time.Second, settings.Timeout)
	assert.Equal(t, int64(50), settings.CacheWarnMiB)
	assert.Equal(t, 8, settings.MemoSize)
	assert.Equal(t, time.Minute, settings.MemoTTL)
	assert.Equal(t, "json", settings.LogFormat)
}

func TestLoadSettings_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	cwd := t.TempDir()
	writeFile(t, filepath.Join(cwd, domain.ConfigFileName), "gmsh: /from/file\ntimeout: 30s\n")
	t.Setenv(config.EnvGmsh, "/from/env")
	t.Setenv(config.EnvTimeout, "5s")
	t.Setenv(config.EnvCacheWarnMiB, "7")

	settings, err := config.LoadSettings(cwd)
	require.NoError(t, err)

	assert.Equal(t, "/from/env", settings.GmshPath)
	assert.Equal(t, 5*time.Second, settings.Timeout)
	assert.Equal(t, int64(7), settings.CacheWarnMiB)
}

func TestLoadSettings_DotEnv(t *testing.T) {
	clearEnv(t)
	cwd := t.TempDir()
	writeFile(t, filepath.Join(cwd, ".env"), config.EnvLogFormat+"=json\n")

	// godotenv does not override variables that are already set, even empty ones.
	require.NoError(t, os.Unsetenv(config.EnvLogFormat))
	t.Cleanup(func() { _ = os.Unsetenv(config.EnvLogFormat) })

	settings, err := config.LoadSettings(cwd)
	require.NoError(t, err)
	assert.Equal(t, "json", settings.LogFormat)
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed yaml", content: "timeout: [1, 2\n"},
		{name: "bad duration", content: "timeout: soon\n"},
		{name: "non positive duration", content: "timeout: 0s\n"},
		{name: "bad ttl", content: "memo_ttl: -1m\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			cwd := t.TempDir()
			writeFile(t, filepath.Join(cwd, domain.ConfigFileName), tt.content)

			_, err := config.LoadSettings(cwd)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConfigParseFailed)
		})
	}
}

func TestLoadSettings_InvalidEnvTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvTimeout, "eventually")

	_, err := config.LoadSettings(t.TempDir())
	require.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

func newLoader(t *testing.T) (*config.Loader, string) {
	t.Helper()
	settings := domain.DefaultSettings()
	settings.ModelsDir = t.TempDir()
	return config.NewLoaderWithSettings(settings, fsadapter.NewWalker()), settings.ModelsDir
}

func TestLoader_LoadModel(t *testing.T) {
	loader, root := newLoader(t)
	writeFile(t, filepath.Join(root, "CabledTrunk", domain.ModelFileName), trunkModel)

	model, err := loader.LoadModel("CabledTrunk")
	require.NoError(t, err)

	assert.Equal(t, "CabledTrunk", model.Name)
	assert.Equal(t, filepath.Join(root, "CabledTrunk"), model.Dir)
	assert.Equal(t, "cabled_trunk", model.Generator)
	assert.Empty(t, model.Template)
	require.Equal(t, 2, model.Variables.Len())

	n, ok := model.Variables.Get("n_modules")
	require.True(t, ok)
	assert.Equal(t, domain.KindInteger, n.Value.Kind)
	assert.Equal(t, int64(9), n.Value.Int)

	assert.Equal(t, domain.Parameters{"n_cables": 4, "length": 195, "n_modules": 9}, model.Parameters())

	ctx, err := model.Assess([]string{"IncrementalForceTransmissionX", "GraspingEnergy"})
	require.NoError(t, err)
	assert.Equal(t, 180, ctx.Horizon())
}

func TestLoader_LoadModel_TemplateGenerator(t *testing.T) {
	loader, root := newLoader(t)
	writeFile(t, filepath.Join(root, "Custom", domain.ModelFileName), `
generator:
  name: custom
  template: shape.geo.tmpl
variables:
  - name: r
    value: 1
    min: 0.5
    max: 2
`)

	model, err := loader.LoadModel("Custom")
	require.NoError(t, err)

	assert.Equal(t, "Custom", model.Name)
	assert.Equal(t, "custom", model.Generator)
	assert.Equal(t, filepath.Join(root, "Custom", "shape.geo.tmpl"), model.Template)
}

func TestLoader_LoadModel_NotFound(t *testing.T) {
	loader, _ := newLoader(t)

	_, err := loader.LoadModel("Nope")
	require.ErrorIs(t, err, domain.ErrModelNotFound)
}

func TestLoader_LoadModel_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{
			name:    "missing generator",
			content: "variables: []\n",
			want:    domain.ErrInvalidModel,
		},
		{
			name:    "value out of bounds",
			content: "generator: g\nvariables:\n  - {name: a, value: 5, min: 0, max: 1}\n",
			want:    domain.ErrInvalidModel,
		},
		{
			name:    "inverted bounds",
			content: "generator: g\nvariables:\n  - {name: a, value: 1, min: 2, max: 0}\n",
			want:    domain.ErrInvalidModel,
		},
		{
			name:    "fractional integer",
			content: "generator: g\nvariables:\n  - {name: a, value: 1.5, min: 0, max: 3, integer: true}\n",
			want:    domain.ErrInvalidModel,
		},
		{
			name:    "duplicate variable",
			content: "generator: g\nvariables:\n  - {name: a, value: 1, min: 0, max: 3}\n  - {name: a, value: 2, min: 0, max: 3}\n",
			want:    domain.ErrInvalidModel,
		},
		{
			name:    "bad direction",
			content: "generator: g\nobjectives:\n  - {name: o, direction: sideways, horizon: 10}\n",
			want:    domain.ErrInvalidModel,
		},
		{
			name:    "zero horizon",
			content: "generator: g\nobjectives:\n  - {name: o, direction: minimize, horizon: 0}\n",
			want:    domain.ErrInvalidModel,
		},
		{
			name:    "undeclared group member",
			content: "generator: g\nobjectives:\n  - {name: o, direction: minimize, horizon: 1}\nassessed_together:\n  - [o, ghost]\n",
			want:    domain.ErrInvalidModel,
		},
		{
			name:    "malformed yaml",
			content: "generator: [g\n",
			want:    domain.ErrConfigParseFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, root := newLoader(t)
			writeFile(t, filepath.Join(root, "Broken", domain.ModelFileName), tt.content)

			_, err := loader.LoadModel("Broken")
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoader_Models(t *testing.T) {
	loader, root := newLoader(t)
	writeFile(t, filepath.Join(root, "TripodFinger", domain.ModelFileName), "generator: tripod_finger\n")
	writeFile(t, filepath.Join(root, "CabledTrunk", domain.ModelFileName), trunkModel)
	writeFile(t, filepath.Join(root, "CabledTrunk", domain.MeshesDirName, "nested", domain.ModelFileName), "x")
	writeFile(t, filepath.Join(root, "Empty", "README"), "no model here")

	names, err := loader.Models()
	require.NoError(t, err)
	assert.Equal(t, []string{"CabledTrunk", "TripodFinger"}, names)
}

func TestLoader_Models_MissingDir(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.ModelsDir = filepath.Join(t.TempDir(), "absent")
	loader := config.NewLoaderWithSettings(settings, fsadapter.NewWalker())

	names, err := loader.Models()
	require.NoError(t, err)
	assert.Empty(t, names)
}
