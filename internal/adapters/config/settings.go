package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.trai.ch/softmesh/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the configuration file.
const (
	EnvGmsh         = "SOFTMESH_GMSH"
	EnvModelsDir    = "SOFTMESH_MODELS_DIR"
	EnvTimeout      = "SOFTMESH_TIMEOUT"
	EnvLogFormat    = "SOFTMESH_LOG_FORMAT"
	EnvCacheWarnMiB = "SOFTMESH_CACHE_WARN_MIB"
)

// LoadSettings resolves the settings of the project rooted at cwd.
// Precedence from low to high: defaults, softmesh.yaml, .env, process environment.
// Relative model directories are resolved against cwd.
func LoadSettings(cwd string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	if err := loadDotEnv(filepath.Join(cwd, ".env")); err != nil {
		return settings, err
	}

	path := filepath.Join(cwd, domain.ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // path is the project config file
	switch {
	case err == nil:
		if err := applyFile(&settings, data); err != nil {
			return settings, zerr.With(err, "path", path)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return settings, zerr.With(zerr.Wrap(errors.Join(domain.ErrConfigReadFailed, err), "failed to read settings"), "path", path)
	}

	if err := applyEnv(&settings); err != nil {
		return settings, err
	}

	if !filepath.IsAbs(settings.ModelsDir) {
		settings.ModelsDir = filepath.Join(cwd, settings.ModelsDir)
	}
	return settings, nil
}

// loadDotEnv exports the variables of path without overriding the environment.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrConfigParseFailed, err), "failed to load .env"), "path", path)
	}
	return nil
}

func applyFile(s *domain.Settings, data []byte) error {
	var file SettingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return zerr.Wrap(errors.Join(domain.ErrConfigParseFailed, err), "failed to parse settings")
	}

	if file.ModelsDir != "" {
		s.ModelsDir = file.ModelsDir
	}
	if file.Gmsh != "" {
		s.GmshPath = file.Gmsh
	}
	if file.Timeout != "" {
		d, err := parsePositiveDuration("timeout", file.Timeout)
		if err != nil {
			return err
		}
		s.Timeout = d
	}
	if file.CacheWarnMiB != nil {
		s.CacheWarnMiB = *file.CacheWarnMiB
	}
	if file.MemoSize != nil {
		s.MemoSize = *file.MemoSize
	}
	if file.MemoTTL != "" {
		d, err := parsePositiveDuration("memo_ttl", file.MemoTTL)
		if err != nil {
			return err
		}
		s.MemoTTL = d
	}
	if file.LogFormat != "" {
		s.LogFormat = file.LogFormat
	}
	return nil
}

func applyEnv(s *domain.Settings) error {
	if v := os.Getenv(EnvGmsh); v != "" {
		s.GmshPath = v
	}
	if v := os.Getenv(EnvModelsDir); v != "" {
		s.ModelsDir = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		s.LogFormat = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := parsePositiveDuration(EnvTimeout, v)
		if err != nil {
			return err
		}
		s.Timeout = d
	}
	if v := os.Getenv(EnvCacheWarnMiB); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return zerr.With(zerr.Wrap(errors.Join(domain.ErrConfigParseFailed, err), "invalid cache warning threshold"), "value", v)
		}
		s.CacheWarnMiB = n
	}
	return nil
}

func parsePositiveDuration(key, v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, zerr.With(zerr.With(zerr.Wrap(errors.Join(domain.ErrConfigParseFailed, err), "invalid duration"), "key", key), "value", v)
	}
	if d <= 0 {
		return 0, zerr.With(zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "duration must be positive"), "key", key), "value", v)
	}
	return d, nil
}
