package domain

import (
	"path/filepath"
	"time"
)

const (
	// MeshesDirName is the per-model directory holding generated meshes.
	MeshesDirName = "Meshes"

	// CacheDirName is the subdirectory of Meshes used while inside an optimization loop.
	CacheDirName = "Cache"

	// MetaDirName is the hidden directory holding locks and index records next to artifacts.
	MetaDirName = ".softmesh"

	// LockDirName is the name of the per-identifier lock directory.
	LockDirName = "locks"

	// IndexDirName is the name of the sidecar metadata directory.
	IndexDirName = "index"

	// PartialPrefix prefixes in-progress artifacts before they are renamed into place.
	PartialPrefix = ".partial-"

	// ConfigFileName is the name of the optional project configuration file.
	ConfigFileName = "softmesh.yaml"

	// ModelFileName is the name of the per-model definition file.
	ModelFileName = "model.yaml"

	// DefaultModelsDir is where model directories live unless configured otherwise.
	DefaultModelsDir = "models"

	// DesignGenerationScript is the conventional name of a model's design generation script.
	DesignGenerationScript = "Generation"

	// DefaultGenerationTimeout is the wall-clock budget of one mesh generation.
	DefaultGenerationTimeout = 10 * time.Second

	// DefaultResultGrace bounds how long the result channel is read after the worker exits.
	DefaultResultGrace = 2 * time.Second

	// MiB is one mebibyte.
	MiB = 1024 * 1024

	// DefaultCacheWarnMiB is the cache size above which an operator warning is emitted.
	DefaultCacheWarnMiB = 1000

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// ModelDir returns the directory of a model under modelsDir.
func ModelDir(modelsDir, model string) string {
	return filepath.Join(modelsDir, model)
}

// BaseMeshesPath returns the base mesh directory of a model directory.
func BaseMeshesPath(modelDir string) string {
	return filepath.Join(modelDir, MeshesDirName)
}

// CacheMeshesPath returns the optimization-loop cache directory of a model directory.
// It joins Meshes and Cache.
func CacheMeshesPath(modelDir string) string {
	return filepath.Join(modelDir, MeshesDirName, CacheDirName)
}

// LockPath returns the lock file guarding an identifier inside a mesh directory.
func LockPath(meshesDir, identifier string) string {
	return filepath.Join(meshesDir, MetaDirName, LockDirName, identifier+".lock")
}

// IndexPath returns the sidecar record of an identifier inside a mesh directory.
func IndexPath(meshesDir, identifier string) string {
	return filepath.Join(meshesDir, MetaDirName, IndexDirName, identifier+".json")
}
