package domain

import "go.trai.ch/zerr"

var (
	// ErrGenerationTimeout is returned when a worker does not finish within its deadline.
	// The worker has been terminated and no partial result is available.
	ErrGenerationTimeout = zerr.New("generation timed out")

	// ErrGenerationFailed is returned when a worker exits without delivering a result.
	ErrGenerationFailed = zerr.New("generation failed")

	// ErrWorkerNotFound is returned when a job names a worker that is not registered.
	ErrWorkerNotFound = zerr.New("worker not found")

	// ErrWorkerStartFailed is returned when the worker process cannot be launched.
	ErrWorkerStartFailed = zerr.New("failed to start worker process")

	// ErrWorkerResultInvalid is returned when the worker result cannot be decoded.
	ErrWorkerResultInvalid = zerr.New("invalid worker result")

	// ErrCacheUnavailable is returned when the mesh cache directories cannot be created or read.
	ErrCacheUnavailable = zerr.New("mesh cache unavailable")

	// ErrLockFailed is returned when the per-identifier cache lock cannot be acquired.
	ErrLockFailed = zerr.New("failed to lock cache entry")

	// ErrArtifactCommitFailed is returned when a generated artifact cannot be moved into the cache.
	ErrArtifactCommitFailed = zerr.New("failed to commit mesh artifact")

	// ErrArtifactCopyFailed is returned when saving an artifact to an explicit destination fails.
	ErrArtifactCopyFailed = zerr.New("failed to copy mesh artifact")

	// ErrIndexWriteFailed is returned when the sidecar metadata of a cache entry cannot be written.
	ErrIndexWriteFailed = zerr.New("failed to write cache index record")

	// ErrKernelFailed is returned when the geometry kernel reports an error.
	ErrKernelFailed = zerr.New("geometry kernel failed")

	// ErrUnknownMeshMode is returned when a mesh mode is not one of step, surface or volume.
	ErrUnknownMeshMode = zerr.New("unknown mesh mode, expected 'step', 'surface' or 'volume'")

	// ErrUnknownGenerator is returned when a generating function is not registered.
	ErrUnknownGenerator = zerr.New("unknown geometry generator")

	// ErrMissingParameter is returned when a generator needs a parameter the request does not carry.
	ErrMissingParameter = zerr.New("missing generator parameter")

	// ErrDesignVariableOutOfBounds is returned when a value lies outside [min, max].
	ErrDesignVariableOutOfBounds = zerr.New("assigned value for design variable is out of bounds")

	// ErrUnknownDesignVariable is returned when a design variable name is not declared by the model.
	ErrUnknownDesignVariable = zerr.New("unknown design variable")

	// ErrNonIntegralValue is returned when an integer design variable is assigned a fractional value.
	ErrNonIntegralValue = zerr.New("integer design variable requires an integral value")

	// ErrInvalidAssignment is returned when an assignment is not of the form name=value.
	ErrInvalidAssignment = zerr.New("invalid assignment, expected name=value")

	// ErrUnknownObjective is returned when an objective is not declared by the model.
	ErrUnknownObjective = zerr.New("unknown objective")

	// ErrObjectiveGroupNotDeclared is returned when objectives are assessed together
	// without the model declaring them as a group.
	ErrObjectiveGroupNotDeclared = zerr.New("objectives are not declared as assessed together")

	// ErrModelNotFound is returned when no model file exists for the requested model.
	ErrModelNotFound = zerr.New("model not found")

	// ErrInvalidModel is returned when a model file fails validation.
	ErrInvalidModel = zerr.New("invalid model definition")

	// ErrConfigReadFailed is returned when a config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when a config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")
)
