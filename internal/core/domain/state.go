package domain

import "strings"

// RequestState is the lifecycle state of a single mesh request.
type RequestState string

const (
	// StateRequested indicates the request was received.
	StateRequested RequestState = "requested"
	// StateCacheHit indicates an artifact already existed at the derived path.
	StateCacheHit RequestState = "cache_hit"
	// StateGenerating indicates the worker is building and meshing the geometry.
	StateGenerating RequestState = "generating"
	// StateMeshed indicates the kernel produced the mesh.
	StateMeshed RequestState = "meshed"
	// StateWritten indicates the artifact was committed to the cache.
	StateWritten RequestState = "written"
	// StateReturned indicates the path was handed back to the caller.
	StateReturned RequestState = "returned"
	// StateTimedOut indicates the worker was terminated at its deadline.
	StateTimedOut RequestState = "timed_out"
	// StateFailed indicates the worker failed without a result.
	StateFailed RequestState = "failed"
)

// IsTerminal checks if a state ends the request (Returned, TimedOut, Failed).
func (s RequestState) IsTerminal() bool {
	switch s {
	case StateReturned, StateTimedOut, StateFailed:
		return true
	default:
		return false
	}
}

// CanTransition reports whether moving from s to next is a legal step.
func (s RequestState) CanTransition(next RequestState) bool {
	switch s {
	case StateRequested:
		return next == StateCacheHit || next == StateGenerating
	case StateGenerating:
		return next == StateMeshed || next == StateCacheHit || next == StateTimedOut || next == StateFailed
	case StateMeshed:
		return next == StateWritten
	case StateCacheHit, StateWritten:
		return next == StateReturned
	default:
		return false
	}
}

// NormalizeRequestState converts a string to a RequestState, defaulting to requested if unknown.
func NormalizeRequestState(s string) RequestState {
	switch st := RequestState(strings.ToLower(s)); st {
	case StateRequested, StateCacheHit, StateGenerating, StateMeshed,
		StateWritten, StateReturned, StateTimedOut, StateFailed:
		return st
	default:
		return StateRequested
	}
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
