package worker

import (
	"encoding/json"
	"errors"

	"go.trai.ch/softmesh/internal/core/domain"
)

// envelope is the message a worker writes on its result channel.
type envelope struct {
	OK    bool   `json:"ok"`
	Value any    `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
}

// result is the parent-side view of an envelope.
type result struct {
	OK    bool            `json:"ok"`
	Value json.RawMessage `json:"value"`
	Error string          `json:"error"`
	Code  string          `json:"code"`
}

// sentinels are the errors whose identity survives the process boundary.
var sentinels = []struct {
	code string
	err  error
}{
	{"worker_not_found", domain.ErrWorkerNotFound},
	{"worker_args_invalid", domain.ErrWorkerResultInvalid},
	{"unknown_generator", domain.ErrUnknownGenerator},
	{"missing_parameter", domain.ErrMissingParameter},
	{"unknown_mesh_mode", domain.ErrUnknownMeshMode},
	{"kernel_failed", domain.ErrKernelFailed},
	{"lock_failed", domain.ErrLockFailed},
	{"artifact_commit_failed", domain.ErrArtifactCommitFailed},
	{"index_write_failed", domain.ErrIndexWriteFailed},
	{"cache_unavailable", domain.ErrCacheUnavailable},
}

func codeOf(err error) string {
	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return s.code
		}
	}
	return ""
}

func sentinelOf(code string) error {
	for _, s := range sentinels {
		if s.code == code {
			return s.err
		}
	}
	return nil
}
