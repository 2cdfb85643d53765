// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/softmesh/internal/core/domain"
)

// Executor runs jobs in isolated workers under a hard wall-clock deadline.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run launches the job's worker and blocks until it delivers a result, fails or
	// exceeds job.Timeout. The worker is always torn down before Run returns.
	//
	// On timeout the outcome is OutcomeTimedOut and the error wraps domain.ErrGenerationTimeout.
	// A worker that exits without a result yields OutcomeFailed and domain.ErrGenerationFailed.
	// Worker diagnostics are copied to stdout and stderr.
	Run(ctx context.Context, job domain.Job, stdout, stderr io.Writer) (domain.Outcome, error)
}
