package worker_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/softmesh/internal/adapters/worker"
	"go.trai.ch/softmesh/internal/core/domain"
	"go.trai.ch/zerr"
)

const helperEnv = "SOFTMESH_WORKER_HELPER"

// TestMain turns the test binary into a worker when the helper variable is set.
func TestMain(m *testing.M) {
	if os.Getenv(helperEnv) == "1" {
		os.Exit(runHelper())
	}
	os.Exit(m.Run())
}

func runHelper() int {
	reg := worker.NewRegistry()
	reg.Register("echo", func(_ context.Context, args json.RawMessage, log io.Writer) (any, error) {
		_, _ = fmt.Fprintln(log, "echoing")
		var v map[string]any
		if err := json.Unmarshal(args, &v); err != nil {
			return nil, err
		}
		return v, nil
	})
	reg.Register("sleep", func(ctx context.Context, _ json.RawMessage, log io.Writer) (any, error) {
		_, _ = fmt.Fprintln(log, "sleeping")
		time.Sleep(30 * time.Second)
		return "woke", nil
	})
	reg.Register("spawn", func(_ context.Context, _ json.RawMessage, _ io.Writer) (any, error) {
		// The grandchild keeps stdout open and must die with the group.
		cmd := exec.Command("sleep", "30")
		cmd.Stdout = os.Stdout
		if err := cmd.Start(); err != nil {
			return nil, err
		}
		return nil, cmd.Wait()
	})
	reg.Register("fail", func(_ context.Context, _ json.RawMessage, _ io.Writer) (any, error) {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownGenerator, "lookup generator"), "generator", "nope")
	})
	reg.Register("silent", func(_ context.Context, _ json.RawMessage, _ io.Writer) (any, error) {
		os.Exit(0)
		return nil, nil
	})
	reg.Register("crash", func(_ context.Context, _ json.RawMessage, _ io.Writer) (any, error) {
		os.Exit(3)
		return nil, nil
	})

	result, err := worker.OpenResultChannel()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if err := worker.Serve(context.Background(), reg, os.Args[len(os.Args)-1], os.Stdin, result, os.Stderr); err != nil {
		return 1
	}
	return 0
}

func newExecutor(t *testing.T) *worker.Executor {
	t.Helper()
	return worker.NewExecutor(os.Args[0], nil,
		worker.WithEnv(helperEnv+"=1"),
		worker.WithGrace(500*time.Millisecond),
	)
}

// syncBuffer is a bytes buffer safe for the concurrent writes of exec's copy goroutines.
type syncBuffer struct {
	mu sync.Mutex
	sb strings.Builder
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.String()
}

func TestExecutor_Succeeds(t *testing.T) {
	var stderr syncBuffer

	outcome, err := newExecutor(t).Run(context.Background(), domain.Job{
		Worker:  "echo",
		Args:    map[string]any{"generator": "cabled_trunk", "refine": true},
		Timeout: 10 * time.Second,
	}, nil, &stderr)
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeSucceeded, outcome.Status)
	var got map[string]any
	require.NoError(t, outcome.Decode(&got))
	assert.Equal(t, "cabled_trunk", got["generator"])
	assert.Equal(t, true, got["refine"])
	assert.Contains(t, stderr.String(), "echoing")
}

func TestExecutor_TimesOut(t *testing.T) {
	var stderr syncBuffer
	start := time.Now()

	outcome, err := newExecutor(t).Run(context.Background(), domain.Job{
		Worker:  "sleep",
		Timeout: 300 * time.Millisecond,
	}, nil, &stderr)

	require.ErrorIs(t, err, domain.ErrGenerationTimeout)
	assert.Equal(t, domain.OutcomeTimedOut, outcome.Status)
	assert.Nil(t, outcome.Result)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestExecutor_TimeoutKillsProcessGroup(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	start := time.Now()

	outcome, err := worker.NewExecutor(os.Args[0], nil,
		worker.WithEnv(helperEnv+"=1"),
		worker.WithGrace(10*time.Second),
	).Run(context.Background(), domain.Job{
		Worker:  "spawn",
		Timeout: 300 * time.Millisecond,
	}, io.Discard, io.Discard)

	require.ErrorIs(t, err, domain.ErrGenerationTimeout)
	assert.Equal(t, domain.OutcomeTimedOut, outcome.Status)
	// A surviving grandchild would hold stdout open until the grace period ends.
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestExecutor_WorkerError(t *testing.T) {
	outcome, err := newExecutor(t).Run(context.Background(), domain.Job{Worker: "fail", Timeout: 10 * time.Second}, nil, nil)

	require.ErrorIs(t, err, domain.ErrGenerationFailed)
	require.ErrorIs(t, err, domain.ErrUnknownGenerator)
	assert.Contains(t, err.Error(), "lookup generator")
	assert.Equal(t, domain.OutcomeFailed, outcome.Status)
}

func TestExecutor_ExitWithoutResult(t *testing.T) {
	for _, name := range []string{"silent", "crash"} {
		t.Run(name, func(t *testing.T) {
			outcome, err := newExecutor(t).Run(context.Background(), domain.Job{Worker: name, Timeout: 10 * time.Second}, nil, nil)

			require.ErrorIs(t, err, domain.ErrGenerationFailed)
			assert.Equal(t, domain.OutcomeFailed, outcome.Status)
		})
	}
}

func TestExecutor_UnknownWorker(t *testing.T) {
	outcome, err := newExecutor(t).Run(context.Background(), domain.Job{Worker: "missing", Timeout: 10 * time.Second}, nil, nil)

	require.ErrorIs(t, err, domain.ErrWorkerNotFound)
	assert.Equal(t, domain.OutcomeFailed, outcome.Status)
}

func TestExecutor_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()

	outcome, err := newExecutor(t).Run(ctx, domain.Job{Worker: "sleep", Timeout: 30 * time.Second}, nil, nil)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.OutcomeFailed, outcome.Status)
}

func TestExecutor_StartFailure(t *testing.T) {
	exe := worker.NewExecutor("/nonexistent/softmesh", nil)

	outcome, err := exe.Run(context.Background(), domain.Job{Worker: "echo"}, nil, nil)

	require.ErrorIs(t, err, domain.ErrWorkerStartFailed)
	assert.Equal(t, domain.OutcomeFailed, outcome.Status)
}

func TestExecutor_Concurrent(t *testing.T) {
	exe := newExecutor(t)
	var wg sync.WaitGroup
	errs := make([]error, 4)

	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := exe.Run(context.Background(), domain.Job{
				Worker:  "echo",
				Args:    map[string]any{"i": i},
				Timeout: 10 * time.Second,
			}, nil, nil)
			if err == nil {
				var got map[string]any
				err = outcome.Decode(&got)
				if err == nil && got["i"] != float64(i) {
					err = fmt.Errorf("result %v delivered to job %d", got["i"], i)
				}
			}
			errs[i] = err
		}()
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}
