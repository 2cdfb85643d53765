// Package worker runs jobs in isolated worker processes under a hard deadline.
//
// The parent re-executes the current binary with the worker subcommand. Job arguments
// are written as JSON on the worker's stdin and the result envelope is read from a
// dedicated pipe on file descriptor 3. Workers run in their own process group so the
// whole tree can be killed when the deadline passes.
package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"go.trai.ch/softmesh/internal/core/domain"
	"go.trai.ch/softmesh/internal/core/ports"
	"go.trai.ch/zerr"
)

// Subcommand is the hidden CLI command that serves worker jobs.
const Subcommand = "worker"

// maxResultBytes bounds the size of a result envelope.
const maxResultBytes = 64 * domain.MiB

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor with one OS process per job.
type Executor struct {
	path   string
	prefix []string
	env    []string
	grace  time.Duration
}

// Option configures an Executor.
type Option func(*Executor)

// WithGrace bounds how long the result channel and output streams are drained after
// the worker exits.
func WithGrace(d time.Duration) Option {
	return func(e *Executor) { e.grace = d }
}

// WithEnv appends environment variables to the worker environment.
func WithEnv(env ...string) Option {
	return func(e *Executor) { e.env = append(e.env, env...) }
}

// NewExecutor creates an executor launching path with prefix arguments followed by the
// worker name.
func NewExecutor(path string, prefix []string, opts ...Option) *Executor {
	e := &Executor{
		path:   path,
		prefix: prefix,
		grace:  domain.DefaultResultGrace,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewSelfExecutor creates an executor re-executing the running binary.
func NewSelfExecutor(opts ...Option) (*Executor, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, zerr.Wrap(errors.Join(domain.ErrWorkerStartFailed, err), "failed to determine executable path")
	}
	return NewExecutor(exe, []string{Subcommand}, opts...), nil
}

type readResult struct {
	data []byte
	err  error
}

// Run launches the job's worker and waits for its result, its exit or its deadline.
func (e *Executor) Run(ctx context.Context, job domain.Job, stdout, stderr io.Writer) (domain.Outcome, error) {
	start := time.Now()
	failed := func(err error) (domain.Outcome, error) {
		return domain.Outcome{Status: domain.OutcomeFailed, Duration: time.Since(start)}, err
	}

	timeout := job.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultGenerationTimeout
	}

	args := job.Args
	if args == nil {
		args = map[string]any{}
	}
	payload, err := json.Marshal(args)
	if err != nil {
		return failed(zerr.With(zerr.Wrap(errors.Join(domain.ErrWorkerStartFailed, err), "failed to encode job arguments"), "worker", job.Worker))
	}

	resultR, resultW, err := os.Pipe()
	if err != nil {
		return failed(zerr.Wrap(errors.Join(domain.ErrWorkerStartFailed, err), "failed to create result channel"))
	}
	defer func() { _ = resultR.Close() }()

	tail := newTailBuffer(stderrTailBytes)
	if stderr == nil {
		stderr = io.Discard
	}
	cmd := e.command(job.Worker, payload, resultW, stdout, io.MultiWriter(stderr, tail))

	if err := cmd.Start(); err != nil {
		_ = resultW.Close()
		return failed(zerr.With(zerr.Wrap(errors.Join(domain.ErrWorkerStartFailed, err), "failed to start worker"), "worker", job.Worker))
	}
	// The worker holds the only write end from here on.
	_ = resultW.Close()

	results := make(chan readResult, 1)
	go func() {
		data, err := io.ReadAll(io.LimitReader(resultR, maxResultBytes))
		results <- readResult{data: data, err: err}
	}()

	exited := make(chan error, 1)
	go func() { exited <- cmd.Wait() }()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var waitErr error
	select {
	case waitErr = <-exited:
	case <-timer.C:
		killGroup(cmd)
		<-exited
		return domain.Outcome{Status: domain.OutcomeTimedOut, Duration: time.Since(start)},
			zerr.With(zerr.With(zerr.Wrap(domain.ErrGenerationTimeout, "worker exceeded its deadline"), "worker", job.Worker), "timeout", timeout.String())
	case <-ctx.Done():
		killGroup(cmd)
		<-exited
		return failed(zerr.With(zerr.Wrap(ctx.Err(), "worker cancelled"), "worker", job.Worker))
	}

	grace := time.NewTimer(e.grace)
	defer grace.Stop()

	var res readResult
	select {
	case res = <-results:
	case <-grace.C:
		return failed(zerr.With(zerr.Wrap(domain.ErrGenerationFailed, "worker result not delivered after exit"), "worker", job.Worker))
	}

	return e.outcome(job, start, waitErr, res, tail.String())
}

func (e *Executor) command(worker string, payload []byte, resultW *os.File, stdout, stderr io.Writer) *exec.Cmd {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	argv := append(append([]string{}, e.prefix...), worker)
	//nolint:gosec // G204: path is the running binary or a test helper
	cmd := exec.Command(e.path, argv...)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.ExtraFiles = []*os.File{resultW}
	cmd.Env = append(os.Environ(), e.env...)
	cmd.WaitDelay = e.grace
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
	return cmd
}

func (e *Executor) outcome(job domain.Job, start time.Time, waitErr error, res readResult, stderrTail string) (domain.Outcome, error) {
	elapsed := time.Since(start)
	fail := func(err error) (domain.Outcome, error) {
		err = zerr.With(err, "worker", job.Worker)
		if stderrTail != "" {
			err = zerr.With(err, "stderr", stderrTail)
		}
		return domain.Outcome{Status: domain.OutcomeFailed, Duration: elapsed}, err
	}

	if res.err != nil || len(bytes.TrimSpace(res.data)) == 0 {
		err := zerr.Wrap(domain.ErrGenerationFailed, "worker exited without a result")
		if waitErr != nil {
			err = zerr.With(err, "exit_code", exitCode(waitErr))
		}
		return fail(err)
	}

	var r result
	if err := json.Unmarshal(res.data, &r); err != nil {
		return fail(zerr.Wrap(errors.Join(domain.ErrGenerationFailed, domain.ErrWorkerResultInvalid, err), "failed to decode worker result"))
	}

	if !r.OK {
		return fail(zerr.Wrap(errors.Join(domain.ErrGenerationFailed, sentinelOf(r.Code), errors.New(r.Error)), "worker reported an error"))
	}

	return domain.Outcome{Status: domain.OutcomeSucceeded, Result: r.Value, Duration: elapsed}, nil
}

// killGroup kills the worker and every process it spawned.
func killGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL); err != nil {
		_ = cmd.Process.Kill()
	}
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
