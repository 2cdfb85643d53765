package worker_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/softmesh/internal/adapters/worker"
	"go.trai.ch/softmesh/internal/core/domain"
)

func TestServe_WritesValue(t *testing.T) {
	reg := worker.NewRegistry()
	reg.Register("double", func(_ context.Context, args json.RawMessage, _ io.Writer) (any, error) {
		var in struct{ N int }
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, err
		}
		return in.N * 2, nil
	})

	var out bytes.Buffer
	err := worker.Serve(context.Background(), reg, "double", strings.NewReader(`{"N":21}`), &out, io.Discard)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true,"value":42}`, out.String())
}

func TestServe_HandlerError(t *testing.T) {
	reg := worker.NewRegistry()
	reg.Register("mesh", func(context.Context, json.RawMessage, io.Writer) (any, error) {
		return nil, errors.Join(domain.ErrKernelFailed, errors.New("exit status 1"))
	})

	var out bytes.Buffer
	err := worker.Serve(context.Background(), reg, "mesh", strings.NewReader(""), &out, io.Discard)
	require.ErrorIs(t, err, domain.ErrKernelFailed)

	var env map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &env))
	assert.Equal(t, false, env["ok"])
	assert.Equal(t, "kernel_failed", env["code"])
}

func TestServe_UnknownWorker(t *testing.T) {
	var out bytes.Buffer
	err := worker.Serve(context.Background(), worker.NewRegistry(), "nope", strings.NewReader("{}"), &out, io.Discard)

	require.ErrorIs(t, err, domain.ErrWorkerNotFound)
	assert.Contains(t, out.String(), "worker_not_found")
}

func TestRegistry_Names(t *testing.T) {
	reg := worker.NewRegistry()
	noop := func(context.Context, json.RawMessage, io.Writer) (any, error) { return nil, nil }
	reg.Register("mesh", noop)
	reg.Register("describe", noop)

	assert.Equal(t, []string{"describe", "mesh"}, reg.Names())
	_, ok := reg.Lookup("mesh")
	assert.True(t, ok)
}
