package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"slices"
	"sync"
	"syscall"

	"go.trai.ch/softmesh/internal/core/domain"
	"go.trai.ch/zerr"
)

// ResultFD is the file descriptor of the result channel inside a worker.
const ResultFD = 3

// Handler is a worker function. It decodes args, does its work and returns a
// JSON-serializable value. Diagnostics go to log.
type Handler func(ctx context.Context, args json.RawMessage, log io.Writer) (any, error)

// Registry maps worker names to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds or replaces the handler of name.
func (r *Registry) Register(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// Lookup returns the handler of name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

// Names returns the registered worker names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// OpenResultChannel returns the result channel inherited from the parent.
// Processes spawned by the worker do not inherit it.
func OpenResultChannel() (*os.File, error) {
	f := os.NewFile(ResultFD, "softmesh-result")
	if f == nil {
		return nil, zerr.New("result channel is not available")
	}
	if _, err := f.Stat(); err != nil {
		return nil, zerr.Wrap(err, "result channel is not available")
	}
	syscall.CloseOnExec(ResultFD)
	return f, nil
}

// Serve runs the handler registered under name with the JSON arguments read from args,
// and writes exactly one envelope to result. The returned error mirrors the envelope.
func Serve(ctx context.Context, reg *Registry, name string, args io.Reader, result io.Writer, log io.Writer) error {
	h, ok := reg.Lookup(name)
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrWorkerNotFound, "no such worker"), "worker", name)
		return writeEnvelope(result, envelope{Error: err.Error(), Code: codeOf(err)}, err)
	}

	raw, err := io.ReadAll(args)
	if err != nil {
		err = zerr.Wrap(errors.Join(domain.ErrWorkerResultInvalid, err), "failed to read worker arguments")
		return writeEnvelope(result, envelope{Error: err.Error(), Code: codeOf(err)}, err)
	}
	if len(raw) == 0 {
		raw = []byte("{}")
	}

	value, err := h(ctx, raw, log)
	if err != nil {
		return writeEnvelope(result, envelope{Error: err.Error(), Code: codeOf(err)}, err)
	}

	return writeEnvelope(result, envelope{OK: true, Value: value}, nil)
}

func writeEnvelope(w io.Writer, env envelope, cause error) error {
	data, err := json.Marshal(env)
	if err != nil {
		data, _ = json.Marshal(envelope{Error: zerr.Wrap(err, "failed to encode worker result").Error()})
		if cause == nil {
			cause = err
		}
	}
	if _, err := w.Write(data); err != nil {
		return errors.Join(cause, zerr.Wrap(err, "failed to write worker result"))
	}
	return cause
}
