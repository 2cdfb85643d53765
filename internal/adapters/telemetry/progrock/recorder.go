// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/softmesh/internal/core/ports"
)

// Recorder implements the ports.Telemetry interface using the vito/progrock library.
// It also keeps a summary of every vertex it recorded.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder

	mu      sync.Mutex
	seq     int
	records []*VertexSummary
	now     func() time.Time
}

// VertexSummary describes how a recorded unit of work ended.
type VertexSummary struct {
	Name     string
	Cached   bool
	Err      error
	Started  time.Time
	Duration time.Duration
	Done     bool
}

// Summary aggregates the vertices recorded so far.
type Summary struct {
	Total     int
	Cached    int
	Failed    int
	Completed int
	Elapsed   time.Duration
}

// String renders the summary on one line.
func (s Summary) String() string {
	return fmt.Sprintf("%d requests, %d cached, %d failed in %s",
		s.Total, s.Cached, s.Failed, s.Elapsed.Round(time.Millisecond))
}

// New creates a new Recorder with a default tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
		now: time.Now,
	}
}

// Record starts recording a new vertex. Repeated names get distinct vertices.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	r.mu.Lock()
	r.seq++
	d := digest.FromString(fmt.Sprintf("%s#%d", name, r.seq))
	summary := &VertexSummary{Name: name, Started: r.now()}
	r.records = append(r.records, summary)
	r.mu.Unlock()

	v := r.rec.Vertex(d, name)
	return ctx, &Vertex{vertex: v, owner: r, summary: summary}
}

// Summary returns the aggregate of all recorded vertices.
func (r *Recorder) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	var s Summary
	var first, last time.Time
	for _, v := range r.records {
		s.Total++
		if !v.Done {
			continue
		}
		s.Completed++
		switch {
		case v.Err != nil:
			s.Failed++
		case v.Cached:
			s.Cached++
		}
		if first.IsZero() || v.Started.Before(first) {
			first = v.Started
		}
		if end := v.Started.Add(v.Duration); end.After(last) {
			last = end
		}
	}
	if !first.IsZero() {
		s.Elapsed = last.Sub(first)
	}
	return s
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func (r *Recorder) finish(s *VertexSummary, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.Done {
		return
	}
	s.Done = true
	s.Err = err
	s.Duration = r.now().Sub(s.Started)
}

func (r *Recorder) markCached(s *VertexSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.Cached = true
}
