// Package reporter implements install progress reporting on progrock.
// Every unit of work becomes a vertex on a tape; spans attach log lines and
// cache/completion state to their vertex.
package reporter

import (
	"context"
	"fmt"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/larder/internal/core/ports"
)

// Recorder implements ports.Reporter by recording vertexes on a progrock tape.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a Recorder backed by a fresh tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a Recorder writing to w.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Session opens a vertex for one unit of work. The span travels in the
// returned context so nested adapters can attach their own progress lines.
func (r *Recorder) Session(ctx context.Context, name string) (context.Context, ports.Span) {
	v := r.rec.Vertex(digest.FromString(name), name)
	span := &vertexSpan{vertex: v}
	return ports.ContextWithSpan(ctx, span), span
}

// Warn records a contained problem as its own completed vertex so it stays
// visible in the progress stream without failing anything.
func (r *Recorder) Warn(msg string) {
	v := r.rec.Vertex(digest.FromString("warning: "+msg), "warning")
	_, _ = fmt.Fprintln(v.Stderr(), msg)
	v.Done(nil)
}

// Close flushes and closes the underlying tape if it supports closing.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// vertexSpan implements ports.Span on a progrock vertex.
type vertexSpan struct {
	vertex *progrock.VertexRecorder
}

// Log attaches a progress line to the vertex output.
func (s *vertexSpan) Log(msg string) {
	_, _ = fmt.Fprintln(s.vertex.Stdout(), msg)
}

// Cached marks the unit as served from cache and completes it.
func (s *vertexSpan) Cached() {
	s.vertex.Cached()
	s.vertex.Done(nil)
}

// Complete finishes the vertex, recording err if the unit failed.
func (s *vertexSpan) Complete(err error) {
	s.vertex.Done(err)
}
