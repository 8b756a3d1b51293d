package reporter

import (
	"context"

	"go.trai.ch/larder/internal/core/ports"
)

// Noop is a ports.Reporter that discards everything. It serves quiet runs
// and tests that don't care about progress.
type Noop struct{}

// NewNoop creates a Noop reporter.
func NewNoop() *Noop {
	return &Noop{}
}

// Session returns ctx unchanged and a span that does nothing.
func (n *Noop) Session(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, &NoopSpan{}
}

// Warn does nothing.
func (n *Noop) Warn(_ string) {}

// NoopSpan is a ports.Span that does nothing.
type NoopSpan struct{}

// Log does nothing.
func (s *NoopSpan) Log(_ string) {}

// Cached does nothing.
func (s *NoopSpan) Cached() {}

// Complete does nothing.
func (s *NoopSpan) Complete(_ error) {}
