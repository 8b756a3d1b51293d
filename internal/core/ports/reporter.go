package ports

import "context"

//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks

// Reporter receives install progress events. The engine drives it at every
// state transition; implementations decide how, or whether, to surface them.
type Reporter interface {
	// Session opens a reporting span for one unit of work, such as
	// materializing a single package.
	Session(ctx context.Context, name string) (context.Context, Span)

	// Warn surfaces a contained problem that did not stop the install,
	// such as an unreachable catalog source.
	Warn(msg string)
}

// Span represents one reported unit of work.
type Span interface {
	// Log attaches a progress line to the span.
	Log(msg string)

	// Cached marks the unit as satisfied without doing new work.
	Cached()

	// Complete finishes the span, recording the error if the unit failed.
	Complete(err error)
}

type spanContextKey struct{}

// ContextWithSpan returns a context carrying the span, so adapters deeper in
// the call chain can attach progress lines to the unit that invoked them.
func ContextWithSpan(ctx context.Context, span Span) context.Context {
	return context.WithValue(ctx, spanContextKey{}, span)
}

// SpanFromContext returns the span carried by ctx, if any.
func SpanFromContext(ctx context.Context) (Span, bool) {
	span, ok := ctx.Value(spanContextKey{}).(Span)
	return span, ok
}
