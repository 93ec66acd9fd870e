package ports

import (
	"context"
	"io"

	"github.com/labt-build/labt/internal/core/domain"
)

// Telemetry records progress vertices for downloads, SDK installs, and
// plugin stage/task execution.
type Telemetry interface {
	// Record starts a new vertex.
	Record(ctx context.Context, name string, opts ...VertexOption) (context.Context, Vertex)

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one unit of progress-tracked work.
type Vertex interface {
	// Stdout returns a writer to capture standard output.
	Stdout() io.Writer
	// Stderr returns a writer to capture error output.
	Stderr() io.Writer
	// Log records a structured log message associated with this vertex.
	Log(level domain.LogLevel, msg string)
	// Complete marks the vertex as finished, successfully or with an error.
	Complete(err error)
	// Cached marks the vertex as a cache hit.
	Cached()
}

// VertexConfig holds configuration for a starting vertex.
type VertexConfig struct{}

// VertexOption is a functional option for configuring a vertex.
type VertexOption func(*VertexConfig)

type vertexContextKey struct{}

// ContextWithVertex returns a copy of ctx carrying v, retrievable via
// VertexFromContext.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexContextKey{}, v)
}

// VertexFromContext returns the vertex carried by ctx, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexContextKey{}).(Vertex)
	return v, ok
}
