// Package telemetry provides the progress-vertex telemetry port's no-op
// implementation, for contexts where progress rendering is undesirable
// (e.g. captured test output). The concrete implementation lives in the
// progrock subpackage.
package telemetry

import (
	"context"
	"io"

	"github.com/labt-build/labt/internal/core/domain"
	"github.com/labt-build/labt/internal/core/ports"
)

// NoOp is a no-op implementation of ports.Telemetry.
type NoOp struct{}

// NewNoOp creates a new NoOp telemetry recorder.
func NewNoOp() *NoOp {
	return &NoOp{}
}

var _ ports.Telemetry = (*NoOp)(nil)

// Record returns ctx unchanged alongside a no-op vertex.
func (t *NoOp) Record(ctx context.Context, _ string, _ ...ports.VertexOption) (context.Context, ports.Vertex) {
	return ctx, &noOpVertex{}
}

// Close does nothing.
func (t *NoOp) Close() error { return nil }

type noOpVertex struct{}

func (v *noOpVertex) Stdout() io.Writer               { return io.Discard }
func (v *noOpVertex) Stderr() io.Writer               { return io.Discard }
func (v *noOpVertex) Log(_ domain.LogLevel, _ string) {}
func (v *noOpVertex) Complete(_ error)                {}
func (v *noOpVertex) Cached()                         {}
