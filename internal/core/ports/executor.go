// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/labt-build/labt/internal/core/domain"
)

// TaskExecutor evaluates a plugin task's script in a fresh host environment
// with the project root as working directory.
type TaskExecutor interface {
	// Execute runs task's script. A returned error aborts the build and
	// marks the stage as failed.
	Execute(ctx context.Context, task *domain.PluginTask, projectRoot string) error
}

// ProcessExecutor spawns named executables with no shell interpretation,
// backing both the Host API's bare process dispatch and its SDK-rooted
// dispatch, which additionally roots Dir at the package path.
type ProcessExecutor interface {
	// Run inherits stdio and returns (success, exit code).
	Run(ctx context.Context, dir, name string, args []string) (ok bool, exitCode int, err error)

	// RunCaptured captures stdout and stderr and returns them alongside the
	// same success signal, without reordering the two streams relative to
	// each other.
	RunCaptured(ctx context.Context, dir, name string, args []string) (ok bool, stdout, stderr string, err error)
}
