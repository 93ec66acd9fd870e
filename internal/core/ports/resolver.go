package ports

import (
	"context"

	"github.com/labt-build/labt/internal/core/domain"
)

// Resolver runs the dependency resolution algorithm end to end, used by
// the Host API's `resolve` operation and the `resolve`/`add` subcommands to
// re-resolve and persist the lockfile.
type Resolver interface {
	Resolve(ctx context.Context, direct []domain.DependencyRequest) (*domain.Lockfile, error)
}
