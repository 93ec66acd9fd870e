package ports

import (
	"context"

	"github.com/labt-build/labt/internal/core/domain"
)

// DependencyResolver is one backend in the ordered resolver chain: the
// capability set { lookup, fetch }. The cache resolver answers both from
// the local ArtifactCache (storing goes through ArtifactCache.Store);
// remote resolvers answer both over the network.
type DependencyResolver interface {
	// Name identifies this resolver in error reports.
	Name() string

	// Lookup returns the descriptor for a coordinate, or (nil, nil) if this
	// resolver has no information about it. A transport error returned here
	// causes the resolution engine to try the next resolver in the chain.
	Lookup(ctx context.Context, coord domain.ArtifactCoordinate) (*domain.Descriptor, error)

	// Fetch downloads the artifact bytes for a coordinate this resolver has
	// already produced a descriptor for.
	Fetch(ctx context.Context, coord domain.ArtifactCoordinate) ([]byte, error)
}
