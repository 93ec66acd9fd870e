package resolve

import (
	"context"
	"encoding/json"

	"github.com/labt-build/labt/internal/core/domain"
	"github.com/labt-build/labt/internal/core/ports"
	"go.trai.ch/zerr"
)

// cacheResolver adapts ports.ArtifactCache into the first link of every
// resolution chain. It never fails; a miss is reported as (nil, nil) so the
// engine falls through to the next resolver.
type cacheResolver struct {
	cache ports.ArtifactCache
}

// newCacheResolver wraps cache as a ports.DependencyResolver.
func newCacheResolver(cache ports.ArtifactCache) ports.DependencyResolver {
	return &cacheResolver{cache: cache}
}

func (r *cacheResolver) Name() string { return "cache" }

// Lookup reconstructs the descriptor from the sibling JSON file stored
// alongside the artifact bytes on a prior fetch. The descriptor is read
// first because an incoming request does not carry a packaging yet; the
// primary file's presence is then verified under the packaging the
// descriptor declares. Artifacts cached without a descriptor sibling (a
// bare `store` call) are reported as a miss, since their transitives cannot
// be reconstructed offline.
func (r *cacheResolver) Lookup(_ context.Context, coord domain.ArtifactCoordinate) (*domain.Descriptor, error) {
	data, err := r.cache.Open(withDescriptorSuffix(coord))
	if err != nil {
		return nil, nil //nolint:nilerr // no descriptor sibling cached; treat as a miss
	}

	var desc domain.Descriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, nil //nolint:nilerr // corrupt sibling; fall through rather than fail a cache lookup
	}

	primary := coord
	primary.Packaging = desc.Packaging
	ok, err := r.cache.Contains(primary)
	if err != nil || !ok {
		return nil, nil //nolint:nilerr // a cache miss is reported as absent, never as an error
	}
	return &desc, nil
}

func (r *cacheResolver) Fetch(_ context.Context, coord domain.ArtifactCoordinate) ([]byte, error) {
	data, err := r.cache.Open(coord)
	if err != nil {
		return nil, zerr.Wrap(err, "cached artifact missing")
	}
	return data, nil
}

// withDescriptorSuffix produces the coordinate whose FileName equals the
// descriptor sibling name stored alongside the artifact, so
// ports.ArtifactCache.Open can read it back (the sibling lives in the same
// cache directory, just under a ".descriptor.json" packaging).
func withDescriptorSuffix(coord domain.ArtifactCoordinate) domain.ArtifactCoordinate {
	c := coord
	c.Packaging = "descriptor.json"
	return c
}
