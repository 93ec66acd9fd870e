// Package resolve implements the frontier-queue transitive dependency
// resolution algorithm: an ordered chain of
// ports.DependencyResolver backends (the artifact cache first, then one or
// more remote repositories) is consulted for each unresolved coordinate,
// conflicts are settled by highest-version-wins with direct-dependency
// override, and exclusions prune the frontier.
package resolve

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/labt-build/labt/internal/core/domain"
	"github.com/labt-build/labt/internal/core/ports"
	"go.trai.ch/zerr"
)

// Engine resolves a project's direct dependencies into an ordered lockfile.
type Engine struct {
	chain []ports.DependencyResolver
	cache ports.ArtifactCache
	log   ports.Logger
}

var _ ports.Resolver = (*Engine)(nil)

// New creates an Engine whose resolver chain always starts with cache; the
// cache is consulted first in every resolution attempt so a hit never
// reaches the network.
func New(cache ports.ArtifactCache, remotes []ports.DependencyResolver, log ports.Logger) *Engine {
	chain := make([]ports.DependencyResolver, 0, len(remotes)+1)
	chain = append(chain, newCacheResolver(cache))
	chain = append(chain, remotes...)
	return &Engine{chain: chain, cache: cache, log: log}
}

type pairKey struct {
	group, artifact string
}

type candidate struct {
	version string
	direct  bool
}

// Resolve runs the frontier algorithm over direct and returns the ordered
// lockfile. direct should be built from the project's declared dependencies,
// each with Direct set true and Exclusions carrying that dependency's
// exclusion list.
func (e *Engine) Resolve(ctx context.Context, direct []domain.DependencyRequest) (*domain.Lockfile, error) {
	candidates := map[pairKey][]candidate{}
	descriptors := map[string]descriptorRecord{}
	expanded := map[string]bool{}

	queue := append([]domain.DependencyRequest{}, direct...)
	for len(queue) > 0 {
		req := queue[0]
		queue = queue[1:]

		pk := pairKey{req.Group, req.Artifact}
		candidates[pk] = append(candidates[pk], candidate{version: req.Version, direct: req.Direct})

		key := versionKey(req.Group, req.Artifact, req.Version)
		if expanded[key] {
			continue
		}
		expanded[key] = true

		coord := domain.ArtifactCoordinate{Group: req.Group, Artifact: req.Artifact, Version: req.Version}
		desc, resolverName, err := e.lookup(ctx, coord)
		if err != nil {
			return nil, err
		}
		if desc == nil {
			return nil, zerr.With(domain.ErrUnknownCoordinate, "coordinate", coord.String())
		}
		descriptors[key] = descriptorRecord{descriptor: *desc, resolver: resolverName}

		for _, child := range desc.Transitives {
			if excludes(req.Exclusions, child.Group, child.Artifact) {
				continue
			}
			queue = append(queue, domain.DependencyRequest{
				Group:      child.Group,
				Artifact:   child.Artifact,
				Version:    child.Version,
				Direct:     false,
				ParentName: req.Artifact,
				Exclusions: req.Exclusions,
			})
		}
	}

	winners, err := pickWinners(candidates)
	if err != nil {
		return nil, err
	}

	return e.order(direct, winners, descriptors)
}

type descriptorRecord struct {
	descriptor domain.Descriptor
	resolver   string
}

func versionKey(group, artifact, version string) string {
	return group + ":" + artifact + ":" + version
}

func excludes(exclusions []domain.Coordinate, group, artifact string) bool {
	for _, ex := range exclusions {
		if ex.Group == group && ex.Artifact == artifact {
			return true
		}
	}
	return false
}

// pickWinners applies the version conflict policy: a direct request always
// wins over transitive requests for the same pair; otherwise the highest
// version (by domain.Version.Compare) wins.
func pickWinners(candidates map[pairKey][]candidate) (map[pairKey]string, error) {
	winners := make(map[pairKey]string, len(candidates))
	for pk, cands := range candidates {
		var winner string
		var haveWinner bool
		var winnerDirect bool

		for _, c := range cands {
			switch {
			case !haveWinner:
				winner, winnerDirect, haveWinner = c.version, c.direct, true
			case c.direct && !winnerDirect:
				winner, winnerDirect = c.version, true
			case c.direct == winnerDirect:
				if domain.ParseVersion(c.version).Compare(domain.ParseVersion(winner)) > 0 {
					winner = c.version
				}
			}
			// c is a non-direct candidate but winner is already direct: direct
			// always wins, so transitive candidates are ignored outright.
		}
		winners[pk] = winner
	}
	return winners, nil
}

// order performs a second BFS pass, this time only over winning versions, to
// build the lockfile in resolution (discovery) order: a direct dependency is
// appended before its own transitives are walked.
func (e *Engine) order(direct []domain.DependencyRequest, winners map[pairKey]string, descriptors map[string]descriptorRecord) (*domain.Lockfile, error) {
	directPairs := map[pairKey]bool{}
	for _, d := range direct {
		directPairs[pairKey{d.Group, d.Artifact}] = true
	}

	visited := map[pairKey]bool{}
	lock := &domain.Lockfile{}

	queue := append([]domain.DependencyRequest{}, direct...)
	for len(queue) > 0 {
		req := queue[0]
		queue = queue[1:]

		pk := pairKey{req.Group, req.Artifact}
		if visited[pk] {
			continue
		}
		visited[pk] = true

		version := winners[pk]
		key := versionKey(req.Group, req.Artifact, version)
		rec, ok := descriptors[key]
		if !ok {
			return nil, zerr.With(domain.ErrUnknownCoordinate, "coordinate", req.Group+":"+req.Artifact+":"+version)
		}

		entry := domain.ResolvedDependency{
			Group:     req.Group,
			Artifact:  req.Artifact,
			Version:   version,
			Packaging: rec.descriptor.Packaging,
			URL:       rec.descriptor.ArchiveURL,
			Direct:    directPairs[pk],
		}
		if !entry.Direct {
			entry.DependencyOf = req.ParentName
		}
		lock.Dependencies = append(lock.Dependencies, entry)

		for _, child := range rec.descriptor.Transitives {
			if excludes(req.Exclusions, child.Group, child.Artifact) {
				continue
			}
			queue = append(queue, domain.DependencyRequest{
				Group:      child.Group,
				Artifact:   child.Artifact,
				Version:    winners[pairKey{child.Group, child.Artifact}],
				Direct:     false,
				ParentName: req.Artifact,
				Exclusions: req.Exclusions,
			})
		}
	}

	return lock, nil
}

// lookup consults the resolver chain in order, falling through to the next
// resolver only on a transport failure. A cache hit never reaches a remote
// resolver.
func (e *Engine) lookup(ctx context.Context, coord domain.ArtifactCoordinate) (*domain.Descriptor, string, error) {
	for _, r := range e.chain {
		desc, err := r.Lookup(ctx, coord)
		if err != nil {
			if isTransportError(err) {
				if e.log != nil {
					e.log.Warn("resolver " + r.Name() + " failed for " + coord.String() + ", trying next")
				}
				continue
			}
			return nil, "", err
		}
		if desc == nil {
			continue
		}
		if err := e.populateCache(ctx, r, coord, desc); err != nil {
			return nil, "", err
		}
		return desc, r.Name(), nil
	}
	return nil, "", nil
}

// populateCache fetches and stores the artifact bytes from the resolver that
// produced the descriptor, unless that resolver was the cache itself (a
// cache hit never triggers network I/O, and re-storing would be a no-op).
func (e *Engine) populateCache(ctx context.Context, r ports.DependencyResolver, coord domain.ArtifactCoordinate, desc *domain.Descriptor) error {
	if r.Name() == "cache" {
		return nil
	}
	coord.Packaging = desc.Packaging

	data, err := r.Fetch(ctx, coord)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to fetch artifact"), "coordinate", coord.String())
	}

	descJSON, err := json.Marshal(desc)
	if err != nil {
		return zerr.Wrap(err, "failed to marshal descriptor for caching")
	}

	siblings := map[string][]byte{coord.DescriptorFileName(): descJSON}
	if err := e.cache.Store(coord, data, siblings); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to populate artifact cache"), "coordinate", coord.String())
	}
	return nil
}

// isTransportError reports whether err represents a soft, try-the-next-
// resolver failure rather than a fatal one.
func isTransportError(err error) bool {
	return errors.Is(err, domain.ErrNetworkFailure) ||
		errors.Is(err, domain.ErrHTTPNonSuccess) ||
		errors.Is(err, domain.ErrRepositoryFetch)
}
