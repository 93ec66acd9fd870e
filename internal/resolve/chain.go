package resolve

import (
	"github.com/labt-build/labt/internal/adapters/maven"
	"github.com/labt-build/labt/internal/core/domain"
	"github.com/labt-build/labt/internal/core/ports"
)

// BuildChain builds the ordered remote resolver chain from a project file's
// [[resolvers]] array. Maven-layout repositories are the only resolver kind,
// so every declared entry is bound to a maven.Resolver at its declared URL.
func BuildChain(specs []domain.ResolverSpec) []ports.DependencyResolver {
	chain := make([]ports.DependencyResolver, 0, len(specs))
	for _, spec := range specs {
		chain = append(chain, maven.FromSpec(spec))
	}
	return chain
}
