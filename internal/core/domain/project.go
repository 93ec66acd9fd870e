package domain

// ProjectConfig is the decoded form of a project file (Labt.toml): metadata,
// direct dependencies, active plugins, the ordered resolver chain, and the
// optional SDK logical-name mapping.
type ProjectConfig struct {
	Project   ProjectMeta               `toml:"project"`
	Dependencies map[string]DependencySpec `toml:"dependencies,omitempty"`
	Plugins   map[string]PluginSpec     `toml:"plugins,omitempty"`
	Resolvers []ResolverSpec            `toml:"resolvers,omitempty"`
	SDK       map[string]SDKRef         `toml:"sdk,omitempty"`
	SDKRepos  map[string]string         `toml:"sdk_repos,omitempty"`
}

// ProjectMeta carries the descriptive metadata for an Android project.
type ProjectMeta struct {
	Name        string `toml:"name"`
	Package     string `toml:"package"`
	VersionName string `toml:"version_name"`
	VersionCode int     `toml:"version_code"`
	Description string `toml:"description,omitempty"`
}

// DependencySpec is a dependency entry keyed by artifact id in the project
// file: { group, version, optional exclusions }.
type DependencySpec struct {
	Group      string       `toml:"group"`
	Version    string       `toml:"version"`
	Exclusions []Coordinate `toml:"exclusions,omitempty"`
}

// Coordinate identifies a (group, artifact) pair, used for exclusion entries
// that omit version and packaging.
type Coordinate struct {
	Group    string `toml:"group" json:"group"`
	Artifact string `toml:"artifact" json:"artifact"`
}

// PluginSpec is a plugin entry keyed by plugin id in the project file:
// { version, git location }.
type PluginSpec struct {
	Version string `toml:"version"`
	Git     string `toml:"git"`
}

// ResolverSpec is one entry in the ordered resolver chain.
type ResolverSpec struct {
	Name string `toml:"name"`
	URL  string `toml:"url,omitempty"`
}

// DirectRequests expands the declared dependencies into the resolver's
// initial frontier: each request is marked Direct and carries its declared
// exclusion list.
func (c *ProjectConfig) DirectRequests() []DependencyRequest {
	reqs := make([]DependencyRequest, 0, len(c.Dependencies))
	for artifact, spec := range c.Dependencies {
		reqs = append(reqs, DependencyRequest{
			Group:      spec.Group,
			Artifact:   artifact,
			Version:    spec.Version,
			Direct:     true,
			Exclusions: spec.Exclusions,
		})
	}
	return reqs
}
