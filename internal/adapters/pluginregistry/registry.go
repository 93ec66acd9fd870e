// Package pluginregistry implements ports.PluginRegistry by shallow-cloning
// plugin Git repositories into the local plugin cache and parsing their
// manifests, the way the host's process dispatch spawns any other named
// executable.
package pluginregistry

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/labt-build/labt/internal/core/domain"
	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/zerr"
)

// latestRef is the sentinel version string that means "the highest semver
// tag in the clone" (every tag fetched by cloneShallow, on any branch).
const latestRef = "latest"

// Registry implements ports.PluginRegistry, rooted at a home directory under
// which each installed plugin lives at <root>/<name>-<version>/.
type Registry struct {
	root string
}

// New creates a Registry rooted at root.
func New(root string) *Registry {
	return &Registry{root: root}
}

// Install clones gitURL shallowly into a fresh directory, checks out ref,
// reads plugin.toml, and returns the manifest and its install root. A
// manifest version disagreeing with the checked-out tag wins for naming the
// install directory.
func (r *Registry) Install(ctx context.Context, gitURL, ref string) (*domain.PluginManifest, string, error) {
	tmp, err := os.MkdirTemp(r.root, ".clone-*")
	if err != nil {
		return nil, "", zerr.Wrap(err, "failed to create plugin clone staging directory")
	}
	defer os.RemoveAll(tmp)

	if err := cloneShallow(ctx, gitURL, tmp); err != nil {
		return nil, "", err
	}

	resolvedRef := ref
	if ref == "" || ref == latestRef {
		resolvedRef, err = highestTag(ctx, tmp)
		if err != nil {
			return nil, "", err
		}
	}
	if resolvedRef != "" {
		if err := checkout(ctx, tmp, resolvedRef); err != nil {
			return nil, "", err
		}
	}

	manifest, err := readManifest(tmp)
	if err != nil {
		return nil, "", err
	}

	finalDir := filepath.Join(r.root, installDirName(manifest.Name, manifest.Version))
	if err := os.RemoveAll(finalDir); err != nil {
		return nil, "", zerr.Wrap(err, "failed to clear existing plugin install directory")
	}
	if err := os.Rename(tmp, finalDir); err != nil {
		return nil, "", zerr.With(zerr.Wrap(err, "failed to finalize plugin install"), "plugin", manifest.Name)
	}

	return manifest, finalDir, nil
}

// Load parses the manifest of an already-installed plugin by name and
// version. Returns domain.ErrPluginNotFound if no matching directory exists.
func (r *Registry) Load(name, version string) (*domain.PluginManifest, string, error) {
	dir := filepath.Join(r.root, installDirName(name, version))
	if _, err := os.Stat(dir); err != nil {
		return nil, "", zerr.With(zerr.With(domain.ErrPluginNotFound, "plugin", name), "version", version)
	}
	manifest, err := readManifest(dir)
	if err != nil {
		return nil, "", err
	}
	return manifest, dir, nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create plugin registry root"), "path", dir)
	}
	return nil
}

func installDirName(name, version string) string {
	return name + "-" + version
}

func readManifest(dir string) (*domain.PluginManifest, error) {
	path := filepath.Join(dir, "plugin.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read plugin manifest"), "path", path)
	}
	var manifest domain.PluginManifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse plugin manifest"), "path", path)
	}
	return &manifest, nil
}

func cloneShallow(ctx context.Context, gitURL, dir string) error {
	cmd := exec.CommandContext(ctx, "git", "clone", "--quiet", "--depth", "1", "--no-single-branch", gitURL, dir) //nolint:gosec // gitURL is caller-supplied, not script-dynamic
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to clone plugin repository"), "url", gitURL)
	}

	// A depth-1 clone only carries tags that point at fetched tips; pull in
	// the rest so tag checkout and "latest" resolution see every release.
	cmd = exec.CommandContext(ctx, "git", "-C", dir, "fetch", "--quiet", "--tags", "--depth", "1", "origin")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to fetch plugin tags"), "url", gitURL)
	}
	return nil
}

func checkout(ctx context.Context, dir, ref string) error {
	cmd := exec.CommandContext(ctx, "git", "-C", dir, "checkout", "--quiet", ref)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to check out plugin ref"), "ref", ref)
	}
	return nil
}

// highestTag lists a clone's tags and returns the one with the highest
// semver value, the resolution for ref "latest".
func highestTag(ctx context.Context, dir string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", dir, "tag", "--list")
	out, err := cmd.Output()
	if err != nil {
		return "", zerr.Wrap(err, "failed to list plugin tags")
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	var tags []*semver.Version
	byVersion := make(map[*semver.Version]string, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		v, err := semver.NewVersion(line)
		if err != nil {
			continue
		}
		tags = append(tags, v)
		byVersion[v] = line
	}
	if len(tags) == 0 {
		return "", nil
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].LessThan(tags[j]) })
	return byVersion[tags[len(tags)-1]], nil
}

