package sdkmanager

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/labt-build/labt/internal/core/domain"
	"github.com/labt-build/labt/internal/fsutil"
	"go.trai.ch/zerr"
)

// Sync fetches the manifest at url, caches the raw document under
// <cacheDir>/<name>.xml so later listings can run offline, and returns the
// declared packages. The cache write is atomic; a fetch or parse failure
// leaves any previously cached manifest untouched.
func (r *Repository) Sync(ctx context.Context, name, url string) ([]domain.SDKPackage, error) {
	data, err := r.download(ctx, url)
	if err != nil {
		return nil, err
	}

	packages, err := ParseManifest(bytes.NewReader(data), url)
	if err != nil {
		return nil, err
	}

	if err := fsutil.AtomicWriteFile(r.manifestPath(name), data, 0o644); err != nil {
		return nil, zerr.With(err, "repository", name)
	}
	return packages, nil
}

// LoadCached parses the cached manifest for a named repository without
// touching the network.
func (r *Repository) LoadCached(name string) ([]domain.SDKPackage, error) {
	path := r.manifestPath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, zerr.With(zerr.With(domain.ErrRepositoryFetch, "repository", name), "cause", "never synced")
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read cached manifest"), "path", path)
	}
	return ParseManifest(bytes.NewReader(data), "")
}

func (r *Repository) manifestPath(name string) string {
	return filepath.Join(r.cacheDir, name+".xml")
}
