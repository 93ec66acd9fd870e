package hostapi

import (
	"context"
	"path/filepath"

	"github.com/labt-build/labt/internal/core/domain"
	"github.com/labt-build/labt/internal/core/ports"
)

// SDKModule is the virtual object returned by loading module
// "sdk:<logical>[/<subdir>]": fields { path, version, channel } and the same
// two process dispatch styles as Sys, rooted at the package's install
// directory.
type SDKModule struct {
	*Sys
	Path    string
	Version string
	Channel string
	root    string
}

func newSDKModule(proc ports.ProcessExecutor, ref domain.SDKRef, root string) *SDKModule {
	return &SDKModule{
		Sys:     newSys(proc, root),
		Path:    ref.Path,
		Version: ref.Version,
		Channel: ref.Channel,
		root:    root,
	}
}

// File returns the absolute path to a file within this package's root.
func (m *SDKModule) File(name string) string {
	return filepath.Join(m.root, name)
}

// Dispatch resolves a script-visible call rooted at this package, decoding
// the same get_ prefix sugar Sys.Dispatch does.
func (m *SDKModule) Dispatch(ctx context.Context, name string, args []string) (ok bool, exitCode int, stdout, stderr string, err error) {
	return m.Sys.Dispatch(ctx, name, args)
}
