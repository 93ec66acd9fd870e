package hostapi

import (
	"context"
	"path/filepath"

	"github.com/labt-build/labt/internal/core/domain"
	"github.com/labt-build/labt/internal/core/ports"
	"github.com/labt-build/labt/internal/resolve"
	"go.trai.ch/zerr"
)

// Factory holds the shared, long-lived adapters every Host API instance
// binds to, and mints a fresh HostAPI per plugin task evaluation so no
// state leaks between tasks.
type Factory struct {
	proc     ports.ProcessExecutor
	archiver ports.Archiver
	cache    ports.ArtifactCache
	sdk      ports.SDKInstaller
	prompter ports.Prompter
	logger   ports.Logger
	store    ports.ProjectStore
	sdkRoot  string
}

// NewFactory creates a Factory from its shared adapters.
func NewFactory(
	proc ports.ProcessExecutor,
	arc ports.Archiver,
	cache ports.ArtifactCache,
	sdk ports.SDKInstaller,
	prompter ports.Prompter,
	logger ports.Logger,
	store ports.ProjectStore,
	sdkRoot string,
) *Factory {
	return &Factory{
		proc: proc, archiver: arc, cache: cache, sdk: sdk,
		prompter: prompter, logger: logger, store: store, sdkRoot: sdkRoot,
	}
}

// New mints a HostAPI bound to a single task evaluation: a project root,
// the stage it runs in, the resolver chain configured for the project, and
// whether unsafe native-library loading is permitted for this task.
// initMode forces unsafe off regardless of the manifest.
func (f *Factory) New(projectRoot string, stage domain.Stage, cfg *domain.ProjectConfig, unsafe, initMode bool) *HostAPI {
	return &HostAPI{
		f:           f,
		projectRoot: projectRoot,
		stage:       stage,
		cfg:         cfg,
		unsafe:      unsafe && !initMode,
		sys:         newSys(f.proc, projectRoot),
	}
}

// HostAPI is the fixed vocabulary bound to a single plugin task evaluation.
type HostAPI struct {
	f           *Factory
	projectRoot string
	stage       domain.Stage
	cfg         *domain.ProjectConfig
	unsafe      bool
	sys         *Sys
	fs          *FS
}

// --- Project surface ---

// GetProjectConfig returns the project's deep structural mapping.
func (h *HostAPI) GetProjectConfig() *domain.ProjectConfig { return h.cfg }

// GetLockDependencies returns the ordered lockfile entries.
func (h *HostAPI) GetLockDependencies() ([]domain.ResolvedDependency, error) {
	lock, err := h.f.store.LoadLockfile(h.projectRoot)
	if err != nil {
		return nil, err
	}
	if lock == nil {
		return nil, nil
	}
	return lock.Dependencies, nil
}

// GetProjectRoot returns the absolute project root path.
func (h *HostAPI) GetProjectRoot() string { return h.projectRoot }

// GetBuildStep returns the current stage name.
func (h *HostAPI) GetBuildStep() domain.Stage { return h.stage }

// GetCachePath returns the cache path for a coordinate, without touching
// disk.
func (h *HostAPI) GetCachePath(group, artifact, version, packaging string) string {
	return h.f.cache.PathFor(domain.ArtifactCoordinate{
		Group: group, Artifact: artifact, Version: version, Packaging: packaging,
	})
}

// Resolve invokes the resolver over the project's direct dependencies and
// writes the lockfile, exactly as the `resolve` subcommand does.
func (h *HostAPI) Resolve(ctx context.Context) error {
	remotes := resolve.BuildChain(h.cfg.Resolvers)
	engine := resolve.New(h.f.cache, remotes, h.f.logger)

	lock, err := engine.Resolve(ctx, h.cfg.DirectRequests())
	if err != nil {
		return err
	}
	return h.f.store.SaveLockfile(h.projectRoot, lock)
}

// --- Process surface ---

// Sys returns the dynamically dispatched process capability object rooted
// at the project root.
func (h *HostAPI) Sys() *Sys { return h.sys }

// --- SDK dispatch surface ---

// SDK loads module "sdk:<logical>[/<subdir>]": the logical name is resolved
// against the project's sdk mapping, rooted at <home>/sdk/<package-path>.
func (h *HostAPI) SDK(logical, subdir string) (*SDKModule, error) {
	ref, ok := h.cfg.SDK[logical]
	if !ok {
		return nil, zerr.With(domain.ErrSDKNotFound, "logical_name", logical)
	}
	root := filepath.Join(h.f.sdkRoot, ref.DiskPath())
	if subdir != "" {
		root = filepath.Join(root, subdir)
	}
	return newSDKModule(h.f.proc, ref, root), nil
}

// --- Archive I/O surface ---

// Archive returns the archive writer/reader capability.
func (h *HostAPI) Archive() ports.Archiver { return h.f.archiver }

// --- Prompts surface ---

// Prompt returns the interactive prompt capability.
func (h *HostAPI) Prompt() ports.Prompter { return h.f.prompter }

// --- Logging surface ---

// Info logs an info-severity message for target.
func (h *HostAPI) Info(target, message string) { h.f.logger.Info(target + ": " + message) }

// Warn logs a warn-severity message for target.
func (h *HostAPI) Warn(target, message string) { h.f.logger.Warn(target + ": " + message) }

// Error logs an error-severity message for target.
func (h *HostAPI) Error(target, message string) {
	h.f.logger.Error(zerr.With(zerr.New(message), "target", target))
}

// Unsafe reports whether this task may load external native libraries
// through the scripting runtime.
func (h *HostAPI) Unsafe() bool { return h.unsafe }

// --- Template rendering surface (init mode only) ---

// NewTemplates builds the init-mode template renderer for a plugin's init
// entry, rooted at pluginRoot and discovering templates via glob (or the
// default "templates/*" if empty).
func (f *Factory) NewTemplates(pluginRoot, glob string) *Templates {
	return NewTemplates(pluginRoot, glob)
}
