// Package app implements the application layer for labt: one method per CLI
// subcommand, orchestrating the project store, resolver, SDK manager, plugin
// registry and plugin driver behind the ports they expose.
package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labt-build/labt/internal/adapters/sdkmanager"
	"github.com/labt-build/labt/internal/core/domain"
	"github.com/labt-build/labt/internal/core/ports"
	"github.com/labt-build/labt/internal/plugindriver"
	"github.com/labt-build/labt/internal/resolve"
	"go.trai.ch/zerr"
)

// mavenCentralURL seeds the resolver chain of a freshly initialized project.
const mavenCentralURL = "https://repo1.maven.org/maven2"

// App wires the subsystems together, one exported method per subcommand.
type App struct {
	store    ports.ProjectStore
	cache    ports.ArtifactCache
	registry ports.PluginRegistry
	sdkRepo  ports.SDKRepository
	sdk      ports.SDKInstaller
	picker   ports.SDKPicker
	drivers  *plugindriver.Factory
	prompter ports.Prompter
	logger   ports.Logger
}

// New creates an App from its adapters.
func New(
	store ports.ProjectStore,
	cache ports.ArtifactCache,
	registry ports.PluginRegistry,
	sdkRepo ports.SDKRepository,
	sdk ports.SDKInstaller,
	picker ports.SDKPicker,
	drivers *plugindriver.Factory,
	prompter ports.Prompter,
	logger ports.Logger,
) *App {
	return &App{
		store: store, cache: cache, registry: registry,
		sdkRepo: sdkRepo, sdk: sdk, picker: picker,
		drivers: drivers, prompter: prompter, logger: logger,
	}
}

// project locates the enclosing project root and loads its configuration.
func (a *App) project() (string, *domain.ProjectConfig, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", nil, zerr.Wrap(err, "failed to determine working directory")
	}
	root, err := a.store.FindRoot(cwd)
	if err != nil {
		return "", nil, err
	}
	cfg, err := a.store.LoadProject(root)
	if err != nil {
		return "", nil, err
	}
	return root, cfg, nil
}

// Init bootstraps a new project from a template plugin: the plugin is
// installed from gitURL, the user is prompted for project metadata, and the
// resulting project file is written into dir (defaulting to the project
// name). If the plugin declares an init entry its script is run in init
// mode, with the target directory as its argument and working directory.
func (a *App) Init(ctx context.Context, gitURL, dir string) error {
	url, ref := splitPluginRef(gitURL)
	manifest, pluginRoot, err := a.registry.Install(ctx, url, ref)
	if err != nil {
		return err
	}

	defName := ""
	if dir != "" {
		defName = filepath.Base(dir)
	}
	name, err := a.prompter.Input("Project name", defName, func(v string) string {
		if strings.TrimSpace(v) == "" {
			return "project name must not be empty"
		}
		return ""
	})
	if err != nil {
		return err
	}
	pkg, err := a.prompter.Input("Package id", "com.example."+name, nil)
	if err != nil {
		return err
	}
	versionName, err := a.prompter.Input("Version name", "0.1.0", nil)
	if err != nil {
		return err
	}

	if dir == "" {
		dir = name
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create project directory"), "dir", dir)
	}

	cfg := &domain.ProjectConfig{
		Project: domain.ProjectMeta{
			Name:        name,
			Package:     pkg,
			VersionName: versionName,
			VersionCode: 1,
		},
		Plugins: map[string]domain.PluginSpec{
			manifest.Name: {Version: manifest.Version, Git: url},
		},
		Resolvers: []domain.ResolverSpec{{Name: "central", URL: mavenCentralURL}},
	}
	if err := a.store.SaveProject(dir, cfg); err != nil {
		return err
	}

	if manifest.Init != nil {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return zerr.Wrap(err, "failed to absolutize project directory")
		}
		if err := a.drivers.RunInit(ctx, cfg, manifest, pluginRoot, absDir); err != nil {
			return err
		}
	}

	a.logger.Info("initialized project " + name + " in " + dir)
	return nil
}

// Add records a "group:artifact:version" coordinate as a direct dependency
// in the project file and re-resolves the lockfile.
func (a *App) Add(ctx context.Context, coords string) error {
	parts := strings.Split(coords, ":")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return zerr.With(domain.ErrInvalidCoordinate, "coordinate", coords)
	}

	root, cfg, err := a.project()
	if err != nil {
		return err
	}
	spec := domain.DependencySpec{Group: parts[0], Version: parts[2]}
	if err := a.store.AddDependency(root, parts[1], spec); err != nil {
		return err
	}

	if cfg.Dependencies == nil {
		cfg.Dependencies = map[string]domain.DependencySpec{}
	}
	cfg.Dependencies[parts[1]] = spec
	return a.resolveAndLock(ctx, root, cfg)
}

// Resolve runs the dependency resolver over the project's declared
// dependencies and writes the lockfile.
func (a *App) Resolve(ctx context.Context) error {
	root, cfg, err := a.project()
	if err != nil {
		return err
	}
	return a.resolveAndLock(ctx, root, cfg)
}

func (a *App) resolveAndLock(ctx context.Context, root string, cfg *domain.ProjectConfig) error {
	engine := resolve.New(a.cache, resolve.BuildChain(cfg.Resolvers), a.logger)
	lock, err := engine.Resolve(ctx, cfg.DirectRequests())
	if err != nil {
		return err
	}
	if err := a.store.SaveLockfile(root, lock); err != nil {
		return err
	}
	a.logger.Info("resolved " + strconv.Itoa(len(lock.Dependencies)) + " dependencies")
	return nil
}

// Build runs the plugin pipeline over the requested stages (all six when
// stages is empty).
func (a *App) Build(ctx context.Context, stages []domain.Stage) error {
	root, cfg, err := a.project()
	if err != nil {
		return err
	}
	driver := a.drivers.New(cfg, false)
	return driver.Run(ctx, root, cfg, stages)
}

// InstallPlugin installs a plugin from "<git-url>@<ref>" into the user-home
// plugin tree and, when run inside a project, records it in the project
// file.
func (a *App) InstallPlugin(ctx context.Context, spec string) error {
	url, ref := splitPluginRef(spec)
	manifest, _, err := a.registry.Install(ctx, url, ref)
	if err != nil {
		return err
	}
	a.logger.Info("installed plugin " + manifest.Name + " " + manifest.Version)

	root, cfg, err := a.project()
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return nil
		}
		return err
	}
	if cfg.Plugins == nil {
		cfg.Plugins = map[string]domain.PluginSpec{}
	}
	cfg.Plugins[manifest.Name] = domain.PluginSpec{Version: manifest.Version, Git: url}
	return a.store.SaveProject(root, cfg)
}

// SDKAdd registers a named SDK repository, fetches its manifest, and caches
// it for offline listings. With no URL given, Google's canonical repository
// is used. When run inside a project the repository is also recorded in the
// project file.
func (a *App) SDKAdd(ctx context.Context, name, url string) error {
	if url == "" {
		url = sdkmanager.DefaultManifestURL
	}
	packages, err := a.sdkRepo.Sync(ctx, name, url)
	if err != nil {
		return err
	}
	a.logger.Info("repository " + name + ": " + strconv.Itoa(len(packages)) + " packages")

	root, cfg, err := a.project()
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return nil
		}
		return err
	}
	if cfg.SDKRepos == nil {
		cfg.SDKRepos = map[string]string{}
	}
	cfg.SDKRepos[name] = url
	return a.store.SaveProject(root, cfg)
}

// SDKList refreshes a repository's package list, opens the interactive
// listing for the user to toggle per-package actions, then plans and
// executes the confirmed selections.
func (a *App) SDKList(ctx context.Context, repo string) error {
	packages, err := a.repoPackages(ctx, repo)
	if err != nil {
		return err
	}

	selections, err := a.picker.Pick(packages)
	if err != nil {
		return err
	}
	if selections == nil {
		a.logger.Info("no changes selected")
		return nil
	}

	plan, err := a.sdk.Plan(selections)
	if err != nil {
		return err
	}
	return a.sdk.Execute(ctx, plan)
}

// SDKInstall installs one package from a named repository by its manifest
// path, optionally pinned to a version quad.
func (a *App) SDKInstall(ctx context.Context, repo, path, version string) error {
	packages, err := a.repoPackages(ctx, repo)
	if err != nil {
		return err
	}

	var match *domain.SDKPackage
	for i := range packages {
		if packages[i].Path != path {
			continue
		}
		if version != "" && domain.ParseVersion(version).Compare(packages[i].Revision.Version()) != 0 {
			continue
		}
		match = &packages[i]
		break
	}
	if match == nil {
		return zerr.With(zerr.With(zerr.With(domain.ErrSDKNotFound, "repository", repo), "path", path), "version", version)
	}

	plan, err := a.sdk.Plan([]domain.PackageSelection{{Package: *match, Action: domain.ActionInstall}})
	if err != nil {
		return err
	}
	return a.sdk.Execute(ctx, plan)
}

// repoPackages refreshes a named repository's manifest, falling back to the
// cached copy on a transport failure so listings work offline, and marks
// each package's installed state.
func (a *App) repoPackages(ctx context.Context, repo string) ([]domain.SDKPackage, error) {
	url := sdkmanager.DefaultManifestURL
	if _, cfg, err := a.project(); err == nil {
		if declared, ok := cfg.SDKRepos[repo]; ok {
			url = declared
		}
	} else if !errors.Is(err, domain.ErrProjectNotFound) {
		return nil, err
	}

	packages, err := a.sdkRepo.Sync(ctx, repo, url)
	if err != nil {
		if !errors.Is(err, domain.ErrRepositoryFetch) {
			return nil, err
		}
		a.logger.Warn("repository " + repo + " unreachable, using cached manifest")
		packages, err = a.sdkRepo.LoadCached(repo)
		if err != nil {
			return nil, err
		}
	}

	installed, err := a.sdk.Installed()
	if err != nil {
		return nil, err
	}
	installedPaths := make(map[string]bool, len(installed))
	for _, pkg := range installed {
		installedPaths[pkg.Path] = true
	}
	for i := range packages {
		packages[i].Installed = installedPaths[packages[i].Path]
	}
	return packages, nil
}

// splitPluginRef splits "<git-url>@<ref>" into its parts, defaulting ref to
// "latest". Only an "@" past the last path separator counts, so ssh-style
// URLs keep their user@host prefix.
func splitPluginRef(spec string) (url, ref string) {
	if i := strings.LastIndex(spec, "@"); i > strings.LastIndex(spec, "/") {
		return spec[:i], spec[i+1:]
	}
	return spec, "latest"
}

