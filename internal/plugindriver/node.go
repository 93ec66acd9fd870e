package plugindriver

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/labt-build/labt/internal/adapters/logger"
	"github.com/labt-build/labt/internal/adapters/pluginregistry"
	"github.com/labt-build/labt/internal/adapters/telemetry/progrock"
	"github.com/labt-build/labt/internal/core/domain"
	"github.com/labt-build/labt/internal/core/ports"
	"github.com/labt-build/labt/internal/hostapi"
)

// FactoryNodeID is the unique identifier for the driver-builder Graft node.
// It is registered as a Factory rather than a *Driver because a Driver's
// TaskExecutor is bound to a project's ProjectConfig and init-mode flag,
// which are only known at build time.
const FactoryNodeID graft.ID = "plugindriver.factory"

// Factory mints a Driver bound to a single build invocation.
type Factory struct {
	registry  ports.PluginRegistry
	hostFactory *hostapi.Factory
	telemetry ports.Telemetry
	logger    ports.Logger
}

// NewFactory creates a Factory from its shared adapters.
func NewFactory(registry ports.PluginRegistry, hostFactory *hostapi.Factory, telemetry ports.Telemetry, logger ports.Logger) *Factory {
	return &Factory{registry: registry, hostFactory: hostFactory, telemetry: telemetry, logger: logger}
}

// New binds cfg and initMode into a ScriptExecutor and returns the Driver
// that runs the build against them.
func (f *Factory) New(cfg *domain.ProjectConfig, initMode bool) *Driver {
	executor := hostapi.NewScriptExecutor(f.hostFactory, cfg, initMode)
	return New(f.registry, executor, f.telemetry, f.logger)
}

// RunInit evaluates a plugin's init entry point in init mode against a
// freshly written project configuration.
func (f *Factory) RunInit(ctx context.Context, cfg *domain.ProjectConfig, manifest *domain.PluginManifest, pluginRoot, targetDir string) error {
	executor := hostapi.NewScriptExecutor(f.hostFactory, cfg, true)
	return executor.ExecuteInit(ctx, manifest, pluginRoot, targetDir)
}

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        FactoryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{pluginregistry.NodeID, hostapi.FactoryNodeID, progrock.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Factory, error) {
			registry, err := graft.Dep[ports.PluginRegistry](ctx)
			if err != nil {
				return nil, err
			}
			hf, err := graft.Dep[*hostapi.Factory](ctx)
			if err != nil {
				return nil, err
			}
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(registry, hf, telemetry, log), nil
		},
	})
}
