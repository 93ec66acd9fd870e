package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/labt-build/labt/internal/adapters/artifactcache"
	"github.com/labt-build/labt/internal/adapters/logger"
	"github.com/labt-build/labt/internal/adapters/pluginregistry"
	"github.com/labt-build/labt/internal/adapters/projectfile"
	"github.com/labt-build/labt/internal/adapters/prompts"
	"github.com/labt-build/labt/internal/adapters/sdkmanager"
	"github.com/labt-build/labt/internal/adapters/sdktui"
	"github.com/labt-build/labt/internal/core/ports"
	"github.com/labt-build/labt/internal/plugindriver"
)

// NodeID is the unique identifier for the main App Graft node.
const NodeID graft.ID = "app.main"

func init() {
	graft.Register(graft.Node[*App]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			projectfile.NodeID,
			artifactcache.NodeID,
			pluginregistry.NodeID,
			sdkmanager.RepositoryNodeID,
			sdkmanager.InstallerNodeID,
			sdktui.NodeID,
			plugindriver.FactoryNodeID,
			prompts.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			store, err := graft.Dep[ports.ProjectStore](ctx)
			if err != nil {
				return nil, err
			}
			cache, err := graft.Dep[ports.ArtifactCache](ctx)
			if err != nil {
				return nil, err
			}
			registry, err := graft.Dep[ports.PluginRegistry](ctx)
			if err != nil {
				return nil, err
			}
			sdkRepo, err := graft.Dep[ports.SDKRepository](ctx)
			if err != nil {
				return nil, err
			}
			sdk, err := graft.Dep[ports.SDKInstaller](ctx)
			if err != nil {
				return nil, err
			}
			picker, err := graft.Dep[ports.SDKPicker](ctx)
			if err != nil {
				return nil, err
			}
			drivers, err := graft.Dep[*plugindriver.Factory](ctx)
			if err != nil {
				return nil, err
			}
			prompter, err := graft.Dep[ports.Prompter](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(store, cache, registry, sdkRepo, sdk, picker, drivers, prompter, log), nil
		},
	})
}
