package hostapi

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/labt-build/labt/internal/adapters/archiver"
	"github.com/labt-build/labt/internal/adapters/artifactcache"
	"github.com/labt-build/labt/internal/adapters/logger"
	"github.com/labt-build/labt/internal/adapters/projectfile"
	"github.com/labt-build/labt/internal/adapters/prompts"
	"github.com/labt-build/labt/internal/adapters/sdkmanager"
	"github.com/labt-build/labt/internal/core/ports"
	"github.com/labt-build/labt/internal/labthome"
)

// ProcessExecutorNodeID is the unique identifier for the process executor
// Graft node.
const ProcessExecutorNodeID graft.ID = "adapter.process_executor"

// FactoryNodeID is the unique identifier for the Host API Factory Graft node.
const FactoryNodeID graft.ID = "hostapi.factory"

func init() {
	graft.Register(graft.Node[ports.ProcessExecutor]{
		ID:        ProcessExecutorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ProcessExecutor, error) {
			return New(), nil
		},
	})

	graft.Register(graft.Node[*Factory]{
		ID:        FactoryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			ProcessExecutorNodeID, archiver.NodeID, artifactcache.NodeID,
			sdkmanager.InstallerNodeID, prompts.NodeID, logger.NodeID, projectfile.NodeID,
		},
		Run: func(ctx context.Context) (*Factory, error) {
			proc, err := graft.Dep[ports.ProcessExecutor](ctx)
			if err != nil {
				return nil, err
			}
			arc, err := graft.Dep[ports.Archiver](ctx)
			if err != nil {
				return nil, err
			}
			cache, err := graft.Dep[ports.ArtifactCache](ctx)
			if err != nil {
				return nil, err
			}
			sdk, err := graft.Dep[ports.SDKInstaller](ctx)
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
			store, err := graft.Dep[ports.ProjectStore](ctx)
			if err != nil {
				return nil, err
			}
			sdkDir, err := labthome.SDKDir()
			if err != nil {
				return nil, err
			}
			return NewFactory(proc, arc, cache, sdk, prompter, log, store, sdkDir), nil
		},
	})
}
