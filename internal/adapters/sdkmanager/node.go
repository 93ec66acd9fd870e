package sdkmanager

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/labt-build/labt/internal/adapters/archiver"
	"github.com/labt-build/labt/internal/core/ports"
	"github.com/labt-build/labt/internal/labthome"
)

// RepositoryNodeID is the unique identifier for the SDK repository Graft node.
const RepositoryNodeID graft.ID = "adapter.sdk_repository"

// InstallerNodeID is the unique identifier for the SDK installer Graft node.
const InstallerNodeID graft.ID = "adapter.sdk_installer"

func init() {
	graft.Register(graft.Node[ports.SDKRepository]{
		ID:        RepositoryNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SDKRepository, error) {
			reposDir, err := labthome.RepositoriesDir()
			if err != nil {
				return nil, err
			}
			return NewRepository(reposDir), nil
		},
	})

	graft.Register(graft.Node[ports.SDKInstaller]{
		ID:        InstallerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{archiver.NodeID},
		Run: func(ctx context.Context) (ports.SDKInstaller, error) {
			sdkDir, err := labthome.SDKDir()
			if err != nil {
				return nil, err
			}
			arc, err := graft.Dep[ports.Archiver](ctx)
			if err != nil {
				return nil, err
			}
			return NewInstaller(sdkDir, arc), nil
		},
	})
}
