package query

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wsdeps/internal/adapters/logger"
	"go.trai.ch/wsdeps/internal/adapters/shell"
	"go.trai.ch/wsdeps/internal/core/domain"
	"go.trai.ch/wsdeps/internal/core/ports"
)

// NodeID is the unique identifier for the package query Graft node.
const NodeID graft.ID = "adapter.query"

// Backends maps each graph backend to its query implementation.
type Backends map[domain.GraphBackend]ports.PackageQuery

func init() {
	graft.Register(graft.Node[Backends]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (Backends, error) {
			exec, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return Backends{
				domain.GraphBackendNative: NewNative(),
				domain.GraphBackendColcon: NewColcon(exec, log),
			}, nil
		},
	})
}
