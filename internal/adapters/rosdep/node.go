package rosdep

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wsdeps/internal/adapters/logger"
	"go.trai.ch/wsdeps/internal/adapters/shell"
	"go.trai.ch/wsdeps/internal/core/ports"
)

// NodeID is the unique identifier for the rosdep database Graft node.
const NodeID graft.ID = "adapter.rosdep"

func init() {
	graft.Register(graft.Node[ports.DependencyDatabase]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.DependencyDatabase, error) {
			exec, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewDatabase(exec, log), nil
		},
	})
}
