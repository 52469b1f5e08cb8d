package lock

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wsdeps/internal/adapters/logger"
	"go.trai.ch/wsdeps/internal/core/ports"
)

// NodeID is the unique identifier for the install locker Graft node.
const NodeID graft.ID = "adapter.lock"

func init() {
	graft.Register(graft.Node[ports.Locker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Locker, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFileLocker(log), nil
		},
	})
}
