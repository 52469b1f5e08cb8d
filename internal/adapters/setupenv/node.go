package setupenv

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wsdeps/internal/adapters/logger"
	"go.trai.ch/wsdeps/internal/core/ports"
)

// NodeID is the unique identifier for the environment loader Graft node.
const NodeID graft.ID = "adapter.setupenv"

func init() {
	graft.Register(graft.Node[ports.EnvironmentLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.EnvironmentLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
