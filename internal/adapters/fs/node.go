package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wsdeps/internal/adapters/logger"
	"go.trai.ch/wsdeps/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the package discoverer Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// HasherNodeID is the unique identifier for the scan set hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
	// CleanerNodeID is the unique identifier for the cleaner Graft node.
	CleanerNodeID graft.ID = "adapter.fs.cleaner"
)

func init() {
	graft.Register(graft.Node[ports.PackageDiscoverer]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PackageDiscoverer, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.Cleaner]{
		ID:        CleanerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Cleaner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewCleaner(log), nil
		},
	})
}
