package installer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wsdeps/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/wsdeps/internal/adapters/lock"               //nolint:depguard // Wired in engine wiring
	"go.trai.ch/wsdeps/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/wsdeps/internal/adapters/manifest"           //nolint:depguard // Wired in engine wiring
	"go.trai.ch/wsdeps/internal/adapters/query"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/wsdeps/internal/adapters/rosdep"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/wsdeps/internal/adapters/setupenv"           //nolint:depguard // Wired in engine wiring
	"go.trai.ch/wsdeps/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/wsdeps/internal/core/ports"
)

// NodeID is the unique identifier for the installer Graft node.
const NodeID graft.ID = "engine.installer"

func init() {
	graft.Register(graft.Node[*Installer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			rosdep.NodeID,
			fs.WalkerNodeID,
			manifest.NodeID,
			query.NodeID,
			fs.HasherNodeID,
			fs.CleanerNodeID,
			lock.NodeID,
			setupenv.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Installer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			database, err := graft.Dep[ports.DependencyDatabase](ctx)
			if err != nil {
				return nil, err
			}

			discoverer, err := graft.Dep[ports.PackageDiscoverer](ctx)
			if err != nil {
				return nil, err
			}

			parser, err := graft.Dep[ports.ManifestParser](ctx)
			if err != nil {
				return nil, err
			}

			backends, err := graft.Dep[query.Backends](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			cleaner, err := graft.Dep[ports.Cleaner](ctx)
			if err != nil {
				return nil, err
			}

			locker, err := graft.Dep[ports.Locker](ctx)
			if err != nil {
				return nil, err
			}

			env, err := graft.Dep[ports.EnvironmentLoader](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return New(log, database, discoverer, parser, backends, hasher, cleaner, locker, env, telemetry), nil
		},
	})
}
