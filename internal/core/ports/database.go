package ports

import (
	"context"

	"go.trai.ch/wsdeps/internal/core/domain"
)

// DependencyDatabase wraps the third-party dependency resolver (rosdep).
//
//go:generate go run go.uber.org/mock/mockgen -source=database.go -destination=mocks/mock_database.go -package=mocks
type DependencyDatabase interface {
	// Initialized reports whether the database marker file exists.
	Initialized(marker string) (bool, error)

	// Init initializes the database. It must only be called when Initialized is false.
	Init(ctx context.Context, env []string) error

	// Update refreshes the remote index for the given distribution.
	Update(ctx context.Context, req *domain.InstallRequest, env []string) error

	// Install resolves and installs the system dependencies of the scan set
	// in a single resolver invocation. Individually unresolvable keys are
	// reported in the result and do not fail the call.
	Install(ctx context.Context, set *domain.ScanSet, req *domain.InstallRequest, env []string) (*domain.InstallResult, error)
}
