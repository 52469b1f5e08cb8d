package ports

import "context"

// Locker serializes installations against the same filesystem.
//
//go:generate go run go.uber.org/mock/mockgen -source=locker.go -destination=mocks/mock_locker.go -package=mocks
type Locker interface {
	// WithLock runs action while holding the lock at path, waiting until it is available or ctx is done.
	WithLock(ctx context.Context, path string, action func() error) error
}
