// Package lock serializes installer runs with an exclusive file lock.
package lock

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/juju/fslock"
	"go.trai.ch/wsdeps/internal/core/domain"
	"go.trai.ch/wsdeps/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultPollInterval is how often a held lock is retried.
const DefaultPollInterval = 100 * time.Millisecond

// FileLocker implements ports.Locker using juju/fslock.
type FileLocker struct {
	logger ports.Logger
	poll   time.Duration
}

// NewFileLocker creates a new FileLocker.
func NewFileLocker(logger ports.Logger) *FileLocker {
	return &FileLocker{logger: logger, poll: DefaultPollInterval}
}

var _ ports.Locker = (*FileLocker)(nil)

// WithLock runs action while holding the lock at path, waiting for it if
// another process holds it. An empty path runs action without locking.
// The lock is released when action returns, and by the OS if the process dies.
func (l *FileLocker) WithLock(ctx context.Context, path string, action func() error) error {
	if path == "" {
		return action()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create lock directory"), "path", path)
	}

	lock := fslock.New(path)
	if err := lock.TryLock(); errors.Is(err, fslock.ErrLocked) {
		l.logger.Info("waiting for install lock " + path)
		if err := l.wait(ctx, lock); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrInstallLocked.Error()), "path", path)
		}
	} else if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to acquire install lock"), "path", path)
	}

	defer func() {
		if err := lock.Unlock(); err != nil {
			l.logger.Warn("failed to release install lock " + path + ": " + err.Error())
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return action()
}

// wait polls because fslock has no context-aware blocking lock.
func (l *FileLocker) wait(ctx context.Context, lock *fslock.Lock) error {
	ticker := time.NewTicker(l.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if err := lock.TryLock(); err == nil {
			return nil
		} else if !errors.Is(err, fslock.ErrLocked) {
			return err
		}
	}
}
