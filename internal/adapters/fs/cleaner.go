package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/wsdeps/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Cleaner = (*Cleaner)(nil)

// Cleaner removes temporary files and caches using filepath.Glob.
type Cleaner struct {
	logger ports.Logger
}

// NewCleaner creates a new Cleaner.
func NewCleaner(logger ports.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean removes every path matched by patterns. Patterns without matches are
// not an error. Every pattern is attempted; failures are joined.
func (c *Cleaner) Clean(patterns []string) error {
	paths, err := resolvePatterns(patterns)

	var errs []error
	if err != nil {
		errs = append(errs, err)
	}

	for _, path := range paths {
		if rmErr := os.RemoveAll(path); rmErr != nil {
			errs = append(errs, zerr.With(zerr.Wrap(rmErr, "failed to remove path"), "path", path))
		}
	}

	if len(paths) > 0 {
		c.logger.Info(fmt.Sprintf("removed %d path(s)", len(paths)))
	}

	return errors.Join(errs...)
}

// resolvePatterns expands patterns to the sorted, deduplicated list of existing paths.
func resolvePatterns(patterns []string) ([]string, error) {
	var errs []error
	var result []string

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			errs = append(errs, zerr.With(zerr.Wrap(err, "failed to glob path"), "path", pattern))
			continue
		}
		result = append(result, matches...)
	}

	slices.Sort(result)
	return slices.Compact(result), errors.Join(errs...)
}
