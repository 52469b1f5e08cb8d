// Package report persists run reports as JSON.
package report

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/wsdeps/internal/core/domain"
	"go.trai.ch/wsdeps/internal/core/ports"
	"go.trai.ch/zerr"
)

// Stdout is the path that selects the store's standard output instead of a file.
const Stdout = "-"

// Store implements ports.ReportStore using JSON files.
type Store struct {
	mu     sync.Mutex
	stdout io.Writer
}

// NewStore creates a new Store writing "-" reports to stdout.
func NewStore(stdout io.Writer) *Store {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Store{stdout: stdout}
}

var _ ports.ReportStore = (*Store)(nil)

// Save writes report to path. The file is replaced atomically so a reader
// never observes a partial report.
func (s *Store) Save(path string, report *domain.ResolutionReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal report")
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if path == Stdout {
		if _, err := s.stdout.Write(data); err != nil {
			return zerr.Wrap(err, "failed to write report")
		}
		return nil
	}

	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory for report"), "path", path)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create report"), "path", path)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, "failed to write report"), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write report"), "path", path)
	}
	//nolint:gosec // reports are not secret
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write report"), "path", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write report"), "path", path)
	}
	return nil
}
