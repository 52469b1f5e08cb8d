package progrock

import (
	"fmt"
	"sync"
	"time"

	"github.com/vito/progrock"
	"go.trai.ch/wsdeps/internal/core/ports"
)

// SummaryWriter is a progrock.Writer that logs one line per finished vertex.
type SummaryWriter struct {
	logger ports.Logger

	mu       sync.Mutex
	reported map[string]bool
}

// NewSummaryWriter creates a new SummaryWriter.
func NewSummaryWriter(logger ports.Logger) *SummaryWriter {
	return &SummaryWriter{logger: logger, reported: make(map[string]bool)}
}

// WriteStatus logs vertexes that completed in this update. Internal vertexes are not reported.
func (s *SummaryWriter) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range update.Vertexes {
		if v.Completed == nil || v.Internal || s.reported[v.Id] {
			continue
		}
		s.reported[v.Id] = true

		var took time.Duration
		if v.Started != nil {
			took = v.Completed.AsTime().Sub(v.Started.AsTime()).Round(time.Millisecond)
		}

		switch {
		case v.Error != nil:
			s.logger.Warn(fmt.Sprintf("step %s failed after %s", v.Name, took))
		case v.Cached:
			s.logger.Info(fmt.Sprintf("step %s skipped", v.Name))
		default:
			s.logger.Info(fmt.Sprintf("step %s completed in %s", v.Name, took))
		}
	}
	return nil
}

// Close does nothing.
func (s *SummaryWriter) Close() error {
	return nil
}
