package ports

import "go.trai.ch/wsdeps/internal/core/domain"

// ReportStore persists run reports.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ReportStore interface {
	// Save writes the report to path.
	Save(path string, report *domain.ResolutionReport) error
}
