// Package query answers "packages up to" selections over a workspace graph.
package query

import (
	"context"

	"go.trai.ch/wsdeps/internal/core/domain"
	"go.trai.ch/wsdeps/internal/core/ports"
)

// Native resolves selections in-process from the parsed manifests.
type Native struct{}

// NewNative creates a new Native query.
func NewNative() *Native {
	return &Native{}
}

var _ ports.PackageQuery = (*Native)(nil)

// UpTo returns the selector package and its transitive in-workspace dependencies.
func (n *Native) UpTo(_ context.Context, _ string, graph *domain.Graph, selector string) ([]domain.Package, error) {
	return graph.UpTo(selector)
}
