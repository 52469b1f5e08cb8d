package ports

import (
	"context"

	"go.trai.ch/wsdeps/internal/core/domain"
)

// PackageDiscoverer finds package manifests in a workspace source tree.
//
//go:generate go run go.uber.org/mock/mockgen -source=workspace.go -destination=mocks/mock_workspace.go -package=mocks
type PackageDiscoverer interface {
	// Discover returns the sorted paths of every package.xml below root,
	// honoring ignore markers and never descending into a package directory.
	Discover(root string) ([]string, error)
}

// ManifestParser parses package manifests.
type ManifestParser interface {
	// Parse reads every manifest in paths. Any malformed manifest fails the whole call.
	Parse(ctx context.Context, paths []string) ([]domain.Package, error)
}

// PackageQuery answers "packages up to X" over a workspace.
type PackageQuery interface {
	// UpTo returns the selector package and its transitive in-workspace dependencies.
	UpTo(ctx context.Context, root string, graph *domain.Graph, selector string) ([]domain.Package, error)
}
