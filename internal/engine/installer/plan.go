package installer

import (
	"context"

	"go.trai.ch/wsdeps/internal/core/domain"
	"go.trai.ch/zerr"
)

// Plan is the outcome of scanning a workspace without installing anything.
type Plan struct {
	// Set is the scan set handed to the resolver.
	Set *domain.ScanSet
	// Graph holds every package discovered in the workspace.
	Graph *domain.Graph
	// Digest identifies the scanned manifests and keys.
	Digest string
}

// Plan discovers and parses the workspace and computes the scan set for req.
// It neither touches the dependency database nor takes the install lock.
func (i *Installer) Plan(ctx context.Context, req *domain.InstallRequest) (*Plan, error) {
	if req.WorkspaceRoot == "" {
		return nil, zerr.With(domain.ErrWorkspaceNotFound, "workspace", req.WorkspaceRoot)
	}
	return i.scan(ctx, req)
}

func (i *Installer) scan(ctx context.Context, req *domain.InstallRequest) (*Plan, error) {
	paths, err := i.discoverer.Discover(req.WorkspaceRoot)
	if err != nil {
		return nil, err
	}

	pkgs, err := i.parser.Parse(ctx, paths)
	if err != nil {
		return nil, err
	}

	graph := domain.NewGraph()
	for j := range pkgs {
		if err := graph.AddPackage(&pkgs[j]); err != nil {
			return nil, err
		}
	}

	selected := pkgs
	if req.Selector != "" {
		backend := req.Graph
		if backend == "" {
			backend = domain.GraphBackendNative
		}
		query, ok := i.queries[backend]
		if !ok {
			return nil, zerr.With(zerr.New("unknown graph backend"), "graph", string(backend))
		}
		selected, err = query.UpTo(ctx, req.WorkspaceRoot, graph, req.Selector)
		if err != nil {
			return nil, err
		}
	}

	set := domain.NewScanSet(selected, graph, req.Skip)
	digest, err := i.hasher.ScanSetDigest(set)
	if err != nil {
		return nil, err
	}

	return &Plan{Set: set, Graph: graph, Digest: digest}, nil
}

// Order returns the scanned packages in dependency order.
// Only dependencies between scanned packages are considered.
func (p *Plan) Order() ([]domain.Package, error) {
	sub := domain.NewGraph()
	for j := range p.Set.Packages {
		if err := sub.AddPackage(&p.Set.Packages[j]); err != nil {
			return nil, err
		}
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	order := make([]domain.Package, 0, sub.Len())
	for pkg := range sub.Walk() {
		order = append(order, pkg)
	}
	return order, nil
}
