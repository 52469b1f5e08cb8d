// Package domain contains the core domain models of the workspace dependency installer.
package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Graph represents the dependency graph of the packages in a workspace.
// Edges point from a package to the workspace packages it depends on; dependency
// names that are not workspace packages are external keys and have no node.
type Graph struct {
	packages       map[InternedString]Package
	executionOrder []InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		packages: make(map[InternedString]Package),
	}
}

// AddPackage adds a package to the graph.
// It returns an error if a package with the same name already exists.
func (g *Graph) AddPackage(p *Package) error {
	if existing, exists := g.packages[p.Name]; exists {
		err := zerr.With(ErrDuplicatePackage, "package", p.Name.String())
		err = zerr.With(err, "first_path", existing.Path)
		return zerr.With(err, "second_path", p.Path)
	}
	g.packages[p.Name] = *p
	g.executionOrder = nil
	return nil
}

// Len returns the number of packages in the graph.
func (g *Graph) Len() int {
	return len(g.packages)
}

// Has reports whether name is a workspace package.
func (g *Graph) Has(name InternedString) bool {
	_, ok := g.packages[name]
	return ok
}

// Get returns the package with the given name.
func (g *Graph) Get(name InternedString) (Package, bool) {
	p, ok := g.packages[name]
	return p, ok
}

// Packages yields every package sorted by name.
func (g *Graph) Packages() iter.Seq[Package] {
	return func(yield func(Package) bool) {
		for _, name := range g.sortedNames() {
			if !yield(g.packages[name]) {
				return
			}
		}
	}
}

// UpTo returns the named package together with every workspace package it
// transitively depends on, sorted by name. Cycles are tolerated: the closure is a set.
func (g *Graph) UpTo(name string) ([]Package, error) {
	root := NewInternedString(name)
	if _, ok := g.packages[root]; !ok {
		return nil, zerr.With(ErrPackageNotFound, "package", name)
	}

	seen := map[InternedString]struct{}{root: {}}
	stack := []InternedString{root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, dep := range g.packages[cur].Dependencies {
			if _, inWorkspace := g.packages[dep]; !inWorkspace {
				continue
			}
			if _, visited := seen[dep]; visited {
				continue
			}
			seen[dep] = struct{}{}
			stack = append(stack, dep)
		}
	}

	result := make([]Package, 0, len(seen))
	for n := range seen {
		result = append(result, g.packages[n])
	}
	slices.SortFunc(result, func(a, b Package) int { return a.Name.Compare(b.Name) })
	return result, nil
}

// Validate checks for cycles in the graph using a topological sort.
// It populates the order used by Walk if successful.
func (g *Graph) Validate() error {
	order := make([]InternedString, 0, len(g.packages))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		for _, dep := range g.packages[u].Dependencies {
			if _, inWorkspace := g.packages[dep]; !inWorkspace {
				continue
			}
			if visited[dep] == 1 {
				return buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		order = append(order, u)
		return nil
	}

	// Sorted iteration keeps the order stable across runs.
	for _, name := range g.sortedNames() {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	g.executionOrder = order
	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func buildCycleError(path []InternedString, dep InternedString) error {
	startIdx := slices.Index(path, dep)
	parts := make([]string, 0, len(path)-startIdx+1)
	for _, node := range path[startIdx:] {
		parts = append(parts, node.String())
	}
	parts = append(parts, dep.String())
	return zerr.With(ErrCycleDetected, "cycle", strings.Join(parts, " -> "))
}

// Walk returns an iterator that yields packages in dependency order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[Package] {
	return func(yield func(Package) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.packages[name]) {
				return
			}
		}
	}
}

func (g *Graph) sortedNames() []InternedString {
	names := make([]InternedString, 0, len(g.packages))
	for name := range g.packages {
		names = append(names, name)
	}
	slices.SortFunc(names, InternedString.Compare)
	return names
}
