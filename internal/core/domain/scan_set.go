package domain

import (
	"slices"

	"github.com/samber/lo"
)

// ScanSet is the set of package directories handed to the dependency resolver,
// together with the external keys their manifests require.
type ScanSet struct {
	// Packages are the scanned packages, sorted by name.
	Packages []Package

	// Paths are the package directories, sorted.
	Paths []string

	// Keys are the external dependency keys to resolve, sorted and deduplicated.
	// Workspace package names and skipped keys never appear here.
	Keys []InternedString

	// Skipped are the keys that were required by a manifest but removed by the skip list.
	Skipped []InternedString
}

// NewScanSet builds the scan set for pkgs. Dependencies naming a package of the
// workspace graph are satisfied from source and are not resolver keys.
func NewScanSet(pkgs []Package, workspace *Graph, skip SkipList) *ScanSet {
	sorted := slices.Clone(pkgs)
	slices.SortFunc(sorted, func(a, b Package) int { return a.Name.Compare(b.Name) })

	paths := lo.Map(sorted, func(p Package, _ int) string { return p.Path })
	slices.Sort(paths)

	deps := lo.Uniq(lo.FlatMap(sorted, func(p Package, _ int) []InternedString { return p.Dependencies }))
	external := lo.Reject(deps, func(d InternedString, _ int) bool { return workspace.Has(d) })
	keys, skipped := lo.FilterReject(external, func(d InternedString, _ int) bool { return !skip.Contains(d) })

	slices.SortFunc(keys, InternedString.Compare)
	slices.SortFunc(skipped, InternedString.Compare)

	return &ScanSet{
		Packages: sorted,
		Paths:    paths,
		Keys:     keys,
		Skipped:  skipped,
	}
}

// Empty reports whether there is nothing to scan.
func (s *ScanSet) Empty() bool {
	return len(s.Paths) == 0
}

// PackageNames returns the names of the scanned packages in order.
func (s *ScanSet) PackageNames() []string {
	return lo.Map(s.Packages, func(p Package, _ int) string { return p.Name.String() })
}
