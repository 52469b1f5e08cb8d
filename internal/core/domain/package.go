package domain

// Package is a buildable unit discovered in the workspace, described by its package.xml.
type Package struct {
	// Name is the package name declared in the manifest.
	Name InternedString

	// Path is the directory containing the manifest.
	Path string

	// Format is the manifest format version (1, 2 or 3).
	Format int

	// Dependencies is the sorted union of every dependency tag in the manifest.
	// Names may refer to other workspace packages or to resolver keys.
	Dependencies []InternedString
}

// DependsOn reports whether the package declares name as a dependency.
func (p *Package) DependsOn(name InternedString) bool {
	for _, dep := range p.Dependencies {
		if dep == name {
			return true
		}
	}
	return false
}
