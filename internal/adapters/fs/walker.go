// Package fs provides file system adapters for discovering, hashing and removing files.
package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/wsdeps/internal/core/domain"
	"go.trai.ch/wsdeps/internal/core/ports"
	"go.trai.ch/zerr"
)

// ManifestName is the file that marks a directory as a package.
const ManifestName = "package.xml"

// IgnoreMarkers exclude a directory and everything below it from discovery.
var IgnoreMarkers = []string{"COLCON_IGNORE", "CATKIN_IGNORE", "AMENT_IGNORE"}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

var _ ports.PackageDiscoverer = (*Walker)(nil)

// Discover returns the sorted manifest paths of every package below root.
// Hidden directories and directories holding an ignore marker are skipped,
// and discovery never descends into a package directory.
func (w *Walker) Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, zerr.With(domain.ErrWorkspaceNotFound, "workspace", root)
	}

	var manifests []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to walk workspace"), "path", path)
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if slices.ContainsFunc(IgnoreMarkers, func(m string) bool { return exists(filepath.Join(path, m)) }) {
			return filepath.SkipDir
		}

		manifest := filepath.Join(path, ManifestName)
		if exists(manifest) {
			manifests = append(manifests, manifest)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(manifests)
	return manifests, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
