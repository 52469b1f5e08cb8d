package query

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/wsdeps/internal/core/domain"
	"go.trai.ch/wsdeps/internal/core/ports"
	"go.trai.ch/zerr"
)

// ColconBinary is the build tool executable used for graph queries.
const ColconBinary = "colcon"

// Colcon delegates selections to `colcon list --packages-up-to`, so the
// result follows colcon's own dependency rules (conditions, build types).
type Colcon struct {
	exec   ports.Executor
	logger ports.Logger
}

// NewColcon creates a new Colcon query.
func NewColcon(exec ports.Executor, logger ports.Logger) *Colcon {
	return &Colcon{exec: exec, logger: logger}
}

var _ ports.PackageQuery = (*Colcon)(nil)

// UpTo lists the packages colcon selects for selector and maps them back to graph packages.
func (c *Colcon) UpTo(ctx context.Context, root string, graph *domain.Graph, selector string) ([]domain.Package, error) {
	if !graph.Has(domain.NewInternedString(selector)) {
		return nil, zerr.With(domain.ErrPackageNotFound, "package", selector)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve workspace path"), "workspace", root)
	}

	var stdout bytes.Buffer
	cmd := domain.Command{
		Name: ColconBinary,
		Args: ListArgs(absRoot, selector),
	}
	if err := c.exec.Run(ctx, cmd, &stdout, io.Discard); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "colcon list failed"), "package", selector)
	}

	byPath := make(map[string]domain.Package, graph.Len())
	for pkg := range graph.Packages() {
		byPath[normalize(pkg.Path)] = pkg
	}

	var pkgs []domain.Package
	scanner := bufio.NewScanner(&stdout)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		pkg, ok := byPath[normalize(line)]
		if !ok {
			c.logger.Warn("colcon selected " + line + " which has no package.xml in the workspace; skipping")
			continue
		}
		pkgs = append(pkgs, pkg)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, "failed to read colcon output")
	}

	slices.SortFunc(pkgs, func(a, b domain.Package) int { return a.Name.Compare(b.Name) })
	return pkgs, nil
}

// ListArgs builds the argument list of `colcon list`.
func ListArgs(root, selector string) []string {
	return []string{
		"--log-base", "/dev/null",
		"list", "--paths-only",
		"--base-paths", root,
		"--packages-up-to", selector,
	}
}

func normalize(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
