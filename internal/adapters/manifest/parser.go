// Package manifest parses package.xml manifests.
package manifest

import (
	"context"
	"encoding/xml"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/wsdeps/internal/core/domain"
	"go.trai.ch/wsdeps/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// document mirrors the parts of a package.xml that matter for dependency resolution.
type document struct {
	XMLName xml.Name `xml:"package"`
	Format  string   `xml:"format,attr"`
	Name    string   `xml:"name"`

	Depend                []string `xml:"depend"`
	BuildDepend           []string `xml:"build_depend"`
	BuildExportDepend     []string `xml:"build_export_depend"`
	BuildtoolDepend       []string `xml:"buildtool_depend"`
	BuildtoolExportDepend []string `xml:"buildtool_export_depend"`
	ExecDepend            []string `xml:"exec_depend"`
	RunDepend             []string `xml:"run_depend"`
	TestDepend            []string `xml:"test_depend"`
	DocDepend             []string `xml:"doc_depend"`
}

func (d *document) dependencies() []string {
	all := slices.Concat(
		d.Depend, d.BuildDepend, d.BuildExportDepend,
		d.BuildtoolDepend, d.BuildtoolExportDepend,
		d.ExecDepend, d.RunDepend, d.TestDepend, d.DocDepend,
	)
	names := make([]string, 0, len(all))
	for _, dep := range all {
		if dep = strings.TrimSpace(dep); dep != "" {
			names = append(names, dep)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// Parser implements ports.ManifestParser.
type Parser struct {
	limit int
}

// NewParser creates a Parser reading up to GOMAXPROCS manifests at once.
func NewParser() *Parser {
	return &Parser{limit: runtime.GOMAXPROCS(0)}
}

var _ ports.ManifestParser = (*Parser)(nil)

// Parse reads every manifest in paths concurrently. The result keeps the order of paths.
// The first malformed manifest fails the whole call.
func (p *Parser) Parse(ctx context.Context, paths []string) ([]domain.Package, error) {
	pkgs := make([]domain.Package, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pkg, err := ParseFile(path)
			if err != nil {
				return err
			}
			pkgs[i] = pkg
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pkgs, nil
}

// ParseFile reads a single package.xml. The package path is the manifest's directory.
func ParseFile(path string) (domain.Package, error) {
	data, err := os.ReadFile(path) //nolint:gosec // manifest paths come from workspace discovery
	if err != nil {
		return domain.Package{}, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", path)
	}

	pkg, err := Decode(data)
	if err != nil {
		return domain.Package{}, zerr.With(err, "path", path)
	}
	pkg.Path = filepath.Dir(path)
	return pkg, nil
}

// Decode parses the content of a package.xml.
func Decode(data []byte) (domain.Package, error) {
	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return domain.Package{}, zerr.Wrap(err, domain.ErrManifestInvalid.Error())
	}

	name := strings.TrimSpace(doc.Name)
	if name == "" {
		return domain.Package{}, zerr.With(domain.ErrManifestInvalid, "reason", "missing <name>")
	}

	format := 1
	if doc.Format != "" {
		f, err := strconv.Atoi(strings.TrimSpace(doc.Format))
		if err != nil || f < 1 || f > 3 {
			return domain.Package{}, zerr.With(domain.ErrManifestInvalid, "format", doc.Format)
		}
		format = f
	}

	return domain.Package{
		Name:         domain.NewInternedString(name),
		Format:       format,
		Dependencies: domain.NewInternedStrings(doc.dependencies()),
	}, nil
}
