// Package app implements the application layer for wsdeps.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
	"go.trai.ch/wsdeps/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/wsdeps/internal/adapters/report" //nolint:depguard // Wired in app layer
	"go.trai.ch/wsdeps/internal/core/domain"
	"go.trai.ch/wsdeps/internal/core/ports"
	"go.trai.ch/wsdeps/internal/engine/installer"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	installer    *installer.Installer
	store        ports.ReportStore
	logger       ports.Logger
	telemetry    ports.Telemetry
	osRelease    string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	inst *installer.Installer,
	store ports.ReportStore,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *App {
	return &App{
		configLoader: loader,
		installer:    inst,
		store:        store,
		logger:       logger,
		telemetry:    telemetry,
		osRelease:    config.DefaultOSRelease,
	}
}

// WithOSRelease overrides the os-release file used to detect the platform.
func (a *App) WithOSRelease(path string) *App {
	a.osRelease = path
	return a
}

type jsonLogger interface {
	SetJSON(enable bool)
}

// UseJSONLogs switches the logger to JSON lines when it supports it.
func (a *App) UseJSONLogs(enable bool) {
	if l, ok := a.logger.(jsonLogger); ok {
		l.SetJSON(enable)
	}
}

// InstallOptions configures an install run.
type InstallOptions struct {
	// Report is the path the run report is written to. Empty disables the report, "-" writes to stdout.
	Report string
}

// PlanOptions configures a dry run.
type PlanOptions struct {
	// Order prints the scanned packages in dependency order instead of the scan set.
	Order bool
	// JSON prints the plan as a JSON report.
	JSON bool
	// Out receives the plan.
	Out io.Writer
}

// Install installs the system dependencies of the workspace described by params.
func (a *App) Install(ctx context.Context, params config.Params, opts InstallOptions) (err error) {
	defer func() {
		if closeErr := a.telemetry.Close(); closeErr != nil {
			a.logger.Warn("failed to close telemetry: " + closeErr.Error())
		}
	}()

	req, err := a.request(params, true)
	if err != nil {
		return err
	}

	rep, err := a.installer.Run(ctx, req)
	if rep != nil && opts.Report != "" {
		if saveErr := a.store.Save(opts.Report, rep); saveErr != nil {
			if err == nil {
				return saveErr
			}
			a.logger.Error(saveErr)
		}
	}
	if err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("installed dependencies of %d package(s) for %s on %s",
		len(rep.Packages), rep.Distro, rep.Platform))
	if n := len(rep.UnresolvedKeys); n > 0 {
		a.logger.Warn(fmt.Sprintf("%d key(s) could not be resolved: %s", n, strings.Join(rep.UnresolvedKeys, " ")))
	}
	return nil
}

// Plan prints what an install with params would scan without touching the system.
func (a *App) Plan(ctx context.Context, params config.Params, opts PlanOptions) error {
	req, err := a.request(params, false)
	if err != nil {
		return err
	}

	plan, err := a.installer.Plan(ctx, req)
	if err != nil {
		return err
	}

	if opts.Order {
		order, err := plan.Order()
		if err != nil {
			return err
		}
		for _, pkg := range order {
			if _, err := fmt.Fprintf(opts.Out, "%s\t%s\n", pkg.Name, pkg.Path); err != nil {
				return zerr.Wrap(err, "failed to write plan")
			}
		}
		return nil
	}

	rep := &domain.ResolutionReport{
		Platform:    req.Platform.String(),
		Distro:      req.Distro,
		Selector:    req.Selector,
		Packages:    plan.Set.PackageNames(),
		Paths:       plan.Set.Paths,
		Keys:        domain.Strings(plan.Set.Keys),
		SkippedKeys: domain.Strings(plan.Set.Skipped),
		Digest:      plan.Digest,
	}

	if opts.JSON {
		return a.store.Save(report.Stdout, rep)
	}
	return writePlan(opts.Out, rep)
}

func writePlan(w io.Writer, rep *domain.ResolutionReport) error {
	var b strings.Builder
	section := func(title string, lines []string) {
		if len(lines) == 0 {
			return
		}
		b.WriteString(title + ":\n")
		for _, l := range lines {
			b.WriteString("  " + l + "\n")
		}
	}
	section("paths", rep.Paths)
	section("keys", rep.Keys)
	section("skipped", rep.SkippedKeys)
	b.WriteString("digest: " + rep.Digest + "\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return zerr.Wrap(err, "failed to write plan")
	}
	return nil
}

// request merges params with the workspace settings file.
// The platform is only detected when withPlatform is set.
func (a *App) request(params config.Params, withPlatform bool) (*domain.InstallRequest, error) {
	root, err := filepath.Abs(params.Workspace)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve workspace"), "workspace", params.Workspace)
	}

	settings, err := a.loadSettings(root, params.Config)
	if err != nil {
		return nil, err
	}

	req := &domain.InstallRequest{
		WorkspaceRoot:     root,
		Selector:          params.PackagesUpTo,
		Distro:            params.ROSDistro,
		Skip:              domain.NewSkipList(settings.SkipKeys...).Union(params.SkipKeys),
		InstallPrefix:     params.InstallPrefix,
		Cleanup:           lo.Uniq(slices.Concat(settings.Cleanup, params.Cleanup)),
		IncludeEOLDistros: settings.IncludeEOLDistros,
		Graph:             settings.Graph,
		Marker:            settings.Marker,
		LockFile:          settings.LockFile,
	}

	if params.Graph != "" {
		switch backend := domain.GraphBackend(params.Graph); backend {
		case domain.GraphBackendNative, domain.GraphBackendColcon:
			req.Graph = backend
		default:
			return nil, zerr.With(zerr.New("unknown graph backend"), "graph", params.Graph)
		}
	}

	if params.OS != "" {
		if req.Platform, err = domain.ParsePlatform(params.OS); err != nil {
			return nil, err
		}
	} else if withPlatform {
		if req.Platform, err = config.ReadPlatform(a.osRelease); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// loadSettings reads the explicit settings file, or the workspace default when present.
func (a *App) loadSettings(root, explicit string) (domain.Settings, error) {
	if explicit != "" {
		return a.configLoader.Load(explicit)
	}

	path := filepath.Join(root, config.DefaultFilename)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return domain.DefaultSettings(), nil
	}
	return a.configLoader.Load(path)
}
