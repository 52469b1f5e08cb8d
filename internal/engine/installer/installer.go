// Package installer implements the workspace dependency installation pipeline.
package installer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.trai.ch/wsdeps/internal/core/domain"
	"go.trai.ch/wsdeps/internal/core/ports"
	"go.trai.ch/zerr"
)

// Step names in execution order.
const (
	StepInitDatabase   = "init-database"
	StepUpdateIndex    = "update-index"
	StepScanWorkspace  = "scan-workspace"
	StepResolveInstall = "resolve-install"
	StepCleanup        = "cleanup"
)

// Steps lists every installer step in the order it runs.
var Steps = []string{StepInitDatabase, StepUpdateIndex, StepScanWorkspace, StepResolveInstall, StepCleanup}

// sourceEnvironment is recorded as an internal vertex ahead of the steps.
const sourceEnvironment = "source-environment"

// Installer runs the dependency installation steps strictly in sequence.
type Installer struct {
	logger     ports.Logger
	database   ports.DependencyDatabase
	discoverer ports.PackageDiscoverer
	parser     ports.ManifestParser
	queries    map[domain.GraphBackend]ports.PackageQuery
	hasher     ports.Hasher
	cleaner    ports.Cleaner
	locker     ports.Locker
	env        ports.EnvironmentLoader
	telemetry  ports.Telemetry
	now        func() time.Time

	mu         sync.RWMutex
	stepStatus map[string]domain.StepStatus
}

// New creates a new Installer.
func New(
	logger ports.Logger,
	database ports.DependencyDatabase,
	discoverer ports.PackageDiscoverer,
	parser ports.ManifestParser,
	queries map[domain.GraphBackend]ports.PackageQuery,
	hasher ports.Hasher,
	cleaner ports.Cleaner,
	locker ports.Locker,
	env ports.EnvironmentLoader,
	telemetry ports.Telemetry,
) *Installer {
	i := &Installer{
		logger:     logger,
		database:   database,
		discoverer: discoverer,
		parser:     parser,
		queries:    queries,
		hasher:     hasher,
		cleaner:    cleaner,
		locker:     locker,
		env:        env,
		telemetry:  telemetry,
		now:        time.Now,
	}
	i.resetStatuses()
	return i
}

func (i *Installer) resetStatuses() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.stepStatus = make(map[string]domain.StepStatus, len(Steps))
	for _, name := range Steps {
		i.stepStatus[name] = domain.StepStatusPending
	}
}

func (i *Installer) updateStatus(name string, status domain.StepStatus) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.stepStatus[name] = status
}

// Status returns the current status of the named step.
func (i *Installer) Status(name string) domain.StepStatus {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.stepStatus[name]
}

func (i *Installer) snapshot() []domain.Step {
	i.mu.RLock()
	defer i.mu.RUnlock()

	steps := make([]domain.Step, 0, len(Steps))
	for _, name := range Steps {
		steps = append(steps, domain.Step{Name: name, Status: i.stepStatus[name]})
	}
	return steps
}

// Run installs the system dependencies of the workspace described by req.
//
// The database is initialized when its marker is absent, the index is always
// refreshed, and the resolver runs once over the whole scan set. Cleanup runs
// on success and on failure. The returned report is non-nil whenever the
// request was valid, even if err is set.
func (i *Installer) Run(ctx context.Context, req *domain.InstallRequest) (*domain.ResolutionReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	i.resetStatuses()

	report := &domain.ResolutionReport{
		Platform:  req.Platform.String(),
		Distro:    req.Distro,
		Selector:  req.Selector,
		StartedAt: i.now(),
	}

	err := i.locker.WithLock(ctx, req.LockFile, func() error {
		return i.run(ctx, req, report)
	})

	report.Steps = i.snapshot()
	report.FinishedAt = i.now()
	return report, err
}

func (i *Installer) run(ctx context.Context, req *domain.InstallRequest, report *domain.ResolutionReport) (err error) {
	defer func() {
		cleanErr := i.step(context.WithoutCancel(ctx), StepCleanup, func(context.Context, ports.Vertex) (bool, error) {
			if len(req.Cleanup) == 0 {
				return true, nil
			}
			if err := i.cleaner.Clean(req.Cleanup); err != nil {
				return false, zerr.Wrap(err, domain.ErrCleanupFailed.Error())
			}
			return false, nil
		})
		if cleanErr == nil {
			return
		}
		if err == nil {
			err = cleanErr
			return
		}
		i.logger.Error(cleanErr)
	}()

	env, err := i.loadEnvironment(ctx, req.InstallPrefix)
	if err != nil {
		return err
	}

	err = i.step(ctx, StepInitDatabase, func(ctx context.Context, v ports.Vertex) (bool, error) {
		ok, err := i.database.Initialized(req.Marker)
		if err != nil {
			return false, err
		}
		if ok {
			v.Log(domain.LogLevelInfo, "database already initialized: "+req.Marker)
			return true, nil
		}
		return false, i.database.Init(ctx, env)
	})
	if err != nil {
		return err
	}

	err = i.step(ctx, StepUpdateIndex, func(ctx context.Context, _ ports.Vertex) (bool, error) {
		return false, i.database.Update(ctx, req, env)
	})
	if err != nil {
		return err
	}

	var set *domain.ScanSet
	err = i.step(ctx, StepScanWorkspace, func(ctx context.Context, v ports.Vertex) (bool, error) {
		plan, err := i.scan(ctx, req)
		if err != nil {
			return false, err
		}
		set = plan.Set
		report.Packages = set.PackageNames()
		report.Paths = set.Paths
		report.Keys = domain.Strings(set.Keys)
		report.SkippedKeys = domain.Strings(set.Skipped)
		report.Digest = plan.Digest
		v.Log(domain.LogLevelInfo, fmt.Sprintf("scanning %d package(s) requiring %d key(s)", len(set.Paths), len(set.Keys)))
		return false, nil
	})
	if err != nil {
		return err
	}

	return i.step(ctx, StepResolveInstall, func(ctx context.Context, v ports.Vertex) (bool, error) {
		if set.Empty() {
			i.logger.Warn("no packages found in " + req.WorkspaceRoot)
			return true, nil
		}
		result, err := i.database.Install(ctx, set, req, env)
		if err != nil {
			return false, err
		}
		report.UnresolvedKeys = result.UnresolvedKeys
		if len(result.UnresolvedKeys) > 0 {
			v.Log(domain.LogLevelWarn, "unresolved keys: "+strings.Join(result.UnresolvedKeys, " "))
		}
		return false, nil
	})
}

// step runs fn as the named step, recording it as a vertex.
// fn reports whether the step had nothing to do.
func (i *Installer) step(ctx context.Context, name string, fn func(context.Context, ports.Vertex) (bool, error)) error {
	i.updateStatus(name, domain.StepStatusRunning)
	ctx, vertex := i.telemetry.Record(ctx, name)

	var skipped bool
	err := ctx.Err()
	if err == nil {
		skipped, err = fn(ctx, vertex)
	}

	switch {
	case err != nil:
		i.updateStatus(name, domain.StepStatusFailed)
	case skipped:
		vertex.Cached()
		i.updateStatus(name, domain.StepStatusSkipped)
	default:
		i.updateStatus(name, domain.StepStatusCompleted)
	}
	vertex.Complete(err)

	if err != nil {
		return zerr.With(err, "step", name)
	}
	return nil
}

func (i *Installer) loadEnvironment(ctx context.Context, prefix string) ([]string, error) {
	ctx, vertex := i.telemetry.Record(ctx, sourceEnvironment, ports.WithInternal())
	env, err := i.env.Load(ctx, prefix)
	vertex.Complete(err)
	return env, err
}
