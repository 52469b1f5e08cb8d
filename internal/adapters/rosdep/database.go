// Package rosdep drives the rosdep command line tool as the dependency database.
package rosdep

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/wsdeps/internal/core/domain"
	"go.trai.ch/wsdeps/internal/core/ports"
	"go.trai.ch/zerr"
)

// Binary is the resolver executable name, looked up on the PATH of the sourced environment.
const Binary = "rosdep"

// unresolvedPattern matches the per-key failures rosdep reports when run with -r.
var unresolvedPattern = regexp.MustCompile(`(?:Cannot locate rosdep definition for|No definition of) \[([^\]]+)\]`)

// installFailedPattern matches the block rosdep prints when a package manager
// command fails. -r does not make that failure tolerable.
var installFailedPattern = regexp.MustCompile(`(?m)^ERROR: the following rosdeps failed to install`)

// Database implements ports.DependencyDatabase on top of the rosdep CLI.
type Database struct {
	exec   ports.Executor
	logger ports.Logger
}

// NewDatabase creates a new Database.
func NewDatabase(exec ports.Executor, logger ports.Logger) *Database {
	return &Database{exec: exec, logger: logger}
}

var _ ports.DependencyDatabase = (*Database)(nil)

// Initialized reports whether the sources list written by `rosdep init` exists.
func (d *Database) Initialized(marker string) (bool, error) {
	_, err := os.Stat(marker)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, zerr.With(zerr.Wrap(err, "failed to stat database marker"), "path", marker)
	}
}

// Init runs `rosdep init`.
func (d *Database) Init(ctx context.Context, env []string) error {
	cmd := d.command(env, "init")
	if err := d.exec.Run(ctx, cmd, io.Discard, io.Discard); err != nil {
		return zerr.Wrap(err, domain.ErrDatabaseInitFailed.Error())
	}
	return nil
}

// Update runs `rosdep update` for the requested distribution.
func (d *Database) Update(ctx context.Context, req *domain.InstallRequest, env []string) error {
	cmd := d.command(env, UpdateArgs(req)...)
	if err := d.exec.Run(ctx, cmd, io.Discard, io.Discard); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrIndexUpdateFailed.Error()), "distro", req.Distro)
	}
	return nil
}

// Install runs a single `rosdep install` over every path of the scan set.
// A non-zero exit is tolerated when rosdep attributes it to individual keys
// it could not resolve; those keys are returned in the result. A failed
// package installation is fatal even when keys were also unresolved.
func (d *Database) Install(
	ctx context.Context, set *domain.ScanSet, req *domain.InstallRequest, env []string,
) (*domain.InstallResult, error) {
	var output bytes.Buffer
	cmd := d.command(append(slices.Clone(env), "DEBIAN_FRONTEND=noninteractive"), InstallArgs(set, req)...)
	runErr := d.exec.Run(ctx, cmd, &output, &output)

	result := &domain.InstallResult{UnresolvedKeys: ParseUnresolved(output.String())}

	if runErr != nil {
		installFailed := installFailedPattern.MatchString(output.String())
		if ctx.Err() != nil || installFailed || len(result.UnresolvedKeys) == 0 {
			err := zerr.With(zerr.Wrap(runErr, domain.ErrResolverFailed.Error()), "platform", req.Platform.String())
			if installFailed {
				err = zerr.With(err, "reason", "package installation failed")
			}
			return nil, err
		}
	}

	for _, key := range result.UnresolvedKeys {
		d.logger.Warn("could not resolve dependency key " + key)
	}
	return result, nil
}

func (d *Database) command(env []string, args ...string) domain.Command {
	return domain.Command{Name: Binary, Args: args, Env: env}
}

// UpdateArgs builds the argument list of `rosdep update`.
func UpdateArgs(req *domain.InstallRequest) []string {
	args := []string{"update", "--rosdistro", req.Distro}
	if req.IncludeEOLDistros {
		args = append(args, "--include-eol-distros")
	}
	return args
}

// InstallArgs builds the argument list of `rosdep install` for the scan set.
func InstallArgs(set *domain.ScanSet, req *domain.InstallRequest) []string {
	args := []string{"install", "--from-paths"}
	args = append(args, set.Paths...)
	args = append(args,
		"--ignore-src",
		"--rosdistro", req.Distro,
		"--os="+req.Platform.String(),
		"--default-yes",
		"-r",
	)
	if req.Skip.Len() > 0 {
		args = append(args, "--skip-keys", strings.Join(req.Skip.Sorted(), " "))
	}
	return args
}

// ParseUnresolved extracts the sorted, deduplicated keys rosdep reported as unresolvable.
func ParseUnresolved(output string) []string {
	var keys []string
	for _, m := range unresolvedPattern.FindAllStringSubmatch(output, -1) {
		keys = append(keys, m[1])
	}
	slices.Sort(keys)
	return slices.Compact(keys)
}
