// Package setupenv sources an install prefix's setup script and captures the resulting environment.
package setupenv

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/wsdeps/internal/core/ports"
	"go.trai.ch/zerr"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ScriptName is the POSIX setup script generated in every install prefix.
const ScriptName = "setup.sh"

// shellManaged are variables the interpreter maintains itself; they never describe the prefix.
var shellManaged = []string{"PWD", "OLDPWD", "SHLVL", "_"}

var dumpProgram = mustParse("env -0")

func mustParse(src string) *syntax.File {
	f, err := syntax.NewParser().Parse(strings.NewReader(src), "")
	if err != nil {
		panic(err)
	}
	return f
}

// switchWriter lets the interpreter's stdout be redirected between runs.
type switchWriter struct {
	w io.Writer
}

func (s *switchWriter) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// Loader implements ports.EnvironmentLoader with an embedded POSIX shell interpreter.
type Loader struct {
	logger ports.Logger
	base   func() []string
}

// NewLoader creates a Loader that starts from the process environment.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger, base: os.Environ}
}

var _ ports.EnvironmentLoader = (*Loader)(nil)

// Load sources <prefix>/setup.sh and returns the exported variables it set or changed,
// as sorted KEY=VALUE entries. An empty prefix or a missing script yields no entries.
func (l *Loader) Load(ctx context.Context, prefix string) ([]string, error) {
	if prefix == "" {
		return nil, nil
	}

	script := filepath.Join(prefix, ScriptName)
	f, err := os.Open(script) //nolint:gosec // install prefix is provided by user
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Warn("no " + ScriptName + " in " + prefix + "; continuing with the current environment")
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open setup script"), "path", script)
	}
	defer func() { _ = f.Close() }()

	prog, err := syntax.NewParser().Parse(f, script)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse setup script"), "path", script)
	}

	base := l.base()
	inherited := make(map[string]string, len(base))
	for _, entry := range base {
		if k, v, ok := strings.Cut(entry, "="); ok {
			inherited[k] = v
		}
	}

	var stderr bytes.Buffer
	stdout := &switchWriter{w: io.Discard}
	runner, err := interp.New(
		interp.Dir(prefix),
		interp.Env(expand.ListEnviron(base...)),
		interp.StdIO(nil, stdout, &stderr),
	)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create interpreter")
	}

	if err := runner.Run(ctx, prog); err != nil {
		wrapped := zerr.With(zerr.Wrap(err, "failed to source setup script"), "path", script)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			wrapped = zerr.With(wrapped, "stderr", msg)
		}
		return nil, wrapped
	}

	// The exported environment is what a child process of the sourced shell sees.
	var dump bytes.Buffer
	stdout.w = &dump
	if err := runner.Run(ctx, dumpProgram); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to capture sourced environment"), "path", script)
	}

	var env []string
	for _, entry := range strings.Split(dump.String(), "\x00") {
		name, val, ok := strings.Cut(entry, "=")
		if !ok || slices.Contains(shellManaged, name) {
			continue
		}
		if prev, wasInherited := inherited[name]; !wasInherited || prev != val {
			env = append(env, entry)
		}
	}
	slices.Sort(env)

	l.logger.Info("sourced " + script)
	return env, nil
}
