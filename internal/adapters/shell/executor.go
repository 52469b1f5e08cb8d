// Package shell provides the process executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/wsdeps/internal/core/domain"
	"go.trai.ch/wsdeps/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

var _ ports.Executor = (*Executor)(nil)

// Run executes cmd and waits for it to exit.
// The command environment is the process environment overlaid with cmd.Env.
// Output is copied to stdout and stderr and streamed line by line into the
// logger (stdout as info, stderr as warnings).
func (e *Executor) Run(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error {
	if cmd.Name == "" {
		return nil
	}

	cmdEnv := resolveEnvironment(os.Environ(), cmd.Env)

	executable := cmd.Name
	if !filepath.IsAbs(cmd.Name) && !strings.ContainsRune(cmd.Name, filepath.Separator) {
		lp, err := lookPath(cmd.Name, cmdEnv)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "command not found"), "command", cmd.Name)
		}
		executable = lp
	}

	c := exec.CommandContext(ctx, executable, cmd.Args...) //nolint:gosec // commands are built by the installer
	c.Args[0] = cmd.Name
	c.Dir = cmd.Dir
	c.Env = cmdEnv

	outLog := &logWriter{emit: e.logger.Info}
	errLog := &logWriter{emit: e.logger.Warn}
	c.Stdout = io.MultiWriter(orDiscard(stdout), outLog)
	c.Stderr = io.MultiWriter(orDiscard(stderr), errLog)

	e.logger.Info("running " + cmd.String())
	err := c.Run()
	outLog.Flush()
	errLog.Flush()

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode), "command", cmd.Name)
	}

	return nil
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// logWriter buffers partial writes and emits complete lines.
type logWriter struct {
	mu   sync.Mutex
	buf  bytes.Buffer
	emit func(string)
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Incomplete line; keep it for the next write.
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.emit(strings.TrimRight(line, "\r\n"))
	}
	return len(p), nil
}

// Flush emits any buffered partial line.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.emit(strings.TrimRight(w.buf.String(), "\r\n"))
		w.buf.Reset()
	}
}

// resolveEnvironment overlays env on sysEnv. Later entries win. The result is sorted.
func resolveEnvironment(sysEnv, env []string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(env))
	for _, list := range [][]string{sysEnv, env} {
		for _, entry := range list {
			if k, v, ok := strings.Cut(entry, "="); ok {
				envMap[k] = v
			}
		}
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the directories named by the PATH of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if p, ok := strings.CutPrefix(e, "PATH="); ok {
			path = p
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
