//go:build e2e

package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var wsdepsBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "wsdeps-e2e-*")
	if err != nil {
		panic(err)
	}

	wsdepsBinary = filepath.Join(tmpDir, "wsdeps")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", wsdepsBinary, "./cmd/wsdeps")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build wsdeps binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
	})
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "true")
	env.Setenv("ROS_DISTRO", "")

	binDir := filepath.Dir(wsdepsBinary)
	fakeBin := filepath.Join(env.WorkDir, "bin")
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", fakeBin+string(os.PathListSeparator)+binDir+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)

	return nil
}
