package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wsdeps/cmd/wsdeps/commands"
	"go.trai.ch/wsdeps/internal/adapters/config"
	"go.trai.ch/wsdeps/internal/app"
	"go.trai.ch/wsdeps/internal/build"
)

type mockApp struct {
	installFunc func(ctx context.Context, params config.Params, opts app.InstallOptions) error
	planFunc    func(ctx context.Context, params config.Params, opts app.PlanOptions) error
	jsonLogs    bool
}

func (m *mockApp) Install(ctx context.Context, params config.Params, opts app.InstallOptions) error {
	if m.installFunc != nil {
		return m.installFunc(ctx, params, opts)
	}
	return nil
}

func (m *mockApp) Plan(ctx context.Context, params config.Params, opts app.PlanOptions) error {
	if m.planFunc != nil {
		return m.planFunc(ctx, params, opts)
	}
	return nil
}

func (m *mockApp) UseJSONLogs(enable bool) {
	m.jsonLogs = enable
}

func TestCommands_Install(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured config.Params
		var capturedOpts app.InstallOptions
		mock := &mockApp{
			installFunc: func(_ context.Context, params config.Params, opts app.InstallOptions) error {
				captured = params
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{
			"install",
			"-w", "/ws/src",
			"-p", "planner",
			"--os", "ubuntu:jammy",
			"--rosdistro", "humble",
			"--skip-keys", "fastcdr rti-connext-dds-6.0.1",
			"--install-prefix", "/opt/ws/install",
			"--cleanup", "/tmp/ws",
			"--report", "report.json",
			"--json",
		})

		require.NoError(t, cli.Execute(t.Context()))
		assert.Equal(t, "/ws/src", captured.Workspace)
		assert.Equal(t, "planner", captured.PackagesUpTo)
		assert.Equal(t, "ubuntu:jammy", captured.OS)
		assert.Equal(t, "humble", captured.ROSDistro)
		assert.Equal(t, []string{"fastcdr", "rti-connext-dds-6.0.1"}, captured.SkipKeys.Sorted())
		assert.Equal(t, "/opt/ws/install", captured.InstallPrefix)
		assert.Equal(t, []string{"/tmp/ws"}, captured.Cleanup)
		assert.Equal(t, "report.json", capturedOpts.Report)
		assert.True(t, mock.jsonLogs)
	})

	t.Run("returns error on install failure", func(t *testing.T) {
		mock := &mockApp{
			installFunc: func(context.Context, config.Params, app.InstallOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"install", "--rosdistro", "humble"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(t.Context())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
		assert.False(t, mock.jsonLogs)
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		mock := &mockApp{
			installFunc: func(context.Context, config.Params, app.InstallOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
		cli.SetArgs([]string{"install", "planner"})

		require.Error(t, cli.Execute(t.Context()))
	})
}

func TestCommands_Plan(t *testing.T) {
	var capturedOpts app.PlanOptions
	var captured config.Params
	mock := &mockApp{
		planFunc: func(_ context.Context, params config.Params, opts app.PlanOptions) error {
			captured = params
			capturedOpts = opts
			_, err := opts.Out.Write([]byte("digest: 0\n"))
			return err
		},
	}

	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"plan", "--packages-up-to", "driver", "--order", "--graph", "colcon"})

	require.NoError(t, cli.Execute(t.Context()))
	assert.Equal(t, "driver", captured.PackagesUpTo)
	assert.Equal(t, "colcon", captured.Graph)
	assert.True(t, capturedOpts.Order)
	assert.False(t, capturedOpts.JSON)
	assert.Equal(t, "digest: 0\n", buf.String())
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(t.Context()))
	assert.Contains(t, buf.String(), build.Version)
	assert.Contains(t, buf.String(), build.Commit)
}
