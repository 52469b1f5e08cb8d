package installer_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wsdeps/internal/core/domain"
	"go.trai.ch/wsdeps/internal/core/ports"
	"go.trai.ch/wsdeps/internal/core/ports/mocks"
	"go.trai.ch/wsdeps/internal/engine/installer"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type vertexRecord struct {
	name     string
	internal bool
	cached   bool
	err      error
}

type fakeTelemetry struct {
	mu       sync.Mutex
	vertexes []*fakeVertex
}

func (f *fakeTelemetry) Record(ctx context.Context, name string, opts ...ports.VertexOption) (context.Context, ports.Vertex) {
	cfg := &ports.VertexConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v := &fakeVertex{rec: vertexRecord{name: name, internal: cfg.Internal}}
	f.vertexes = append(f.vertexes, v)
	return ports.ContextWithVertex(ctx, v), v
}

func (f *fakeTelemetry) Close() error { return nil }

func (f *fakeTelemetry) records() []vertexRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]vertexRecord, len(f.vertexes))
	for j, v := range f.vertexes {
		out[j] = v.rec
	}
	return out
}

type fakeVertex struct {
	rec vertexRecord
}

func (v *fakeVertex) Stdout() io.Writer { return io.Discard }

func (v *fakeVertex) Stderr() io.Writer { return io.Discard }

func (v *fakeVertex) Log(domain.LogLevel, string) {}

func (v *fakeVertex) Complete(err error) { v.rec.err = err }

func (v *fakeVertex) Cached() { v.rec.cached = true }

type harness struct {
	logger     *mocks.MockLogger
	database   *mocks.MockDependencyDatabase
	discoverer *mocks.MockPackageDiscoverer
	parser     *mocks.MockManifestParser
	native     *mocks.MockPackageQuery
	colcon     *mocks.MockPackageQuery
	hasher     *mocks.MockHasher
	cleaner    *mocks.MockCleaner
	locker     *mocks.MockLocker
	env        *mocks.MockEnvironmentLoader
	telemetry  *fakeTelemetry
	installer  *installer.Installer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		logger:     mocks.NewMockLogger(ctrl),
		database:   mocks.NewMockDependencyDatabase(ctrl),
		discoverer: mocks.NewMockPackageDiscoverer(ctrl),
		parser:     mocks.NewMockManifestParser(ctrl),
		native:     mocks.NewMockPackageQuery(ctrl),
		colcon:     mocks.NewMockPackageQuery(ctrl),
		hasher:     mocks.NewMockHasher(ctrl),
		cleaner:    mocks.NewMockCleaner(ctrl),
		locker:     mocks.NewMockLocker(ctrl),
		env:        mocks.NewMockEnvironmentLoader(ctrl),
		telemetry:  &fakeTelemetry{},
	}
	h.installer = installer.New(
		h.logger,
		h.database,
		h.discoverer,
		h.parser,
		map[domain.GraphBackend]ports.PackageQuery{
			domain.GraphBackendNative: h.native,
			domain.GraphBackendColcon: h.colcon,
		},
		h.hasher,
		h.cleaner,
		h.locker,
		h.env,
		h.telemetry,
	)

	h.locker.EXPECT().WithLock(gomock.Any(), "/var/lock/wsdeps.lock", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, action func() error) error {
			return action()
		}).AnyTimes()
	return h
}

var sourcedEnv = []string{"AMENT_PREFIX_PATH=/opt/underlay", "ROS_VERSION=2"}

func newRequest() *domain.InstallRequest {
	return &domain.InstallRequest{
		WorkspaceRoot: "/ws/src",
		Platform:      domain.Platform{OS: "ubuntu", Version: "jammy"},
		Distro:        "humble",
		Skip:          domain.NewSkipList("fastcdr"),
		InstallPrefix: "/opt/underlay",
		Cleanup:       []string{domain.DefaultIndexCache},
		Graph:         domain.GraphBackendNative,
		Marker:        domain.DefaultMarker,
		LockFile:      "/var/lock/wsdeps.lock",
	}
}

func pkg(name, path string, deps ...string) domain.Package {
	p := domain.Package{Name: domain.NewInternedString(name), Path: path, Format: 3}
	for _, d := range deps {
		p.Dependencies = append(p.Dependencies, domain.NewInternedString(d))
	}
	return p
}

func workspacePackages() []domain.Package {
	return []domain.Package{
		pkg("planner", "/ws/src/planner", "fastcdr", "msgs", "rclcpp"),
		pkg("msgs", "/ws/src/msgs", "rosidl_default_generators"),
		pkg("viz", "/ws/src/viz", "qtbase5-dev"),
	}
}

func (h *harness) expectScan(pkgs []domain.Package) {
	paths := make([]string, len(pkgs))
	for j, p := range pkgs {
		paths[j] = p.Path + "/package.xml"
	}
	h.discoverer.EXPECT().Discover("/ws/src").Return(paths, nil)
	h.parser.EXPECT().Parse(gomock.Any(), paths).Return(pkgs, nil)
	h.hasher.EXPECT().ScanSetDigest(gomock.Any()).Return("0123456789abcdef", nil)
}

func keys(set *domain.ScanSet) []string {
	out := make([]string, len(set.Keys))
	for j, k := range set.Keys {
		out[j] = k.String()
	}
	return out
}

func TestInstaller_Run_FreshDatabase(t *testing.T) {
	h := newHarness(t)
	req := newRequest()

	gomock.InOrder(
		h.env.EXPECT().Load(gomock.Any(), "/opt/underlay").Return(sourcedEnv, nil),
		h.database.EXPECT().Initialized(domain.DefaultMarker).Return(false, nil),
		h.database.EXPECT().Init(gomock.Any(), sourcedEnv).Return(nil),
		h.database.EXPECT().Update(gomock.Any(), req, sourcedEnv).Return(nil),
	)
	h.expectScan(workspacePackages())
	h.database.EXPECT().Install(gomock.Any(), gomock.Any(), req, sourcedEnv).
		DoAndReturn(func(_ context.Context, set *domain.ScanSet, _ *domain.InstallRequest, _ []string) (*domain.InstallResult, error) {
			assert.Equal(t, []string{"/ws/src/msgs", "/ws/src/planner", "/ws/src/viz"}, set.Paths)
			assert.Equal(t, []string{"qtbase5-dev", "rclcpp", "rosidl_default_generators"}, keys(set))
			return &domain.InstallResult{}, nil
		}).Times(1)
	h.cleaner.EXPECT().Clean([]string{domain.DefaultIndexCache}).Return(nil)

	report, err := h.installer.Run(t.Context(), req)
	require.NoError(t, err)

	assert.Equal(t, "ubuntu:jammy", report.Platform)
	assert.Equal(t, "humble", report.Distro)
	assert.Equal(t, []string{"msgs", "planner", "viz"}, report.Packages)
	assert.Equal(t, []string{"fastcdr"}, report.SkippedKeys)
	assert.Equal(t, "0123456789abcdef", report.Digest)
	assert.Empty(t, report.UnresolvedKeys)
	assert.False(t, report.FinishedAt.Before(report.StartedAt))

	for _, name := range installer.Steps {
		assert.Equal(t, domain.StepStatusCompleted, h.installer.Status(name), name)
	}
	require.Len(t, report.Steps, len(installer.Steps))

	recs := h.telemetry.records()
	require.Len(t, recs, 6)
	assert.Equal(t, "source-environment", recs[0].name)
	assert.True(t, recs[0].internal)
	for j, name := range installer.Steps {
		assert.Equal(t, name, recs[j+1].name)
		assert.NoError(t, recs[j+1].err)
	}
}

func TestInstaller_Run_MarkerPresentSkipsInit(t *testing.T) {
	h := newHarness(t)
	req := newRequest()

	h.env.EXPECT().Load(gomock.Any(), "/opt/underlay").Return(nil, nil)
	h.database.EXPECT().Initialized(domain.DefaultMarker).Return(true, nil)
	h.database.EXPECT().Init(gomock.Any(), gomock.Any()).Times(0)
	h.database.EXPECT().Update(gomock.Any(), req, gomock.Nil()).Return(nil)
	h.expectScan(workspacePackages())
	h.database.EXPECT().Install(gomock.Any(), gomock.Any(), req, gomock.Nil()).Return(&domain.InstallResult{}, nil)
	h.cleaner.EXPECT().Clean(gomock.Any()).Return(nil)

	_, err := h.installer.Run(t.Context(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.StepStatusSkipped, h.installer.Status(installer.StepInitDatabase))
	assert.Equal(t, domain.StepStatusCompleted, h.installer.Status(installer.StepUpdateIndex))
	assert.True(t, h.telemetry.records()[1].cached)
}

func TestInstaller_Run_ReportsOnlyRequiredSkippedKeys(t *testing.T) {
	h := newHarness(t)
	req := newRequest()
	req.Skip = domain.NewSkipList("fastcdr", "rti-connext-dds-6.0.1")

	h.env.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, nil)
	h.database.EXPECT().Initialized(gomock.Any()).Return(true, nil)
	h.database.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	h.expectScan(workspacePackages())
	h.database.EXPECT().Install(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.InstallResult{}, nil)
	h.cleaner.EXPECT().Clean(gomock.Any()).Return(nil)

	report, err := h.installer.Run(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"fastcdr"}, report.SkippedKeys)
}

func TestInstaller_Run_SelectorUsesGraphBackend(t *testing.T) {
	h := newHarness(t)
	req := newRequest()
	req.Selector = "planner"
	req.Graph = domain.GraphBackendColcon

	pkgs := workspacePackages()
	h.env.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, nil)
	h.database.EXPECT().Initialized(gomock.Any()).Return(true, nil)
	h.database.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	h.expectScan(pkgs)
	h.colcon.EXPECT().UpTo(gomock.Any(), "/ws/src", gomock.Any(), "planner").Return(pkgs[:2], nil)
	h.database.EXPECT().Install(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, set *domain.ScanSet, _ *domain.InstallRequest, _ []string) (*domain.InstallResult, error) {
			assert.Equal(t, []string{"/ws/src/msgs", "/ws/src/planner"}, set.Paths)
			assert.Equal(t, []string{"rclcpp", "rosidl_default_generators"}, keys(set))
			return &domain.InstallResult{UnresolvedKeys: []string{"rclcpp"}}, nil
		})
	h.cleaner.EXPECT().Clean(gomock.Any()).Return(nil)

	report, err := h.installer.Run(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, "planner", report.Selector)
	assert.Equal(t, []string{"rclcpp"}, report.UnresolvedKeys)
}

func TestInstaller_Run_UpdateFailureStillCleansUp(t *testing.T) {
	h := newHarness(t)
	req := newRequest()

	h.env.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, nil)
	h.database.EXPECT().Initialized(gomock.Any()).Return(true, nil)
	h.database.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(zerr.Wrap(errors.New("exit status 1"), domain.ErrIndexUpdateFailed.Error()))
	h.database.EXPECT().Install(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	h.cleaner.EXPECT().Clean([]string{domain.DefaultIndexCache}).Return(nil)

	report, err := h.installer.Run(t.Context(), req)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrIndexUpdateFailed.Error())
	require.NotNil(t, report)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, installer.StepUpdateIndex, zErr.Metadata()["step"])

	assert.Equal(t, domain.StepStatusFailed, h.installer.Status(installer.StepUpdateIndex))
	assert.Equal(t, domain.StepStatusPending, h.installer.Status(installer.StepScanWorkspace))
	assert.Equal(t, domain.StepStatusPending, h.installer.Status(installer.StepResolveInstall))
	assert.Equal(t, domain.StepStatusCompleted, h.installer.Status(installer.StepCleanup))
}

func TestInstaller_Run_InitFailureIsFatal(t *testing.T) {
	h := newHarness(t)

	h.env.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, nil)
	h.database.EXPECT().Initialized(gomock.Any()).Return(false, nil)
	h.database.EXPECT().Init(gomock.Any(), gomock.Any()).
		Return(zerr.Wrap(errors.New("permission denied"), domain.ErrDatabaseInitFailed.Error()))
	h.cleaner.EXPECT().Clean(gomock.Any()).Return(nil)

	_, err := h.installer.Run(t.Context(), newRequest())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrDatabaseInitFailed.Error())
	assert.Equal(t, domain.StepStatusFailed, h.installer.Status(installer.StepInitDatabase))
	assert.Equal(t, domain.StepStatusPending, h.installer.Status(installer.StepUpdateIndex))
}

func TestInstaller_Run_ManifestFailureIsFatal(t *testing.T) {
	h := newHarness(t)

	h.env.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, nil)
	h.database.EXPECT().Initialized(gomock.Any()).Return(true, nil)
	h.database.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	h.discoverer.EXPECT().Discover("/ws/src").Return([]string{"/ws/src/broken/package.xml"}, nil)
	h.parser.EXPECT().Parse(gomock.Any(), gomock.Any()).
		Return(nil, zerr.With(zerr.Wrap(errors.New("EOF"), domain.ErrManifestInvalid.Error()), "path", "/ws/src/broken/package.xml"))
	h.database.EXPECT().Install(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	h.cleaner.EXPECT().Clean(gomock.Any()).Return(nil)

	_, err := h.installer.Run(t.Context(), newRequest())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrManifestInvalid.Error())
	assert.Equal(t, domain.StepStatusFailed, h.installer.Status(installer.StepScanWorkspace))
}

func TestInstaller_Run_ResolverFailureIsFatal(t *testing.T) {
	h := newHarness(t)

	h.env.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, nil)
	h.database.EXPECT().Initialized(gomock.Any()).Return(true, nil)
	h.database.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	h.expectScan(workspacePackages())
	h.database.EXPECT().Install(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, zerr.Wrap(errors.New("exit status 1"), domain.ErrResolverFailed.Error()))
	h.cleaner.EXPECT().Clean(gomock.Any()).Return(nil)

	_, err := h.installer.Run(t.Context(), newRequest())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrResolverFailed.Error())
	assert.Equal(t, domain.StepStatusFailed, h.installer.Status(installer.StepResolveInstall))
}

func TestInstaller_Run_EmptyWorkspaceSkipsInstall(t *testing.T) {
	h := newHarness(t)

	h.env.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, nil)
	h.database.EXPECT().Initialized(gomock.Any()).Return(true, nil)
	h.database.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	h.expectScan(nil)
	h.logger.EXPECT().Warn("no packages found in /ws/src")
	h.database.EXPECT().Install(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	h.cleaner.EXPECT().Clean(gomock.Any()).Return(nil)

	_, err := h.installer.Run(t.Context(), newRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.StepStatusSkipped, h.installer.Status(installer.StepResolveInstall))
}

func TestInstaller_Run_CleanupErrors(t *testing.T) {
	t.Run("returned when the run succeeded", func(t *testing.T) {
		h := newHarness(t)
		req := newRequest()

		h.env.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, nil)
		h.database.EXPECT().Initialized(gomock.Any()).Return(true, nil)
		h.database.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		h.expectScan(workspacePackages())
		h.database.EXPECT().Install(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.InstallResult{}, nil)
		h.cleaner.EXPECT().Clean(gomock.Any()).Return(errors.New("device or resource busy"))

		_, err := h.installer.Run(t.Context(), req)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrCleanupFailed.Error())
		assert.Equal(t, domain.StepStatusFailed, h.installer.Status(installer.StepCleanup))
	})

	t.Run("logged when the run already failed", func(t *testing.T) {
		h := newHarness(t)

		h.env.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, nil)
		h.database.EXPECT().Initialized(gomock.Any()).Return(true, nil)
		h.database.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(zerr.Wrap(errors.New("exit status 1"), domain.ErrIndexUpdateFailed.Error()))
		h.cleaner.EXPECT().Clean(gomock.Any()).Return(errors.New("device or resource busy"))
		h.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
			assert.ErrorContains(t, err, domain.ErrCleanupFailed.Error())
		})

		_, err := h.installer.Run(t.Context(), newRequest())
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrIndexUpdateFailed.Error())
		assert.NotContains(t, err.Error(), domain.ErrCleanupFailed.Error())
	})
}

func TestInstaller_Run_NoCleanupPaths(t *testing.T) {
	h := newHarness(t)
	req := newRequest()
	req.Cleanup = nil

	h.env.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, nil)
	h.database.EXPECT().Initialized(gomock.Any()).Return(true, nil)
	h.database.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	h.expectScan(workspacePackages())
	h.database.EXPECT().Install(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.InstallResult{}, nil)
	h.cleaner.EXPECT().Clean(gomock.Any()).Times(0)

	_, err := h.installer.Run(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.StepStatusSkipped, h.installer.Status(installer.StepCleanup))
}

func TestInstaller_Run_InvalidRequest(t *testing.T) {
	h := newHarness(t)
	req := newRequest()
	req.Distro = ""

	report, err := h.installer.Run(t.Context(), req)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrMissingDistro.Error())
	assert.Nil(t, report)
	assert.Empty(t, h.telemetry.records())
}

func TestInstaller_Run_LockNotAcquired(t *testing.T) {
	ctrl := gomock.NewController(t)
	locker := mocks.NewMockLocker(ctrl)
	locker.EXPECT().WithLock(gomock.Any(), "/var/lock/wsdeps.lock", gomock.Any()).
		Return(zerr.Wrap(context.Canceled, domain.ErrInstallLocked.Error()))

	inst := installer.New(
		mocks.NewMockLogger(ctrl),
		mocks.NewMockDependencyDatabase(ctrl),
		mocks.NewMockPackageDiscoverer(ctrl),
		mocks.NewMockManifestParser(ctrl),
		nil,
		mocks.NewMockHasher(ctrl),
		mocks.NewMockCleaner(ctrl),
		locker,
		mocks.NewMockEnvironmentLoader(ctrl),
		&fakeTelemetry{},
	)

	_, err := inst.Run(t.Context(), newRequest())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInstallLocked.Error())
	for _, name := range installer.Steps {
		assert.Equal(t, domain.StepStatusPending, inst.Status(name))
	}
}

func TestInstaller_Run_CancelledDuringInstallStillCleansUp(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t)

		installStarted := make(chan struct{})
		h.env.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, nil)
		h.database.EXPECT().Initialized(gomock.Any()).Return(true, nil)
		h.database.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		h.expectScan(workspacePackages())
		h.database.EXPECT().Install(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ *domain.ScanSet, _ *domain.InstallRequest, _ []string) (*domain.InstallResult, error) {
				close(installStarted)
				<-ctx.Done()
				return nil, zerr.Wrap(ctx.Err(), domain.ErrResolverFailed.Error())
			})
		h.cleaner.EXPECT().Clean([]string{domain.DefaultIndexCache}).Return(nil)

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		errCh := make(chan error)
		go func() {
			_, err := h.installer.Run(ctx, newRequest())
			errCh <- err
		}()

		synctest.Wait()
		<-installStarted
		assert.Equal(t, domain.StepStatusRunning, h.installer.Status(installer.StepResolveInstall))
		assert.Equal(t, domain.StepStatusPending, h.installer.Status(installer.StepCleanup))

		cancel()
		err := <-errCh
		assert.ErrorContains(t, err, context.Canceled.Error())
		assert.Equal(t, domain.StepStatusFailed, h.installer.Status(installer.StepResolveInstall))
		assert.Equal(t, domain.StepStatusCompleted, h.installer.Status(installer.StepCleanup))
	})
}
