package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wsdeps/internal/core/domain"
)

func TestParsePlatform(t *testing.T) {
	p, err := domain.ParsePlatform("ubuntu:jammy")
	require.NoError(t, err)
	assert.Equal(t, domain.Platform{OS: "ubuntu", Version: "jammy"}, p)
	assert.Equal(t, "ubuntu:jammy", p.String())

	for _, bad := range []string{"", "ubuntu", ":jammy", "ubuntu:"} {
		_, err := domain.ParsePlatform(bad)
		assert.ErrorContains(t, err, domain.ErrInvalidPlatform.Error(), bad)
	}
}

func TestParseSkipList(t *testing.T) {
	s := domain.ParseSkipList(" fastrtps,rti-connext-dds-6.0.1\n  urdfdom_headers ")

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"fastrtps", "rti-connext-dds-6.0.1", "urdfdom_headers"}, s.Sorted())
	assert.True(t, s.Contains(domain.NewInternedString("fastrtps")))
	assert.False(t, s.Contains(domain.NewInternedString("rclcpp")))

	assert.Equal(t, 0, domain.ParseSkipList("").Len())
}

func TestSkipList_Union(t *testing.T) {
	a := domain.NewSkipList("a", "b")
	b := domain.NewSkipList("b", "c")

	assert.Equal(t, []string{"a", "b", "c"}, a.Union(b).Sorted())
	assert.Equal(t, 2, a.Len())
}

func TestNewScanSet(t *testing.T) {
	g := domain.NewGraph()
	a := pkg("A", "B", "rclcpp", "fastrtps", "numpy")
	b := pkg("B", "rclcpp", "eigen")
	c := pkg("C", "opencv")
	require.NoError(t, g.AddPackage(a))
	require.NoError(t, g.AddPackage(b))
	require.NoError(t, g.AddPackage(c))

	set := domain.NewScanSet([]domain.Package{*b, *a}, g, domain.NewSkipList("fastrtps"))

	assert.Equal(t, []string{"A", "B"}, set.PackageNames())
	assert.Equal(t, []string{"src/A", "src/B"}, set.Paths)
	assert.Equal(t, []string{"eigen", "numpy", "rclcpp"}, domain.Strings(set.Keys))
	assert.Equal(t, []string{"fastrtps"}, domain.Strings(set.Skipped))
	assert.NotContains(t, domain.Strings(set.Keys), "opencv")
	assert.False(t, set.Empty())
}

func TestNewScanSet_Empty(t *testing.T) {
	set := domain.NewScanSet(nil, domain.NewGraph(), domain.NewSkipList())
	assert.True(t, set.Empty())
	assert.Empty(t, set.Keys)
}

func TestInstallRequest_Validate(t *testing.T) {
	valid := domain.InstallRequest{
		WorkspaceRoot: "/ws",
		Distro:        "humble",
		Platform:      domain.Platform{OS: "ubuntu", Version: "jammy"},
	}
	require.NoError(t, valid.Validate())

	noDistro := valid
	noDistro.Distro = ""
	assert.ErrorContains(t, noDistro.Validate(), domain.ErrMissingDistro.Error())

	noPlatform := valid
	noPlatform.Platform = domain.Platform{}
	assert.ErrorContains(t, noPlatform.Validate(), domain.ErrInvalidPlatform.Error())

	noRoot := valid
	noRoot.WorkspaceRoot = ""
	assert.ErrorContains(t, noRoot.Validate(), domain.ErrWorkspaceNotFound.Error())
}

func TestStepStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.StepStatusPending.IsTerminal())
	assert.False(t, domain.StepStatusRunning.IsTerminal())
	assert.True(t, domain.StepStatusCompleted.IsTerminal())
	assert.True(t, domain.StepStatusFailed.IsTerminal())
	assert.True(t, domain.StepStatusSkipped.IsTerminal())
}
