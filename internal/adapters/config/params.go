package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.trai.ch/wsdeps/internal/core/domain"
	"go.trai.ch/zerr"
)

// EnvPrefix prefixes the environment variables read as flag fallbacks.
const EnvPrefix = "WSDEPS"

// Flag names shared by the install and plan commands.
const (
	FlagWorkspace     = "workspace"
	FlagPackagesUpTo  = "packages-up-to"
	FlagOS            = "os"
	FlagROSDistro     = "rosdistro"
	FlagSkipKeys      = "skip-keys"
	FlagInstallPrefix = "install-prefix"
	FlagCleanup       = "cleanup"
	FlagConfig        = "config"
	FlagGraph         = "graph"
)

// Params are the invocation parameters of a run.
type Params struct {
	Workspace     string
	PackagesUpTo  string
	OS            string
	ROSDistro     string
	SkipKeys      domain.SkipList
	InstallPrefix string
	Cleanup       []string
	Config        string
	Graph         string
}

// RegisterFlags defines the selection and platform flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagWorkspace, "w", ".", "workspace source tree to scan")
	fs.StringP(FlagPackagesUpTo, "p", "", "only scan this package and its transitive dependencies")
	fs.String(FlagOS, "", "target platform as os:version (default from /etc/os-release)")
	fs.String(FlagROSDistro, "", "ROS distribution (env ROS_DISTRO)")
	fs.String(FlagSkipKeys, "", "space or comma separated dependency keys to skip")
	fs.String(FlagInstallPrefix, "", "install prefix whose setup.sh is sourced before resolving")
	fs.StringSlice(FlagCleanup, nil, "extra path or glob removed after the run (repeatable)")
	fs.StringP(FlagConfig, "c", "", "settings file (default <workspace>/"+DefaultFilename+")")
	fs.String(FlagGraph, "", "package graph backend: native or colcon")
}

// ReadParams resolves the registered flags against the environment.
// A flag set on the command line wins over its environment variable,
// which wins over the flag default.
func ReadParams(fs *pflag.FlagSet) (Params, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv(FlagROSDistro, "ROS_DISTRO"); err != nil {
		return Params{}, zerr.Wrap(err, "failed to bind environment")
	}
	if err := v.BindPFlags(fs); err != nil {
		return Params{}, zerr.Wrap(err, "failed to bind flags")
	}

	return Params{
		Workspace:     v.GetString(FlagWorkspace),
		PackagesUpTo:  strings.TrimSpace(v.GetString(FlagPackagesUpTo)),
		OS:            v.GetString(FlagOS),
		ROSDistro:     v.GetString(FlagROSDistro),
		SkipKeys:      domain.ParseSkipList(v.GetString(FlagSkipKeys)),
		InstallPrefix: v.GetString(FlagInstallPrefix),
		Cleanup:       v.GetStringSlice(FlagCleanup),
		Config:        v.GetString(FlagConfig),
		Graph:         v.GetString(FlagGraph),
	}, nil
}
