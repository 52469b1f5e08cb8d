package domain

// GraphBackend selects how the workspace package graph is queried.
type GraphBackend string

const (
	// GraphBackendNative walks the parsed manifests in-process.
	GraphBackendNative GraphBackend = "native"
	// GraphBackendColcon delegates the query to `colcon list`.
	GraphBackendColcon GraphBackend = "colcon"
)

const (
	// DefaultMarker is the file written by `rosdep init`.
	DefaultMarker = "/etc/ros/rosdep/sources.list.d/20-default.list"
	// DefaultLockFile guards the system package database against concurrent installs.
	DefaultLockFile = "/var/lock/wsdeps.lock"
	// DefaultIndexCache is the apt package index cache removed after a run.
	DefaultIndexCache = "/var/lib/apt/lists/*"
)

// Settings holds the workspace-level configuration read from wsdeps.yaml.
type Settings struct {
	SkipKeys          []string
	Cleanup           []string
	Graph             GraphBackend
	IncludeEOLDistros bool
	Marker            string
	LockFile          string
}

// DefaultSettings returns the settings used when no configuration file is present.
func DefaultSettings() Settings {
	return Settings{
		Cleanup:  []string{DefaultIndexCache},
		Graph:    GraphBackendNative,
		Marker:   DefaultMarker,
		LockFile: DefaultLockFile,
	}
}
