package domain

import "go.trai.ch/zerr"

// InstallRequest carries the invocation parameters of a single installer run.
type InstallRequest struct {
	// WorkspaceRoot is the source tree scanned for manifests.
	WorkspaceRoot string

	// Selector restricts the scan to the transitive closure of one package. Empty means the whole workspace.
	Selector string

	// Platform selects the system package index.
	Platform Platform

	// Distro is the distribution release identifier (e.g., "humble").
	Distro string

	// Skip lists keys excluded from resolution.
	Skip SkipList

	// InstallPrefix is the directory whose setup script is sourced before resolution. Empty disables sourcing.
	InstallPrefix string

	// Cleanup lists paths or glob patterns removed after the run.
	Cleanup []string

	// IncludeEOLDistros makes the index refresh include end-of-life distributions.
	IncludeEOLDistros bool

	// Graph selects the package graph backend used for target selection.
	Graph GraphBackend

	// Marker is the file whose presence means the dependency database is initialized.
	Marker string

	// LockFile is the path of the exclusive install lock. Empty disables locking.
	LockFile string
}

// Validate checks that the request carries the parameters every run needs.
func (r *InstallRequest) Validate() error {
	if r.WorkspaceRoot == "" {
		return zerr.With(ErrWorkspaceNotFound, "workspace", r.WorkspaceRoot)
	}
	if r.Distro == "" {
		return ErrMissingDistro
	}
	if r.Platform.IsZero() {
		return zerr.With(ErrInvalidPlatform, "platform", "")
	}
	return nil
}
