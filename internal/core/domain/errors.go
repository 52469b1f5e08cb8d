package domain

import "go.trai.ch/zerr"

var (
	// ErrDuplicatePackage is returned when two manifests in the workspace declare the same package name.
	ErrDuplicatePackage = zerr.New("duplicate package name in workspace")

	// ErrPackageNotFound is returned when a requested package is not part of the workspace graph.
	ErrPackageNotFound = zerr.New("package not found in workspace")

	// ErrCycleDetected is returned when a cycle is detected while ordering the package graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrManifestInvalid is returned when a package manifest cannot be parsed.
	ErrManifestInvalid = zerr.New("invalid package manifest")

	// ErrWorkspaceNotFound is returned when the workspace root does not exist or is not a directory.
	ErrWorkspaceNotFound = zerr.New("workspace not found")

	// ErrInvalidPlatform is returned when a platform descriptor cannot be parsed.
	ErrInvalidPlatform = zerr.New("invalid platform descriptor")

	// ErrMissingDistro is returned when no distribution release identifier was supplied.
	ErrMissingDistro = zerr.New("missing distribution release identifier")

	// ErrDatabaseInitFailed is returned when the dependency database cannot be initialized.
	ErrDatabaseInitFailed = zerr.New("dependency database initialization failed")

	// ErrIndexUpdateFailed is returned when the dependency database index cannot be refreshed.
	ErrIndexUpdateFailed = zerr.New("dependency index update failed")

	// ErrResolverFailed is returned when the resolver aborts for a reason other than individual missing keys.
	ErrResolverFailed = zerr.New("dependency resolution failed")

	// ErrInstallLocked is returned when another installation holds the install lock.
	ErrInstallLocked = zerr.New("another installation is in progress")

	// ErrCleanupFailed is returned when transient files could not be removed after a run.
	ErrCleanupFailed = zerr.New("cleanup failed")
)
