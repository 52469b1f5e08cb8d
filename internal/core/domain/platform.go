package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Platform identifies the system package index to resolve against.
type Platform struct {
	// OS is the operating system name (e.g., "ubuntu").
	OS string

	// Version is the OS version or codename (e.g., "jammy").
	Version string
}

// ParsePlatform parses an "os:version" descriptor as accepted by rosdep's --os flag.
func ParsePlatform(s string) (Platform, error) {
	osName, version, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || osName == "" || version == "" {
		return Platform{}, zerr.With(ErrInvalidPlatform, "platform", s)
	}
	return Platform{OS: osName, Version: version}, nil
}

// IsZero reports whether the platform is unset.
func (p Platform) IsZero() bool {
	return p.OS == "" && p.Version == ""
}

// String renders the platform in "os:version" form.
func (p Platform) String() string {
	if p.IsZero() {
		return ""
	}
	return p.OS + ":" + p.Version
}
