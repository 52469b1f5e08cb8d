package config

import (
	"os"
	"strings"

	"go.trai.ch/wsdeps/internal/core/domain"
	"go.trai.ch/zerr"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// DefaultOSRelease is the file describing the running distribution.
const DefaultOSRelease = "/etc/os-release"

// ReadPlatform derives the platform from an os-release file (ID and VERSION_CODENAME).
func ReadPlatform(path string) (domain.Platform, error) {
	f, err := os.Open(path) //nolint:gosec // well-known system path or test fixture
	if err != nil {
		return domain.Platform{}, zerr.With(zerr.Wrap(err, "failed to read os-release"), "path", path)
	}
	defer func() { _ = f.Close() }()

	file, err := syntax.NewParser().Parse(f, path)
	if err != nil {
		return domain.Platform{}, zerr.With(zerr.Wrap(err, "failed to parse os-release"), "path", path)
	}

	vars := make(map[string]string)
	var litErr error
	syntax.Walk(file, func(node syntax.Node) bool {
		assign, ok := node.(*syntax.Assign)
		if !ok || litErr != nil {
			return true
		}
		val, err := expand.Literal(nil, assign.Value)
		if err != nil {
			litErr = err
			return false
		}
		vars[assign.Name.Value] = val
		return true
	})
	if litErr != nil {
		return domain.Platform{}, zerr.With(zerr.Wrap(litErr, "failed to parse os-release"), "path", path)
	}

	platform := domain.Platform{
		OS:      strings.ToLower(vars["ID"]),
		Version: vars["VERSION_CODENAME"],
	}
	if platform.OS == "" || platform.Version == "" {
		return domain.Platform{}, zerr.With(domain.ErrInvalidPlatform, "path", path)
	}
	return platform, nil
}
