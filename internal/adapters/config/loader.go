// Package config loads workspace settings and invocation parameters for wsdeps.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"slices"
	"strings"

	"go.trai.ch/wsdeps/internal/core/domain"
	"go.trai.ch/wsdeps/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileLoader implements ports.ConfigLoader using a YAML file.
type FileLoader struct {
	logger ports.Logger
}

// NewLoader creates a new FileLoader.
func NewLoader(logger ports.Logger) *FileLoader {
	return &FileLoader{logger: logger}
}

var _ ports.ConfigLoader = (*FileLoader)(nil)

// Load reads the settings file at path and layers it over the defaults.
func (l *FileLoader) Load(path string) (domain.Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return domain.Settings{}, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	settings, err := Parse(data)
	if err != nil {
		return domain.Settings{}, zerr.With(err, "path", path)
	}

	l.logger.Info("loaded settings from " + path)
	return settings, nil
}

// Parse decodes a wsdeps.yaml document. Unknown fields are rejected.
func Parse(data []byte) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return domain.Settings{}, zerr.Wrap(err, "failed to parse config file")
	}

	if file.Version != "" && file.Version != SupportedVersion {
		return domain.Settings{}, zerr.With(zerr.New("unsupported config version"), "version", file.Version)
	}

	switch backend := domain.GraphBackend(file.Graph); backend {
	case "":
	case domain.GraphBackendNative, domain.GraphBackendColcon:
		settings.Graph = backend
	default:
		return domain.Settings{}, zerr.With(zerr.New("unknown graph backend"), "graph", file.Graph)
	}

	settings.SkipKeys = canonicalizeStrings(file.SkipKeys)
	if file.Cleanup != nil {
		settings.Cleanup = slices.Clone(file.Cleanup)
	}
	settings.IncludeEOLDistros = file.IncludeEOLDistros
	if file.Marker != "" {
		settings.Marker = file.Marker
	}
	if file.LockFile != nil {
		settings.LockFile = *file.LockFile
	}

	return settings, nil
}

func canonicalizeStrings(strs []string) []string {
	if len(strs) == 0 {
		return nil
	}

	res := make([]string, 0, len(strs))
	for _, s := range strs {
		if s = strings.TrimSpace(s); s != "" {
			res = append(res, s)
		}
	}
	slices.Sort(res)
	return slices.Compact(res)
}
