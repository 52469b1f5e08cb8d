package ports

import "go.trai.ch/wsdeps/internal/core/domain"

// ConfigLoader defines the interface for loading the workspace configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path.
	// Settings absent from the file keep their defaults. A missing file is an error.
	Load(path string) (domain.Settings, error)
}
