package ports

import "context"

// EnvironmentLoader sources the setup state of a previously installed prefix.
//
//go:generate go run go.uber.org/mock/mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type EnvironmentLoader interface {
	// Load sources the setup script under prefix and returns the exported
	// variables as "KEY=VALUE" strings. A prefix without a setup script
	// yields a nil environment.
	Load(ctx context.Context, prefix string) ([]string, error)
}
