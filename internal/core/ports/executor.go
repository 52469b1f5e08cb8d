// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/wsdeps/internal/core/domain"
)

// Executor defines the interface for running external commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes cmd and waits for it to finish.
	//
	// Output is streamed line by line to the logger and copied to stdout and
	// stderr when they are non-nil.
	//
	// It returns an error carrying the exit code if the command fails.
	Run(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error
}
