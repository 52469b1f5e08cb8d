// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/wsdeps/internal/adapters/config"
	_ "go.trai.ch/wsdeps/internal/adapters/fs"
	_ "go.trai.ch/wsdeps/internal/adapters/lock"
	_ "go.trai.ch/wsdeps/internal/adapters/logger"
	_ "go.trai.ch/wsdeps/internal/adapters/manifest"
	_ "go.trai.ch/wsdeps/internal/adapters/query"
	_ "go.trai.ch/wsdeps/internal/adapters/report"
	_ "go.trai.ch/wsdeps/internal/adapters/rosdep"
	_ "go.trai.ch/wsdeps/internal/adapters/setupenv"
	_ "go.trai.ch/wsdeps/internal/adapters/shell"
	_ "go.trai.ch/wsdeps/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/wsdeps/internal/app"
	_ "go.trai.ch/wsdeps/internal/engine/installer"
)
