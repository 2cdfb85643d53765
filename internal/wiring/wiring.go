// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/softmesh/internal/adapters/cas"
	_ "go.trai.ch/softmesh/internal/adapters/config"
	_ "go.trai.ch/softmesh/internal/adapters/fs"
	_ "go.trai.ch/softmesh/internal/adapters/generator"
	_ "go.trai.ch/softmesh/internal/adapters/gmsh"
	_ "go.trai.ch/softmesh/internal/adapters/logger"
	_ "go.trai.ch/softmesh/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/softmesh/internal/adapters/worker"
	// Register app and engine nodes.
	_ "go.trai.ch/softmesh/internal/app"
	_ "go.trai.ch/softmesh/internal/engine/mesher"
)
