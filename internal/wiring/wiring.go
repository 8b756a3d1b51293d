// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/larder/internal/adapters/cas"
	_ "go.trai.ch/larder/internal/adapters/catalog"
	_ "go.trai.ch/larder/internal/adapters/config"
	_ "go.trai.ch/larder/internal/adapters/fetch"
	_ "go.trai.ch/larder/internal/adapters/fs"
	_ "go.trai.ch/larder/internal/adapters/lockfile"
	_ "go.trai.ch/larder/internal/adapters/logger"
	_ "go.trai.ch/larder/internal/adapters/manifest"
	_ "go.trai.ch/larder/internal/adapters/reporter"
	_ "go.trai.ch/larder/internal/adapters/scm"
	_ "go.trai.ch/larder/internal/adapters/solver"
	// Register app and engine nodes.
	_ "go.trai.ch/larder/internal/app"
	_ "go.trai.ch/larder/internal/engine/installer"
)
