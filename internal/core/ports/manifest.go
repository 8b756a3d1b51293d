package ports

import "go.trai.ch/larder/internal/core/domain"

// ManifestLoader finds and loads the project manifest.
//
//go:generate mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestLoader interface {
	// Load searches cwd and its parents for a manifest file and returns
	// the parsed manifest. Path dependencies are materialized during
	// loading: their metadata is read and their content handle points at
	// the declared directory. Returns domain.ErrManifestNotFound when no
	// manifest exists.
	Load(cwd string) (*domain.Manifest, error)
}
