package ports

import (
	"context"

	"go.trai.ch/larder/internal/core/domain"
)

// ContentStore is the local package store. Imported packages are keyed by
// (name, version); importing a pair that is already present is a no-op that
// returns the existing handle.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ContentStore interface {
	// Import moves staged package content into the store and returns its
	// handle. The content's metadata file must agree with the given name;
	// version may be empty, in which case the metadata's version is
	// adopted.
	Import(ctx context.Context, name, version, stagePath string) (*domain.CachedPackage, error)

	// Lookup returns the handle for an exact (name, version) pair if the
	// store has it.
	Lookup(name, version string) (*domain.CachedPackage, bool)
}
