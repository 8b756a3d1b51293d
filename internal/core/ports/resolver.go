package ports

import (
	"context"

	"go.trai.ch/larder/internal/core/domain"
)

//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks

// Resolver creates constraint resolutions against a package universe.
type Resolver interface {
	// NewResolution starts a resolution over the given universe.
	NewResolution(universe *domain.Universe) Resolution
}

// Resolution is one resolution attempt: pins are registered first, then
// Resolve computes the dependency closure.
type Resolution interface {
	// Pin fixes a package at an exact version with known dependency edges.
	// Resolve treats pinned packages as given instead of choosing versions
	// for them.
	Pin(pkg domain.PackageVersion)

	// Resolve computes the full dependency closure of the given
	// dependencies. Every returned dependency carries a LockedVersion;
	// dependencies passed in keep their identity and run state. Returns
	// domain.ErrNoSolution when constraints cannot be satisfied and
	// domain.ErrPackageNotFound when a package has no universe entry at
	// all.
	Resolve(ctx context.Context, deps []*domain.Dependency) ([]*domain.Dependency, error)
}
