package domain

import (
	"slices"
	"strings"
)

// Dependency represents a single requirement on a package: a name, a version
// constraint, and the location the content comes from. The remaining fields
// are install-run state, filled in as the dependency is resolved and
// materialized; they are never persisted.
type Dependency struct {
	// Name is the canonical package name.
	Name InternedString

	// Constraint restricts which versions satisfy the dependency.
	Constraint VersionConstraint

	// Location is where the package content comes from. Nil means registry.
	Location Location

	// LockedVersion is the exact version chosen for this dependency,
	// either carried over from the lock graph or pinned by resolution.
	// Empty until one of the two happens.
	LockedVersion string

	// Downloaded marks the dependency as materialized: its content is
	// available locally and Cached is set.
	Downloaded bool

	// Cached is the store handle for a materialized dependency.
	Cached *CachedPackage
}

// Materialize marks the dependency as downloaded and records its store
// handle and exact version.
func (d *Dependency) Materialize(pkg *CachedPackage) {
	d.Downloaded = true
	d.Cached = pkg
	if pkg != nil && d.LockedVersion == "" {
		d.LockedVersion = pkg.Version
	}
}

// SortDependencies orders dependencies by name, ascending. Installation and
// lock serialization both rely on this order being deterministic.
func SortDependencies(deps []*Dependency) {
	slices.SortFunc(deps, func(a, b *Dependency) int {
		return strings.Compare(a.Name.String(), b.Name.String())
	})
}
