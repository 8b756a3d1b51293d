// Package domain contains the core domain models and business logic for
// dependency installation: manifests, lock records, the aggregated package
// universe, and the constraint types connecting them.
package domain

import "slices"

// Universe is the aggregated package index built from every reachable
// source. Each entry is a published package version with its dependency
// edges. Duplicate (name, version) pairs keep the first entry added, so
// merge order decides which source wins.
type Universe struct {
	versions map[string][]PackageVersion
	seen     map[string]struct{}
}

// NewUniverse creates an empty Universe.
func NewUniverse() *Universe {
	return &Universe{
		versions: make(map[string][]PackageVersion),
		seen:     make(map[string]struct{}),
	}
}

// Add inserts one package version into the universe. It reports whether the
// entry was added; an entry with an already-present (name, version) pair is
// ignored.
func (u *Universe) Add(pv PackageVersion) bool {
	key := pv.Key()
	if _, dup := u.seen[key]; dup {
		return false
	}
	u.seen[key] = struct{}{}
	name := pv.Name.String()
	u.versions[name] = append(u.versions[name], pv)
	return true
}

// AddAll inserts every given package version, keeping first-seen entries on
// duplicates.
func (u *Universe) AddAll(pvs []PackageVersion) {
	for _, pv := range pvs {
		u.Add(pv)
	}
}

// VersionsOf returns all known versions of a package, newest first.
func (u *Universe) VersionsOf(name string) []PackageVersion {
	found := slices.Clone(u.versions[name])
	sortVersionsDescending(found)
	return found
}

// Satisfying returns the versions of a package that satisfy the constraint,
// newest first.
func (u *Universe) Satisfying(name string, constraint VersionConstraint) []PackageVersion {
	var found []PackageVersion
	for _, pv := range u.versions[name] {
		if constraint.SatisfiedBy(pv.Version) {
			found = append(found, pv)
		}
	}
	sortVersionsDescending(found)
	return found
}

// Find returns the exact (name, version) entry if the universe has one.
func (u *Universe) Find(name, version string) (PackageVersion, bool) {
	for _, pv := range u.versions[name] {
		if pv.Version == version {
			return pv, true
		}
	}
	return PackageVersion{}, false
}

// HasPackage reports whether any version of the package is known.
func (u *Universe) HasPackage(name string) bool {
	return len(u.versions[name]) > 0
}

// PackageCount returns the number of distinct package names.
func (u *Universe) PackageCount() int {
	return len(u.versions)
}

// VersionCount returns the total number of (name, version) entries.
func (u *Universe) VersionCount() int {
	return len(u.seen)
}

func sortVersionsDescending(pvs []PackageVersion) {
	slices.SortFunc(pvs, func(a, b PackageVersion) int {
		return CompareVersions(b.Version, a.Version)
	})
}
