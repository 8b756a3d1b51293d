package domain

// PackageVersion is one entry of a source's universe index: a published
// package version together with its dependency edges.
type PackageVersion struct {
	// Name is the canonical package name.
	Name InternedString

	// Version is the exact published version.
	Version string

	// Dependencies maps dependency names to their raw constraint
	// expressions as published by the source.
	Dependencies map[string]string

	// SourceID identifies the source whose index produced this entry.
	SourceID string
}

// Key returns the identity of the entry within a universe.
func (pv PackageVersion) Key() string {
	return pv.Name.String() + "-" + pv.Version
}

// RemotePackage is a downloadable handle for an exact package version,
// produced by a source lookup.
type RemotePackage struct {
	// Name is the canonical package name.
	Name string

	// Version is the exact version to download.
	Version string

	// URL is where the package archive can be fetched.
	URL string
}

// PackageMetadata is the self-description every package carries in its
// metadata file: its identity plus the constraints of its dependencies.
type PackageMetadata struct {
	// Name is the package's declared name.
	Name string

	// Version is the package's declared version.
	Version string

	// Dependencies maps dependency names to constraint expressions.
	Dependencies map[string]string
}

// OutdatedPackage pairs a locked version with a newer published version
// that still satisfies the declared constraint.
type OutdatedPackage struct {
	// Name is the canonical package name.
	Name InternedString

	// Locked is the version currently recorded in the lock graph.
	Locked string

	// Candidate is the newest satisfying version found across sources.
	Candidate string

	// SourceID identifies the source publishing the candidate.
	SourceID string
}

// CachedPackage is a handle to materialized package content: an exact
// version present in the content store or, for path dependencies, in place
// on disk.
type CachedPackage struct {
	// Name is the canonical package name.
	Name InternedString

	// Version is the exact materialized version.
	Version string

	// Path is the directory holding the package content.
	Path string

	// Digest is the content digest of the package directory.
	Digest string

	// Dependencies maps dependency names to constraint expressions, read
	// from the package metadata at import time.
	Dependencies map[string]string
}
