package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

// Location describes where a dependency's content comes from. It is a closed
// set: RegistryLocation, PathLocation, and SCMLocation are the only
// implementations, so consumers can type switch exhaustively.
type Location interface {
	// Kind returns the discriminator for serialization and dispatch.
	Kind() LocationKind

	fmt.Stringer

	sealedLocation()
}

// LocationKind discriminates the Location implementations.
type LocationKind string

const (
	// LocationRegistry marks a dependency served by a catalog source.
	LocationRegistry LocationKind = "registry"

	// LocationPath marks a dependency read from a local directory.
	LocationPath LocationKind = "path"

	// LocationSCM marks a dependency fetched from a version control URL.
	LocationSCM LocationKind = "scm"
)

// RegistryLocation is the default location: the dependency is looked up in
// the catalog sources declared by the manifest.
type RegistryLocation struct{}

// Kind implements Location.
func (RegistryLocation) Kind() LocationKind { return LocationRegistry }

// String implements fmt.Stringer.
func (RegistryLocation) String() string { return string(LocationRegistry) }

func (RegistryLocation) sealedLocation() {}

// PathLocation points at a package directory on the local filesystem.
type PathLocation struct {
	// Path is the package directory as declared, relative to the manifest
	// directory unless absolute. The declared form is kept so lock records
	// stay portable across checkouts.
	Path string
}

// Kind implements Location.
func (PathLocation) Kind() LocationKind { return LocationPath }

// String implements fmt.Stringer.
func (l PathLocation) String() string { return "path:" + l.Path }

func (PathLocation) sealedLocation() {}

// SCMLocation points at a version control repository.
type SCMLocation struct {
	// URL is the clone URL of the repository.
	URL string

	// Ref is the branch, tag, or revision to fetch. Empty means the
	// repository default branch.
	Ref string
}

// Kind implements Location.
func (SCMLocation) Kind() LocationKind { return LocationSCM }

// String implements fmt.Stringer.
func (l SCMLocation) String() string {
	if l.Ref == "" {
		return "git:" + l.URL
	}
	return "git:" + l.URL + "#" + l.Ref
}

func (SCMLocation) sealedLocation() {}

// LocationsEqual reports whether two locations denote the same origin.
// A nil location is treated as RegistryLocation.
func LocationsEqual(a, b Location) bool {
	return LocationOrRegistry(a) == LocationOrRegistry(b)
}

// LocationOrRegistry returns the location unchanged, substituting
// RegistryLocation for nil. Dependencies declared without an explicit
// location are registry dependencies.
func LocationOrRegistry(l Location) Location {
	if l == nil {
		return RegistryLocation{}
	}
	return l
}

// ParseLocation is the inverse of Location.String. It accepts the forms
// "registry", "path:<dir>", and "git:<url>" with an optional "#<ref>".
func ParseLocation(s string) (Location, error) {
	switch {
	case s == string(LocationRegistry):
		return RegistryLocation{}, nil

	case strings.HasPrefix(s, "path:"):
		dir := strings.TrimPrefix(s, "path:")
		if dir == "" {
			return nil, zerr.With(zerr.New("path location has no directory"), "value", s)
		}
		return PathLocation{Path: dir}, nil

	case strings.HasPrefix(s, "git:"):
		rest := strings.TrimPrefix(s, "git:")
		url, ref, _ := strings.Cut(rest, "#")
		if url == "" {
			return nil, zerr.With(zerr.New("git location has no url"), "value", s)
		}
		return SCMLocation{URL: url, Ref: ref}, nil

	default:
		return nil, zerr.With(zerr.New("unrecognized location"), "value", s)
	}
}
