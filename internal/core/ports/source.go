package ports

import (
	"context"

	"go.trai.ch/larder/internal/core/domain"
)

//go:generate mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks

// Source is one catalog endpoint serving a universe index. A Source is
// stateful: BuildUniverse fetches and retains the index, and the lookup
// methods answer from whatever was fetched last.
type Source interface {
	// ID identifies the source, typically its base URL. It is recorded in
	// the lock graph as package provenance.
	ID() string

	// BuildUniverse fetches the source's index. Failures to reach or parse
	// the catalog are reported wrapped in domain.ErrCatalogUnavailable so
	// callers can contain them; any other error kind is unrecoverable.
	BuildUniverse(ctx context.Context) error

	// Universe returns the entries fetched by the last BuildUniverse call.
	Universe() []domain.PackageVersion

	// PackageFor returns a download handle for an exact package version.
	// Returns domain.ErrPackageNotFound if the fetched index has no such
	// entry.
	PackageFor(name, version string) (domain.RemotePackage, error)
}

// SourceFactory builds the Source set for a manifest, one per declared
// catalog URL, preserving the manifest's priority order.
type SourceFactory interface {
	ForManifest(m *domain.Manifest) []Source
}
