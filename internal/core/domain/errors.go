package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrCatalogUnavailable is returned when a source's catalog cannot be reached or parsed.
	// Universe construction contains this kind per source instead of failing the install.
	ErrCatalogUnavailable = zerr.New("catalog unavailable")

	// ErrPackageNotFound is returned when no source can provide a requested package version.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrNoSolution is returned when no set of versions satisfies all constraints.
	ErrNoSolution = zerr.New("no version satisfies all constraints")

	// ErrInvalidConstraint is returned when a version range expression cannot be parsed.
	ErrInvalidConstraint = zerr.New("invalid version constraint")

	// ErrManifestNotFound is returned when no manifest file exists in the current directory or any parent.
	ErrManifestNotFound = zerr.New("could not find manifest file")

	// ErrManifestReadFailed is returned when the manifest file cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest file")

	// ErrManifestParseFailed is returned when the manifest file cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse manifest file")

	// ErrManifestInvalid is returned when a manifest declaration is contradictory or incomplete.
	ErrManifestInvalid = zerr.New("invalid manifest declaration")

	// ErrDuplicateDependency is returned when a manifest declares the same package twice.
	ErrDuplicateDependency = zerr.New("duplicate dependency")

	// ErrLockfileReadFailed is returned when the lock file cannot be read.
	ErrLockfileReadFailed = zerr.New("failed to read lock file")

	// ErrLockfileParseFailed is returned when the lock file cannot be parsed.
	ErrLockfileParseFailed = zerr.New("failed to parse lock file")

	// ErrLockfileWriteFailed is returned when the lock file cannot be written.
	ErrLockfileWriteFailed = zerr.New("failed to write lock file")

	// ErrStoreCreateFailed is returned when the content store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create content store directory")

	// ErrStoreImportFailed is returned when package content cannot be imported into the store.
	ErrStoreImportFailed = zerr.New("failed to import package into store")

	// ErrMetadataMissing is returned when package content has no metadata file.
	ErrMetadataMissing = zerr.New("package metadata file not found")

	// ErrMetadataParseFailed is returned when a package metadata file cannot be parsed.
	ErrMetadataParseFailed = zerr.New("failed to parse package metadata")

	// ErrMetadataMismatch is returned when package metadata contradicts the requested identity.
	ErrMetadataMismatch = zerr.New("package metadata does not match requested package")

	// ErrDownloadFailed is returned when a package archive cannot be downloaded.
	ErrDownloadFailed = zerr.New("failed to download package archive")

	// ErrArchiveExtractFailed is returned when a downloaded archive cannot be unpacked.
	ErrArchiveExtractFailed = zerr.New("failed to extract package archive")

	// ErrScmFetchFailed is returned when fetching a repository dependency fails.
	ErrScmFetchFailed = zerr.New("failed to fetch repository")

	// ErrPathMissing is returned when a path dependency points at a directory that does not exist.
	ErrPathMissing = zerr.New("path dependency directory not found")

	// ErrNotMaterialized is returned when a dependency marked as downloaded has no cached content.
	ErrNotMaterialized = zerr.New("dependency has no materialized content")

	// ErrDependencyNotDeclared is returned when an update names a package the manifest does not declare.
	ErrDependencyNotDeclared = zerr.New("dependency not declared in manifest")
)

// OutdatedDependencyError reports a locked version that no longer satisfies
// the manifest's current constraint. Reconciliation fails with it before any
// source or store activity happens.
type OutdatedDependencyError struct {
	// Locked is the lock graph entry that violates the constraint.
	Locked LockedEntry

	// Declared is the manifest dependency whose constraint is violated.
	Declared Dependency
}

// Error implements the error interface.
func (e *OutdatedDependencyError) Error() string {
	return fmt.Sprintf("the lock file has %s locked at %s which no longer satisfies %q; run update for this package",
		e.Locked.Name.String(), e.Locked.Version, e.Declared.Constraint.String())
}

// Message returns the human-readable summary without metadata.
func (e *OutdatedDependencyError) Message() string {
	return e.Error()
}
