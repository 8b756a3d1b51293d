package domain

import "path/filepath"

const (
	// LarderDirName is the name of the internal workspace directory.
	LarderDirName = ".larder"

	// StoreDirName is the name of the content store directory.
	StoreDirName = "store"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// CatalogDirName is the name of the catalog cache directory.
	CatalogDirName = "catalog"

	// ScmDirName is the name of the repository cache directory.
	ScmDirName = "scm"

	// StashDirName is the name of the staging directory for in-flight downloads.
	StashDirName = "stash"

	// ManifestFileName is the name of the project manifest file.
	ManifestFileName = "larder.yaml"

	// LockFileName is the name of the lock file.
	LockFileName = "larder.lock"

	// MetadataFileName is the name of the metadata file every package carries.
	MetadataFileName = "package.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// StorePath returns the content store directory under a larder home.
func StorePath(home string) string {
	return filepath.Join(home, StoreDirName)
}

// CatalogCachePath returns the cached catalog index directory under a larder
// home.
func CatalogCachePath(home string) string {
	return filepath.Join(home, CacheDirName, CatalogDirName)
}

// ScmCachePath returns the cached repository clone directory under a larder
// home.
func ScmCachePath(home string) string {
	return filepath.Join(home, CacheDirName, ScmDirName)
}

// StashPath returns the in-flight download staging directory under a larder
// home.
func StashPath(home string) string {
	return filepath.Join(home, StashDirName)
}
