// Package cas implements the on-disk content store for materialized
// packages.
package cas

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/larder/internal/adapters/pkgmeta"
	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ContentStore = (*Store)(nil)

// Store keeps one directory per (name, version) pair under a single root.
// Package identity comes from the metadata file each package carries;
// content is verified against it on import.
type Store struct {
	root   string
	hasher ports.Hasher

	mu sync.Mutex
}

// NewStore creates the store root if needed and returns a Store over it.
func NewStore(root string, hasher ports.Hasher) (*Store, error) {
	root = filepath.Clean(root)
	if err := os.MkdirAll(root, domain.DirPerm); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrStoreCreateFailed, err), "path", root)
	}
	return &Store{root: root, hasher: hasher}, nil
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) packageDir(name, version string) string {
	return filepath.Join(s.root, name+"-"+version)
}

// Import finalizes staged package content into the store. The stage's
// metadata must agree with the given name and, when non-empty, the given
// version; an empty version adopts the metadata's. Importing an already
// present (name, version) discards the stage and returns the existing
// handle.
func (s *Store) Import(_ context.Context, name, version, stagePath string) (*domain.CachedPackage, error) {
	meta, err := pkgmeta.Read(stagePath)
	if err != nil {
		return nil, err
	}

	if meta.Name != name {
		return nil, zerr.With(zerr.With(domain.ErrMetadataMismatch,
			"expected", name),
			"found", meta.Name)
	}
	if version == "" {
		version = meta.Version
	} else if meta.Version != version {
		return nil, zerr.With(domain.ErrMetadataMismatch,
			"package", name,
			"expected", version,
			"found", meta.Version,
		)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dest := s.packageDir(name, version)
	if _, err := os.Stat(dest); err == nil {
		_ = os.RemoveAll(stagePath)
		return s.handle(dest, meta)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, zerr.With(errors.Join(domain.ErrStoreImportFailed, err), "path", dest)
	}

	if err := os.Rename(stagePath, dest); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrStoreImportFailed, err),
			"package", name,
			"version", version,
		)
	}

	return s.handle(dest, meta)
}

// Lookup returns the handle for an exact (name, version) pair if the store
// has it.
func (s *Store) Lookup(name, version string) (*domain.CachedPackage, bool) {
	dir := s.packageDir(name, version)
	meta, err := pkgmeta.Read(dir)
	if err != nil || meta.Name != name || meta.Version != version {
		return nil, false
	}

	pkg, err := s.handle(dir, meta)
	if err != nil {
		return nil, false
	}
	return pkg, true
}

func (s *Store) handle(dir string, meta domain.PackageMetadata) (*domain.CachedPackage, error) {
	digest, err := s.hasher.ComputeTreeDigest(dir)
	if err != nil {
		return nil, err
	}
	return &domain.CachedPackage{
		Name:         domain.NewInternedString(meta.Name),
		Version:      meta.Version,
		Path:         dir,
		Digest:       digest,
		Dependencies: meta.Dependencies,
	}, nil
}
