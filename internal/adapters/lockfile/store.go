// Package lockfile persists lock records as YAML files next to the manifest.
package lockfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.LockfileStore = (*Store)(nil)

// lockFile is the on-disk schema of a lock record.
type lockFile struct {
	Version  int                         `yaml:"version"`
	Declared map[string]declaredEntryDTO `yaml:"declared,omitempty"`
	Graph    map[string]lockedEntryDTO   `yaml:"graph,omitempty"`
}

type declaredEntryDTO struct {
	Constraint string `yaml:"constraint"`
	// Location is omitted for registry dependencies, the common case.
	Location string `yaml:"location,omitempty"`
}

type lockedEntryDTO struct {
	Version      string            `yaml:"version"`
	Source       string            `yaml:"source,omitempty"`
	Dependencies map[string]string `yaml:"dependencies,omitempty"`
}

// Store reads and writes lock records.
type Store struct{}

// NewStore creates a lock file store.
func NewStore() *Store {
	return &Store{}
}

// Load reads the lock record at path. A missing file loads as an empty
// record so first installs need no special casing.
func (s *Store) Load(path string) (*domain.LockRecord, error) {
	//nolint:gosec // Path is derived from the manifest location
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewLockRecord(), nil
		}
		return nil, zerr.With(errors.Join(domain.ErrLockfileReadFailed, err), "path", path)
	}

	var raw lockFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrLockfileParseFailed, err), "path", path)
	}
	if raw.Version != domain.LockVersion {
		return nil, zerr.With(zerr.With(zerr.With(domain.ErrLockfileParseFailed,
			"path", path),
			"reason", "unsupported lock version"),
			"version", raw.Version)
	}

	record := domain.NewLockRecord()
	for name, entry := range raw.Declared {
		constraint, err := domain.ParseConstraint(entry.Constraint)
		if err != nil {
			return nil, zerr.With(zerr.With(errors.Join(domain.ErrLockfileParseFailed, err),
				"path", path),
				"package", name)
		}
		location := domain.Location(domain.RegistryLocation{})
		if entry.Location != "" {
			location, err = domain.ParseLocation(entry.Location)
			if err != nil {
				return nil, zerr.With(zerr.With(errors.Join(domain.ErrLockfileParseFailed, err),
					"path", path),
					"package", name)
			}
		}
		record.RestoreDeclared(domain.DeclaredEntry{
			Name:       domain.NewInternedString(name),
			Constraint: constraint,
			Location:   location,
		})
	}
	for name, entry := range raw.Graph {
		record.RestoreGraph(domain.LockedEntry{
			Name:         domain.NewInternedString(name),
			Version:      entry.Version,
			SourceID:     entry.Source,
			Dependencies: entry.Dependencies,
		})
	}

	return record, nil
}

// Save writes the lock record to path. The write goes through a temporary
// file in the same directory so a crash never leaves a half-written lock.
func (s *Store) Save(path string, record *domain.LockRecord) error {
	raw := lockFile{
		Version:  domain.LockVersion,
		Declared: make(map[string]declaredEntryDTO),
		Graph:    make(map[string]lockedEntryDTO),
	}

	for _, name := range record.DeclaredNames() {
		entry, _ := record.Declared(name)
		dto := declaredEntryDTO{Constraint: entry.Constraint.String()}
		if loc := domain.LocationOrRegistry(entry.Location); loc.Kind() != domain.LocationRegistry {
			dto.Location = loc.String()
		}
		raw.Declared[name] = dto
	}
	for _, entry := range record.Graph().Entries() {
		raw.Graph[entry.Name.String()] = lockedEntryDTO{
			Version:      entry.Version,
			Source:       entry.SourceID,
			Dependencies: entry.Dependencies,
		}
	}

	data, err := yaml.Marshal(raw)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrLockfileWriteFailed, err), "path", path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), domain.LockFileName+"-*")
	if err != nil {
		return zerr.With(errors.Join(domain.ErrLockfileWriteFailed, err), "path", path)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(errors.Join(domain.ErrLockfileWriteFailed, err), "path", path)
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return zerr.With(errors.Join(domain.ErrLockfileWriteFailed, err), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(errors.Join(domain.ErrLockfileWriteFailed, err), "path", path)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return zerr.With(errors.Join(domain.ErrLockfileWriteFailed, err), "path", path)
	}
	return nil
}
