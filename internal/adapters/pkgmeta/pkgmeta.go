// Package pkgmeta reads the metadata file every package carries at its root.
package pkgmeta

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

type metadataFile struct {
	Name         string            `yaml:"name"`
	Version      string            `yaml:"version"`
	Dependencies map[string]string `yaml:"dependencies,omitempty"`
}

// Read loads the metadata file from a package directory.
func Read(dir string) (domain.PackageMetadata, error) {
	path := filepath.Join(dir, domain.MetadataFileName)

	//nolint:gosec // Path is derived from a store or manifest location
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.PackageMetadata{}, zerr.With(domain.ErrMetadataMissing, "path", path)
		}
		return domain.PackageMetadata{}, zerr.With(errors.Join(domain.ErrMetadataMissing, err), "path", path)
	}

	var raw metadataFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.PackageMetadata{}, zerr.With(errors.Join(domain.ErrMetadataParseFailed, err), "path", path)
	}

	if raw.Name == "" || raw.Version == "" {
		return domain.PackageMetadata{}, zerr.With(zerr.With(domain.ErrMetadataParseFailed,
			"path", path),
			"reason", "name and version are required")
	}

	for depName, expr := range raw.Dependencies {
		if _, err := domain.ParseConstraint(expr); err != nil {
			return domain.PackageMetadata{}, zerr.With(zerr.With(errors.Join(domain.ErrMetadataParseFailed, err),
				"path", path),
				"dependency", depName)
		}
	}

	return domain.PackageMetadata{
		Name:         raw.Name,
		Version:      raw.Version,
		Dependencies: raw.Dependencies,
	}, nil
}
