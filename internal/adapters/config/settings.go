// Package config resolves tool-level settings from the environment.
package config

import (
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/zerr"
)

// Environment variables recognized by the loader.
const (
	EnvHome           = "LARDER_HOME"
	EnvDefaultSource  = "LARDER_DEFAULT_SOURCE"
	EnvCatalogTTL     = "LARDER_CATALOG_TTL"
	EnvRequestTimeout = "LARDER_REQUEST_TIMEOUT"
)

// DefaultSource is the catalog consulted when a manifest declares none.
const DefaultSource = "https://packages.larder.sh"

const (
	defaultCatalogTTL     = 30 * time.Minute
	defaultRequestTimeout = 30 * time.Second
)

// Settings holds the resolved tool configuration: where larder keeps its
// store and caches, and the network bounds adapters operate under.
type Settings struct {
	// Home is the base directory for the store, caches, and stash.
	Home string

	// DefaultSource is the catalog URL used when a manifest lists no
	// sources.
	DefaultSource string

	// CatalogTTL is how long a cached catalog index is served without
	// refetching.
	CatalogTTL time.Duration

	// RequestTimeout bounds every catalog, download, and repository
	// operation.
	RequestTimeout time.Duration
}

// Load resolves settings from the environment, falling back to defaults.
func Load() (*Settings, error) {
	s := &Settings{
		Home:           os.Getenv(EnvHome),
		DefaultSource:  os.Getenv(EnvDefaultSource),
		CatalogTTL:     defaultCatalogTTL,
		RequestTimeout: defaultRequestTimeout,
	}

	if s.Home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to resolve home directory")
		}
		s.Home = filepath.Join(userHome, domain.LarderDirName)
	}
	if s.DefaultSource == "" {
		s.DefaultSource = DefaultSource
	}

	if raw := os.Getenv(EnvCatalogTTL); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid catalog ttl"), "value", raw)
		}
		s.CatalogTTL = ttl
	}
	if raw := os.Getenv(EnvRequestTimeout); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid request timeout"), "value", raw)
		}
		s.RequestTimeout = timeout
	}

	return s, nil
}

// StorePath returns the content store directory.
func (s *Settings) StorePath() string {
	return domain.StorePath(s.Home)
}

// CatalogCachePath returns the cached catalog index directory.
func (s *Settings) CatalogCachePath() string {
	return domain.CatalogCachePath(s.Home)
}

// ScmCachePath returns the cached repository clone directory.
func (s *Settings) ScmCachePath() string {
	return domain.ScmCachePath(s.Home)
}

// StashPath returns the staging directory for in-flight downloads.
func (s *Settings) StashPath() string {
	return domain.StashPath(s.Home)
}
