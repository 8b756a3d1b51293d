// Package catalog implements registry sources backed by a JSON universe
// endpoint. Each source keeps a TTL disk cache of its index so repeated
// installs don't refetch, and serves the stale cache when the endpoint is
// unreachable.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/core/ports"
	"go.trai.ch/zerr"
)

// universePath is the index endpoint relative to a source's base URL.
const universePath = "/universe"

var _ ports.Source = (*Source)(nil)

// universeIndex is the wire format of the index endpoint: package name to
// version to entry.
type universeIndex map[string]map[string]indexEntry

type indexEntry struct {
	// URL overrides the derived archive location when set.
	URL          string            `json:"url,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Source serves one catalog endpoint. BuildUniverse fetches and retains the
// index; the lookup methods answer from the retained copy, so a source whose
// build was skipped or failed knows no packages.
type Source struct {
	baseURL  string
	client   *http.Client
	cacheDir string
	ttl      time.Duration
	logger   ports.Logger

	mu      sync.RWMutex
	entries []domain.PackageVersion
	remotes map[string]string
}

// NewSource creates a source for one catalog base URL.
func NewSource(baseURL string, client *http.Client, cacheDir string, ttl time.Duration, logger ports.Logger) *Source {
	return &Source{
		baseURL:  baseURL,
		client:   client,
		cacheDir: cacheDir,
		ttl:      ttl,
		logger:   logger,
	}
}

// ID implements ports.Source.
func (s *Source) ID() string {
	return s.baseURL
}

// BuildUniverse implements ports.Source. A fresh cached index short-circuits
// the fetch entirely; a fetch failure falls back to the cache regardless of
// age before giving up.
func (s *Source) BuildUniverse(ctx context.Context) error {
	if data, ok := s.readCache(false); ok {
		if err := s.install(data); err == nil {
			return nil
		}
	}

	data, err := s.fetchIndex(ctx)
	if err != nil {
		if stale, ok := s.readCache(true); ok {
			if installErr := s.install(stale); installErr == nil {
				s.logger.Warn(fmt.Sprintf("source %s is unreachable, serving cached catalog", s.baseURL))
				return nil
			}
		}
		return err
	}

	if err := s.install(data); err != nil {
		return err
	}
	s.writeCache(data)
	return nil
}

// Universe implements ports.Source.
func (s *Source) Universe() []domain.PackageVersion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// PackageFor implements ports.Source.
func (s *Source) PackageFor(name, version string) (domain.RemotePackage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	explicit, ok := s.remotes[name+"-"+version]
	if !ok {
		return domain.RemotePackage{}, zerr.With(zerr.With(zerr.With(domain.ErrPackageNotFound,
			"package", name),
			"version", version),
			"source", s.baseURL)
	}

	url := explicit
	if url == "" {
		url = fmt.Sprintf("%s/packages/%s/%s.tar.gz", strings.TrimSuffix(s.baseURL, "/"), name, version)
	}
	return domain.RemotePackage{Name: name, Version: version, URL: url}, nil
}

func (s *Source) fetchIndex(ctx context.Context) ([]byte, error) {
	url := strings.TrimSuffix(s.baseURL, "/") + universePath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrCatalogUnavailable, err), "source", s.baseURL)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrCatalogUnavailable, err), "source", s.baseURL)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, zerr.With(zerr.With(domain.ErrCatalogUnavailable,
			"source", s.baseURL),
			"status", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrCatalogUnavailable, err), "source", s.baseURL)
	}
	return data, nil
}

// install parses index data and swaps it in as the source's current
// universe, ordered by name ascending and version descending.
func (s *Source) install(data []byte) error {
	var idx universeIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return zerr.With(errors.Join(domain.ErrCatalogUnavailable, err), "source", s.baseURL)
	}

	entries := make([]domain.PackageVersion, 0, len(idx))
	remotes := make(map[string]string)

	for _, name := range slices.Sorted(maps.Keys(idx)) {
		versions := slices.SortedFunc(maps.Keys(idx[name]), func(a, b string) int {
			return domain.CompareVersions(b, a)
		})
		for _, version := range versions {
			entry := idx[name][version]
			pv := domain.PackageVersion{
				Name:         domain.NewInternedString(name),
				Version:      version,
				Dependencies: entry.Dependencies,
				SourceID:     s.baseURL,
			}
			entries = append(entries, pv)
			remotes[pv.Key()] = entry.URL
		}
	}

	s.mu.Lock()
	s.entries = entries
	s.remotes = remotes
	s.mu.Unlock()
	return nil
}

func (s *Source) cachePath() string {
	return filepath.Join(s.cacheDir, fmt.Sprintf("%016x.json", xxhash.Sum64String(s.baseURL)))
}

func (s *Source) readCache(stale bool) ([]byte, bool) {
	info, err := os.Stat(s.cachePath())
	if err != nil {
		return nil, false
	}
	if !stale && time.Since(info.ModTime()) > s.ttl {
		return nil, false
	}
	data, err := os.ReadFile(s.cachePath())
	if err != nil {
		return nil, false
	}
	return data, true
}

// writeCache persists a fetched index. Failing to cache never fails the
// build; the next install just refetches.
func (s *Source) writeCache(data []byte) {
	if err := os.MkdirAll(s.cacheDir, domain.DirPerm); err != nil {
		s.logger.Warn(fmt.Sprintf("cannot cache catalog for %s: %v", s.baseURL, err))
		return
	}
	if err := os.WriteFile(s.cachePath(), data, domain.FilePerm); err != nil {
		s.logger.Warn(fmt.Sprintf("cannot cache catalog for %s: %v", s.baseURL, err))
	}
}
