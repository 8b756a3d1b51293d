package catalog

import (
	"net/http"
	"time"

	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/core/ports"
)

var _ ports.SourceFactory = (*Factory)(nil)

// Factory builds catalog sources for a manifest. All sources share one HTTP
// client and one cache directory; each gets its own index state.
type Factory struct {
	client   *http.Client
	cacheDir string
	ttl      time.Duration
	logger   ports.Logger
}

// NewFactory creates a source factory.
func NewFactory(client *http.Client, cacheDir string, ttl time.Duration, logger ports.Logger) *Factory {
	return &Factory{
		client:   client,
		cacheDir: cacheDir,
		ttl:      ttl,
		logger:   logger,
	}
}

// ForManifest implements ports.SourceFactory.
func (f *Factory) ForManifest(m *domain.Manifest) []ports.Source {
	sources := make([]ports.Source, 0, len(m.Sources))
	for _, url := range m.Sources {
		sources = append(sources, NewSource(url, f.client, f.cacheDir, f.ttl, f.logger))
	}
	return sources
}
