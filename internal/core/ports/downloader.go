package ports

import (
	"context"

	"go.trai.ch/larder/internal/core/domain"
)

// Downloader fetches a package archive and unpacks it into a staging
// directory.
//
//go:generate mockgen -source=downloader.go -destination=mocks/mock_downloader.go -package=mocks
type Downloader interface {
	// Download fetches the archive behind the remote handle and returns
	// the staging directory holding the unpacked content. The caller owns
	// the directory and imports or discards it.
	Download(ctx context.Context, remote domain.RemotePackage) (string, error)
}
