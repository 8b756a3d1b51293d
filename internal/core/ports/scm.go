package ports

import (
	"context"

	"go.trai.ch/larder/internal/core/domain"
)

// ScmFetcher materializes repository-located dependencies.
//
//go:generate mockgen -source=scm.go -destination=mocks/mock_scm.go -package=mocks
type ScmFetcher interface {
	// Fetch clones or updates the repository behind the location, checks
	// out its ref, and exports the tree into a staging directory. It
	// returns the staging directory and the revision the ref resolved to.
	Fetch(ctx context.Context, location domain.SCMLocation) (stagePath, revision string, err error)
}
