package ports

import "go.trai.ch/larder/internal/core/domain"

// LockfileStore persists lock records.
//
//go:generate mockgen -source=lockfile.go -destination=mocks/mock_lockfile.go -package=mocks
type LockfileStore interface {
	// Load reads the lock record at the given path. A missing file is not
	// an error; it loads as an empty record.
	Load(path string) (*domain.LockRecord, error)

	// Save writes the lock record to the given path atomically.
	Save(path string, record *domain.LockRecord) error
}
