package ports

// Hasher defines the interface for computing content digests.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeTreeDigest computes a deterministic digest over a directory
	// tree: file paths and file contents both contribute.
	ComputeTreeDigest(root string) (string, error)
}
