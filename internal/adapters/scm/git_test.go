package scm_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/larder/internal/adapters/scm"
	"go.trai.ch/larder/internal/core/domain"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	base := []string{"-c", "user.email=dev@example.com", "-c", "user.name=dev"}
	cmd := exec.Command("git", append(base, args...)...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
	return strings.TrimSpace(string(out))
}

// initRepo creates a repository with one commit holding a package manifest.
func initRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	runGit(t, dir, "init", "-b", "main", "--quiet")
	writeMeta(t, dir, "0.1.0")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "--quiet", "-m", "initial")
	return dir
}

func writeMeta(t *testing.T, dir, version string) {
	t.Helper()
	content := "name: tools\nversion: " + version + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.MetadataFileName), []byte(content), 0o644))
}

func newFetcher(t *testing.T) *scm.GitFetcher {
	t.Helper()
	return scm.NewGitFetcher(
		filepath.Join(t.TempDir(), "cache"),
		filepath.Join(t.TempDir(), "stash"),
		time.Minute,
	)
}

func TestGitFetcherDefaultBranch(t *testing.T) {
	requireGit(t)

	repo := initRepo(t)
	fetcher := newFetcher(t)

	stage, revision, err := fetcher.Fetch(context.Background(), domain.SCMLocation{URL: repo})
	require.NoError(t, err)

	require.Equal(t, runGit(t, repo, "rev-parse", "HEAD"), revision)

	data, err := os.ReadFile(filepath.Join(stage, domain.MetadataFileName))
	require.NoError(t, err)
	require.Contains(t, string(data), "version: 0.1.0")
}

func TestGitFetcherResolvesRefs(t *testing.T) {
	requireGit(t)

	repo := initRepo(t)
	runGit(t, repo, "tag", "v1")
	writeMeta(t, repo, "0.2.0")
	runGit(t, repo, "commit", "--quiet", "-am", "bump")

	fetcher := newFetcher(t)

	t.Run("tag pins the older tree", func(t *testing.T) {
		stage, revision, err := fetcher.Fetch(context.Background(), domain.SCMLocation{URL: repo, Ref: "v1"})
		require.NoError(t, err)
		require.Equal(t, runGit(t, repo, "rev-parse", "v1^{commit}"), revision)

		data, err := os.ReadFile(filepath.Join(stage, domain.MetadataFileName))
		require.NoError(t, err)
		require.Contains(t, string(data), "version: 0.1.0")
	})

	t.Run("branch follows the newest commit", func(t *testing.T) {
		stage, revision, err := fetcher.Fetch(context.Background(), domain.SCMLocation{URL: repo, Ref: "main"})
		require.NoError(t, err)
		require.Equal(t, runGit(t, repo, "rev-parse", "main"), revision)

		data, err := os.ReadFile(filepath.Join(stage, domain.MetadataFileName))
		require.NoError(t, err)
		require.Contains(t, string(data), "version: 0.2.0")
	})
}

func TestGitFetcherUpdatesMirror(t *testing.T) {
	requireGit(t)

	repo := initRepo(t)
	cacheDir := filepath.Join(t.TempDir(), "cache")
	fetcher := scm.NewGitFetcher(cacheDir, filepath.Join(t.TempDir(), "stash"), time.Minute)

	_, first, err := fetcher.Fetch(context.Background(), domain.SCMLocation{URL: repo})
	require.NoError(t, err)

	writeMeta(t, repo, "0.3.0")
	runGit(t, repo, "commit", "--quiet", "-am", "bump")

	_, second, err := fetcher.Fetch(context.Background(), domain.SCMLocation{URL: repo})
	require.NoError(t, err)
	require.NotEqual(t, first, second, "mirror must pick up new commits")

	mirrors, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	require.Len(t, mirrors, 1, "one mirror per repository URL")
}

func TestGitFetcherFailures(t *testing.T) {
	requireGit(t)

	t.Run("unknown ref", func(t *testing.T) {
		repo := initRepo(t)
		_, _, err := newFetcher(t).Fetch(context.Background(), domain.SCMLocation{URL: repo, Ref: "does-not-exist"})
		require.ErrorIs(t, err, domain.ErrScmFetchFailed)
	})

	t.Run("unreachable repository", func(t *testing.T) {
		_, _, err := newFetcher(t).Fetch(context.Background(), domain.SCMLocation{
			URL: filepath.Join(t.TempDir(), "nowhere"),
		})
		require.ErrorIs(t, err, domain.ErrScmFetchFailed)
	})
}
