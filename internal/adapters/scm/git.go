// Package scm materializes repository dependencies with the system git.
// Each repository is mirrored once into a bare cache clone; fetches update
// the mirror and export the requested tree into a staging directory.
package scm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/larder/internal/adapters/fetch"
	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ScmFetcher = (*GitFetcher)(nil)

// GitFetcher implements ports.ScmFetcher by shelling out to git.
type GitFetcher struct {
	cacheDir string
	stashDir string
	timeout  time.Duration
}

// NewGitFetcher creates a fetcher caching mirrors under cacheDir and staging
// exported trees under stashDir. timeout bounds each git invocation.
func NewGitFetcher(cacheDir, stashDir string, timeout time.Duration) *GitFetcher {
	return &GitFetcher{
		cacheDir: cacheDir,
		stashDir: stashDir,
		timeout:  timeout,
	}
}

// Fetch implements ports.ScmFetcher.
func (f *GitFetcher) Fetch(ctx context.Context, location domain.SCMLocation) (string, string, error) {
	mirror, err := f.syncMirror(ctx, location.URL)
	if err != nil {
		return "", "", err
	}

	ref := location.Ref
	if ref == "" {
		ref = "HEAD"
	}
	out, err := f.git(ctx, "-C", mirror, "rev-parse", "--verify", ref+"^{commit}")
	if err != nil {
		return "", "", zerr.With(err, "url", location.URL, "ref", location.Ref)
	}
	revision := strings.TrimSpace(string(out))

	if span, ok := ports.SpanFromContext(ctx); ok {
		span.Log(fmt.Sprintf("%s at %.12s", location.URL, revision))
	}

	stage, err := f.export(ctx, mirror, revision)
	if err != nil {
		return "", "", zerr.With(err, "url", location.URL, "revision", revision)
	}
	return stage, revision, nil
}

// syncMirror clones the repository into the cache on first use and updates
// branches and tags on every later one.
func (f *GitFetcher) syncMirror(ctx context.Context, url string) (string, error) {
	mirror := filepath.Join(f.cacheDir, fmt.Sprintf("%016x.git", xxhash.Sum64String(url)))

	if _, err := os.Stat(mirror); err != nil {
		if err := os.MkdirAll(f.cacheDir, domain.DirPerm); err != nil {
			return "", zerr.With(errors.Join(domain.ErrScmFetchFailed, err), "path", f.cacheDir)
		}
		if _, err := f.git(ctx, "clone", "--quiet", "--bare", url, mirror); err != nil {
			return "", zerr.With(err, "url", url)
		}
		return mirror, nil
	}

	_, err := f.git(ctx, "-C", mirror, "fetch", "--quiet", "--force", "origin",
		"refs/heads/*:refs/heads/*", "refs/tags/*:refs/tags/*")
	if err != nil {
		return "", zerr.With(err, "url", url)
	}
	return mirror, nil
}

// export writes the tree at revision into a fresh staging directory.
func (f *GitFetcher) export(ctx context.Context, mirror, revision string) (string, error) {
	if err := os.MkdirAll(f.stashDir, domain.DirPerm); err != nil {
		return "", zerr.With(errors.Join(domain.ErrScmFetchFailed, err), "path", f.stashDir)
	}
	stage, err := os.MkdirTemp(f.stashDir, "scm-")
	if err != nil {
		return "", zerr.With(errors.Join(domain.ErrScmFetchFailed, err), "path", f.stashDir)
	}

	tree, err := f.git(ctx, "-C", mirror, "archive", "--format=tar", revision)
	if err != nil {
		_ = os.RemoveAll(stage)
		return "", err
	}
	if err := fetch.Untar(bytes.NewReader(tree), stage); err != nil {
		_ = os.RemoveAll(stage)
		return "", err
	}
	return stage, nil
}

func (f *GitFetcher) git(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	// Never let git sit on a credential prompt; a protected repository is
	// a fetch failure, not a hang.
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrScmFetchFailed, err),
			"command", "git "+strings.Join(args, " "),
			"stderr", strings.TrimSpace(stderr.String()),
		)
	}
	return stdout.Bytes(), nil
}
