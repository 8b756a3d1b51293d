// Package fetch downloads package archives over HTTP and unpacks them into
// staging directories under the stash.
package fetch

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Downloader = (*Downloader)(nil)

// Downloader fetches gzipped tar archives.
type Downloader struct {
	client   *http.Client
	stashDir string
}

// NewDownloader creates a downloader staging into stashDir.
func NewDownloader(client *http.Client, stashDir string) *Downloader {
	return &Downloader{client: client, stashDir: stashDir}
}

// Download implements ports.Downloader. A failed download leaves nothing
// behind in the stash.
func (d *Downloader) Download(ctx context.Context, remote domain.RemotePackage) (string, error) {
	if err := os.MkdirAll(d.stashDir, domain.DirPerm); err != nil {
		return "", zerr.With(errors.Join(domain.ErrDownloadFailed, err), "path", d.stashDir)
	}
	stage, err := os.MkdirTemp(d.stashDir, fmt.Sprintf("%s-%s-", remote.Name, remote.Version))
	if err != nil {
		return "", zerr.With(errors.Join(domain.ErrDownloadFailed, err), "path", d.stashDir)
	}

	if err := d.fill(ctx, remote, stage); err != nil {
		_ = os.RemoveAll(stage)
		return "", err
	}
	return stage, nil
}

func (d *Downloader) fill(ctx context.Context, remote domain.RemotePackage, stage string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remote.URL, nil)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrDownloadFailed, err), "url", remote.URL)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return zerr.With(zerr.With(errors.Join(domain.ErrDownloadFailed, err),
			"package", remote.Name),
			"url", remote.URL)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return zerr.With(zerr.With(zerr.With(domain.ErrDownloadFailed,
			"package", remote.Name),
			"url", remote.URL),
			"status", resp.StatusCode)
	}

	gz, err := gzip.NewReader(resp.Body)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrArchiveExtractFailed, err), "package", remote.Name)
	}
	defer func() {
		_ = gz.Close()
	}()

	return Untar(gz, stage)
}

// Untar unpacks a tar stream into dest. Entries that would escape dest are
// rejected; entry kinds other than files and directories are skipped.
func Untar(r io.Reader, dest string) error {
	dest = filepath.Clean(dest)
	tr := tar.NewReader(r)

	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return zerr.With(errors.Join(domain.ErrArchiveExtractFailed, err), "path", dest)
		}

		target := filepath.Join(dest, filepath.FromSlash(hdr.Name))
		if target != dest && !strings.HasPrefix(target, dest+string(os.PathSeparator)) {
			return zerr.With(zerr.With(domain.ErrArchiveExtractFailed,
				"reason", "entry escapes staging directory"),
				"entry", hdr.Name)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, domain.DirPerm); err != nil {
				return zerr.With(errors.Join(domain.ErrArchiveExtractFailed, err), "entry", hdr.Name)
			}
		case tar.TypeReg:
			if err := writeEntry(target, hdr, tr); err != nil {
				return err
			}
		}
	}
}

func writeEntry(target string, hdr *tar.Header, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return zerr.With(errors.Join(domain.ErrArchiveExtractFailed, err), "entry", hdr.Name)
	}

	//nolint:gosec // Target is confined to the staging directory by the caller
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, hdr.FileInfo().Mode().Perm())
	if err != nil {
		return zerr.With(errors.Join(domain.ErrArchiveExtractFailed, err), "entry", hdr.Name)
	}

	//nolint:gosec // Archive size is bounded by trust in the source
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return zerr.With(errors.Join(domain.ErrArchiveExtractFailed, err), "entry", hdr.Name)
	}

	if err := f.Close(); err != nil {
		return zerr.With(errors.Join(domain.ErrArchiveExtractFailed, err), "entry", hdr.Name)
	}
	return nil
}
