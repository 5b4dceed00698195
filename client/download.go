package client

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/uamcli/uamcli/api"
)

// DownloadURLs lists every file of the asset version together with a
// time-limited download URL for each.
func (c *Client) DownloadURLs(ctx context.Context, identity api.AssetIdentity) ([]api.DownloadURL, error) {
	p := c.assetPath(identity, "download-urls")
	resp, err := c.sendRequest(ctx, c.servicesURL, http.MethodGet, p, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrAssetNotFound
	}

	var body api.DownloadURLsResponse
	if err := parseResponse(resp, &body); err != nil {
		return nil, err
	}
	return body.Files, nil
}

// DownloadOptions configures a download.
type DownloadOptions struct {
	// Target directory. When empty the OS default downloads directory is
	// used; if none can be resolved the download fails with
	// ErrNoDownloadDirectory.
	Directory string

	// Optional per-file completion callback.
	Progress ProgressFunc

	// Pre-resolved URL list. Fetched from the service when nil.
	URLs []api.DownloadURL
}

// DownloadAssetFiles fetches all files of an asset version into a local
// directory, one file at a time. There is no resume or checksum handling; a
// failed file aborts the remaining ones.
func (c *Client) DownloadAssetFiles(
	ctx context.Context,
	identity api.AssetIdentity,
	opts *DownloadOptions,
) error {
	if opts == nil {
		opts = &DownloadOptions{}
	}

	target := opts.Directory
	if target == "" {
		target = xdg.UserDirs.Download
	}
	if target == "" {
		return ErrNoDownloadDirectory
	}

	urls := opts.URLs
	if urls == nil {
		var err error
		if urls, err = c.DownloadURLs(ctx, identity); err != nil {
			return err
		}
	}

	for _, file := range urls {
		n, err := c.downloadFile(ctx, file, target)
		if err != nil {
			return err
		}
		if opts.Progress != nil {
			opts.Progress(file.Path, n)
		}
	}
	return nil
}

// downloadFile streams one URL to its place under the target directory.
func (c *Client) downloadFile(ctx context.Context, file api.DownloadURL, targetDir string) (int64, error) {
	localPath := filepath.Join(targetDir, filepath.FromSlash(file.Path))

	logrus.WithFields(logrus.Fields{
		"url":  file.URL,
		"path": localPath,
	}).Debug("Downloading file")

	req, err := http.NewRequest(http.MethodGet, file.URL, nil)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	resp, err := c.transfer.Do(req.WithContext(ctx))
	if err != nil {
		return 0, errors.WithStack(err)
	}
	defer resp.Body.Close()
	if err := errorFromResponse(resp); err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
		return 0, errors.WithStack(err)
	}
	out, err := os.OpenFile(localPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	defer out.Close()

	n, err := io.Copy(out, resp.Body)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return n, nil
}
