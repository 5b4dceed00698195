package client

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uamcli/uamcli/api"
)

func downloadHandler(t *testing.T, files map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		switch {
		case strings.HasSuffix(req.URL.Path, "/download-urls"):
			urls := make([]string, 0, len(files))
			for path := range files {
				urls = append(urls, fmt.Sprintf(
					`{"filePath": %q, "url": "http://%s/blob/%s"}`, path, req.Host, path))
			}
			writeJSON(t, w, `{"files": [`+strings.Join(urls, ",")+`]}`)

		case strings.HasPrefix(req.URL.Path, "/blob/"):
			content, ok := files[strings.TrimPrefix(req.URL.Path, "/blob/")]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			if _, err := w.Write([]byte(content)); err != nil {
				t.Errorf("write blob: %v", err)
			}

		default:
			t.Errorf("unexpected request: %s %s", req.Method, req.URL.Path)
			w.WriteHeader(http.StatusBadRequest)
		}
	}
}

func TestDownloadURLs(t *testing.T) {
	c, rec := newTestClient(t, downloadHandler(t, map[string]string{"model.fbx": "bytes"}))

	urls, err := c.DownloadURLs(context.Background(), testIdentity())
	require.NoError(t, err)
	require.Len(t, urls, 1)
	assert.Equal(t, "model.fbx", urls[0].Path)

	requests := rec.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodGet, requests[0].Method)
	assert.Equal(t, "/assets/v1/projects/proj-1/assets/asset-1/versions/1/download-urls", requests[0].Path)
}

func TestDownloadURLsNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.DownloadURLs(context.Background(), testIdentity())
	assert.Equal(t, ErrAssetNotFound, err)
}

func TestDownloadAssetFiles(t *testing.T) {
	files := map[string]string{
		"model.fbx":            "model bytes",
		"textures/diffuse.png": "texture bytes",
	}
	c, _ := newTestClient(t, downloadHandler(t, files))

	dir := t.TempDir()
	var progressed []string
	err := c.DownloadAssetFiles(context.Background(), testIdentity(), &DownloadOptions{
		Directory: dir,
		Progress: func(path string, size int64) {
			progressed = append(progressed, path)
		},
	})
	require.NoError(t, err)
	assert.Len(t, progressed, 2)

	// Nested paths are recreated under the target directory.
	for path, content := range files {
		data, err := ioutil.ReadFile(filepath.Join(dir, filepath.FromSlash(path)))
		require.NoError(t, err)
		assert.Equal(t, content, string(data))
	}
}

func TestDownloadAssetFilesPresolvedURLs(t *testing.T) {
	c, rec := newTestClient(t, downloadHandler(t, map[string]string{"model.fbx": "bytes"}))

	// Resolve the URL list up front, then hand it to the download; no second
	// listing call should go out.
	urls, err := c.DownloadURLs(context.Background(), testIdentity())
	require.NoError(t, err)

	dir := t.TempDir()
	err = c.DownloadAssetFiles(context.Background(), testIdentity(), &DownloadOptions{
		Directory: dir,
		URLs:      urls,
	})
	require.NoError(t, err)

	var listings int
	for _, req := range rec.Requests() {
		if strings.HasSuffix(req.Path, "/download-urls") {
			listings++
		}
	}
	assert.Equal(t, 1, listings)
}

func TestDownloadAssetFilesFailedFileAborts(t *testing.T) {
	c, _ := newTestClient(t, downloadHandler(t, map[string]string{"present.fbx": "bytes"}))

	dir := t.TempDir()
	err := c.DownloadAssetFiles(context.Background(), testIdentity(), &DownloadOptions{
		Directory: dir,
		URLs: []api.DownloadURL{
			{Path: "missing.fbx", URL: "http://" + serverHost(c) + "/blob/missing.fbx"},
			{Path: "present.fbx", URL: "http://" + serverHost(c) + "/blob/present.fbx"},
		},
	})
	require.Error(t, err)

	// The failed file aborted the run before the next one started.
	_, statErr := ioutil.ReadFile(filepath.Join(dir, "present.fbx"))
	assert.Error(t, statErr)
}

// serverHost recovers the fake server's host from the client's base URL.
func serverHost(c *Client) string {
	return c.servicesURL.Host
}
