package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uamcli/uamcli/api"
)

func writeMetadataFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metadata.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadMetadataFile(t *testing.T) {
	path := writeMetadataFile(t, strings.Join([]string{
		"Name,Value",
		"author,team",
		"license,internal",
		"orphan",
		"blank,",
		",stray",
		"  padded , value ",
	}, "\n"))

	entries, err := ReadMetadataFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"author":  "team",
		"license": "internal",
		"padded":  "value",
	}, entries)
}

func TestReadMetadataFileEmpty(t *testing.T) {
	entries, err := ReadMetadataFile(writeMetadataFile(t, ""))
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = ReadMetadataFile(writeMetadataFile(t, "Name,Value\n"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReadMetadataFileMissing(t *testing.T) {
	_, err := ReadMetadataFile(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

// metadataFixture serves asset get/patch plus the organization field
// templates. Fields listed in known resolve; others 404 until registered.
type metadataFixture struct {
	t          *testing.T
	known      map[string]bool
	registered []string
	patched    *api.AssetPatch
}

func (f *metadataFixture) handler(w http.ResponseWriter, req *http.Request) {
	switch {
	case req.Method == http.MethodGet && strings.Contains(req.URL.Path, "/templates/fields/"):
		name := req.URL.Path[strings.LastIndex(req.URL.Path, "/")+1:]
		if !f.known[name] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(f.t, w, `{"name": "`+name+`", "type": "text"}`)

	case req.Method == http.MethodPost && strings.HasSuffix(req.URL.Path, "/templates/fields"):
		var definition api.MetadataDefinition
		require.NoError(f.t, json.NewDecoder(req.Body).Decode(&definition))
		assert.Equal(f.t, api.TextMetadataType, definition.Type)
		f.registered = append(f.registered, definition.Name)
		f.known[definition.Name] = true
		w.WriteHeader(http.StatusCreated)

	case req.Method == http.MethodGet:
		writeJSON(f.t, w, `{"assetId":"asset-1","assetVersion":"1","name":"Chair","primaryType":"3D Model"}`)

	case req.Method == http.MethodPatch:
		var patch api.AssetPatch
		require.NoError(f.t, json.NewDecoder(req.Body).Decode(&patch))
		f.patched = &patch
		w.WriteHeader(http.StatusOK)

	default:
		f.t.Errorf("unexpected request: %s %s", req.Method, req.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
	}
}

func TestUpsertMetadata(t *testing.T) {
	fixture := &metadataFixture{t: t, known: map[string]bool{"author": true}}
	c, _ := newTestClient(t, fixture.handler)

	entries := map[string]string{"author": "team", "license": "internal"}
	require.NoError(t, c.UpsertMetadata(context.Background(), testIdentity(), entries))

	// Only the unknown field needed a definition.
	assert.Equal(t, []string{"license"}, fixture.registered)

	// The patch replaces the metadata map wholesale.
	require.NotNil(t, fixture.patched)
	require.NotNil(t, fixture.patched.Metadata)
	assert.Equal(t, entries, *fixture.patched.Metadata)
	assert.Equal(t, "Chair", fixture.patched.Name)
}

func TestUpsertMetadataMissingAsset(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := c.UpsertMetadata(context.Background(), testIdentity(), map[string]string{"k": "v"})
	assert.Equal(t, ErrAssetNotFound, err)
	assert.Len(t, rec.Requests(), 1)
}

func TestUpsertMetadataSkipsFailedLookups(t *testing.T) {
	// Definition lookups that error out (rather than 404) are skipped; the
	// metadata update still goes through.
	fixture := &metadataFixture{t: t, known: map[string]bool{}}
	c, _ := newTestClient(t, func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodGet && strings.Contains(req.URL.Path, "/templates/fields/") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fixture.handler(w, req)
	})

	entries := map[string]string{"author": "team"}
	require.NoError(t, c.UpsertMetadata(context.Background(), testIdentity(), entries))

	assert.Empty(t, fixture.registered)
	require.NotNil(t, fixture.patched)
	assert.Equal(t, entries, *fixture.patched.Metadata)
}

func TestDeleteMetadata(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodGet {
			writeJSON(t, w, `{"assetId":"asset-1","assetVersion":"1","name":"Chair"}`)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	err := c.DeleteMetadata(context.Background(), testIdentity(), []string{"author", "license"})
	require.NoError(t, err)

	requests := rec.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, http.MethodDelete, requests[1].Method)
	assert.Equal(t, "/assets/v1/projects/proj-1/assets/asset-1/versions/1/metadata", requests[1].Path)

	query, err := url.ParseQuery(requests[1].Query)
	require.NoError(t, err)
	assert.Equal(t, "author,license", query.Get("keys"))
}

func TestDeleteMetadataMissingAsset(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := c.DeleteMetadata(context.Background(), testIdentity(), []string{"author"})
	assert.Equal(t, ErrAssetNotFound, err)
	assert.Len(t, rec.Requests(), 1)
}

func TestGetMetadataDefinitionAbsent(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	definition, err := c.GetMetadataDefinition(context.Background(), "author")
	require.NoError(t, err)
	assert.Nil(t, definition)
}
