package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetRoundTrip(t *testing.T) {
	description := "a sample asset"
	preview := "preview.png"
	previewDataset := "ds-preview"
	metadata := map[string]string{"author": "team", "license": "internal"}
	asset := Asset{
		AssetIdentity:        AssetIdentity{ID: "asset-1", Version: "3"},
		Name:                 "Sample",
		Description:          &description,
		Tags:                 []string{"demo"},
		Labels:               []string{},
		PrimaryType:          DefaultPrimaryType,
		Status:               string(StatusDraft),
		Frozen:               true,
		ProjectIDs:           []string{"proj-1"},
		PreviewFile:          &preview,
		PreviewFileDatasetID: &previewDataset,
		Datasets: []Dataset{
			{ID: "ds-1", Name: SourceDatasetName, PrimaryType: DefaultPrimaryType},
		},
		Metadata: &metadata,
	}

	data, err := json.Marshal(asset)
	require.NoError(t, err)

	var decoded Asset
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, asset, decoded)
	assert.Equal(t, asset.AssetIdentity, decoded.Identity())
}

func TestAssetMetadataOmitted(t *testing.T) {
	// An absent metadata map must not serialize as null; a present-but-empty
	// map must survive the round trip as empty, not nil.
	data, err := json.Marshal(Asset{Name: "bare"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "metadata")

	empty := map[string]string{}
	data, err = json.Marshal(Asset{Name: "tagged", Metadata: &empty})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"metadata":{}`)

	var decoded Asset
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NotNil(t, decoded.Metadata)
	assert.Empty(t, *decoded.Metadata)
}

func TestSearchRequestOmitsEmptyInclude(t *testing.T) {
	req := SearchRequest{
		ProjectIDs: []string{"proj-1"},
		Pagination: Pagination{
			SortingField: SearchSortField,
			SortingOrder: SortOrderAscending,
			Limit:        SearchPageSize,
		},
	}
	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "includeQuery")
}
