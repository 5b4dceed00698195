package api

// Production endpoints for the Asset Manager service. Most operations are
// project-scoped and go through the services base URL; metadata field
// templates and dataset transformations are organization-scoped.
const (
	ServicesBaseURL     = "https://services.unity.com/api"
	OrganizationBaseURL = "https://services.api.unity.com"
	TokenExchangeURL    = "https://services.api.unity.com/auth/v1/token-exchange"
)

// Fixed protocol constants.
const (
	// Name of the dataset that receives uploaded files. Every asset version
	// is created with one.
	SourceDatasetName = "Source"

	// Primary type assigned to new assets and their source dataset.
	DefaultPrimaryType = "3D Model"

	// Number of records requested per search page.
	SearchPageSize = 50

	// Search results are sorted by this field, ascending.
	SearchSortField = "name"

	// Ascending sort order marker in pagination requests.
	SortOrderAscending = "Ascending"
)

// AssetIdentity uniquely addresses one version of one asset. It is the only
// key accepted by mutation operations; names are usable for search filtering
// only.
type AssetIdentity struct {
	ID      string `json:"assetId"`
	Version string `json:"assetVersion"`
}

// Dataset is a named bucket of files inside an asset version.
type Dataset struct {
	ID          string `json:"datasetId"`
	Name        string `json:"name"`
	PrimaryType string `json:"primaryType,omitempty"`
}

// Asset describes one version of an asset as returned by search and get.
//
// Metadata is a pointer to distinguish an absent map from a present-but-empty
// one; removing individual keys is a separate delete operation.
type Asset struct {
	AssetIdentity

	Name                 string             `json:"name"`
	Description          *string            `json:"description,omitempty"`
	Tags                 []string           `json:"tags,omitempty"`
	SystemTags           []string           `json:"systemTags,omitempty"`
	Labels               []string           `json:"labels"`
	PrimaryType          string             `json:"primaryType"`
	Status               string             `json:"status"`
	Frozen               bool               `json:"isFrozen"`
	SourceProjectID      string             `json:"sourceProjectId"`
	ProjectIDs           []string           `json:"projectIds"`
	PreviewFile          *string            `json:"previewFile,omitempty"`
	PreviewFileDatasetID *string            `json:"previewFileDatasetId,omitempty"`
	Datasets             []Dataset          `json:"datasets,omitempty"`
	Metadata             *map[string]string `json:"metadata,omitempty"`
}

// Identity returns the asset's identity pair.
func (a *Asset) Identity() AssetIdentity {
	return a.AssetIdentity
}

// IncludeQuery filters a search to an exact identity and/or a name pattern.
// The service expects wildcard-wrapped names for substring matching.
type IncludeQuery struct {
	AssetID      string `json:"assetId,omitempty"`
	AssetVersion string `json:"assetVersion,omitempty"`
	Name         string `json:"name,omitempty"`
}

// Pagination is the cursor block attached to search requests.
type Pagination struct {
	SortingField string `json:"sortingField"`
	SortingOrder string `json:"sortingOrder"`
	Limit        int    `json:"limit"`
	Token        string `json:"token,omitempty"`
}

// SearchRequest is the body of a POST search call.
type SearchRequest struct {
	ProjectIDs []string      `json:"projectIds"`
	Include    *IncludeQuery `json:"includeQuery,omitempty"`
	Pagination Pagination    `json:"pagination"`
}

// SearchResponse is one page of search results. An empty Next token marks
// the final page.
type SearchResponse struct {
	Next   string  `json:"next"`
	Assets []Asset `json:"assets"`
}

// AssetCreateRequest creates a new asset record.
type AssetCreateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	PrimaryType string  `json:"primaryType"`
}

// AssetCreateResponse yields the new identity and the datasets auto-created
// for the version.
type AssetCreateResponse struct {
	AssetIdentity

	Datasets []Dataset `json:"datasets"`
}

// AssetPatch carries a full-resource update for an asset version. The
// metadata map is a destructive replacement of whatever the service holds.
type AssetPatch struct {
	Name        string             `json:"name"`
	Description *string            `json:"description,omitempty"`
	PrimaryType string             `json:"primaryType"`
	Metadata    *map[string]string `json:"metadata,omitempty"`
}

// FileCreateRequest registers a file under a dataset before upload.
type FileCreateRequest struct {
	Path        string  `json:"filePath"`
	Description *string `json:"description,omitempty"`
	Size        int64   `json:"fileSize"`
}

// FileCreateResponse carries the single-use upload URL for the file's bytes.
type FileCreateResponse struct {
	UploadURL string `json:"uploadUrl"`
}

// DownloadURL pairs a file's dataset-relative path with a time-limited URL.
type DownloadURL struct {
	Path string `json:"filePath"`
	URL  string `json:"url"`
}

// DownloadURLsResponse lists download URLs for every file of an asset version.
type DownloadURLsResponse struct {
	Files []DownloadURL `json:"files"`
}

// TextMetadataType is the field type used when registering definitions.
const TextMetadataType = "text"

// MetadataDefinition is an organization-level metadata field template.
// Only text-typed fields are created by this client.
type MetadataDefinition struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ThumbnailRequest starts the thumbnail-generator transformation over the
// given input files.
type ThumbnailRequest struct {
	InputFiles []string `json:"inputFiles"`
}

// TokenResponse is the body of a successful token exchange.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}
