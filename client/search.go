package client

import (
	"context"
	"net/http"
	"net/url"
	"path"

	"github.com/uamcli/uamcli/api"
)

// SearchQuery narrows a search. A zero query matches every asset in the
// project.
type SearchQuery struct {
	// Exact identity match.
	Identity *api.AssetIdentity

	// Substring name match; wildcard-wrapped before it is sent.
	Name string

	// Records per page. Defaults to api.SearchPageSize.
	PageSize int
}

// include builds the filter block, or nil when the query is unconstrained.
func (q *SearchQuery) include() *api.IncludeQuery {
	if q == nil {
		return nil
	}

	var filter api.IncludeQuery
	if q.Identity != nil {
		filter.AssetID = q.Identity.ID
		filter.AssetVersion = q.Identity.Version
	}
	if q.Name != "" {
		filter.Name = "*" + q.Name + "*"
	}
	if filter == (api.IncludeQuery{}) {
		return nil
	}
	return &filter
}

// SearchAssets returns the complete result set for a query, transparently
// consuming continuation pages. Results arrive in the service's stable
// name-ascending order; page order is preserved.
//
// Any failed page aborts the whole search; partial results are discarded.
func (c *Client) SearchAssets(ctx context.Context, query *SearchQuery) ([]api.Asset, error) {
	it := c.Assets(ctx, query)

	var assets []api.Asset
	for {
		asset, err := it.Next()
		if err == ErrDone {
			return assets, nil
		}
		if err != nil {
			return nil, err
		}
		assets = append(assets, *asset)
	}
}

// Assets returns an iterator over assets matching the query.
func (c *Client) Assets(ctx context.Context, query *SearchQuery) *AssetIterator {
	return &AssetIterator{ctx: ctx, client: c, query: query}
}

// AssetIterator pages through search results one record at a time.
type AssetIterator struct {
	ctx    context.Context
	client *Client
	query  *SearchQuery

	assets []api.Asset
	token  string

	// Whether the final page has been fetched.
	lastRequest bool
}

// Next returns the next matching asset. When the iterator is spent it
// returns the sentinel error ErrDone.
func (i *AssetIterator) Next() (*api.Asset, error) {
	if len(i.assets) != 0 {
		result := i.assets[0]
		i.assets = i.assets[1:]
		return &result, nil
	}

	if i.lastRequest {
		return nil, ErrDone
	}

	pageSize := api.SearchPageSize
	if i.query != nil && i.query.PageSize > 0 {
		pageSize = i.query.PageSize
	}

	body := &api.SearchRequest{
		ProjectIDs: []string{i.client.projectID},
		Include:    i.query.include(),
		Pagination: api.Pagination{
			SortingField: api.SearchSortField,
			SortingOrder: api.SortOrderAscending,
			Limit:        pageSize,
			Token:        i.token,
		},
	}

	searchPath := path.Join("/assets/v1/projects", i.client.projectID, "assets/search")
	query := url.Values{"includeFields": {"*"}}
	resp, err := i.client.sendRequest(i.ctx, i.client.servicesURL, http.MethodPost, searchPath, query, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var page api.SearchResponse
	if err := parseResponse(resp, &page); err != nil {
		return nil, err
	}

	i.assets = page.Assets
	i.token = page.Next
	if page.Next == "" {
		i.lastRequest = true
	}

	return i.Next()
}

