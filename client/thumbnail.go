package client

import (
	"context"
	"net/http"

	"github.com/uamcli/uamcli/api"
)

// GenerateThumbnails starts the thumbnail-generator transformation over the
// given files of a dataset. The transformation runs asynchronously server
// side; this call only schedules it.
func (c *Client) GenerateThumbnails(
	ctx context.Context,
	identity api.AssetIdentity,
	datasetID string,
	files []string,
) error {
	body := &api.ThumbnailRequest{InputFiles: files}

	p := c.assetPath(identity, "datasets", datasetID, "transformations/start/thumbnail-generator")
	resp, err := c.sendRequest(ctx, c.orgURL, http.MethodPost, p, nil, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return errorFromResponse(resp)
}
