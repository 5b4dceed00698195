package client

import (
	"context"
	"net/http"
	"net/url"
	"path"

	"github.com/sirupsen/logrus"

	"github.com/uamcli/uamcli/api"
)

// assetPath builds the project-scoped path for one asset version.
func (c *Client) assetPath(identity api.AssetIdentity, elem ...string) string {
	parts := append([]string{
		"/assets/v1/projects", c.projectID,
		"assets", identity.ID,
		"versions", identity.Version,
	}, elem...)
	return path.Join(parts...)
}

// GetAsset retrieves one asset version with all fields populated.
// Returns ErrAssetNotFound if the identity does not exist.
func (c *Client) GetAsset(ctx context.Context, identity api.AssetIdentity) (*api.Asset, error) {
	query := url.Values{"IncludeFields": {"*"}}
	resp, err := c.sendRequest(ctx, c.servicesURL, http.MethodGet, c.assetPath(identity), query, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrAssetNotFound
	}

	var asset api.Asset
	if err := parseResponse(resp, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// UpdateAsset sends a full-resource patch for the asset. The asset's metadata
// map, when present, replaces the stored metadata wholesale.
func (c *Client) UpdateAsset(ctx context.Context, asset *api.Asset) error {
	body := &api.AssetPatch{
		Name:        asset.Name,
		Description: asset.Description,
		PrimaryType: asset.PrimaryType,
		Metadata:    asset.Metadata,
	}

	resp, err := c.sendRequest(ctx, c.servicesURL, http.MethodPatch, c.assetPath(asset.Identity()), nil, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return errorFromResponse(resp)
}

// SetAssetStatus requests a workflow transition for the asset. The service
// decides whether the transition is legal from the current status.
func (c *Client) SetAssetStatus(ctx context.Context, identity api.AssetIdentity, status api.AssetStatus) error {
	logrus.WithField("asset", identity.ID).Debugf("Setting status to %s", status)

	p := c.assetPath(identity, "status", status.String())
	resp, err := c.sendRequest(ctx, c.servicesURL, http.MethodPatch, p, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return errorFromResponse(resp)
}

// PublishAsset walks the asset through the publish workflow. Transitions run
// in fixed order and stop at the first failure, leaving the asset in whatever
// status the last successful call produced.
func (c *Client) PublishAsset(ctx context.Context, identity api.AssetIdentity) error {
	for _, status := range api.PublishSequence {
		if err := c.SetAssetStatus(ctx, identity, status); err != nil {
			return err
		}
	}
	return nil
}

// WithdrawAsset removes an asset from circulation. The service keeps the
// record; withdrawal is the supported removal path.
func (c *Client) WithdrawAsset(ctx context.Context, identity api.AssetIdentity) error {
	if _, err := c.GetAsset(ctx, identity); err != nil {
		return err
	}
	return c.SetAssetStatus(ctx, identity, api.StatusWithdrawn)
}
