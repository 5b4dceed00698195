package client

import (
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/uamcli/uamcli/api"
)

// ReadMetadataFile parses a two-column CSV file of metadata entries. The
// first line must be a header naming the columns (Name, Value). Entries with
// no value are dropped.
func ReadMetadataFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// Header line.
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return map[string]string{}, nil
		}
		return nil, errors.Wrap(err, "failed to parse metadata file")
	}

	entries := map[string]string{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse metadata file")
		}

		name := strings.TrimSpace(record[0])
		if name == "" {
			continue
		}
		if len(record) < 2 || strings.TrimSpace(record[1]) == "" {
			// Entry with no value; excluded from the upload set.
			continue
		}
		entries[name] = strings.TrimSpace(record[1])
	}
}

// UpsertMetadata replaces the asset's metadata map with the given entries.
// This is a destructive overwrite of previously stored metadata, not a merge.
//
// Property names without an organization-level field definition are
// registered as text fields first. Definition lookups are best-effort: a
// failed lookup is logged and skipped rather than aborting the batch.
func (c *Client) UpsertMetadata(
	ctx context.Context,
	identity api.AssetIdentity,
	entries map[string]string,
) error {
	asset, err := c.GetAsset(ctx, identity)
	if err != nil {
		return err
	}

	for name := range entries {
		definition, err := c.GetMetadataDefinition(ctx, name)
		if err != nil {
			logrus.WithError(err).Warnf("Failed to look up metadata definition for %q", name)
			continue
		}
		if definition == nil {
			if err := c.RegisterMetadataDefinition(ctx, name); err != nil {
				return err
			}
		}
	}

	asset.Metadata = &entries
	return c.UpdateAsset(ctx, asset)
}

// DeleteMetadata removes the named metadata keys from the asset.
func (c *Client) DeleteMetadata(ctx context.Context, identity api.AssetIdentity, keys []string) error {
	if _, err := c.GetAsset(ctx, identity); err != nil {
		return err
	}

	p := c.assetPath(identity, "metadata")
	query := url.Values{"keys": {strings.Join(keys, ",")}}
	resp, err := c.sendRequest(ctx, c.servicesURL, http.MethodDelete, p, query, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return errorFromResponse(resp)
}

// GetMetadataDefinition looks up an organization-level metadata field
// definition. Returns nil without error when no such field exists.
func (c *Client) GetMetadataDefinition(ctx context.Context, name string) (*api.MetadataDefinition, error) {
	p := path.Join("/assets/v1/organizations", c.organizationID, "templates/fields", name)
	resp, err := c.sendRequest(ctx, c.orgURL, http.MethodGet, p, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	var definition api.MetadataDefinition
	if err := parseResponse(resp, &definition); err != nil {
		return nil, err
	}
	return &definition, nil
}

// RegisterMetadataDefinition creates a new text-typed metadata field
// definition at the organization level.
func (c *Client) RegisterMetadataDefinition(ctx context.Context, name string) error {
	body := &api.MetadataDefinition{Name: name, Type: api.TextMetadataType}

	p := path.Join("/assets/v1/organizations", c.organizationID, "templates/fields")
	resp, err := c.sendRequest(ctx, c.orgURL, http.MethodPost, p, nil, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return errorFromResponse(resp)
}
