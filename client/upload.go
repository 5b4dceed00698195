package client

import (
	"context"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/uamcli/uamcli/api"
)

// ProgressFunc is invoked after each file completes its upload or download.
type ProgressFunc func(path string, size int64)

// CreateOptions configures asset creation.
type CreateOptions struct {
	// Optional human-readable description.
	Description *string

	// If set, walk the new asset through InReview, Approved and Published
	// after the upload completes.
	Publish bool

	// Optional per-file completion callback.
	Progress ProgressFunc
}

// CreateAsset creates a new asset record and attaches the given local files
// to its "Source" dataset, optionally publishing the result.
//
// Steps run strictly in sequence and the first failure aborts the rest; there
// is no rollback of completed steps. A failed run must be retried from
// scratch and will create a new asset.
func (c *Client) CreateAsset(
	ctx context.Context,
	name string,
	files []string,
	opts *CreateOptions,
) (api.AssetIdentity, error) {
	if opts == nil {
		opts = &CreateOptions{}
	}
	logrus.WithField("name", name).Debug("Creating asset")

	created, err := c.createAssetRecord(ctx, name, opts.Description)
	if err != nil {
		return api.AssetIdentity{}, err
	}
	identity := created.AssetIdentity

	var source *api.Dataset
	for i := range created.Datasets {
		if created.Datasets[i].Name == api.SourceDatasetName {
			source = &created.Datasets[i]
			break
		}
	}
	if source == nil {
		return api.AssetIdentity{}, ErrNoSourceDataset
	}

	if err := c.SetDatasetType(ctx, identity, source.ID, api.DefaultPrimaryType); err != nil {
		return api.AssetIdentity{}, err
	}

	for _, file := range files {
		size, err := c.UploadFile(ctx, identity, source.ID, file)
		if err != nil {
			return api.AssetIdentity{}, err
		}
		if opts.Progress != nil {
			opts.Progress(file, size)
		}
	}

	if opts.Publish {
		if err := c.PublishAsset(ctx, identity); err != nil {
			return api.AssetIdentity{}, err
		}
	}

	return identity, nil
}

// createAssetRecord registers the asset and returns its identity along with
// the datasets auto-created for the version.
func (c *Client) createAssetRecord(
	ctx context.Context,
	name string,
	description *string,
) (*api.AssetCreateResponse, error) {
	body := &api.AssetCreateRequest{
		Name:        name,
		Description: description,
		PrimaryType: api.DefaultPrimaryType,
	}

	p := path.Join("/assets/v1/projects", c.projectID, "assets")
	resp, err := c.sendRequest(ctx, c.servicesURL, http.MethodPost, p, nil, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var created api.AssetCreateResponse
	if err := parseResponse(resp, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// SetDatasetType patches a dataset's primary type. New source datasets are
// typed to mirror the asset's primary type.
func (c *Client) SetDatasetType(
	ctx context.Context,
	identity api.AssetIdentity,
	datasetID string,
	primaryType string,
) error {
	body := &api.Dataset{
		ID:          datasetID,
		Name:        api.SourceDatasetName,
		PrimaryType: primaryType,
	}

	p := c.assetPath(identity, "datasets", datasetID)
	resp, err := c.sendRequest(ctx, c.orgURL, http.MethodPatch, p, nil, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return errorFromResponse(resp)
}

// UploadFile attaches one local file to a dataset: create the file record,
// stream the bytes to the returned single-use URL, then finalize. The byte
// transfer is one-shot; a failure is not retried or resumed.
//
// Returns the number of bytes uploaded.
func (c *Client) UploadFile(
	ctx context.Context,
	identity api.AssetIdentity,
	datasetID string,
	localPath string,
) (int64, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, errors.WithStack(err)
	}
	fileName := filepath.Base(localPath)

	logrus.WithFields(logrus.Fields{
		"file": localPath,
		"size": info.Size(),
	}).Debug("Uploading file")

	created, err := c.createFileRecord(ctx, identity, datasetID, fileName, info.Size())
	if err != nil {
		return 0, err
	}

	if err := c.putFile(ctx, created.UploadURL, file, info.Size()); err != nil {
		return 0, err
	}

	if err := c.finalizeFile(ctx, identity, fileName); err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// createFileRecord registers a file under the dataset and returns its
// single-use upload URL.
func (c *Client) createFileRecord(
	ctx context.Context,
	identity api.AssetIdentity,
	datasetID string,
	fileName string,
	size int64,
) (*api.FileCreateResponse, error) {
	body := &api.FileCreateRequest{Path: fileName, Size: size}

	p := c.assetPath(identity, "datasets", datasetID, "files")
	resp, err := c.sendTransferRequest(ctx, c.servicesURL, http.MethodPost, p, nil, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var created api.FileCreateResponse
	if err := parseResponse(resp, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// putFile streams the file's contents to the storage URL.
func (c *Client) putFile(ctx context.Context, uploadURL string, file *os.File, size int64) error {
	req, err := http.NewRequest(http.MethodPut, uploadURL, file)
	if err != nil {
		return errors.WithStack(err)
	}
	req.ContentLength = size
	req.Header.Set("x-ms-blob-type", "BlockBlob")

	resp, err := c.transfer.Do(req.WithContext(ctx))
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()
	return errorFromResponse(resp)
}

// finalizeFile marks the upload complete server-side.
func (c *Client) finalizeFile(ctx context.Context, identity api.AssetIdentity, fileName string) error {
	p := c.assetPath(identity, "files", fileName, "finalize")
	resp, err := c.sendTransferRequest(ctx, c.servicesURL, http.MethodPost, p, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return errorFromResponse(resp)
}
