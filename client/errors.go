package client

import (
	"fmt"

	"github.com/pkg/errors"
)

// Configuration errors, reported before any network activity.
var (
	ErrInvalidClientID     = errors.New("client ID is not provided or it is invalid")
	ErrInvalidClientSecret = errors.New("client secret is not provided or it is invalid")
)

// ErrDone is returned by iterators when no items remain.
var ErrDone = errors.New("no more items in iterator")

// Domain errors.
var (
	// ErrAssetNotFound is returned when a get, metadata or delete operation
	// addresses an identity the service does not know.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrNoSourceDataset is returned when a create response carries no
	// dataset named "Source". Not recoverable locally.
	ErrNoSourceDataset = errors.New("no source dataset")

	// ErrNoDownloadDirectory is returned when no target directory could be
	// resolved for a download.
	ErrNoDownloadDirectory = errors.New("no download directory available")
)

// UnexpectedResponseError carries the status code of a non-2xx response that
// has no more specific mapping.
type UnexpectedResponseError struct {
	StatusCode int
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("unexpected response from server: %d", e.StatusCode)
}
