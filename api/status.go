package api

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// AssetStatus is the publish-workflow state of an asset version. The service
// is the authority on legal transitions; the client performs no validation of
// its own and surfaces whatever the service returns.
type AssetStatus string

const (
	StatusDraft     AssetStatus = "draft"
	StatusInReview  AssetStatus = "inreview"
	StatusApproved  AssetStatus = "approved"
	StatusPublished AssetStatus = "published"
	StatusRejected  AssetStatus = "rejected"
	StatusWithdrawn AssetStatus = "withdrawn"
)

// PublishSequence is the transition chain applied when an asset is published
// right after creation.
var PublishSequence = []AssetStatus{StatusInReview, StatusApproved, StatusPublished}

// ParseAssetStatus parses a status value case-insensitively.
func ParseAssetStatus(s string) (AssetStatus, error) {
	switch status := AssetStatus(strings.ToLower(s)); status {
	case StatusDraft, StatusInReview, StatusApproved, StatusPublished, StatusRejected, StatusWithdrawn:
		return status, nil
	default:
		return "", errors.Errorf("invalid asset status %q", s)
	}
}

func (s AssetStatus) String() string { return string(s) }

// UnmarshalJSON accepts any casing the service may emit.
func (s *AssetStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	status, err := ParseAssetStatus(raw)
	if err != nil {
		return err
	}
	*s = status
	return nil
}
