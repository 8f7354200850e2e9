package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type RegisterFeatureRequest struct {
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description"`
	Format        json.RawMessage `json:"format"`
	DefiningQuery string          `json:"defining_query" validate:"required"`
	RefreshPolicy *string         `json:"refresh_policy"`
	ExistenceOk   bool            `json:"existence_ok"`
}

type RegisterFeatureResponse struct {
	FeatureId uuid.UUID `json:"feature_id"`
	Version   int       `json:"version"`
	TableName string    `json:"table_name"`
	// Existed reports that the feature was already registered and
	// existence_ok returned it unchanged.
	Existed bool `json:"existed"`
}

type UpdateFeatureRequest struct {
	Id                uuid.UUID `json:"-"`
	DefiningQuery     string    `json:"defining_query" validate:"required"`
	ChangeDescription string    `json:"change_description"`
	RefreshPolicy     *string   `json:"refresh_policy"`
	ForceNewVersion   bool      `json:"force_new_version"`
	// Overwrite rebuilds the latest version in place and discards its
	// history. Destructive; surfaced as such by the UI.
	Overwrite bool `json:"overwrite"`
}

type UpdateFeatureResponse struct {
	FeatureId   uuid.UUID `json:"feature_id"`
	Version     int       `json:"version"`
	TableName   string    `json:"table_name"`
	Overwritten bool      `json:"overwritten"`
}

type RefreshFeatureResponse struct {
	FeatureId   uuid.UUID `json:"feature_id"`
	Version     int       `json:"version"`
	TableName   string    `json:"table_name"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

type FeatureSummaryResponse struct {
	FeatureId    uuid.UUID `json:"feature_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	RegisteredAt time.Time `json:"registered_at"`
}

type FeatureDetailResponse struct {
	FeatureId    uuid.UUID                 `json:"feature_id"`
	Name         string                    `json:"name"`
	Description  string                    `json:"description"`
	Format       json.RawMessage           `json:"format,omitempty"`
	RegisteredAt time.Time                 `json:"registered_at"`
	Versions     []*FeatureVersionResponse `json:"versions"`
}

type FeatureVersionResponse struct {
	FeatureId         uuid.UUID `json:"feature_id"`
	Version           int       `json:"version"`
	TableName         string    `json:"table_name"`
	DefiningQuery     string    `json:"defining_query"`
	RefreshPolicy     *string   `json:"refresh_policy,omitempty"`
	IsLive            bool      `json:"is_live"`
	ChangeDescription string    `json:"change_description,omitempty"`
	RegisteredAt      time.Time `json:"registered_at"`
}

// TableLineageResponse answers "which feature version does this physical
// table belong to".
type TableLineageResponse struct {
	FeatureId   uuid.UUID `json:"feature_id"`
	FeatureName string    `json:"feature_name"`
	Version     int       `json:"version"`
	TableName   string    `json:"table_name"`
	IsLive      bool      `json:"is_live"`
}

// PublishRefreshMessage is the payload placed on the in-process refresh
// queue by the async refresh endpoint.
type PublishRefreshMessage struct {
	FeatureId uuid.UUID `json:"feature_id"`
}
