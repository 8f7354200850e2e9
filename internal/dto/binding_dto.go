package dto

import (
	"time"

	"github.com/google/uuid"
)

type BindConsumerRequest struct {
	Id              uuid.UUID `json:"-"`
	Version         int       `json:"version" validate:"required,min=1"`
	ConsumerId      string    `json:"consumer_id" validate:"required"`
	ConsumerVersion string    `json:"consumer_version"`
}

type BindConsumerResponse struct {
	BindingId uuid.UUID `json:"binding_id"`
}

type BindingResponse struct {
	BindingId       uuid.UUID `json:"binding_id"`
	FeatureId       uuid.UUID `json:"feature_id"`
	Version         int       `json:"version"`
	ConsumerId      string    `json:"consumer_id"`
	ConsumerVersion string    `json:"consumer_version,omitempty"`
	BoundAt         time.Time `json:"bound_at"`
}
