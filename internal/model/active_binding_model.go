// FILE: internal/model/active_binding_model.go
// GORM model for the active_bindings table
package model

import (
	"time"

	"github.com/google/uuid"
)

// ActiveBinding is an additive audit record of consumer reliance on a
// feature version. Never updated, never pruned by the registry.
type ActiveBinding struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FeatureId       uuid.UUID `gorm:"type:uuid;index;not null"`
	Version         int       `gorm:"not null"`
	ConsumerId      string    `gorm:"type:varchar(255);not null"`
	ConsumerVersion string    `gorm:"type:varchar(100)"`
	BoundAt         time.Time `gorm:"autoCreateTime"`
}

func (ActiveBinding) TableName() string {
	return "registry_active_bindings"
}
