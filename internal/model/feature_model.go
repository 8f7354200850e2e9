// FILE: internal/model/feature_model.go
// GORM model for the features table (registry catalog)
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Feature represents one row of the registry catalog. feature_name carries
// the uniqueness invariant: exactly one row per normalized name.
type Feature struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string         `gorm:"column:feature_name;type:varchar(255);uniqueIndex;not null"`
	Description  string         `gorm:"column:feature_desc;type:text"`
	Format       datatypes.JSON `gorm:"column:feature_format"`
	RegisteredAt time.Time      `gorm:"autoCreateTime"`
}

func (Feature) TableName() string {
	return "registry_features"
}
