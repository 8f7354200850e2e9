// FILE: internal/model/feature_version_model.go
// GORM model for the feature_versions table (version ledger)
package model

import (
	"time"

	"github.com/google/uuid"
)

// FeatureVersion is one ledger entry. The composite primary key makes
// version allocation a conditional insert: a second writer that read the
// same "next" number fails on the key instead of clobbering the row. The
// unique index on table_name backs the global table-name invariant.
type FeatureVersion struct {
	FeatureId         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Version           int       `gorm:"primaryKey"`
	PhysicalTableName string    `gorm:"column:table_name;type:varchar(255);uniqueIndex;not null"`
	DefiningQuery     string    `gorm:"type:text;not null"`
	RefreshPolicy     *string   `gorm:"type:varchar(100)"`
	IsLive            bool      `gorm:"not null;default:true"`
	ChangeDescription string    `gorm:"column:change_desc;type:text"`
	RegisteredAt      time.Time `gorm:"autoCreateTime"`
}

func (FeatureVersion) TableName() string {
	return "registry_feature_versions"
}
