package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByFeatureID filters ledger and binding rows by owning feature
type ByFeatureID struct {
	FeatureID uuid.UUID
}

func (s ByFeatureID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("feature_id = ?", s.FeatureID)
}

// ByVersion filters by version number
type ByVersion struct {
	Version int
}

func (s ByVersion) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("version = ?", s.Version)
}

// ByFeatureName filters the catalog by normalized feature name
type ByFeatureName struct {
	Name string
}

func (s ByFeatureName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("feature_name = ?", s.Name)
}

// ByTableName filters the ledger by physical table identifier
type ByTableName struct {
	TableName string
}

func (s ByTableName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("table_name = ?", s.TableName)
}

// LiveOnly keeps ledger entries that are still kept fresh
type LiveOnly struct{}

func (s LiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_live = ?", true)
}
