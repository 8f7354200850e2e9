// FILE: internal/entity/feature_version_entity.go
// Domain entity for feature versions
package entity

import (
	"time"

	"github.com/google/uuid"
)

// FeatureVersion is one immutable, numbered definition of a feature, tied to
// exactly one physical table. Version and TableName never change after
// registration; IsLive flips true -> false exactly once, on supersession.
type FeatureVersion struct {
	FeatureId         uuid.UUID
	Version           int     // Positive, contiguous per feature, starts at 1
	TableName         string  // Derived via warehouse.TableName; globally unique
	DefiningQuery     string  // Verbatim materialization statement, kept for lineage
	RefreshPolicy     *string // Optional freshness target, e.g. "4 hours"
	IsLive            bool
	ChangeDescription string
	RegisteredAt      time.Time
}
