// FILE: internal/repository/contract/feature_version_repository.go
// Repository interface for the version ledger
package contract

import (
	"context"

	"clinical-curation-be/internal/entity"
	"clinical-curation-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FeatureVersionRepository interface {
	// Create appends one ledger entry. The (feature_id, version) primary key
	// turns this into a conditional insert; a racing writer gets a duplicate
	// key error instead of overwriting.
	Create(ctx context.Context, version *entity.FeatureVersion) error
	Update(ctx context.Context, version *entity.FeatureVersion) error
	Delete(ctx context.Context, featureID uuid.UUID, version int) error
	DeleteAllForFeature(ctx context.Context, featureID uuid.UUID) error

	// CurrentVersion returns the highest registered version, 0 if none.
	CurrentVersion(ctx context.Context, featureID uuid.UUID) (int, error)
	Latest(ctx context.Context, featureID uuid.UUID) (*entity.FeatureVersion, error)
	FindByTableName(ctx context.Context, tableName string) (*entity.FeatureVersion, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FeatureVersion, error)

	// MarkSuperseded flips is_live to false. One-way.
	MarkSuperseded(ctx context.Context, featureID uuid.UUID, version int) error
}
