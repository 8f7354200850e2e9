package unitofwork

import (
	"context"

	"clinical-curation-be/internal/repository/contract"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	// LockFeature serializes version allocation for one feature. Valid only
	// inside an open transaction; the lock releases on commit or rollback.
	LockFeature(ctx context.Context, featureID uuid.UUID) error

	FeatureRepository() contract.FeatureRepository
	FeatureVersionRepository() contract.FeatureVersionRepository
	ActiveBindingRepository() contract.ActiveBindingRepository
}
