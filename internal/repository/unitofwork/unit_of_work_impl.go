package unitofwork

import (
	"context"
	"fmt"

	"clinical-curation-be/internal/repository/contract"
	"clinical-curation-be/internal/repository/implementation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // The active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// LockFeature takes a Postgres advisory transaction lock keyed on the
// feature id. Concurrent writers on the same feature queue behind it, which
// closes the read-then-write gap in version allocation.
func (u *UnitOfWorkImpl) LockFeature(ctx context.Context, featureID uuid.UUID) error {
	if u.tx == nil {
		return fmt.Errorf("feature lock requires an open transaction")
	}
	return u.tx.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", featureID.String()).Error
}

// Repository Accessors

func (u *UnitOfWorkImpl) FeatureRepository() contract.FeatureRepository {
	return implementation.NewFeatureRepository(u.getDB())
}

func (u *UnitOfWorkImpl) FeatureVersionRepository() contract.FeatureVersionRepository {
	return implementation.NewFeatureVersionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ActiveBindingRepository() contract.ActiveBindingRepository {
	return implementation.NewActiveBindingRepository(u.getDB())
}
