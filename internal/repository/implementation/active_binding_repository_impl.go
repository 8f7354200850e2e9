// FILE: internal/repository/implementation/active_binding_repository_impl.go
// Implementation of ActiveBindingRepository
package implementation

import (
	"context"

	"clinical-curation-be/internal/entity"
	"clinical-curation-be/internal/mapper"
	"clinical-curation-be/internal/model"
	"clinical-curation-be/internal/repository/contract"
	"clinical-curation-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActiveBindingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ActiveBindingMapper
}

func NewActiveBindingRepository(db *gorm.DB) contract.ActiveBindingRepository {
	return &ActiveBindingRepositoryImpl{
		db:     db,
		mapper: mapper.NewActiveBindingMapper(),
	}
}

func (r *ActiveBindingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ActiveBindingRepositoryImpl) Create(ctx context.Context, binding *entity.ActiveBinding) error {
	m := r.mapper.ToModel(binding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*binding = *r.mapper.ToEntity(m)
	return nil
}

func (r *ActiveBindingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ActiveBinding, error) {
	var models []*model.ActiveBinding
	query := r.applySpecifications(r.db.WithContext(ctx).Order("bound_at ASC"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ActiveBindingRepositoryImpl) CountForVersion(ctx context.Context, featureID uuid.UUID, version int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ActiveBinding{}).
		Where("feature_id = ? AND version = ?", featureID, version).
		Count(&count).Error
	return count, err
}

func (r *ActiveBindingRepositoryImpl) CountForFeature(ctx context.Context, featureID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ActiveBinding{}).
		Where("feature_id = ?", featureID).
		Count(&count).Error
	return count, err
}
