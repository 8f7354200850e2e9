// FILE: internal/repository/implementation/feature_version_repository_impl.go
// Implementation of FeatureVersionRepository
package implementation

import (
	"context"
	"errors"

	"clinical-curation-be/internal/entity"
	"clinical-curation-be/internal/mapper"
	"clinical-curation-be/internal/model"
	"clinical-curation-be/internal/repository/contract"
	"clinical-curation-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeatureVersionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FeatureVersionMapper
}

func NewFeatureVersionRepository(db *gorm.DB) contract.FeatureVersionRepository {
	return &FeatureVersionRepositoryImpl{
		db:     db,
		mapper: mapper.NewFeatureVersionMapper(),
	}
}

func (r *FeatureVersionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FeatureVersionRepositoryImpl) Create(ctx context.Context, version *entity.FeatureVersion) error {
	m := r.mapper.ToModel(version)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*version = *r.mapper.ToEntity(m)
	return nil
}

func (r *FeatureVersionRepositoryImpl) Update(ctx context.Context, version *entity.FeatureVersion) error {
	m := r.mapper.ToModel(version)
	return r.db.WithContext(ctx).
		Model(&model.FeatureVersion{}).
		Where("feature_id = ? AND version = ?", m.FeatureId, m.Version).
		Updates(map[string]interface{}{
			"defining_query": m.DefiningQuery,
			"refresh_policy": m.RefreshPolicy,
			"is_live":        m.IsLive,
			"change_desc":    m.ChangeDescription,
			"registered_at":  m.RegisteredAt,
		}).Error
}

func (r *FeatureVersionRepositoryImpl) Delete(ctx context.Context, featureID uuid.UUID, version int) error {
	return r.db.WithContext(ctx).
		Where("feature_id = ? AND version = ?", featureID, version).
		Delete(&model.FeatureVersion{}).Error
}

func (r *FeatureVersionRepositoryImpl) DeleteAllForFeature(ctx context.Context, featureID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("feature_id = ?", featureID).
		Delete(&model.FeatureVersion{}).Error
}

func (r *FeatureVersionRepositoryImpl) CurrentVersion(ctx context.Context, featureID uuid.UUID) (int, error) {
	var current int
	err := r.db.WithContext(ctx).
		Model(&model.FeatureVersion{}).
		Where("feature_id = ?", featureID).
		Select("COALESCE(MAX(version), 0)").
		Scan(&current).Error
	return current, err
}

func (r *FeatureVersionRepositoryImpl) Latest(ctx context.Context, featureID uuid.UUID) (*entity.FeatureVersion, error) {
	var m model.FeatureVersion
	err := r.db.WithContext(ctx).
		Where("feature_id = ?", featureID).
		Order("version DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FeatureVersionRepositoryImpl) FindByTableName(ctx context.Context, tableName string) (*entity.FeatureVersion, error) {
	var m model.FeatureVersion
	if err := r.db.WithContext(ctx).Where("table_name = ?", tableName).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FeatureVersionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FeatureVersion, error) {
	var models []*model.FeatureVersion
	query := r.applySpecifications(r.db.WithContext(ctx).Order("version ASC"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FeatureVersionRepositoryImpl) MarkSuperseded(ctx context.Context, featureID uuid.UUID, version int) error {
	return r.db.WithContext(ctx).
		Model(&model.FeatureVersion{}).
		Where("feature_id = ? AND version = ?", featureID, version).
		Update("is_live", false).Error
}
