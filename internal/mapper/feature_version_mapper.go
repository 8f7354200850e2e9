// FILE: internal/mapper/feature_version_mapper.go
// Mapper for FeatureVersion entity <-> model conversion
package mapper

import (
	"clinical-curation-be/internal/entity"
	"clinical-curation-be/internal/model"
)

type FeatureVersionMapper struct{}

func NewFeatureVersionMapper() *FeatureVersionMapper {
	return &FeatureVersionMapper{}
}

func (m *FeatureVersionMapper) ToEntity(model *model.FeatureVersion) *entity.FeatureVersion {
	if model == nil {
		return nil
	}
	return &entity.FeatureVersion{
		FeatureId:         model.FeatureId,
		Version:           model.Version,
		TableName:         model.PhysicalTableName,
		DefiningQuery:     model.DefiningQuery,
		RefreshPolicy:     model.RefreshPolicy,
		IsLive:            model.IsLive,
		ChangeDescription: model.ChangeDescription,
		RegisteredAt:      model.RegisteredAt,
	}
}

func (m *FeatureVersionMapper) ToModel(entity *entity.FeatureVersion) *model.FeatureVersion {
	if entity == nil {
		return nil
	}
	return &model.FeatureVersion{
		FeatureId:         entity.FeatureId,
		Version:           entity.Version,
		PhysicalTableName: entity.TableName,
		DefiningQuery:     entity.DefiningQuery,
		RefreshPolicy:     entity.RefreshPolicy,
		IsLive:            entity.IsLive,
		ChangeDescription: entity.ChangeDescription,
		RegisteredAt:      entity.RegisteredAt,
	}
}

func (m *FeatureVersionMapper) ToEntities(models []*model.FeatureVersion) []*entity.FeatureVersion {
	entities := make([]*entity.FeatureVersion, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}
