// FILE: internal/mapper/feature_mapper.go
// Mapper for Feature entity <-> model conversion
package mapper

import (
	"encoding/json"

	"clinical-curation-be/internal/entity"
	"clinical-curation-be/internal/model"

	"gorm.io/datatypes"
)

type FeatureMapper struct{}

func NewFeatureMapper() *FeatureMapper {
	return &FeatureMapper{}
}

func (m *FeatureMapper) ToEntity(model *model.Feature) *entity.Feature {
	if model == nil {
		return nil
	}
	return &entity.Feature{
		Id:           model.Id,
		Name:         model.Name,
		Description:  model.Description,
		Format:       json.RawMessage(model.Format),
		RegisteredAt: model.RegisteredAt,
	}
}

func (m *FeatureMapper) ToModel(entity *entity.Feature) *model.Feature {
	if entity == nil {
		return nil
	}
	return &model.Feature{
		Id:           entity.Id,
		Name:         entity.Name,
		Description:  entity.Description,
		Format:       datatypes.JSON(entity.Format),
		RegisteredAt: entity.RegisteredAt,
	}
}

func (m *FeatureMapper) ToEntities(models []*model.Feature) []*entity.Feature {
	entities := make([]*entity.Feature, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}
