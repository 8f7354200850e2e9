// FILE: internal/mapper/active_binding_mapper.go
// Mapper for ActiveBinding entity <-> model conversion
package mapper

import (
	"clinical-curation-be/internal/entity"
	"clinical-curation-be/internal/model"
)

type ActiveBindingMapper struct{}

func NewActiveBindingMapper() *ActiveBindingMapper {
	return &ActiveBindingMapper{}
}

func (m *ActiveBindingMapper) ToEntity(model *model.ActiveBinding) *entity.ActiveBinding {
	if model == nil {
		return nil
	}
	return &entity.ActiveBinding{
		Id:              model.Id,
		FeatureId:       model.FeatureId,
		Version:         model.Version,
		ConsumerId:      model.ConsumerId,
		ConsumerVersion: model.ConsumerVersion,
		BoundAt:         model.BoundAt,
	}
}

func (m *ActiveBindingMapper) ToModel(entity *entity.ActiveBinding) *model.ActiveBinding {
	if entity == nil {
		return nil
	}
	return &model.ActiveBinding{
		Id:              entity.Id,
		FeatureId:       entity.FeatureId,
		Version:         entity.Version,
		ConsumerId:      entity.ConsumerId,
		ConsumerVersion: entity.ConsumerVersion,
		BoundAt:         entity.BoundAt,
	}
}

func (m *ActiveBindingMapper) ToEntities(models []*model.ActiveBinding) []*entity.ActiveBinding {
	entities := make([]*entity.ActiveBinding, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}
