// FILE: internal/service/binding_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"clinical-curation-be/internal/dto"
	"clinical-curation-be/internal/entity"
	"clinical-curation-be/internal/pkg/logger"
	"clinical-curation-be/internal/repository/specification"
	"clinical-curation-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IBindingService interface {
	Bind(ctx context.Context, req *dto.BindConsumerRequest) (*dto.BindConsumerResponse, error)
	BindingsFor(ctx context.Context, featureID uuid.UUID) ([]*dto.BindingResponse, error)
}

// bindingService records which downstream consumers depend on which feature
// version. Bindings guard deletion: a bound version is only removable with
// force.
type bindingService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewBindingService(uowFactory unitofwork.RepositoryFactory, sysLogger logger.ILogger) IBindingService {
	return &bindingService{
		uowFactory: uowFactory,
		logger:     sysLogger,
	}
}

func (s *bindingService) Bind(ctx context.Context, req *dto.BindConsumerRequest) (*dto.BindConsumerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	feature, err := uow.FeatureRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if feature == nil {
		return nil, fmt.Errorf("%w: feature %s", ErrNotFound, req.Id)
	}

	version, err := uow.FeatureVersionRepository().FindAll(ctx,
		specification.ByFeatureID{FeatureID: req.Id},
		specification.ByVersion{Version: req.Version},
	)
	if err != nil {
		return nil, err
	}
	if len(version) == 0 {
		return nil, fmt.Errorf("%w: feature %s version %d", ErrNotFound, req.Id, req.Version)
	}

	binding := &entity.ActiveBinding{
		Id:              uuid.New(),
		FeatureId:       req.Id,
		Version:         req.Version,
		ConsumerId:      req.ConsumerId,
		ConsumerVersion: req.ConsumerVersion,
		BoundAt:         time.Now(),
	}
	if err := uow.ActiveBindingRepository().Create(ctx, binding); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("binding", "consumer bound", map[string]interface{}{
		"feature_id": req.Id.String(),
		"version":    req.Version,
		"consumer":   req.ConsumerId,
	})

	return &dto.BindConsumerResponse{BindingId: binding.Id}, nil
}

func (s *bindingService) BindingsFor(ctx context.Context, featureID uuid.UUID) ([]*dto.BindingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	bindings, err := uow.ActiveBindingRepository().FindAll(ctx, specification.ByFeatureID{FeatureID: featureID})
	if err != nil {
		return nil, err
	}
	result := make([]*dto.BindingResponse, 0, len(bindings))
	for _, b := range bindings {
		result = append(result, &dto.BindingResponse{
			BindingId:       b.Id,
			FeatureId:       b.FeatureId,
			Version:         b.Version,
			ConsumerId:      b.ConsumerId,
			ConsumerVersion: b.ConsumerVersion,
			BoundAt:         b.BoundAt,
		})
	}
	return result, nil
}
