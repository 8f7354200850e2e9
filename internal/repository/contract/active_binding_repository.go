// FILE: internal/repository/contract/active_binding_repository.go
// Repository interface for consumer bindings
package contract

import (
	"context"

	"clinical-curation-be/internal/entity"
	"clinical-curation-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ActiveBindingRepository interface {
	Create(ctx context.Context, binding *entity.ActiveBinding) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ActiveBinding, error)
	CountForVersion(ctx context.Context, featureID uuid.UUID, version int) (int64, error)
	CountForFeature(ctx context.Context, featureID uuid.UUID) (int64, error)
}
