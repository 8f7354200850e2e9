// FILE: internal/entity/active_binding_entity.go
// Domain entity for consumer bindings
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ActiveBinding records that a consumer relies on a specific feature version.
// Bindings are additive audit records.
type ActiveBinding struct {
	Id              uuid.UUID
	FeatureId       uuid.UUID
	Version         int
	ConsumerId      string
	ConsumerVersion string
	BoundAt         time.Time
}
