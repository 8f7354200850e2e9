package events

import (
	"time"

	"github.com/google/uuid"
)

// Registry lifecycle event codes. Downstream curation tooling subscribes to
// these to invalidate caches and re-pin table references.
const (
	TypeFeatureCreated     = "FEATURE_CREATED"
	TypeVersionRegistered  = "FEATURE_VERSION_REGISTERED"
	TypeVersionSuperseded  = "FEATURE_VERSION_SUPERSEDED"
	TypeVersionOverwritten = "FEATURE_VERSION_OVERWRITTEN"
	TypeFeatureRefreshed   = "FEATURE_REFRESHED"
	TypeVersionRemoved     = "FEATURE_VERSION_REMOVED"
	TypeFeatureDeleted     = "FEATURE_DELETED"
)

func NewFeatureCreated(featureID uuid.UUID, name, tableName string) Event {
	return BaseEvent{
		Type: TypeFeatureCreated,
		Data: map[string]interface{}{
			"feature_id":   featureID.String(),
			"feature_name": name,
			"table_name":   tableName,
			"version":      1,
		},
		OccurredAt: time.Now(),
	}
}

func NewVersionRegistered(featureID uuid.UUID, version int, tableName string) Event {
	return BaseEvent{
		Type: TypeVersionRegistered,
		Data: map[string]interface{}{
			"feature_id": featureID.String(),
			"version":    version,
			"table_name": tableName,
		},
		OccurredAt: time.Now(),
	}
}

func NewVersionSuperseded(featureID uuid.UUID, version int, tableName string) Event {
	return BaseEvent{
		Type: TypeVersionSuperseded,
		Data: map[string]interface{}{
			"feature_id": featureID.String(),
			"version":    version,
			"table_name": tableName,
		},
		OccurredAt: time.Now(),
	}
}

func NewVersionOverwritten(featureID uuid.UUID, version int, tableName string) Event {
	return BaseEvent{
		Type: TypeVersionOverwritten,
		Data: map[string]interface{}{
			"feature_id": featureID.String(),
			"version":    version,
			"table_name": tableName,
		},
		OccurredAt: time.Now(),
	}
}

func NewFeatureRefreshed(featureID uuid.UUID, version int, tableName string) Event {
	return BaseEvent{
		Type: TypeFeatureRefreshed,
		Data: map[string]interface{}{
			"feature_id": featureID.String(),
			"version":    version,
			"table_name": tableName,
		},
		OccurredAt: time.Now(),
	}
}

func NewVersionRemoved(featureID uuid.UUID, version int, tableName string) Event {
	return BaseEvent{
		Type: TypeVersionRemoved,
		Data: map[string]interface{}{
			"feature_id": featureID.String(),
			"version":    version,
			"table_name": tableName,
		},
		OccurredAt: time.Now(),
	}
}

func NewFeatureDeleted(featureID uuid.UUID, name string) Event {
	return BaseEvent{
		Type: TypeFeatureDeleted,
		Data: map[string]interface{}{
			"feature_id":   featureID.String(),
			"feature_name": name,
		},
		OccurredAt: time.Now(),
	}
}
