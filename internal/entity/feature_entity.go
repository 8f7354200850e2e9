// FILE: internal/entity/feature_entity.go
// Domain entity for registered features
package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Feature is a named, versioned, queryable derived artifact. Identity is
// created on first successful registration and never changes.
type Feature struct {
	Id           uuid.UUID
	Name         string          // Normalized: upper-cased, trimmed, spaces -> underscores. Globally unique.
	Description  string          // Analyst-facing description
	Format       json.RawMessage // Opaque payload-shape descriptor (code list, vocabulary, phenotype, ...)
	RegisteredAt time.Time
}
