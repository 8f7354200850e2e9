// FILE: internal/service/errors.go
// Registry error taxonomy. Wrapped with %w so callers can errors.Is them;
// the HTTP layer maps each to a status in serverutils.
package service

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidName      = errors.New("invalid feature name")
	ErrInvalidQuery     = errors.New("invalid defining query")
	ErrDuplicateFeature = errors.New("feature already registered")
	ErrDuplicateVersion = errors.New("version already registered")
	ErrNameCollision    = errors.New("table name already in use")
	ErrNoOpUpdate       = errors.New("defining query is identical to an existing version")
	ErrVersionBound     = errors.New("live consumer bindings exist")
)
