package warehouse

import "context"

// Engine is the only boundary to the analytical warehouse. Statements are
// assembled by the statement builder in this package; callers never
// concatenate SQL themselves.
type Engine interface {
	// Run executes a statement that returns no rows (DDL, DML).
	Run(ctx context.Context, stmt string) error

	// Query executes a statement and returns its rows as generic maps.
	Query(ctx context.Context, stmt string) ([]map[string]interface{}, error)

	// SetNamespace switches the default (catalog, area) the engine resolves
	// unqualified table names against.
	SetNamespace(ctx context.Context, catalog, area string) error

	// TableExists reports whether a table is present in the current namespace.
	TableExists(ctx context.Context, table string) (bool, error)

	// SupportsSuspend reports whether the backend can pause continuous
	// refresh on a table while keeping its last materialized rows.
	SupportsSuspend() bool

	// SupportsRefreshPolicy reports whether the backend honors a target-lag
	// refresh policy on created tables.
	SupportsRefreshPolicy() bool
}

// ExecutionError wraps any backend failure together with the statement that
// triggered it.
type ExecutionError struct {
	Statement string
	Message   string
	Err       error
}

func (e *ExecutionError) Error() string {
	return "warehouse execution failed: " + e.Message
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

func newExecutionError(stmt string, err error) *ExecutionError {
	return &ExecutionError{
		Statement: stmt,
		Message:   err.Error(),
		Err:       err,
	}
}
