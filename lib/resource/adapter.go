package resource

import "context"

// Adapter is the storage port a Model persists through. Rows are plain
// column maps keyed by property name.
type Adapter interface {
	Migrate(ctx context.Context, m *Model) error
	// Create inserts attrs and returns the stored key, which may have been
	// generated by the store (serial keys).
	Create(ctx context.Context, m *Model, attrs map[string]any) (any, error)
	Update(ctx context.Context, m *Model, key any, changes map[string]any) error
	Get(ctx context.Context, m *Model, key any) (map[string]any, error)
}
