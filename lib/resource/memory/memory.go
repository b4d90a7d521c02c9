// Package memory is an in-process resource.Adapter. Rows are copied on the
// way in and out, so callers never share maps with the store.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/donutnomad/stampkit/lib/errors"
	"github.com/donutnomad/stampkit/lib/resource"
)

type table struct {
	serial int64
	rows   map[any]map[string]any
}

type Adapter struct {
	mu     sync.Mutex
	tables map[string]*table
}

var _ resource.Adapter = (*Adapter)(nil)

func New() *Adapter {
	return &Adapter{tables: map[string]*table{}}
}

func (a *Adapter) Migrate(_ context.Context, m *resource.Model) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.table(m.Name())
	return nil
}

func (a *Adapter) Create(_ context.Context, m *resource.Model, attrs map[string]any) (any, error) {
	kp, ok := m.Key()
	if !ok {
		return nil, errors.Wrapf(resource.ErrMissingKey, "memory: create %s", m.Name())
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	t := a.table(m.Name())
	row := maps.Clone(attrs)

	key, hasKey := row[kp.Name]
	if kp.Type == resource.TypeSerial && !hasKey {
		t.serial++
		key = t.serial
		row[kp.Name] = key
	}
	if key == nil {
		return nil, errors.MarkWrapf(errors.New("missing key value"), resource.ErrPersistence, "memory: create %s", m.Name())
	}
	if _, exists := t.rows[key]; exists {
		return nil, errors.MarkWrapf(errors.Newf("duplicate key %v", key), resource.ErrPersistence, "memory: create %s", m.Name())
	}

	t.rows[key] = row
	return key, nil
}

func (a *Adapter) Update(_ context.Context, m *resource.Model, key any, changes map[string]any) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	row, ok := a.table(m.Name()).rows[key]
	if !ok {
		return errors.Wrapf(resource.ErrNotFound, "memory: update %s %v", m.Name(), key)
	}
	for name, v := range changes {
		if v == nil {
			delete(row, name)
			continue
		}
		row[name] = v
	}
	return nil
}

func (a *Adapter) Get(_ context.Context, m *resource.Model, key any) (map[string]any, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	row, ok := a.table(m.Name()).rows[key]
	if !ok {
		return nil, errors.Wrapf(resource.ErrNotFound, "memory: get %s %v", m.Name(), key)
	}
	return maps.Clone(row), nil
}

// Len returns the number of rows stored for model.
func (a *Adapter) Len(model string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.table(model).rows)
}

// table must be called with mu held.
func (a *Adapter) table(name string) *table {
	t, ok := a.tables[name]
	if !ok {
		t = &table{rows: map[any]map[string]any{}}
		a.tables[name] = t
	}
	return t
}
