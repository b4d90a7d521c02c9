// Package resource is a small persistence layer: models declare typed
// properties and before-save hooks, resources track novelty and dirty
// attributes, and an Adapter does the storage.
package resource

import (
	"context"
	"slices"

	"github.com/donutnomad/stampkit/lib/errors"
	"github.com/samber/lo"
)

// Hook runs before every save attempt. A non-nil error aborts the save.
type Hook func(ctx context.Context, r *Resource) error

// Model is a record type: its schema, hooks and storage.
// Declaration methods are meant for setup time and are not safe for
// concurrent use with Save.
type Model struct {
	name       string
	adapter    Adapter
	properties []Property
	index      map[string]int
	hooks      []Hook
	listeners  []func(Property)
}

func NewModel(name string, adapter Adapter) *Model {
	return &Model{
		name:    name,
		adapter: adapter,
		index:   map[string]int{},
	}
}

func (m *Model) Name() string { return m.name }

// Property declares (or redeclares) a property. Redeclaring keeps the
// original position and replaces the metadata.
func (m *Model) Property(name string, typ Type, opts ...PropertyOption) Property {
	p := Property{Name: name, Type: typ}
	for _, opt := range opts {
		opt(&p)
	}
	if typ == TypeSerial {
		p.Key = true
	}

	if i, ok := m.index[name]; ok {
		m.properties[i] = p
	} else {
		m.index[name] = len(m.properties)
		m.properties = append(m.properties, p)
	}

	for _, fn := range m.listeners {
		fn(p)
	}
	return p
}

// OnDeclare calls fn for every property already declared and for every
// later declaration.
func (m *Model) OnDeclare(fn func(Property)) {
	for _, p := range m.properties {
		fn(p)
	}
	m.listeners = append(m.listeners, fn)
}

func (m *Model) BeforeSave(hook Hook) {
	m.hooks = append(m.hooks, hook)
}

func (m *Model) Properties() []Property {
	return slices.Clone(m.properties)
}

func (m *Model) Lookup(name string) (Property, bool) {
	i, ok := m.index[name]
	if !ok {
		return Property{}, false
	}
	return m.properties[i], true
}

func (m *Model) Named(name string) bool {
	_, ok := m.index[name]
	return ok
}

func (m *Model) Key() (Property, bool) {
	return lo.Find(m.properties, func(p Property) bool { return p.Key })
}

// New builds an unsaved resource. Unknown names and uncastable values fail.
func (m *Model) New(attrs map[string]any) (*Resource, error) {
	r := &Resource{model: m, attrs: map[string]any{}}
	for _, name := range lo.Keys(attrs) {
		if err := r.Set(name, attrs[name]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Create is New followed by Save.
func (m *Model) Create(ctx context.Context, attrs map[string]any) (*Resource, error) {
	r, err := m.New(attrs)
	if err != nil {
		return nil, err
	}
	if err := r.Save(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Get loads a persisted resource by key.
func (m *Model) Get(ctx context.Context, key any) (*Resource, error) {
	kp, ok := m.Key()
	if !ok {
		return nil, errors.Wrapf(ErrMissingKey, "get %s", m.name)
	}
	key, err := kp.Type.Typecast(key)
	if err != nil {
		return nil, err
	}

	row, err := m.adapter.Get(ctx, m, key)
	if err != nil {
		return nil, err
	}

	r := &Resource{model: m, attrs: map[string]any{}}
	for _, p := range m.properties {
		v, err := p.Type.Typecast(row[p.Name])
		if err != nil {
			return nil, errors.Wrapf(err, "load %s.%s", m.name, p.Name)
		}
		if v != nil {
			r.attrs[p.Name] = v
		}
	}
	r.markSaved()
	return r, nil
}

func (m *Model) Migrate(ctx context.Context) error {
	return m.adapter.Migrate(ctx, m)
}
