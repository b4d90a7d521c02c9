package resource

import (
	"context"
	"maps"

	"github.com/donutnomad/stampkit/lib/errors"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Resource is one record of a Model.
type Resource struct {
	model    *Model
	attrs    map[string]any
	original map[string]any // last persisted attributes
	saved    bool
}

func (r *Resource) Model() *Model { return r.model }

// Get returns the attribute value, absent when unset.
func (r *Resource) Get(name string) mo.Option[any] {
	v, ok := r.attrs[name]
	if !ok || v == nil {
		return mo.None[any]()
	}
	return mo.Some(v)
}

// Set typecasts value to the property's type and assigns it. nil unsets.
func (r *Resource) Set(name string, value any) error {
	p, ok := r.model.Lookup(name)
	if !ok {
		return errors.Wrapf(ErrUnknownProperty, "%s.%s", r.model.name, name)
	}
	v, err := p.Type.Typecast(value)
	if err != nil {
		return errors.Wrapf(err, "%s.%s", r.model.name, name)
	}
	if v == nil {
		delete(r.attrs, name)
		return nil
	}
	r.attrs[name] = v
	return nil
}

// Attributes returns a copy of the current attribute values.
func (r *Resource) Attributes() map[string]any {
	return maps.Clone(r.attrs)
}

func (r *Resource) Key() mo.Option[any] {
	kp, ok := r.model.Key()
	if !ok {
		return mo.None[any]()
	}
	return r.Get(kp.Name)
}

// IsNew is true until the first successful save.
func (r *Resource) IsNew() bool { return !r.saved }

// IsDirty reports whether Save has anything to write. A new resource is
// always dirty.
func (r *Resource) IsDirty() bool {
	return !r.saved || len(r.DirtyAttributes()) > 0
}

// DirtyAttributes returns the attributes that differ from the persisted
// state. Unset attributes that were persisted show up with a nil value.
func (r *Resource) DirtyAttributes() map[string]any {
	if !r.saved {
		return maps.Clone(r.attrs)
	}
	dirty := map[string]any{}
	for _, p := range r.model.properties {
		cur, had := r.attrs[p.Name], r.original[p.Name]
		if !equal(cur, had) {
			dirty[p.Name] = cur
		}
	}
	return dirty
}

// Save runs the before-save hooks and then writes the resource. Hooks run
// on every attempt; a clean persisted resource is not written.
func (r *Resource) Save(ctx context.Context) error {
	for _, hook := range r.model.hooks {
		if err := hook(ctx, r); err != nil {
			return err
		}
	}

	if r.saved && !r.IsDirty() {
		return nil
	}

	if err := r.validate(); err != nil {
		return err
	}

	if r.saved {
		return r.update(ctx)
	}
	return r.create(ctx)
}

func (r *Resource) create(ctx context.Context) error {
	kp, hasKey := r.model.Key()
	if hasKey && kp.Type == TypeUUID && r.Get(kp.Name).IsAbsent() {
		r.attrs[kp.Name] = uuid.New()
	}

	key, err := r.model.adapter.Create(ctx, r.model, maps.Clone(r.attrs))
	if err != nil {
		return err
	}

	if hasKey && key != nil {
		v, err := kp.Type.Typecast(key)
		if err != nil {
			return errors.Wrapf(err, "%s: stored key", r.model.name)
		}
		r.attrs[kp.Name] = v
	}

	r.markSaved()
	return nil
}

func (r *Resource) update(ctx context.Context) error {
	key := r.Key()
	if key.IsAbsent() {
		return errors.Wrapf(ErrMissingKey, "update %s", r.model.name)
	}
	if err := r.model.adapter.Update(ctx, r.model, key.MustGet(), r.DirtyAttributes()); err != nil {
		return err
	}
	r.markSaved()
	return nil
}

func (r *Resource) validate() error {
	missing := lo.FilterMap(r.model.properties, func(p Property, _ int) (string, bool) {
		if !p.Required {
			return "", false
		}
		// 新记录的自增主键由存储生成
		if !r.saved && p.generated() {
			return "", false
		}
		return p.Name, blank(r.attrs[p.Name])
	})
	if len(missing) > 0 {
		return &ValidationError{Model: r.model.name, Missing: missing}
	}
	return nil
}

func (r *Resource) markSaved() {
	r.saved = true
	r.original = maps.Clone(r.attrs)
}
