// Package timestamps keeps created_at / created_on / updated_at / updated_on
// properties of a resource.Model current.
//
//	notes := resource.NewModel("notes", store)
//	notes.Property("id", resource.TypeSerial)
//	notes.Property("title", resource.TypeString)
//
//	ts := timestamps.Include(notes)
//	if err := ts.Declare("at", "on"); err != nil { ... }
//
// Before every save of a dirty resource, the updated_* properties are set to
// the current time and the created_* properties are filled in once, when the
// resource is new and the caller has not set them. Properties the model does
// not declare are left alone.
package timestamps

import (
	"context"
	"log/slog"
	"time"

	"github.com/donutnomad/stampkit/lib/resource"
	"github.com/samber/mo"
)

// Record is the part of a resource the stamping rules read and write.
type Record interface {
	IsNew() bool
	IsDirty() bool
	Get(name string) mo.Option[any]
	Set(name string, value any) error
}

// Saver is a Record that can persist itself.
type Saver interface {
	Record
	Save(ctx context.Context) error
}

var _ Saver = (*resource.Resource)(nil)

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

type Option func(*Mixin)

func WithClock(c Clock) Option {
	return func(x *Mixin) { x.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(x *Mixin) { x.logger = l }
}

// WithUTC stamps UTC times, and dates of the UTC calendar day.
func WithUTC() Option {
	return func(x *Mixin) { x.utc = true }
}

// Mixin is the timestamp behaviour attached to one model.
type Mixin struct {
	model  *resource.Model
	clock  Clock
	logger *slog.Logger
	utc    bool
	fields Set
}

// Include attaches the timestamp hook to m. Timestamp properties declared on
// m before or after Include, directly or through Declare, are picked up as
// they are declared.
func Include(m *resource.Model, opts ...Option) *Mixin {
	x := &Mixin{
		model:  m,
		clock:  ClockFunc(time.Now),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(x)
	}

	m.OnDeclare(x.observe)
	m.BeforeSave(x.beforeSave)
	return x
}

// Declare registers timestamp properties on the model. Accepted names are
// created_at, created_on, updated_at, updated_on and the groups "at"
// (created_at, updated_at) and "on" (created_on, updated_on). Every declared
// property is required. Names are all checked before anything is
// registered.
func (x *Mixin) Declare(names ...string) error {
	kinds, err := Expand(names...)
	if err != nil {
		return err
	}
	for _, k := range kinds {
		x.model.Property(k.Name(), k.Type(), resource.Required())
	}
	return nil
}

// Fields returns the timestamp kinds the model currently declares.
func (x *Mixin) Fields() Set { return x.fields }

// Apply stamps r regardless of its dirty state.
func (x *Mixin) Apply(ctx context.Context, r Record) error {
	return x.stamp(ctx, r, x.fields)
}

// Touch refreshes the updated_* properties and saves r, returning the save
// result as is. created_* properties are left alone.
func (x *Mixin) Touch(ctx context.Context, r Saver) error {
	if err := x.stamp(ctx, r, x.fields.Intersect(Updates)); err != nil {
		return err
	}
	return r.Save(ctx)
}

func (x *Mixin) beforeSave(ctx context.Context, r *resource.Resource) error {
	if !r.IsDirty() {
		return nil
	}
	return x.stamp(ctx, r, x.fields)
}

func (x *Mixin) observe(p resource.Property) {
	k, ok := Lookup(p.Name)
	if !ok {
		return
	}
	// 同名但类型不符的属性不归本插件管理
	if p.Type != k.Type() {
		x.fields = x.fields.Remove(k)
		return
	}
	x.fields = x.fields.Add(k)
}

func (x *Mixin) stamp(ctx context.Context, r Record, set Set) error {
	if set.Empty() {
		return nil
	}

	now := x.clock.Now()
	if x.utc {
		now = now.UTC()
	}

	var stamped Set
	for _, k := range set.Kinds() {
		if descriptors[k].rule == onCreate && (!r.IsNew() || r.Get(k.Name()).IsPresent()) {
			continue
		}
		if err := r.Set(k.Name(), valueOf(k, now)); err != nil {
			return err
		}
		stamped = stamped.Add(k)
	}

	x.logger.DebugContext(ctx, "timestamps stamped",
		slog.String("model", x.model.Name()),
		slog.String("fields", stamped.String()),
		slog.Time("now", now),
	)
	return nil
}

func valueOf(k Kind, now time.Time) any {
	if k.Type() == resource.TypeDate {
		return resource.ToDate(now)
	}
	return now
}
