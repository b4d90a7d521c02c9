package setup

import (
	"context"

	"github.com/donutnomad/stampkit/internal/config"
	"github.com/donutnomad/stampkit/lib/resource"
	"github.com/donutnomad/stampkit/lib/resource/gormstore"
	"github.com/donutnomad/stampkit/lib/resource/memory"
	"github.com/donutnomad/stampkit/lib/timestamps"
)

// Notes is the demo model served by stampctl.
type Notes struct {
	*resource.Model
	Timestamps *timestamps.Mixin
}

func NewAdapter(ctx context.Context, conf *config.Config) (resource.Adapter, error) {
	if conf.Storage.Driver == "memory" {
		return memory.New(), nil
	}
	db, err := NewGormDatabase(ctx, conf)
	if err != nil {
		return nil, err
	}
	return gormstore.New(db), nil
}

func NewNotes(ctx context.Context, conf *config.Config) (*Notes, error) {
	adapter, err := NewAdapter(ctx, conf)
	if err != nil {
		return nil, err
	}

	m := resource.NewModel("notes", adapter)
	m.Property("id", resource.TypeSerial)
	m.Property("title", resource.TypeString, resource.Required())

	var opts []timestamps.Option
	if conf.Timestamps.UTC {
		opts = append(opts, timestamps.WithUTC())
	}
	ts := timestamps.Include(m, opts...)
	if err := ts.Declare("at", "on"); err != nil {
		return nil, err
	}

	return &Notes{Model: m, Timestamps: ts}, nil
}
