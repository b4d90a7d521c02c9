package command

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/bytedance/sonic"
	"github.com/davecgh/go-spew/spew"
	"github.com/donutnomad/stampkit/internal/setup"
	"github.com/donutnomad/stampkit/lib/errors"
	"github.com/donutnomad/stampkit/lib/resource"
	"github.com/urfave/cli/v2"
)

const (
	flagID    = "id"
	flagTitle = "title"
	flagJSON  = "json"
)

func idFlag() cli.Flag {
	return &cli.Int64Flag{
		Name:     flagID,
		Usage:    "Note id",
		Required: true,
	}
}

func titleFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     flagTitle,
		Aliases:  []string{"t"},
		Usage:    "Note title",
		Required: true,
	}
}

// Commands returns the note commands served by stampctl.
func Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "migrate",
			Usage: "Create the notes table",
			Action: withNotes(func(ctx *cli.Context, notes *setup.Notes) error {
				if err := notes.Migrate(ctx.Context); err != nil {
					return errors.WithStack(err)
				}
				slog.InfoContext(ctx.Context, "notes table ready")
				return nil
			}),
		},
		{
			Name:  "create",
			Usage: "Create a note",
			Flags: []cli.Flag{titleFlag()},
			Action: withNotes(func(ctx *cli.Context, notes *setup.Notes) error {
				r, err := notes.Create(ctx.Context, map[string]any{flagTitle: ctx.String(flagTitle)})
				if err != nil {
					return errors.WithStack(err)
				}
				return render(ctx, r)
			}),
		},
		{
			Name:  "update",
			Usage: "Change the title of a note",
			Flags: []cli.Flag{idFlag(), titleFlag()},
			Action: withNotes(func(ctx *cli.Context, notes *setup.Notes) error {
				r, err := notes.Get(ctx.Context, ctx.Int64(flagID))
				if err != nil {
					return errors.WithStack(err)
				}
				if err := r.Set(flagTitle, ctx.String(flagTitle)); err != nil {
					return errors.WithStack(err)
				}
				if err := r.Save(ctx.Context); err != nil {
					return errors.WithStack(err)
				}
				return render(ctx, r)
			}),
		},
		{
			Name:  "touch",
			Usage: "Refresh the updated_at/on timestamps of a note",
			Flags: []cli.Flag{idFlag()},
			Action: withNotes(func(ctx *cli.Context, notes *setup.Notes) error {
				r, err := notes.Get(ctx.Context, ctx.Int64(flagID))
				if err != nil {
					return errors.WithStack(err)
				}
				if err := notes.Timestamps.Touch(ctx.Context, r); err != nil {
					return errors.WithStack(err)
				}
				return render(ctx, r)
			}),
		},
		{
			Name:  "show",
			Usage: "Print a note",
			Flags: []cli.Flag{
				idFlag(),
				&cli.BoolFlag{
					Name:  flagJSON,
					Usage: "Print as JSON",
				},
			},
			Action: withNotes(func(ctx *cli.Context, notes *setup.Notes) error {
				r, err := notes.Get(ctx.Context, ctx.Int64(flagID))
				if err != nil {
					return errors.WithStack(err)
				}
				return render(ctx, r)
			}),
		},
	}
}

func withNotes(fn func(ctx *cli.Context, notes *setup.Notes) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		notes, err := setup.NewNotes(ctx.Context, configFrom(ctx))
		if err != nil {
			return errors.WithStack(err)
		}
		return fn(ctx, notes)
	}
}

func render(ctx *cli.Context, r *resource.Resource) error {
	w := ctx.App.Writer
	attrs := r.Attributes()

	if ctx.Bool(flagDebug) {
		spew.Fdump(ctx.App.ErrWriter, attrs)
	}

	if ctx.Bool(flagJSON) {
		data, err := sonic.ConfigStd.Marshal(attrs)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return errors.WithStack(err)
	}

	return errors.WithStack(writeTable(w, r.Model(), attrs))
}

func writeTable(w io.Writer, m *resource.Model, attrs map[string]any) error {
	names := slices.Collect(maps.Keys(attrs))
	slices.SortStableFunc(names, func(a, b string) int {
		return propertyIndex(m, a) - propertyIndex(m, b)
	})
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%-12s %v\n", name, display(attrs[name])); err != nil {
			return err
		}
	}
	return nil
}

func propertyIndex(m *resource.Model, name string) int {
	return slices.IndexFunc(m.Properties(), func(p resource.Property) bool { return p.Name == name })
}
