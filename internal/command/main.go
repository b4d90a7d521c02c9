// Package command holds the stampctl command tree.
package command

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/donutnomad/stampkit/internal/config"
	"github.com/donutnomad/stampkit/lib/errors"
	"github.com/urfave/cli/v2"
)

const (
	flagLogLevel = "log-level"
	flagDebug    = "debug"

	metadataConfig = "config"
)

func Main(name string, usage string, commands ...*cli.Command) {
	app := NewApp(name, usage, commands...)
	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

// NewApp builds the cli.App. Configuration comes from STAMPKIT_* variables;
// --log-level overrides STAMPKIT_LOGGER_LEVEL.
func NewApp(name string, usage string, commands ...*cli.Command) *cli.App {
	app := &cli.App{
		Name:     name,
		Usage:    usage,
		Commands: commands,
		Before: func(ctx *cli.Context) error {
			conf, err := config.Parse()
			if err != nil {
				return errors.Wrap(err, "could not parse config")
			}

			if ctx.IsSet(flagLogLevel) {
				if err := conf.Logger.Level.UnmarshalText([]byte(ctx.String(flagLogLevel))); err != nil {
					return errors.Wrap(err, "invalid log level")
				}
			}

			logger := slog.New(slog.NewTextHandler(ctx.App.ErrWriter, &slog.HandlerOptions{
				Level:     conf.Logger.Level,
				AddSource: conf.Logger.Level <= slog.LevelDebug,
			}))
			slog.SetDefault(logger)

			ctx.App.Metadata[metadataConfig] = conf
			return nil
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagLogLevel,
				EnvVars: []string{"STAMPKIT_CLI_LOG_LEVEL"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				EnvVars: []string{"STAMPKIT_CLI_DEBUG"},
				Usage:   "Print errors with stack traces",
			},
		},
		Metadata: map[string]any{},
	}

	app.ExitErrHandler = func(ctx *cli.Context, err error) {
		if err == nil {
			return
		}
		if ctx.Bool(flagDebug) {
			slog.ErrorContext(ctx.Context, fmt.Sprintf("%+v", err))
			return
		}
		slog.ErrorContext(ctx.Context, err.Error())
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))

	return app
}

func configFrom(ctx *cli.Context) *config.Config {
	if conf, ok := ctx.App.Metadata[metadataConfig].(*config.Config); ok {
		return conf
	}
	return &config.Config{}
}
