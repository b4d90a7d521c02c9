package config

import (
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/donutnomad/stampkit/lib/errors"
)

type Config struct {
	Logger     Logger     `envPrefix:"LOGGER_"`
	Storage    Storage    `envPrefix:"STORAGE_"`
	Timestamps Timestamps `envPrefix:"TIMESTAMPS_"`
}

type Logger struct {
	Level slog.Level `env:"LEVEL" envDefault:"INFO"`
}

type Storage struct {
	// Driver is one of sqlite, mysql, postgres, memory.
	Driver string `env:"DRIVER" envDefault:"sqlite"`
	DSN    string `env:"DSN,expand" envDefault:"stampkit.sqlite"`
}

type Timestamps struct {
	UTC bool `env:"UTC" envDefault:"false"`
}

func Parse() (*Config, error) {
	conf, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix: "STAMPKIT_",
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &conf, nil
}
