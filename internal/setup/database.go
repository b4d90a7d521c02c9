package setup

import (
	"context"
	"log/slog"

	"github.com/donutnomad/stampkit/internal/config"
	"github.com/donutnomad/stampkit/lib/errors"
	mysqldriver "github.com/go-sql-driver/mysql"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/gormlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

func NewGormDatabase(ctx context.Context, conf *config.Config) (*gorm.DB, error) {
	dialector, err := newDialector(conf.Storage)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(conf.Logger.Level)),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", conf.Storage.Driver)
	}

	if conf.Logger.Level <= slog.LevelDebug {
		db = db.Debug()
	}

	if conf.Storage.Driver == "sqlite" {
		internalDB, err := db.DB()
		if err != nil {
			return nil, errors.WithStack(err)
		}
		internalDB.SetMaxOpenConns(1)

		if err := db.WithContext(ctx).Exec("PRAGMA journal_mode=wal; PRAGMA busy_timeout=5000").Error; err != nil {
			return nil, errors.WithStack(err)
		}
	}

	return db, nil
}

func newDialector(conf config.Storage) (gorm.Dialector, error) {
	switch conf.Driver {
	case "sqlite":
		return gormlite.Open(conf.DSN), nil
	case "mysql":
		dsn, err := mysqldriver.ParseDSN(conf.DSN)
		if err != nil {
			return nil, errors.Wrap(err, "parse mysql dsn")
		}
		// DATETIME / DATE 列需要扫描为 time.Time
		dsn.ParseTime = true
		return mysql.New(mysql.Config{DSNConfig: dsn}), nil
	case "postgres":
		return postgres.Open(conf.DSN), nil
	}
	return nil, errors.Wrapf(ErrUnknownDriver, "%q", conf.Driver)
}

func gormLogLevel(level slog.Level) logger.LogLevel {
	switch {
	case level >= slog.LevelError:
		return logger.Error
	case level >= slog.LevelWarn:
		return logger.Warn
	default:
		return logger.Info
	}
}
