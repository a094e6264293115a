package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eatshare/eats-back/internal/config"
)

var (
	Module = fx.Provide(
		NewGormClient,
	)
)

type gormWriter struct {
	l *zap.SugaredLogger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.l.Infof(format, args...)
}

func NewGormClient(lc fx.Lifecycle, cfg *config.Config, l *zap.SugaredLogger) (*gorm.DB, error) {
	level := logger.Info
	if cfg.LogMode == config.LogModeProduction {
		level = logger.Warn
	}

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.PostgresDSN())
	default:
		dialector = sqlite.Open(SQLiteDSN(cfg.DBPath))
	}

	db, err := Open(dialector, newGormLogger(l, level))
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			l.Info("Closing database.")
			return sqlDB.Close()
		},
	})

	return db, nil
}

// SQLiteDSN enables foreign key enforcement, which sqlite leaves off by default.
func SQLiteDSN(path string) string {
	return path + "?_foreign_keys=1"
}

// Open connects and migrates the schema.
func Open(dialector gorm.Dialector, gormLogger logger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if dialector.Name() == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "get sql db")
		}
		// one writer at a time
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the tables parents first so foreign keys resolve.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}); err != nil {
		return errors.Wrap(err, "migrate user")
	}
	if err := db.AutoMigrate(&Eats{}); err != nil {
		return errors.Wrap(err, "migrate eats")
	}
	if err := db.AutoMigrate(&FoodTag{}); err != nil {
		return errors.Wrap(err, "migrate food tag")
	}
	if err := db.AutoMigrate(&EatsFoodTag{}); err != nil {
		return errors.Wrap(err, "migrate eats food tag")
	}
	if err := db.AutoMigrate(&Dibs{}); err != nil {
		return errors.Wrap(err, "migrate dibs")
	}
	if err := db.AutoMigrate(&Review{}); err != nil {
		return errors.Wrap(err, "migrate review")
	}
	return nil
}

func newGormLogger(l *zap.SugaredLogger, level logger.LogLevel) logger.Interface {
	return logger.New(gormWriter{l: l}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		Colorful:                  false,
		IgnoreRecordNotFoundError: true,
	})
}
