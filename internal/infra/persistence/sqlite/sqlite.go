// Package sqlite contains the concrete persistence layer: a small key-value
// table in a local sqlite database, managed through GORM.
package sqlite

import (
	"context"
	"log/slog"
	"time"

	"barhop/config"
	"barhop/internal/domain/lifecycle"
	"barhop/internal/errors"

	"github.com/glebarez/sqlite"
	"go.uber.org/fx"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// kvModel is one row of the key-value table backing durable local storage.
type kvModel struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (kvModel) TableName() string { return "kv_store" }

// New opens the local sqlite database and migrates the key-value table.
func New(params Params) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(params.Config.Store.Path), &gorm.Config{
		// Single local writer; per-statement transactions only add fsyncs.
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}

	if err := db.AutoMigrate(&kvModel{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate kv table")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sqlite sql.DB")
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping sqlite")
			}

			params.Logger.Info("sqlite store ready",
				slog.String("path", params.Config.Store.Path),
			)

			return nil
		},
		OnStop: func(_ context.Context) error {
			return sqlDB.Close()
		},
	})

	return db, nil
}
