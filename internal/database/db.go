package database

import (
	"time"

	"finhealth/internal/model"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Options tunes the connection pool
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

// NewConnection opens a GORM connection pool to PostgreSQL and migrates the ledger tables.
func NewConnection(dsn string, opts Options, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if !opts.AutoMigrate {
		return db, nil
	}

	// Local development only; production schemas belong to the record-keeping service
	err = db.AutoMigrate(
		&model.Transaction{},
		&model.Order{},
		&model.Budget{},
		&model.Product{},
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to auto-migrate ledger models")
	}

	return db, nil
}
