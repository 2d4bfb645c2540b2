package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/albertoterrazas-oss/AztecaSoft/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx and migrates the
// catalog and lot tables. TranslateError maps driver unique-violation
// errors to gorm.ErrDuplicatedKey, which the lot repository relies on for
// folio uniqueness.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migraciones: %w", err)
	}
	return db, nil
}

// RunMigrations creates or updates the schema. Also used by integration
// tests against a throwaway database.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Proveedor{},
		&model.Producto{},
		&model.Lote{},
		&model.DetalleLote{},
	)
}
