// Package store owns the handle to the hosted table store. Every entity
// operation issues exactly one statement through the *gorm.DB it returns.
package store

import (
	"fmt"
	"os"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// Register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Harshverma1208/smartech/internal/config"
	"github.com/Harshverma1208/smartech/internal/models"
)

const connectRetries = 10

// Connect opens the hosted store and brings the schema up to date. With
// MIGRATIONS=1 the SQL files under ./migrations run via golang-migrate;
// otherwise AutoMigrate keeps development databases in sync.
func Connect(cfg config.Config, log *logrus.Logger) (*gorm.DB, error) {
	dsn, err := BuildDSN(cfg.StoreURL, cfg.StoreKey)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	}

	var db *gorm.DB
	for i := 0; i < connectRetries; i++ {
		db, err = gorm.Open(postgres.Open(dsn), gcfg)
		if err == nil {
			break
		}
		log.WithError(err).Warn("store connection failed, retrying")
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to store after %d retries: %w", connectRetries, err)
	}
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("store ping failed: %w", pingErr)
	}
	log.WithField("dsn", Redact(dsn)).Info("connected to table store")

	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else if err := Migrate(db); err != nil {
		return nil, err
	}

	for _, table := range []string{"users", "customers", "inventory", "invoices", "salaries"} {
		if !db.Migrator().HasTable(table) {
			return nil, fmt.Errorf("missing table after migration: %s", table)
		}
	}
	return db, nil
}

// Migrate runs gorm AutoMigrate for every entity table.
func Migrate(db *gorm.DB) error {
	for _, m := range []any{
		&models.User{}, &models.Customer{}, &models.InventoryItem{},
		&models.Invoice{}, &models.SalaryRecord{},
	} {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
