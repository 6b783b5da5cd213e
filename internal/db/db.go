package db

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/config"
)

// Open connects to the database selected by conf.Database.Driver.
// For postgres, DATABASE_URL takes precedence over the postgres section.
func Open(conf *config.AppConfig) (*gorm.DB, error) {
	switch conf.Database.Driver {
	case "postgres":
		if url := os.Getenv("DATABASE_URL"); url != "" {
			return OpenPostgresWithURL(url)
		}

		return OpenPostgres(conf.Postgres)
	case "sqlite":
		return OpenSQLite(conf.SQLite.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.Database.Driver)
	}
}

func OpenPostgres(conf *config.PostgresConfig) (*gorm.DB, error) {
	return OpenPostgresWithURL(conf.DSN())
}

func OpenPostgresWithURL(url string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(url), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("gorm.Open(postgres) -> %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("gdb.DB -> %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return gdb, nil
}

// OpenSQLite opens a SQLite database with foreign keys enforced, which the
// cascading deletes rely on. path may be a plain file name or a "file:" URI,
// e.g. "file:test?mode=memory&cache=shared".
func OpenSQLite(path string) (*gorm.DB, error) {
	if path == "" {
		path = "resorts.db"
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	dsn := path + sep + "_foreign_keys=on&_busy_timeout=5000"

	gdb, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("gorm.Open(sqlite) -> %w", err)
	}

	if strings.Contains(path, "mode=memory") {
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("gdb.DB -> %w", err)
		}
		// A single connection keeps the in-memory database alive and
		// avoids shared-cache table locks.
		sqlDB.SetMaxOpenConns(1)
	}

	return gdb, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}
}
