// Package db opens the relational store and manages its schema.
package db

import (
	"fmt"

	"github.com/minefleet/minefleet/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds a MySQL DSN from database settings.
func DSN(host string, port int, user, password, name string) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		user, password, host, port, name)
}

// Open connects to the configured store: MySQL when the settings are
// complete, a local SQLite file otherwise. TranslateError lets duplicate
// key and FK failures surface as gorm sentinel errors on both drivers.
func Open(cfg *config.Config) (*gorm.DB, error) {
	gc := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	if cfg.UseMySQL() {
		dsn := DSN(cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
			cfg.Database.Password, cfg.Database.Name)
		gdb, err := gorm.Open(mysql.Open(dsn), gc)
		if err != nil {
			return nil, fmt.Errorf("db: connect to %s:%d/%s: %w",
				cfg.Database.Host, cfg.Database.Port, cfg.Database.Name, err)
		}
		return gdb, nil
	}

	gdb, err := gorm.Open(sqlite.Open(cfg.Database.SQLitePath), gc)
	if err != nil {
		return nil, fmt.Errorf("db: open sqlite %s: %w", cfg.Database.SQLitePath, err)
	}
	return gdb, nil
}
