package db

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"blogapp/internal/model"
)

// Models lists every table in creation order; dependents come last.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Post{},
		&model.Comment{},
	}
}

// Migrate creates missing tables and columns. With reset set, existing tables
// are dropped first.
func Migrate(db *gorm.DB, reset bool) error {
	if reset {
		slog.Warn("RESET_DB=true detected, dropping all tables")
		tables := Models()
		for i := len(tables) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(tables[i]); err != nil {
				slog.Warn("drop table failed (may not exist)", "err", err)
			}
		}
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
