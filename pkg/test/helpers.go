package test

import (
	"database/sql"
	"log"
	"path/filepath"

	"userapp/internal/adapter/database/sqlite"
	"userapp/pkg"
)

// InitTestDB opens an in-memory sqlite database with the real migrations
// applied. A single connection keeps the in-memory schema alive for the
// whole test.
func InitTestDB() *sqlite.DB {
	sqlDB, err := sql.Open("sqlite3", ":memory:")

	if err != nil {
		log.Fatal(err)
	}

	sqlDB.SetMaxOpenConns(1)

	if _, err = sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		log.Fatal(err)
	}

	migrationsPath := filepath.Join(pkg.FindProjectRoot(), "db", "migrations")
	sqlite.RunMigrations(sqlDB, migrationsPath)

	return sqlite.Wrap(sqlDB)
}
