package database

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

//go:embed sqlite_schema.sql
var schemaFS embed.FS

// NewSQLiteDB opens (and creates if needed) a single-file database with the
// snapgram schema applied. Used for local runs and repository tests.
func NewSQLiteDB(path string) (*gorm.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		// Timestamps are stored as text, so keep them in one zone to sort.
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	schema, err := fs.ReadFile(schemaFS, "sqlite_schema.sql")
	if err != nil {
		return nil, err
	}
	if err := db.Exec(string(schema)).Error; err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return db, nil
}
