package database

import (
	"path/filepath"
	"testing"

	"snapgram/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteDB_AppliesSchema(t *testing.T) {
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "snapgram.db"))
	require.NoError(t, err)

	for _, table := range []string{"accounts", "users", "posts", "saves"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestNewSQLiteDB_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "snapgram.db")

	_, err := NewSQLiteDB(path)
	require.NoError(t, err)

	// schema statements are idempotent
	_, err = NewSQLiteDB(path)
	assert.NoError(t, err)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestPostgresDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "snap",
		DBPassword: "secret",
		DBName:     "snapgram",
		DBSSLMode:  "disable",
	}
	assert.Equal(t, "host=db user=snap password=secret dbname=snapgram port=5432 sslmode=disable", PostgresDSN(cfg))
}
