// Package testutil opens throwaway databases for tests.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/unified-blog-backend/database"
	"github.com/rpupo63/unified-blog-backend/models"
)

// NewGormDB opens a migrated in-memory sqlite database that is closed when
// the test ends. A single connection keeps every query on the same memory
// database.
func NewGormDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, models.Migrate(db))
	return db
}

// NewDB wraps NewGormDB in the repository aggregate.
func NewDB(t testing.TB) database.Database {
	t.Helper()
	return database.New(NewGormDB(t))
}
