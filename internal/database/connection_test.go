package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/models"
)

func openMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Initialize(config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: ":memory:",
		LogLevel:   "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })
	return db
}

func TestInitializeRejectsUnknownDriver(t *testing.T) {
	_, err := Initialize(config.DatabaseConfig{Driver: "mysql"})
	assert.Error(t, err)
}

func TestRunMigrationsCreatesTables(t *testing.T) {
	db := openMemoryDB(t)

	require.NoError(t, RunMigrations(db))
	// running twice is harmless
	require.NoError(t, RunMigrations(db))

	assert.True(t, db.Migrator().HasTable(&models.Product{}))
	assert.True(t, db.Migrator().HasTable(&models.Order{}))
}

func TestSeedInitialDataOnlyWhenEmpty(t *testing.T) {
	db := openMemoryDB(t)
	require.NoError(t, RunMigrations(db))

	require.NoError(t, SeedInitialData(db))
	require.NoError(t, SeedInitialData(db))

	var products []models.Product
	require.NoError(t, db.Find(&products).Error)
	require.Len(t, products, 1)
	assert.Equal(t, "Sample Product", products[0].Name)
	assert.Equal(t, "99.99", products[0].Price.StringFixed(2))
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, gormLogLevel("silent"))
	assert.Equal(t, logger.Info, gormLogLevel("INFO"))
	assert.Equal(t, logger.Error, gormLogLevel("error"))
	assert.Equal(t, logger.Warn, gormLogLevel(""))
}
