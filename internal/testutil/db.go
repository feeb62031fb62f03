// Package testutil holds helpers shared by package tests that need a real
// GORM handle.
package testutil

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/database"
	"github.com/javajoker/storefront-backend/internal/models"
)

// NewDB returns a migrated in-memory SQLite database that is closed when the
// test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Initialize(config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: ":memory:",
		LogLevel:   "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	t.Cleanup(func() { database.Close(db) })
	return db
}

// InsertProduct stores a product directly, bypassing service validation.
func InsertProduct(t testing.TB, db *gorm.DB, name, price string) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
		Image:       name + ".png",
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

// InsertProductAt is InsertProduct with a fixed creation time.
func InsertProductAt(t testing.TB, db *gorm.DB, name, price string, createdAt time.Time) *models.Product {
	t.Helper()

	product := &models.Product{
		BaseModel:   models.BaseModel{CreatedAt: createdAt, UpdatedAt: createdAt},
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
		Image:       name + ".png",
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

// InsertOrderAt stores an order for product with a fixed creation time.
func InsertOrderAt(t testing.TB, db *gorm.DB, product *models.Product, quantity int, createdAt time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		BaseModel:    models.BaseModel{CreatedAt: createdAt, UpdatedAt: createdAt},
		ProductID:    product.ID,
		Quantity:     quantity,
		TotalPrice:   product.Price.Mul(decimal.NewFromInt(int64(quantity))),
		Status:       models.OrderStatusPending,
		CustomerName: "Test Customer",
	}
	require.NoError(t, db.Create(order).Error)
	return order
}
