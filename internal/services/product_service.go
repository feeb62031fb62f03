// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type ProductService struct {
	db           *gorm.DB
	deletePolicy config.ProductDeletePolicy
}

type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"required,gt=0,decimal_scale=2,decimal_max=99999999.99"`
	Image       string          `json:"image" validate:"required"`
}

// UpdateProductRequest carries a partial update; nil fields are left alone.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string          `json:"description,omitempty" validate:"omitempty,min=1"`
	Price       *decimal.Decimal `json:"price,omitempty" validate:"omitempty,gt=0,decimal_scale=2,decimal_max=99999999.99"`
	Image       *string          `json:"image,omitempty" validate:"omitempty,min=1"`
}

func (r *UpdateProductRequest) updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	if r.Price != nil {
		updates["price"] = *r.Price
	}
	if r.Image != nil {
		updates["image"] = *r.Image
	}
	return updates
}

func NewProductService(db *gorm.DB, deletePolicy config.ProductDeletePolicy) *ProductService {
	if deletePolicy == "" {
		deletePolicy = config.ProductDeleteRetain
	}

	return &ProductService{
		db:           db,
		deletePolicy: deletePolicy,
	}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
	}

	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uint, req *UpdateProductRequest) (*models.Product, error) {
	updates := req.updates()
	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	// updated_at is refreshed by GORM as part of the same statement
	if err := s.db.WithContext(ctx).Model(product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return s.GetProduct(ctx, id)
}

// DeleteProduct removes a product and applies the configured policy to the
// orders that reference it.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)

	switch s.deletePolicy {
	case config.ProductDeleteRestrict:
		var orderCount int64
		if err := db.Model(&models.Order{}).Where("product_id = ?", id).Count(&orderCount).Error; err != nil {
			return fmt.Errorf("failed to check orders: %w", err)
		}
		if orderCount > 0 {
			return ErrProductInUse
		}
		return s.deleteProductRow(db, id)

	case config.ProductDeleteCascade:
		return db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("product_id = ?", id).Delete(&models.Order{}).Error; err != nil {
				return fmt.Errorf("failed to delete orders: %w", err)
			}
			return s.deleteProductRow(tx, id)
		})

	default:
		return s.deleteProductRow(db, id)
	}
}

func (s *ProductService) deleteProductRow(db *gorm.DB, id uint) error {
	result := db.Delete(&models.Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *ProductService) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// CountProductsWithImage counts products whose image is the given reference.
func (s *ProductService) CountProductsWithImage(ctx context.Context, image string) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("image = ?", image).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// LatestProducts returns up to limit products, newest first.
func (s *ProductService) LatestProducts(ctx context.Context, limit int) ([]models.Product, error) {
	products := make([]models.Product, 0, limit)
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get latest products: %w", err)
	}
	return products, nil
}
