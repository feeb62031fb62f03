// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type OrderService struct {
	db             *gorm.DB
	productService *ProductService
}

type CreateOrderRequest struct {
	ProductID    uint               `json:"productId" validate:"required,gt=0"`
	Quantity     int                `json:"quantity" validate:"required,gt=0"`
	CustomerName string             `json:"customerName,omitempty"`
	Status       models.OrderStatus `json:"status,omitempty"`
}

// UpdateOrderRequest carries a partial update. Status is changed through
// UpdateOrderStatus only.
type UpdateOrderRequest struct {
	ProductID    *uint   `json:"productId,omitempty" validate:"omitempty,gt=0"`
	Quantity     *int    `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	CustomerName *string `json:"customerName,omitempty" validate:"omitempty,min=1"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

func NewOrderService(db *gorm.DB, productService *ProductService) *OrderService {
	return &OrderService{
		db:             db,
		productService: productService,
	}
}

// totalPrice is the only place an order total is derived.
func totalPrice(product *models.Product, quantity int) (decimal.Decimal, error) {
	total := product.Price.Mul(decimal.NewFromInt(int64(quantity)))
	if total.GreaterThan(models.MaxTotalPrice) {
		return decimal.Decimal{}, ErrTotalOutOfRange
	}
	return total, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	if err := s.db.WithContext(ctx).Preload("Product").Order("id ASC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) ListOrderSummaries(ctx context.Context) ([]models.OrderSummary, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	summaries := make([]models.OrderSummary, 0, len(orders))
	for i := range orders {
		summaries = append(summaries, orders[i].Summary())
	}
	return summaries, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Preload("Product").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	status := req.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	if !status.IsValid() {
		return nil, ErrInvalidOrderStatus
	}

	product, err := s.productService.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	total, err := totalPrice(product, req.Quantity)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ProductID:    product.ID,
		Quantity:     req.Quantity,
		TotalPrice:   total,
		Status:       status,
		CustomerName: req.CustomerName,
	}

	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	order.Product = product
	return order, nil
}

// UpdateOrder applies a partial update. Whenever the product or the quantity
// is supplied, the total is recomputed from the current price of the
// (possibly new) product.
func (s *OrderService) UpdateOrder(ctx context.Context, id uint, req *UpdateOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.CustomerName != nil {
		updates["customer_name"] = *req.CustomerName
	}

	if req.ProductID != nil || req.Quantity != nil {
		productID := order.ProductID
		if req.ProductID != nil {
			productID = *req.ProductID
		}
		quantity := order.Quantity
		if req.Quantity != nil {
			quantity = *req.Quantity
		}

		product, err := s.productService.GetProduct(ctx, productID)
		if err != nil {
			return nil, err
		}

		total, err := totalPrice(product, quantity)
		if err != nil {
			return nil, err
		}

		updates["product_id"] = product.ID
		updates["quantity"] = quantity
		updates["total_price"] = total
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&order).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update order: %w", err)
		}
	}

	return s.GetOrder(ctx, id)
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, ErrInvalidOrderStatus
	}

	result := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrOrderNotFound
	}

	return s.GetOrder(ctx, id)
}

func (s *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Order{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (s *OrderService) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// LatestOrders returns up to limit orders with their product, newest first.
func (s *OrderService) LatestOrders(ctx context.Context, limit int) ([]models.Order, error) {
	orders := make([]models.Order, 0, limit)
	if err := s.db.WithContext(ctx).Preload("Product").
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get latest orders: %w", err)
	}
	return orders, nil
}
