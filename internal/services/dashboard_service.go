// internal/services/dashboard_service.go
package services

import (
	"context"

	"github.com/javajoker/storefront-backend/internal/models"
)

// LatestLimit is the size of the "most recent" slices on the dashboard.
const LatestLimit = 5

type DashboardService struct {
	productService *ProductService
	orderService   *OrderService
}

type DashboardStats struct {
	TotalOrders    int64            `json:"totalOrders"`
	TotalProducts  int64            `json:"totalProducts"`
	LatestProducts []models.Product `json:"latestProducts"`
	LatestOrders   []models.Order   `json:"latestOrders"`
}

func NewDashboardService(productService *ProductService, orderService *OrderService) *DashboardService {
	return &DashboardService{
		productService: productService,
		orderService:   orderService,
	}
}

// GetDashboardStats re-queries the store on every call.
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var (
		stats = &DashboardStats{}
		err   error
	)

	if stats.TotalOrders, err = s.orderService.CountOrders(ctx); err != nil {
		return nil, err
	}
	if stats.TotalProducts, err = s.productService.CountProducts(ctx); err != nil {
		return nil, err
	}
	if stats.LatestProducts, err = s.productService.LatestProducts(ctx, LatestLimit); err != nil {
		return nil, err
	}
	if stats.LatestOrders, err = s.orderService.LatestOrders(ctx, LatestLimit); err != nil {
		return nil, err
	}

	return stats, nil
}
