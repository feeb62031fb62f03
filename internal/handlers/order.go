// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// GET /api/orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, orders)
}

// GET /api/orders/summary
func (h *OrderHandler) GetOrderSummaries(c *gin.Context) {
	summaries, err := h.orderService.ListOrderSummaries(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, summaries)
}

// GET /api/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "order")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// POST /api/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if !bindJSON(c, &req, i18n.KeyOrderInvalid) {
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, order)
}

// PUT /api/orders/:id
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, ok := parseID(c, "order")
	if !ok {
		return
	}

	var req services.UpdateOrderRequest
	if !bindJSON(c, &req, i18n.KeyOrderInvalid) {
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// PUT /api/orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "order")
	if !ok {
		return
	}

	var req services.UpdateOrderStatusRequest
	if !bindJSON(c, &req, i18n.KeyOrderInvalid) {
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyOrderStatusUpdated),
		"order":   order,
	})
}

// DELETE /api/orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c, "order")
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.MessageResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyOrderDeleted))
}
