// internal/services/errors.go
package services

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductInUse       = errors.New("product is referenced by existing orders")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrInvalidImage       = errors.New("invalid image")
	ErrTotalOutOfRange    = errors.New("order total out of range")
)
