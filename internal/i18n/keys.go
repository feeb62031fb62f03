// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyInternalError    = "error.internal"
	KeyRateLimited      = "error.rate_limited"
	KeyInvalidID        = "error.invalid_id"
	KeyNoFieldsToUpdate = "error.no_fields"

	// Products
	KeyProductDeleted  = "product.deleted"
	KeyProductNotFound = "product.not_found"
	KeyProductInUse    = "product.in_use"
	KeyProductInvalid  = "product.invalid"

	// Orders
	KeyOrderDeleted         = "order.deleted"
	KeyOrderNotFound        = "order.not_found"
	KeyOrderStatusUpdated   = "order.status_updated"
	KeyOrderInvalidStatus   = "order.invalid_status"
	KeyOrderInvalid         = "order.invalid"
	KeyOrderTotalOutOfRange = "order.total_out_of_range"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// File Upload
	KeyFileUploadFailed = "file.upload_failed"
	KeyFileMissing      = "file.missing"
)
