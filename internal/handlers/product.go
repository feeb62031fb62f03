// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	storageService *services.StorageService
}

func NewProductHandler(productService *services.ProductService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		storageService: storageService,
	}
}

// GET /api/products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, products)
}

// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if !bindJSON(c, &req, i18n.KeyProductInvalid) {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, product)
}

// PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if !bindJSON(c, &req, i18n.KeyProductInvalid) {
		return
	}

	var previousImage string
	if req.Image != nil {
		existing, err := h.productService.GetProduct(c.Request.Context(), id)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		previousImage = existing.Image
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if previousImage != "" && previousImage != product.Image {
		h.releaseImage(c, previousImage)
	}

	utils.SuccessResponse(c, product)
}

// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	h.releaseImage(c, product.Image)

	utils.MessageResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyProductDeleted))
}

// POST /api/products/upload-image
func (h *ProductHandler) UploadProductImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	header, err := c.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileMissing), nil)
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), nil)
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadImage(c.Request.Context(), file, header)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

// releaseImage removes an uploaded image once no product refers to it.
// Failures are logged; the product change has already been committed.
func (h *ProductHandler) releaseImage(c *gin.Context, image string) {
	key, ok := h.storageService.KeyFromURL(image)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	entry := logrus.WithFields(logrus.Fields{
		"key":        key,
		"request_id": utils.GetRequestIDFromContext(c),
	})

	inUse, err := h.productService.CountProductsWithImage(ctx, image)
	if err != nil {
		entry.WithError(err).Warn("Failed to check image usage")
		return
	}
	if inUse > 0 {
		return
	}

	if err := h.storageService.DeleteFile(ctx, key); err != nil {
		entry.WithError(err).Warn("Failed to delete product image")
		return
	}
	entry.Info("Product image deleted")
}
