// internal/handlers/handler.go
package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

// parseID reads the :id path parameter. Anything that is not a positive
// integer is answered with 400 and ok is false.
func parseID(c *gin.Context, entity string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyInvalidID, entity), nil)
		return 0, false
	}
	return uint(id), true
}

func allowedStatuses() string {
	values := make([]string, 0, len(models.OrderStatuses))
	for _, status := range models.OrderStatuses {
		values = append(values, string(status))
	}
	return strings.Join(values, ", ")
}

// handleServiceError maps service errors onto HTTP responses. Anything
// unrecognized is logged and reported as a generic 500.
func handleServiceError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
	case errors.Is(err, services.ErrOrderNotFound):
		utils.NotFoundResponse(c, i18n.KeyOrderNotFound)
	case errors.Is(err, services.ErrNoFieldsToUpdate):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyNoFieldsToUpdate), nil)
	case errors.Is(err, services.ErrInvalidOrderStatus):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyOrderInvalidStatus, allowedStatuses()), nil)
	case errors.Is(err, services.ErrProductInUse):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyProductInUse))
	case errors.Is(err, services.ErrValidation):
		utils.ValidationErrorResponse(c, "", utils.GetValidationErrors(err))
	case errors.Is(err, services.ErrTotalOutOfRange):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyOrderTotalOutOfRange), nil)
	case errors.Is(err, services.ErrInvalidImage):
		utils.BadRequestResponse(c, err.Error(), nil)
	default:
		logrus.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"request_id": utils.GetRequestIDFromContext(c),
		}).WithError(err).Error("Request failed")
		utils.InternalErrorResponse(c)
	}
}

// bindJSON decodes the body into req and runs struct validation. On failure
// the response is already written and false is returned.
func bindJSON(c *gin.Context, req interface{}, invalidKey string) bool {
	lang := utils.GetLangFromContext(c)

	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, i18n.T(lang, invalidKey), validationErrors)
		return false
	}

	return true
}
