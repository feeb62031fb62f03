// internal/utils/validator.go
package utils

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields by their JSON names so clients see "productId", not "ProductID".
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Let numeric tags (gt, min, ...) apply to money fields.
	validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	// Money columns are fixed-point; reject what the database would round or
	// overflow.
	validate.RegisterValidation("decimal_scale", validateDecimalScale)
	validate.RegisterValidation("decimal_max", validateDecimalMax)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// rawDecimal returns the field as submitted. fl.Field() already went through
// decimalValue and lost precision.
func rawDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	field := fl.Parent().FieldByName(fl.StructFieldName())
	for field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return decimal.Decimal{}, false
		}
		field = field.Elem()
	}
	d, ok := field.Interface().(decimal.Decimal)
	return d, ok
}

// decimal_scale=N allows at most N fractional digits.
func validateDecimalScale(fl validator.FieldLevel) bool {
	scale, err := strconv.ParseInt(fl.Param(), 10, 32)
	if err != nil {
		return false
	}
	d, ok := rawDecimal(fl)
	if !ok {
		return false
	}
	return d.Equal(d.Truncate(int32(scale)))
}

// decimal_max=X bounds the absolute value.
func validateDecimalMax(fl validator.FieldLevel) bool {
	limit, err := decimal.NewFromString(fl.Param())
	if err != nil {
		return false
	}
	d, ok := rawDecimal(fl)
	if !ok {
		return false
	}
	return d.Abs().LessThanOrEqual(limit)
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   e.Field(),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "decimal_scale":
		return e.Field() + " must have at most " + e.Param() + " decimal places"
	case "decimal_max":
		return e.Field() + " must not exceed " + e.Param()
	default:
		return e.Field() + " is invalid"
	}
}
