// internal/utils/validator.go
package utils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/resona/resona-api/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("app_role", enumValidator(func(v string) bool { return models.AppRole(v).Valid() }))
	validate.RegisterValidation("product_type", enumValidator(func(v string) bool { return models.ProductType(v).Valid() }))
	validate.RegisterValidation("blockchain", enumValidator(func(v string) bool { return models.Blockchain(v).Valid() }))
	validate.RegisterValidation("order_status", enumValidator(func(v string) bool { return models.OrderStatus(v).Valid() }))
	validate.RegisterValidation("hub_status", enumValidator(func(v string) bool { return models.HubStatus(v).Valid() }))
	validate.RegisterValidation("tour_type", enumValidator(func(v string) bool { return models.TourType(v).Valid() }))
	validate.RegisterValidation("tour_status", enumValidator(func(v string) bool { return models.TourStatus(v).Valid() }))
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidateVar checks a single value against a tag list.
func ValidateVar(v interface{}, tag string) error {
	return validate.Var(v, tag)
}

func enumValidator(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return valid(fl.Field().String())
	}
}

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
				Field:   strings.ToLower(e.Field()),
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
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "app_role", "product_type", "blockchain", "order_status", "hub_status", "tour_type", "tour_status":
		return e.Field() + " is not a known " + strings.ReplaceAll(e.Tag(), "_", " ")
	default:
		return e.Field() + " is invalid"
	}
}
