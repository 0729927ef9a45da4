package handlers

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names so clients can map errors back to inputs.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		return services.ValidPrice(fl.Field().String())
	})
	v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.Categories, fl.Field().String())
	})
	return v
}

// validationErrors flattens validator errors into field -> message.
func validationErrors(err error) map[string]string {
	errorMessages := make(map[string]string)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errorMessages["_"] = err.Error()
		return errorMessages
	}
	for _, e := range verrs {
		errorMessages[e.Field()] = fieldMessage(e)
	}
	return errorMessages
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", e.Field())
	case "price":
		return "price must be a non-negative decimal below 100000000 with at most two decimals"
	case "category":
		return categoryMessage()
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	}
	return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
}

func categoryMessage() string {
	return fmt.Sprintf("category must be one of %s", strings.Join(models.Categories, ", "))
}
