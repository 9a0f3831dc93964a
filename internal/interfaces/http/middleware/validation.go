package middleware

import (
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator configures gin's binding validator with JSON field names
// and custom tags. Call once during startup before handling requests.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Use JSON tag names for field names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	// future validates that a time.Time lies after the current moment
	_ = v.RegisterValidation("future", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return t.After(time.Now())
	})
}

// BindingErrorMessage converts a binding error into a client-facing
// message. Validator errors are reported per field; anything else
// (malformed JSON, type mismatches) gets a generic message.
func BindingErrorMessage(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Invalid request body"
	}

	parts := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		parts = append(parts, e.Field()+": "+validationMessage(e))
	}
	return strings.Join(parts, "; ")
}

// validationMessage returns a human-readable message for a failed rule
func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "invalid email format"
	case "min":
		if e.Type().Kind() == reflect.String {
			return "must be at least " + e.Param() + " characters"
		}
		return "must have at least " + e.Param() + " items"
	case "max":
		if e.Type().Kind() == reflect.String {
			return "must be at most " + e.Param() + " characters"
		}
		return "must have at most " + e.Param() + " items"
	case "uuid":
		return "invalid UUID format"
	case "url":
		return "invalid URL format"
	case "oneof":
		return "must be one of: " + e.Param()
	case "future":
		return "must be in the future"
	default:
		return "invalid value"
	}
}
