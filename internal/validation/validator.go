// Package validation builds the shared go-playground validator used by every
// service.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/appdotbuilder/canossa-info-system/internal/dto"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)

// bcryptMaxBytes is the longest input bcrypt will hash.
const bcryptMaxBytes = 72

// New returns a validator that understands the nullable and date wrapper
// types and the "slug" and "bcryptlen" tags.
//
// A NullableString reaches the rules as *string: nil when absent or null, so
// "omitnil" skips it, while a present empty string is still checked.
func New() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		value, ok := field.Interface().(dto.NullableString)
		if !ok || !value.Valid {
			return (*string)(nil)
		}
		return &value.Value
	}, dto.NullableString{})

	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		value, ok := field.Interface().(dto.FlexibleTime)
		if !ok {
			return nil
		}
		return value.Time
	}, dto.FlexibleTime{})

	// Registration only fails for empty tags or nil funcs.
	_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= bcryptMaxBytes
	})

	return validate
}

// Details flattens validation errors into a field -> rule map suitable for
// API responses.
func Details(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	details := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		rule := fieldErr.Tag()
		if fieldErr.Param() != "" {
			rule += "=" + fieldErr.Param()
		}
		details[fieldErr.Field()] = rule
	}
	return details
}
