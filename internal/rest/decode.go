package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/timebudget/timebudget/internal/apperrors"
)

// MaxSeconds bounds every duration accepted by the API (about a century).
const MaxSeconds = 3_155_760_000

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON names so error messages match the request body
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeAndValidate decodes the JSON request body into dst and checks its
// `validate` tags. Every failure is returned as a *apperrors.ValidationError
// naming the offending field.
func DecodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr):
			return apperrors.Invalid(typeErr.Field, fmt.Sprintf("%s must be a %s.", typeErr.Field, kindName(typeErr.Type)))
		case errors.Is(err, io.EOF):
			return apperrors.Invalid("", "Request body is required.")
		default:
			return apperrors.Invalid("", "Invalid request body format.")
		}
	}
	return Validate(dst)
}

// Validate checks the `validate` tags of a decoded request.
func Validate(dst any) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.Invalid("", err.Error())
	}
	fieldErr := fieldErrs[0]
	field := fieldErr.Field()
	switch fieldErr.Tag() {
	case "required":
		return apperrors.Required(field)
	case "gte":
		return apperrors.Invalid(field, fmt.Sprintf("%s must not be negative.", field))
	case "lte":
		return apperrors.Invalid(field, fmt.Sprintf("%s is out of range.", field))
	case "max":
		return apperrors.Invalid(field, fmt.Sprintf("%s must be at most %s characters.", field, fieldErr.Param()))
	case "email":
		return apperrors.Invalid(field, fmt.Sprintf("%s must be a valid email address.", field))
	case "gt":
		return apperrors.Invalid(field, fmt.Sprintf("%s must be positive.", field))
	}
	return apperrors.Invalid(field, fmt.Sprintf("%s is invalid.", field))
}

// Seconds converts a JSON number of seconds into a duration, dropping fractions.
func Seconds(seconds float64) time.Duration {
	return time.Duration(int64(seconds)) * time.Second
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	}
	return t.Kind().String()
}
