package validate

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = newValidator()

// newValidator builds the shared validator with field names taken from
// json tags so error maps match the wire format.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// Validator adapts go-playground/validator to echo's Validator interface
type Validator struct{}

// Validate implements echo.Validator
func (v *Validator) Validate(i interface{}) error {
	return validate.Struct(i)
}

// Struct validates a request struct directly, for handlers that bind
// outside of echo's helpers (multipart forms).
func Struct(i interface{}) error {
	return validate.Struct(i)
}

// FieldErrors converts a validation failure into a field-to-message map
// suitable for a 422 response body. Non-validator errors map to a single
// "request" entry.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["request"] = "invalid request"
		return out
	}

	for _, fe := range verrs {
		field := fe.Field()
		out[field] = message(field, fe)
	}
	return out
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", field, fe.Param())
	case "max":
		return fmt.Sprintf("The %s field may not be greater than %s characters.", field, fe.Param())
	case "url":
		return fmt.Sprintf("The %s field must be a valid URL.", field)
	case "oneof":
		return fmt.Sprintf("The %s field must be one of: %s.", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("The %s field does not match.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

// BadRequest writes a 422 response with the field-error map for err
func BadRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, echo.Map{"errors": FieldErrors(err)})
}
