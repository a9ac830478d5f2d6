package validators

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound request structs.
type RequestValidator struct {
	validator *validator.Validate
}

// NewValidator creates a RequestValidator.
func NewValidator() *RequestValidator {
	return &RequestValidator{validator: validator.New()}
}

// Validate implements echo.Validator. Validation failures come back as 400s.
func (v *RequestValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
