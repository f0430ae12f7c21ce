package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/antonKorobenko/test-task/internal/dataprocessing"
)

// LookupDetails is attached to currency lookup failures
type LookupDetails struct {
	Currency string `json:"currency"`
	From     string `json:"from"`
	To       string `json:"to"`
}

// FromError maps pipeline and validation errors to API errors. It returns
// nil for errors it does not recognise.
func FromError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var parseErr *dataprocessing.ParseError
	if errors.As(err, &parseErr) {
		return NewWithDetails(http.StatusBadRequest, CodeInvalidParameter, "Invalid parameter value", ValidationError{
			Field:   parseErr.Param,
			Message: parseErr.Error(),
		})
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return NewValidationErrors(FormatValidationErrors(fieldErrs))
	}

	if errors.Is(err, dataprocessing.ErrInvalidQuery) {
		return NewWithDetails(http.StatusBadRequest, CodeValidationFailed, "Request validation failed", err.Error())
	}

	var lookupErr *dataprocessing.LookupError
	if errors.As(err, &lookupErr) {
		return NewWithDetails(http.StatusUnprocessableEntity, CodeCurrencyLookupFailed, lookupErr.Error(), LookupDetails{
			Currency: lookupErr.Currency,
			From:     lookupErr.From.Format("2006-01-02"),
			To:       lookupErr.To.Format("2006-01-02"),
		})
	}

	var schemaErr *dataprocessing.SchemaError
	if errors.As(err, &schemaErr) {
		return NewWithDetails(http.StatusInternalServerError, CodeDatasetSchema,
			"Source data does not match the expected layout", schemaErr.Error())
	}

	return nil
}

// FormatValidationErrors turns validator field errors into API validation errors
func FormatValidationErrors(errs validator.ValidationErrors) []ValidationError {
	out := make([]ValidationError, 0, len(errs))
	for _, fe := range errs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: formatFieldError(fe),
		})
	}
	return out
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
