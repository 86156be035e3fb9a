package apierr

import (
	"context"
	"errors"
	"net/http"

	govalidator "github.com/go-playground/validator/v10"

	"github.com/tuanvumaihuynh/inventory-console/pkg/validator"
	"github.com/tuanvumaihuynh/inventory-console/pkg/zerror"
)

type FieldError struct {
	Field   string
	Message string
}

// ErrorResponse is an error as shown to the user.
type ErrorResponse struct {
	Code    string
	Message string
	Details []FieldError

	// StatusCode is the status code for the error response.
	StatusCode int
}

func New(err error) ErrorResponse {
	return errorToErrorResponse(err)
}

var InternalServerErr = ErrorResponse{
	Code:       "internalServerError",
	Message:    "an unknown error occurred",
	StatusCode: http.StatusInternalServerError,
}

func errorToErrorResponse(err error) ErrorResponse {
	var zErr zerror.ZError
	if errors.As(err, &zErr) {
		return ErrorResponse{
			Code:       zErr.Code(),
			Message:    zErr.Msg(),
			Details:    fieldErrors(err),
			StatusCode: ZErrorStatusToHTTPStatus(zErr.Status()),
		}
	}

	if details := fieldErrors(err); details != nil {
		return ErrorResponse{
			Code:       "validationError",
			Message:    validator.Summary(err),
			Details:    details,
			StatusCode: http.StatusBadRequest,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorResponse{
			Code:       "timeout",
			Message:    "the inventory service did not answer in time",
			StatusCode: http.StatusGatewayTimeout,
		}
	}

	return InternalServerErr
}

func fieldErrors(err error) []FieldError {
	var validationErrs govalidator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	details := make([]FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		details[i] = FieldError{
			Field:   fe.Field(),
			Message: validator.ValidationErrorMessage(fe),
		}
	}
	return details
}

func ZErrorStatusToHTTPStatus(status zerror.Status) int {
	switch status {
	case zerror.StatusUnauthorized:
		return http.StatusUnauthorized
	case zerror.StatusForbidden:
		return http.StatusForbidden
	case zerror.StatusNotFound:
		return http.StatusNotFound
	case zerror.StatusUnprocessableEntity:
		return http.StatusUnprocessableEntity
	case zerror.StatusConflict:
		return http.StatusConflict
	case zerror.StatusTooManyRequests:
		return http.StatusTooManyRequests
	case zerror.StatusBadRequest:
		return http.StatusBadRequest
	case zerror.StatusValidationFailed:
		return http.StatusBadRequest
	case zerror.StatusUnknown, zerror.StatusInternalServerError:
		return http.StatusInternalServerError
	case zerror.StatusTimeout:
		return http.StatusGatewayTimeout
	case zerror.StatusNotImplemented:
		return http.StatusNotImplemented
	case zerror.StatusBadGateway:
		return http.StatusBadGateway
	case zerror.StatusServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
