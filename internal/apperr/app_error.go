package apperr

import "github.com/tuanvumaihuynh/inventory-console/pkg/zerror"

const (
	ValidationErrorCode  = "VALIDATION_FAILED"
	APIErrorCode         = "API_ERROR"
	TransportErrorCode   = "TRANSPORT_ERROR"
	PageNotFoundCode     = "PAGE_NOT_FOUND"
	SessionNotFoundCode  = "SESSION_NOT_FOUND"
	DefaultAPIErrMessage = "API Error"
)

var (
	ValidationErr      = zerror.NewValidationFailed(ValidationErrorCode, "validation error")
	APIErr             = zerror.NewBadGateway(APIErrorCode, DefaultAPIErrMessage)
	TransportErr       = zerror.NewBadGateway(TransportErrorCode, "backend unreachable")
	PageNotFoundErr    = zerror.NewNotFound(PageNotFoundCode, "page not found")
	SessionNotFoundErr = zerror.NewNotFound(SessionNotFoundCode, "session not found")
)
