package zerror

// Status is a transport-agnostic classification of an error.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusBadRequest
	StatusValidationFailed
	StatusUnauthorized
	StatusForbidden
	StatusNotFound
	StatusConflict
	StatusUnprocessableEntity
	StatusTooManyRequests
	StatusInternalServerError
	StatusNotImplemented
	StatusBadGateway
	StatusServiceUnavailable
	StatusTimeout
)

var statusNames = [...]string{
	"UNKNOWN",
	"BAD_REQUEST",
	"VALIDATION_FAILED",
	"UNAUTHORIZED",
	"FORBIDDEN",
	"NOT_FOUND",
	"CONFLICT",
	"UNPROCESSABLE_ENTITY",
	"TOO_MANY_REQUESTS",
	"INTERNAL_SERVER_ERROR",
	"NOT_IMPLEMENTED",
	"BAD_GATEWAY",
	"SERVICE_UNAVAILABLE",
	"TIMEOUT",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return statusNames[StatusUnknown]
}

// StatusFromHTTP classifies an HTTP status code returned by a remote service.
func StatusFromHTTP(code int) Status {
	switch code {
	case 400:
		return StatusBadRequest
	case 401:
		return StatusUnauthorized
	case 403:
		return StatusForbidden
	case 404:
		return StatusNotFound
	case 409:
		return StatusConflict
	case 422:
		return StatusUnprocessableEntity
	case 429:
		return StatusTooManyRequests
	case 501:
		return StatusNotImplemented
	case 502:
		return StatusBadGateway
	case 503:
		return StatusServiceUnavailable
	case 504:
		return StatusTimeout
	}

	switch {
	case code >= 500:
		return StatusInternalServerError
	case code >= 400:
		return StatusBadRequest
	default:
		return StatusUnknown
	}
}
