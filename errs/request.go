package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Request & Input-Validation Errors
var (
	ErrMalformedPayload     = errors.New("malformed payload")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidField         = errors.New("invalid field")
	ErrInvalidSortField     = errors.New("invalid sort field")
	ErrInvalidPageSize      = errors.New("invalid page size")
	ErrInvalidParent        = errors.New("invalid parent comment")
)

// Authentication Errors
var (
	ErrMissingToken = errors.New("missing access token")
	ErrInvalidToken = errors.New("invalid access token")
	ErrCORS         = errors.New("origin not allowed")
)

// Request & Input-Validation Error Constructors
func NewMalformedPayloadError(payloadType string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrMalformedPayload,
		Details:    fmt.Sprintf("Malformed %s payload", payloadType),
		Cause:      cause,
		Field:      "payload",
	}
}

func NewMissingRequiredFieldError(fieldName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrMissingRequiredField,
		Details:    fmt.Sprintf("Missing required field: %s", fieldName),
		Field:      fieldName,
	}
}

func NewInvalidFieldError(fieldName string, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidField,
		Details:    fmt.Sprintf("Invalid field %s: %s", fieldName, reason),
		Field:      fieldName,
	}
}

// NewInvalidSortFieldError reports an unknown sort field and lists the ones
// entity accepts.
func NewInvalidSortFieldError(entity, field string, valid []string) *ApiErr {
	details := fmt.Sprintf("%s cannot be sorted by %q", entity, field)
	if len(valid) > 0 {
		details = fmt.Sprintf("%s (valid fields: %s)", details, strings.Join(valid, ", "))
	}
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidSortField,
		Details:    details,
		Field:      "sortField",
	}
}

func NewInvalidPageSizeError(pageSize int) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidPageSize,
		Details:    fmt.Sprintf("page size must be positive, got %d", pageSize),
		Field:      "pageSize",
	}
}

func NewInvalidParentError(reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidParent,
		Details:    reason,
		Field:      "parentCommentId",
	}
}

// Authentication Error Constructors
func NewMissingTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrMissingToken,
		Details:    "Missing access token",
		Field:      "authorization",
	}
}

func NewInvalidTokenError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrInvalidToken,
		Details:    "Invalid access token",
		Field:      "authorization",
		Cause:      cause,
	}
}

func NewCORSError(origin string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrCORS,
		Details:    fmt.Sprintf("Origin %s is not allowed", origin),
		Field:      "origin",
	}
}

// Request & Input-Validation Error Type Checkers
func IsMalformedPayloadError(err error) bool {
	return errors.Is(err, ErrMalformedPayload)
}

func IsMissingRequiredFieldError(err error) bool {
	return errors.Is(err, ErrMissingRequiredField)
}

func IsInvalidSortFieldError(err error) bool {
	return errors.Is(err, ErrInvalidSortField)
}

func IsInvalidPageSizeError(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}

func IsInvalidParentError(err error) bool {
	return errors.Is(err, ErrInvalidParent)
}
