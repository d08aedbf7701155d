package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/schedulebob/auth/internal/constants"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches on Code so wrapped copies compare equal to the predefined errors.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Error codes
const (
	CodeUserNotFound      = "USER_NOT_FOUND"
	CodeInvalidCredential = "INVALID_CREDENTIAL"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeMalformedToken    = "MALFORMED_TOKEN"
	CodeSessionNotFound   = "SESSION_NOT_FOUND"
	CodeTokenMismatch     = "TOKEN_MISMATCH"
	CodeValidation        = "VALIDATION_ERROR"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeRateLimited       = "RATE_LIMITED"
	CodeInternal          = "INTERNAL_ERROR"
)

// Predefined domain errors
var (
	// Login
	ErrUserNotFound      = NewDomainError(CodeUserNotFound, "사용자를 찾을 수 없습니다.")
	ErrInvalidCredential = NewDomainError(CodeInvalidCredential, "비밀번호가 일치하지 않습니다.")

	// Tokens and sessions
	ErrInvalidToken    = NewDomainError(CodeInvalidToken, "리프레시 토큰이 유효하지 않습니다.")
	ErrMalformedToken  = NewDomainError(CodeMalformedToken, constants.MsgBadTokenFormat)
	ErrSessionNotFound = NewDomainError(CodeSessionNotFound, "세션이 존재하지 않습니다.")
	ErrTokenMismatch   = NewDomainError(CodeTokenMismatch, "리프레시 토큰이 일치하지 않습니다.")

	// Request
	ErrValidation   = NewDomainError(CodeValidation, constants.MsgValidationFailed)
	ErrUnauthorized = NewDomainError(CodeUnauthorized, constants.MsgUnauthorized)
	ErrRateLimited  = NewDomainError(CodeRateLimited, constants.MsgTooManyRequests)

	// System
	ErrInternal = NewDomainError(CodeInternal, constants.MsgInternalError)
)

// NewValidationError carries the first field message of a rejected request.
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// GetErrorCode returns the domain code of err, or CodeInternal.
func GetErrorCode(err error) string {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

// domainErrorToHTTPStatus maps specific domain errors to HTTP status codes
func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// business rule failures surface as client errors
	case CodeUserNotFound, CodeInvalidCredential,
		CodeInvalidToken, CodeMalformedToken,
		CodeSessionNotFound, CodeTokenMismatch,
		CodeValidation:
		return http.StatusBadRequest

	case CodeUnauthorized:
		return http.StatusUnauthorized

	case CodeRateLimited:
		return http.StatusTooManyRequests

	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage returns the message for the response body. An internal
// error reports its cause, the same as an error that was never wrapped.
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		if domainErr.Code == CodeInternal && domainErr.Err != nil {
			return domainErr.Err.Error()
		}
		return domainErr.Message
	}

	return err.Error()
}
