// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Business error codes carried in error responses alongside the HTTP status.
const (
	CodeNone              = 0
	CodeIncorrectPassword = 300
	CodePasswordMismatch  = 301
	CodeAccountLocked     = 302
	CodeAccountDisabled   = 303
	CodeBadCredentials    = 304
)

type AppError struct {
	Err          error
	Message      string
	HTTPStatus   int
	BusinessCode int
	Code         string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(
	err error,
	message string,
	httpStatus int,
	code string,
) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		HTTPStatus: httpStatus,
		Code:       code,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

func UnauthorizedError(message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return &AppError{
		Err:        ErrUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
		Code:       "UNAUTHORIZED",
	}
}

func ForbiddenError(message string) *AppError {
	return &AppError{
		Err:        ErrForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
		Code:       "FORBIDDEN",
	}
}

func NotFoundError(resource string) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
		Code:       "NOT_FOUND",
	}
}

func DuplicateError(field string) *AppError {
	return &AppError{
		Err:        ErrDuplicateKey,
		Message:    field + " already exists",
		HTTPStatus: http.StatusConflict,
		Code:       "DUPLICATE",
	}
}

func TokenExpiredError() *AppError {
	return &AppError{
		Err:        ErrTokenExpired,
		Message:    "token has expired",
		HTTPStatus: http.StatusUnauthorized,
		Code:       "TOKEN_EXPIRED",
	}
}

func TokenInvalidError() *AppError {
	return &AppError{
		Err:        ErrTokenInvalid,
		Message:    "token is invalid",
		HTTPStatus: http.StatusUnauthorized,
		Code:       "TOKEN_INVALID",
	}
}

// BusinessError builds a 401-class auth failure carrying one of the numeric
// business codes (302 locked, 303 disabled, 304 bad credentials).
func BusinessError(businessCode int, message string) *AppError {
	return &AppError{
		Err:          ErrUnauthorized,
		Message:      message,
		HTTPStatus:   http.StatusUnauthorized,
		BusinessCode: businessCode,
		Code:         "AUTHENTICATION_FAILED",
	}
}

// OperationNotPermittedError covers ownership and lending state guard
// violations: archived or non-shareable books, self-dealing, duplicate
// active loans, approving an unreturned loan.
func OperationNotPermittedError(message string) *AppError {
	return &AppError{
		Err:        ErrForbidden,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Code:       "OPERATION_NOT_PERMITTED",
	}
}
