// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the wire shape for every failed request. Empty fields
// are omitted so auth failures, guard violations and validation failures
// each carry only the parts that apply.
type ErrorResponse struct {
	BusinessErrorCode        int               `json:"businessErrorCode,omitempty"`
	BusinessErrorDescription string            `json:"businessErrorDescription,omitempty"`
	Error                    string            `json:"error,omitempty"`
	ValidationErrors         map[string]string `json:"validationErrors,omitempty"`
}

// PageResponse mirrors the pagination envelope of the list endpoints.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

func NewPageResponse[T any](
	content []T,
	page, size int,
	total int64,
) PageResponse[T] {
	if size < 1 {
		size = 1
	}

	totalPages := int((total + int64(size) - 1) / int64(size))

	if content == nil {
		content = []T{}
	}

	return PageResponse[T]{
		Content:       content,
		Number:        page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         page == 0,
		Last:          page >= totalPages-1,
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write response", "error", err)
	}
}

func OK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, data)
}

func Accepted(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusAccepted, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func BadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: message})
}

func ValidationFailed(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:            "validation failed",
		ValidationErrors: fields,
	})
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "authentication required"
	}
	writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: message})
}

func Forbidden(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusForbidden, ErrorResponse{Error: message})
}

func NotFound(w http.ResponseWriter, resource string) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{
		Error: resource + " not found",
	})
}

func Conflict(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusConflict, ErrorResponse{Error: message})
}

// InternalServerError logs the cause and hides it from the caller.
func InternalServerError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: "internal server error",
	})
}

// JSONError writes an AppError with its own status, business code and
// description. Non-AppError values fall back to a 500.
func JSONError(w http.ResponseWriter, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		InternalServerError(w, err)
		return
	}

	writeJSON(w, appErr.HTTPStatus, ErrorResponse{
		BusinessErrorCode:        appErr.BusinessCode,
		BusinessErrorDescription: businessDescription(appErr.BusinessCode),
		Error:                    appErr.Message,
	})
}

func businessDescription(code int) string {
	switch code {
	case CodeIncorrectPassword:
		return "Incorrect current password"
	case CodePasswordMismatch:
		return "New password does not match"
	case CodeAccountLocked:
		return "User account locked"
	case CodeAccountDisabled:
		return "User account disabled"
	case CodeBadCredentials:
		return "Username or password is incorrect"
	default:
		return ""
	}
}

func Paginated[T any](
	w http.ResponseWriter,
	content []T,
	page, size int,
	total int64,
) {
	writeJSON(w, http.StatusOK, NewPageResponse(content, page, size, total))
}

// FormatValidationError flattens validator.Struct failures into a
// field -> message map keyed by the struct field's lowercased name.
func FormatValidationError(err error) map[string]string {
	fields := make(map[string]string)

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		fields["request"] = err.Error()
		return fields
	}

	for _, fe := range valErrs {
		fields[fieldName(fe)] = fieldMessage(fe)
	}

	return fields
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return "request"
	}
	return string(name[0]|0x20) + name[1:]
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	default:
		return "is invalid"
	}
}
