package errors

import (
	"errors"
	"fmt"
	"net/http"
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

// Is matches domain errors by code, so a wrapped error still compares
// equal to its predeclared sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
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

// Predefined domain errors. User-facing messages are localized.
var (
	// Auth errors. Unknown email and wrong password intentionally share
	// one error so callers cannot enumerate registered accounts.
	ErrEmailExists        = NewDomainError("EMAIL_EXISTS", "Пользователь с таким email уже существует")
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "Неверный email или пароль")
	ErrUnauthorized       = NewDomainError("UNAUTHORIZED", "Unauthorized")

	// Resource errors
	ErrUserNotFound = NewDomainError("USER_NOT_FOUND", "Профиль не найден")
	ErrPostNotFound = NewDomainError("POST_NOT_FOUND", "Пост не найден")

	// Validation errors
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "Некорректный запрос")
	ErrNotAnImage   = NewDomainError("NOT_AN_IMAGE", "Можно загружать только изображения")

	// System errors
	ErrInternal = NewDomainError("INTERNAL_ERROR", "Внутренняя ошибка сервера")
)

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes.
// This should only be used in the handler/presentation layer.
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	case "INVALID_INPUT", "NOT_AN_IMAGE":
		return http.StatusBadRequest

	case "UNAUTHORIZED", "INVALID_CREDENTIALS":
		return http.StatusUnauthorized

	case "USER_NOT_FOUND", "POST_NOT_FOUND":
		return http.StatusNotFound

	case "EMAIL_EXISTS":
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts the user-facing error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Message
	}

	return err.Error()
}
