package errors

import (
	"errors"
	"fmt"
)

var (
	ErrURLNotFound = errors.New("URL not found")
	ErrInvalidURL  = errors.New("invalid URL")

	// ErrKeyExists возникает, когда сгенерированный ключ уже занят
	// (проверка существования или unique constraint в БД)
	ErrKeyExists = errors.New("short key already exists")

	// ErrCollisionExhausted возникает, когда все попытки подобрать свободный ключ исчерпаны
	ErrCollisionExhausted = errors.New("failed to generate unique short key")
)

const (
	CodeDatabase          = "DATABASE_ERROR"
	CodeKeyGeneration     = "KEY_GENERATION"
	CodeCollisionExceeded = "COLLISION_EXHAUSTED"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidURL
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

type BusinessError struct {
	Code    string
	Message string
	Cause   error
}

func (e *BusinessError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Cause
}

func NewBusinessError(code, message string, cause error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewStoreError оборачивает ошибку хранилища; op описывает операцию ("create URL", "get URL" ...)
func NewStoreError(op string, cause error) *BusinessError {
	return NewBusinessError(CodeDatabase, "failed to "+op, cause)
}

// IsValidationError проверяет является ли ошибка ошибкой валидации
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsBusinessError проверяет является ли ошибка бизнес-ошибкой
func IsBusinessError(err error) bool {
	var businessErr *BusinessError
	return errors.As(err, &businessErr)
}

func GetValidationError(err error) *ValidationError {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}
	return nil
}

// GetBusinessError извлекает BusinessError из ошибки
func GetBusinessError(err error) *BusinessError {
	var businessErr *BusinessError
	if errors.As(err, &businessErr) {
		return businessErr
	}
	return nil
}
