package utils

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	apperrors "github.com/Kosench/short-url/internal/errors"
	"github.com/go-playground/validator/v10"
)

const (
	MaxURLLength = 2048
	URLField     = "originalUrl"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateURL проверяет, что строка - абсолютный http(s) URL с хостом не длиннее MaxURLLength
func ValidateURL(rawURL string) error {
	if err := validate.Var(rawURL, fmt.Sprintf("required,max=%d,url", MaxURLLength)); err != nil {
		return toValidationError(err)
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return apperrors.NewValidationError(URLField, fmt.Sprintf("invalid URL format: %v", err))
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return apperrors.NewValidationError(URLField, "URL must start with http:// or https://")
	}

	if parsedURL.Hostname() == "" {
		return apperrors.NewValidationError(URLField, "URL must contain a valid host")
	}

	return nil
}

func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.NewValidationError(URLField, "invalid URL format")
	}

	switch fieldErrs[0].Tag() {
	case "required":
		return apperrors.NewValidationError(URLField, "URL cannot be empty")
	case "max":
		return apperrors.NewValidationError(URLField, fmt.Sprintf("URL is too long (max %d characters)", MaxURLLength))
	default:
		return apperrors.NewValidationError(URLField, "invalid URL format")
	}
}

func SanitizeInput(input string) string {
	// Удаляем управляющие символы и обрезаем пробелы
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1 // удаляем символ
		}
		return r
	}, input)

	return strings.TrimSpace(result)
}
