package core

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/mail"
	"strings"
	"unicode"
)

const (
	// MimeTypeJSON is the standard MIME type for JSON content
	MimeTypeJSON = "application/json"
)

const (
	MinPasswordLength = 8
	MinUsernameLength = 3
	MaxUsernameLength = 30
)

// Validator defines the interface for request validation operations.
type Validator interface {
	ContentType(r *http.Request, allowedType string) (error, jsonResponse)
}

// DefaultValidator provides the default implementation of the Validator interface
type DefaultValidator struct{}

// NewValidator creates a new instance of DefaultValidator
func NewValidator() *DefaultValidator {
	return &DefaultValidator{}
}

// ContentType validates that the request has the specified Content-Type header.
// Returns the precomputed error response when the header is missing or does not
// match, so handlers can write it directly.
func (v *DefaultValidator) ContentType(r *http.Request, allowedType string) (error, jsonResponse) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return errors.New("missing Content-Type header"), errorInvalidContentType
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("malformed Content-Type header: %w", err), errorInvalidContentType
	}

	if mediaType != allowedType {
		return fmt.Errorf("unsupported Content-Type %q", mediaType), errorInvalidContentType
	}

	return nil, jsonResponse{}
}

// ValidateEmail checks that the address parses per RFC 5322.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}
	if addr.Address != email {
		return errors.New("email must not contain a display name")
	}
	return nil
}

// ValidatePassword enforces the password complexity rules: at least
// MinPasswordLength characters with a lowercase letter, an uppercase letter
// and a digit.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLower || !hasUpper || !hasDigit {
		return errors.New("password must contain a lowercase letter, an uppercase letter and a digit")
	}
	return nil
}

// ValidateUsername checks length bounds and rejects surrounding whitespace.
func ValidateUsername(username string) error {
	if username != strings.TrimSpace(username) {
		return errors.New("username must not have leading or trailing whitespace")
	}
	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return fmt.Errorf("username must be between %d and %d characters", MinUsernameLength, MaxUsernameLength)
	}
	return nil
}
