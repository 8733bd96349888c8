package service

import (
	"net/mail"
	"unicode/utf8"
)

// ValidationError carries per-field failure detail for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func validateRegistration(name, email, password string) error {
	fields := make(map[string]string)

	if n := utf8.RuneCountInString(name); n < 2 || n > 50 {
		fields["name"] = "name must be between 2 and 50 characters"
	}
	if email == "" {
		fields["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		fields["email"] = "email is not valid"
	}
	if len(password) < 6 {
		fields["password"] = "password must be at least 6 characters"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
