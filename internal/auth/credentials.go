package auth

import (
	"net/mail"

	apperrors "github.com/fernwave/chat-service/pkg/util"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

// Credentials holds validated form input.
type Credentials struct {
	Email    string
	Password string
}

// ValidateCredentials checks raw form input before any store or issuer call.
// Note: emails matching the guest pattern (guest-<digits>) are NOT rejected
// here; such an account is classified as a guest everywhere after login.
func ValidateCredentials(email, password string) (*Credentials, error) {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return nil, apperrors.NewValidationError("invalid email address", map[string]any{"field": "email"})
	}
	if len(password) < MinPasswordLength {
		return nil, apperrors.NewValidationError("password too short", map[string]any{"field": "password", "min": MinPasswordLength})
	}
	return &Credentials{Email: email, Password: password}, nil
}
