// Package auth is the identity provider used by the storefront: users, provider
// errors, password hashing and signed session tokens.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

const (
	CodeInvalidCredentials = "invalid-credentials"
	CodeMissingFields      = "missing-fields"
	CodeInvalidEmail       = "invalid-email"
	CodeWeakPassword       = "weak-password"
	CodeEmailInUse         = "email-already-in-use"
)

// User is the signed-in identity.
type User struct {
	ID          string
	Email       string
	DisplayName string
	PhotoURL    string
}

// Error is a failure reported by the identity provider. Message is meant for display.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Message returns the display text of a provider error, or a generic text for anything else.
func Message(err error) string {
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	return "Something went wrong. Please try again."
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
