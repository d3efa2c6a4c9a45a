package common

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	ErrEmailRequired = errors.New("email is required")
	ErrInvalidEmail  = errors.New("invalid email")
)

const MaxEmailLength = 512

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email is always trimmed and lower-cased.
type Email string

func NewEmail(rawEmail string) Email {
	return Email(strings.ToLower(strings.TrimSpace(rawEmail)))
}

// ParseEmail normalizes rawEmail and checks its shape.
// No DNS or mailbox lookups are made.
func ParseEmail(rawEmail string) (Email, error) {
	email := NewEmail(rawEmail)
	if email == "" {
		return email, ErrEmailRequired
	}
	if !IsValidEmail(string(email)) {
		return email, ErrInvalidEmail
	}
	return email, nil
}

func IsValidEmail(s string) bool {
	err := validation.Validate(
		s,
		validation.Required,
		validation.Length(0, MaxEmailLength),
		validation.Match(emailPattern),
	)
	return err == nil
}
