package account

import (
	"context"
	c "secureauth/internal/core/domain/common"
	"time"
)

type CreateAccountInput struct {
	ID           ID
	Email        c.Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

// Repository is the account table. Every method is a single statement;
// nothing spans two calls.
type Repository interface {
	// GetIDByEmail returns ErrAccountDoesNotExist if no account has the email.
	GetIDByEmail(ctx context.Context, email c.Email) (ID, error)
	// Create returns ErrEmailAlreadyExists or ErrIDAlreadyExists on a uniqueness violation.
	Create(ctx context.Context, input CreateAccountInput) (Account, error)
	// SetPasswordHash returns ErrAccountDoesNotExist if no row matched the email.
	SetPasswordHash(ctx context.Context, email c.Email, hash PasswordHash, at time.Time) error
}
