package account

import (
	"fmt"
	c "secureauth/internal/core/domain/common"
	e "secureauth/internal/core/domain/errors"
	"time"
)

// ID is the opaque public handle of an account. It is assigned once and never reused.
type ID string

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type Account struct {
	ID           ID
	Email        c.Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (a *Account) Validate() error {
	if a.ID == "" {
		return e.NewInvalidStateError("account id is empty")
	}
	if a.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for account %s", a.ID))
	}
	if a.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for account %s", a.ID))
	}
	return nil
}

// Credentials are what the user receives by email. The password exists in
// plaintext only here, between generation and delivery.
type Credentials struct {
	ID       ID
	Email    c.Email
	Password RawPassword
	IssuedAt time.Time
}
