package account

import "context"

type CredentialsGenerator interface {
	GenerateCredentials() (ID, RawPassword, error)
}

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}

type CredentialsKind int

const (
	CredentialsIssued CredentialsKind = iota
	CredentialsReset
)

func (k CredentialsKind) String() string {
	switch k {
	case CredentialsIssued:
		return "registration"
	case CredentialsReset:
		return "reset"
	default:
		return "unknown"
	}
}

type CredentialsSender interface {
	SendCredentials(ctx context.Context, kind CredentialsKind, credentials Credentials) error
}
