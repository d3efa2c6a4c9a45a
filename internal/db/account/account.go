package account

import (
	"context"
	"errors"
	"net"
	"secureauth/internal/core/domain/account"
	c "secureauth/internal/core/domain/common"
	e "secureauth/internal/core/domain/errors"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
)

const (
	EmailConstraintName      = "accounts_email_key"
	PrimaryKeyConstraintName = "accounts_pkey"
)

// PgxAccountRepository runs every method as one statement bounded by timeout.
type PgxAccountRepository struct {
	db      DBTX
	timeout time.Duration
}

func NewPgxRepository(db DBTX, timeout time.Duration) *PgxAccountRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	if timeout <= 0 {
		panic("timeout must be positive")
	}
	return &PgxAccountRepository{db: db, timeout: timeout}
}

func (r *PgxAccountRepository) GetIDByEmail(ctx context.Context, email c.Email) (id account.ID, err error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var dbID string
	err = r.db.QueryRow(ctx, getIDByEmail, string(email)).Scan(&dbID)
	if errors.Is(err, pgx.ErrNoRows) {
		return id, account.ErrAccountDoesNotExist
	}
	if err != nil {
		return id, classify(err)
	}
	return account.ID(dbID), nil
}

func (r *PgxAccountRepository) Create(
	ctx context.Context,
	input account.CreateAccountInput,
) (a account.Account, err error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row, err := scanAccount(r.db.QueryRow(
		ctx,
		createAccount,
		string(input.ID),
		string(input.Email),
		string(input.PasswordHash),
		input.CreatedAt,
	))

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch pgErr.ConstraintName {
		case EmailConstraintName:
			return a, account.ErrEmailAlreadyExists
		case PrimaryKeyConstraintName:
			return a, account.ErrIDAlreadyExists
		}
	}
	if err != nil {
		return a, classify(err)
	}

	a = decodeAccount(row)
	if err := a.Validate(); err != nil {
		return a, err
	}
	return a, nil
}

func (r *PgxAccountRepository) SetPasswordHash(
	ctx context.Context,
	email c.Email,
	hash account.PasswordHash,
	at time.Time,
) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, setPasswordHash, string(email), string(hash), at)
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 0 {
		return account.ErrAccountDoesNotExist
	}
	return nil
}

// classify marks errors that mean the database could not be reached or did
// not answer in time. Caller cancellation is returned unchanged.
func classify(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		pgconn.Timeout(err) ||
		errors.As(err, &netErr) ||
		pgconn.SafeToRetry(err) {
		return account.NewFailure(account.ErrStoreUnavailable, err)
	}
	return err
}

func decodeAccount(a dbAccount) account.Account {
	return account.Account{
		ID:           account.ID(a.ID),
		Email:        c.Email(a.Email),
		PasswordHash: account.PasswordHash(a.PasswordHash),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
