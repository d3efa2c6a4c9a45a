package account

import (
	"context"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type dbAccount struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const getIDByEmail = `SELECT id FROM accounts WHERE email = $1`

const createAccount = `
INSERT INTO accounts (id, email, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $4)
RETURNING id, email, password_hash, created_at, updated_at
`

const setPasswordHash = `UPDATE accounts SET password_hash = $2, updated_at = $3 WHERE email = $1`

func scanAccount(row pgx.Row) (a dbAccount, err error) {
	err = row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}
