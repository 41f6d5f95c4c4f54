// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
)

// # Account Repository

// PostgresAccountRepository implements the AccountRepository interface using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of the AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

var selectAccount = fmt.Sprintf(`
	SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
	FROM %s`,
	schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
	schema.UserAccount.Password, schema.UserAccount.Role, schema.UserAccount.Permissions,
	schema.UserAccount.IsActive, schema.UserAccount.LastLoginAt, schema.UserAccount.CreatedAt,
	schema.UserAccount.Table,
)

/*
Create persists a new account record into the users.account table.

Parameters:
  - context: context.Context
  - account: *Account (Entity to persist)

Returns:
  - error: Conflict when the username is taken, or connectivity errors
*/
func (repository *PostgresAccountRepository) Create(context context.Context, account *Account) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.Password, schema.UserAccount.Role, schema.UserAccount.Permissions,
		schema.UserAccount.IsActive,
		schema.UserAccount.CreatedAt,
	)

	permissions := account.Permissions
	if permissions == nil {
		permissions = []string{}
	}

	err := repository.pool.QueryRow(context, query,
		account.ID,
		account.Username,
		account.Email,
		account.PasswordHash,
		string(account.Role),
		permissions,
		account.IsActive,
	).Scan(&account.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return apperr.Conflict("Username is already taken")
	}
	return dberr.Wrap(err, "create_account")
}

/*
FindByUsername retrieves an account by its unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *Account: Hydrated account entity
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresAccountRepository) FindByUsername(context context.Context, username string) (*Account, error) {
	return repository.findOne(context, schema.UserAccount.Username, username)
}

// FindByID retrieves an account by its UUID.
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*Account, error) {
	return repository.findOne(context, schema.UserAccount.ID, id)
}

func (repository *PostgresAccountRepository) findOne(context context.Context, column string, value string) (*Account, error) {
	query := selectAccount + fmt.Sprintf(` WHERE %s = $1`, column)

	account := &Account{}
	var role string
	err := repository.pool.QueryRow(context, query, value).Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.PasswordHash,
		&role,
		&account.Permissions,
		&account.IsActive,
		&account.LastLoginAt,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_account")
	}

	account.Role = sec.UserRole(role)
	return account, nil
}

// TouchLogin stamps last_login_at.
func (repository *PostgresAccountRepository) TouchLogin(context context.Context, id string, at time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.LastLoginAt, schema.UserAccount.ID)

	_, err := repository.pool.Exec(context, query, id, at)
	return dberr.Wrap(err, "touch_account_login")
}
