// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const dialectPostgres = "postgres"

// Dialect builds PostgreSQL statements with numbered placeholders.
var Dialect = goqu.Dialect(dialectPostgres)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx so repositories can run
// the same statement inside or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Statement is any goqu dataset that renders to SQL.
type Statement interface {
	ToSQL() (string, []any, error)
}

// Build renders a prepared goqu statement.
func Build(statement Statement) (string, []any, error) {
	sql, args, err := statement.ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("postgres: build query: %w", err)
	}
	return sql, args, nil
}

// Table qualifies a table name with its schema.
func Table(schema, name string) exp.IdentifierExpression {
	return goqu.S(schema).Table(name)
}

// EscapeLike escapes LIKE wildcards so value matches literally.
func EscapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}

// Prefix returns a case-sensitive "starts with" predicate on column.
func Prefix(column, prefix string) exp.Expression {
	return goqu.I(column).Like(EscapeLike(prefix) + "%")
}
