// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package loan

import (
	"context"
	"errors"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/internal/platform/postgres"
	"github.com/taibuivan/locallibrary/internal/platform/validate"
	"github.com/taibuivan/locallibrary/pkg/date"
)

const (
	aliasInstance = "bi"
	aliasBook     = "b"
)

// PostgresRepository implements [Repository] with goqu-built statements run on pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// column qualifies an instance column with the instance alias.
func column(name string) exp.IdentifierExpression {
	return goqu.T(aliasInstance).Col(name)
}

// selectInstances is the base SELECT joining each copy to its book title.
func selectInstances() *goqu.SelectDataset {
	return postgres.Dialect.
		From(goqu.I(schema.CatalogBookInstance.Table).As(aliasInstance)).
		Join(
			goqu.I(schema.CatalogBook.Table).As(aliasBook),
			goqu.On(goqu.T(aliasBook).Col(schema.CatalogBook.ID).Eq(column(schema.CatalogBookInstance.BookID))),
		).
		Select(
			column(schema.CatalogBookInstance.ID),
			column(schema.CatalogBookInstance.BookID),
			goqu.T(aliasBook).Col(schema.CatalogBook.Title),
			column(schema.CatalogBookInstance.Imprint),
			column(schema.CatalogBookInstance.DueBack),
			column(schema.CatalogBookInstance.BorrowerID),
			column(schema.CatalogBookInstance.Status),
		).
		Order(
			column(schema.CatalogBookInstance.DueBack).Asc().NullsLast(),
			column(schema.CatalogBookInstance.ID).Asc(),
		)
}

/*
LoanedTo returns one page of the copies on loan to a borrower.

Description: Filters on borrower AND status 'o'; a copy the borrower holds in
any other status (e.g. reserved) is not a loan.
*/
func (repository *PostgresRepository) LoanedTo(context context.Context, borrowerID string, limit, offset int) ([]*BookInstance, int, error) {
	return repository.page(context, "list_loans_by_borrower", loanedToFilter(borrowerID), limit, offset)
}

// AllOnLoan returns one page of every copy currently on loan.
func (repository *PostgresRepository) AllOnLoan(context context.Context, limit, offset int) ([]*BookInstance, int, error) {
	return repository.page(context, "list_all_loans", onLoanFilter(), limit, offset)
}

// onLoanFilter keeps copies whose status is on loan.
func onLoanFilter() exp.Expression {
	return column(schema.CatalogBookInstance.Status).Eq(string(StatusOnLoan))
}

// loanedToFilter keeps copies on loan to borrowerID.
func loanedToFilter(borrowerID string) exp.Expression {
	return goqu.And(
		column(schema.CatalogBookInstance.BorrowerID).Eq(borrowerID),
		onLoanFilter(),
	)
}

// pageStatement is the windowed listing run by [PostgresRepository.page].
func pageStatement(filter exp.Expression, limit, offset int) *goqu.SelectDataset {
	return selectInstances().
		SelectAppend(goqu.L("COUNT(*) OVER()")).
		Where(filter).
		Limit(uint(limit)).
		Offset(uint(offset)).
		Prepared(true)
}

// page runs a filtered, windowed listing and reports the total alongside the rows.
func (repository *PostgresRepository) page(context context.Context, action string, filter exp.Expression, limit, offset int) ([]*BookInstance, int, error) {
	query, args, err := postgres.Build(pageStatement(filter, limit, offset))
	if err != nil {
		return nil, 0, dberr.Wrap(err, action)
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, action)
	}
	defer rows.Close()

	instances := make([]*BookInstance, 0, limit)
	total := 0
	for rows.Next() {
		instance, err := scanInstance(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, action)
		}
		instances = append(instances, instance)
	}

	return instances, total, dberr.Wrap(rows.Err(), action)
}

// ListByBook returns every copy of a book.
func (repository *PostgresRepository) ListByBook(context context.Context, bookID int64) ([]*BookInstance, error) {
	statement := selectInstances().
		Where(column(schema.CatalogBookInstance.BookID).Eq(bookID)).
		Prepared(true)

	query, args, err := postgres.Build(statement)
	if err != nil {
		return nil, dberr.Wrap(err, "list_book_copies")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_book_copies")
	}

	instances, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*BookInstance, error) {
		return scanInstance(row)
	})
	return instances, dberr.Wrap(err, "scan_book_copies")
}

// CountByBook returns how many copies reference a book.
func (repository *PostgresRepository) CountByBook(context context.Context, bookID int64) (int, error) {
	statement := postgres.Dialect.
		From(goqu.I(schema.CatalogBookInstance.Table)).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.I(schema.CatalogBookInstance.BookID).Eq(bookID)).
		Prepared(true)

	query, args, err := postgres.Build(statement)
	if err != nil {
		return 0, dberr.Wrap(err, "count_book_copies")
	}

	var count int
	err = repository.db.QueryRow(context, query, args...).Scan(&count)
	return count, dberr.Wrap(err, "count_book_copies")
}

// FindByID returns a single copy.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*BookInstance, error) {
	statement := selectInstances().
		Where(column(schema.CatalogBookInstance.ID).Eq(id)).
		Prepared(true)

	query, args, err := postgres.Build(statement)
	if err != nil {
		return nil, dberr.Wrap(err, "get_book_instance")
	}

	instance, err := scanInstance(repository.db.QueryRow(context, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, "get_book_instance")
	}
	return instance, nil
}

// Create inserts a new copy.
func (repository *PostgresRepository) Create(context context.Context, instance *BookInstance) error {
	statement := postgres.Dialect.
		Insert(goqu.I(schema.CatalogBookInstance.Table)).
		Rows(goqu.Record{
			schema.CatalogBookInstance.ID:         instance.ID,
			schema.CatalogBookInstance.BookID:     instance.BookID,
			schema.CatalogBookInstance.Imprint:    instance.Imprint,
			schema.CatalogBookInstance.DueBack:    nullableDate(instance.DueBack),
			schema.CatalogBookInstance.BorrowerID: instance.BorrowerID,
			schema.CatalogBookInstance.Status:     string(instance.Status),
		}).
		Prepared(true)

	query, args, err := postgres.Build(statement)
	if err != nil {
		return dberr.Wrap(err, "create_book_instance")
	}

	if _, err := repository.db.Exec(context, query, args...); err != nil {
		return referenceError(err, "create_book_instance")
	}
	return nil
}

// UpdateDueBack sets the due date of a copy. Concurrent renewals race; the last write wins.
func (repository *PostgresRepository) UpdateDueBack(context context.Context, id string, dueBack date.Date) error {
	statement := postgres.Dialect.
		Update(goqu.I(schema.CatalogBookInstance.Table)).
		Set(goqu.Record{schema.CatalogBookInstance.DueBack: nullableDate(dueBack)}).
		Where(goqu.I(schema.CatalogBookInstance.ID).Eq(id)).
		Prepared(true)

	query, args, err := postgres.Build(statement)
	if err != nil {
		return dberr.Wrap(err, "renew_book_instance")
	}

	tag, err := repository.db.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, "renew_book_instance")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Row Mapping

func scanInstance(row pgx.Row, extra ...any) (*BookInstance, error) {
	instance := &BookInstance{}
	var status string

	targets := []any{
		&instance.ID,
		&instance.BookID,
		&instance.BookTitle,
		&instance.Imprint,
		&instance.DueBack,
		&instance.BorrowerID,
		&status,
	}
	if err := row.Scan(append(targets, extra...)...); err != nil {
		return nil, err
	}

	instance.Status = Status(strings.TrimSpace(status))
	return instance, nil
}

// nullableDate maps the zero date to SQL NULL.
func nullableDate(d date.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.Time()
}

// referenceError turns an unknown book or borrower into a field error.
func referenceError(err error, action string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		switch {
		case strings.Contains(pgErr.ConstraintName, schema.CatalogBookInstance.BorrowerID):
			return validate.FieldError(FieldBorrowerID, "Select a valid borrower", "")
		default:
			return validate.FieldError(FieldBookID, "Select a valid book", "")
		}
	}
	return dberr.Wrap(err, action)
}
