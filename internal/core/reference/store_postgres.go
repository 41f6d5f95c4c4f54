// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/internal/platform/postgres"
)

// PostgresRepository implements [Repository] for one [Kind] using a pgxpool.
type PostgresRepository struct {
	db    *pgxpool.Pool
	kind  Kind
	table string
}

// NewPostgresRepository returns a postgres implementation bound to kind.
func NewPostgresRepository(db *pgxpool.Pool, kind Kind) *PostgresRepository {
	table := schema.CatalogGenre.Table
	if kind == KindLanguage {
		table = schema.CatalogLanguage.Table
	}
	return &PostgresRepository{db: db, kind: kind, table: table}
}

/*
List retrieves one page of terms ordered by name.

Description: A window count returns the total alongside the page so the
caller can build pagination metadata from a single round-trip.
*/
func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Term, int, error) {
	statement := postgres.Dialect.
		From(goqu.I(repository.table)).
		Select(goqu.I(schema.CatalogGenre.ID), goqu.I(schema.CatalogGenre.Name), goqu.L("COUNT(*) OVER()")).
		Order(goqu.I(schema.CatalogGenre.Name).Asc(), goqu.I(schema.CatalogGenre.ID).Asc()).
		Limit(uint(limit)).
		Offset(uint(offset)).
		Prepared(true)

	query, args, err := postgres.Build(statement)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "build_list_"+string(repository.kind))
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_"+string(repository.kind))
	}
	defer rows.Close()

	terms := make([]*Term, 0, limit)
	total := 0
	for rows.Next() {
		term := &Term{}
		if err := rows.Scan(&term.ID, &term.Name, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_"+string(repository.kind))
		}
		terms = append(terms, term)
	}

	return terms, total, dberr.Wrap(rows.Err(), "list_"+string(repository.kind))
}

// FindByID returns a single term.
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Term, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, repository.table, schema.CatalogGenre.ID)

	term := &Term{}
	err := repository.db.QueryRow(context, query, id).Scan(&term.ID, &term.Name)
	if err != nil {
		return nil, dberr.Wrap(err, "get_"+string(repository.kind))
	}
	return term, nil
}

// Books lists the books referencing the term.
func (repository *PostgresRepository) Books(context context.Context, id int64) ([]BookRef, error) {
	var query string
	switch repository.kind {
	case KindGenre:
		query = fmt.Sprintf(`
			SELECT b.%s, b.%s
			FROM %s b
			JOIN %s bg ON bg.%s = b.%s
			WHERE bg.%s = $1
			ORDER BY b.%s, b.%s`,
			schema.CatalogBook.ID, schema.CatalogBook.Title,
			schema.CatalogBook.Table,
			schema.CatalogBookGenre.Table, schema.CatalogBookGenre.BookID, schema.CatalogBook.ID,
			schema.CatalogBookGenre.GenreID,
			schema.CatalogBook.Title, schema.CatalogBook.ID,
		)
	default:
		query = fmt.Sprintf(`
			SELECT %s, %s FROM %s WHERE %s = $1 ORDER BY %s, %s`,
			schema.CatalogBook.ID, schema.CatalogBook.Title, schema.CatalogBook.Table,
			schema.CatalogBook.LanguageID,
			schema.CatalogBook.Title, schema.CatalogBook.ID,
		)
	}

	rows, err := repository.db.Query(context, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "list_"+string(repository.kind)+"_books")
	}

	books, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (BookRef, error) {
		var ref BookRef
		err := row.Scan(&ref.ID, &ref.Title)
		return ref, err
	})
	return books, dberr.Wrap(err, "scan_"+string(repository.kind)+"_books")
}

// Create inserts a new term.
func (repository *PostgresRepository) Create(context context.Context, term *Term) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) RETURNING %s`,
		repository.table, schema.CatalogGenre.Name, schema.CatalogGenre.ID)

	err := repository.db.QueryRow(context, query, term.Name).Scan(&term.ID)
	return dberr.Wrap(err, "create_"+string(repository.kind))
}

// Update renames a term.
func (repository *PostgresRepository) Update(context context.Context, term *Term) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		repository.table, schema.CatalogGenre.Name, schema.CatalogGenre.ID)

	tag, err := repository.db.Exec(context, query, term.ID, term.Name)
	if err != nil {
		return dberr.Wrap(err, "update_"+string(repository.kind))
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
Delete removes a term after detaching it from every book.

Description: Runs inside one transaction so a book never points at a term
that no longer exists, and a failed delete leaves the links intact.
*/
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_"+string(repository.kind))
	}
	defer transaction.Rollback(context)

	// Step 1: Detach dependents
	var detach string
	switch repository.kind {
	case KindGenre:
		detach = fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.CatalogBookGenre.Table, schema.CatalogBookGenre.GenreID)
	default:
		detach = fmt.Sprintf(`UPDATE %s SET %s = NULL WHERE %s = $1`,
			schema.CatalogBook.Table, schema.CatalogBook.LanguageID, schema.CatalogBook.LanguageID)
	}
	if _, err := transaction.Exec(context, detach, id); err != nil {
		return dberr.Wrap(err, "detach_"+string(repository.kind))
	}

	// Step 2: Remove the term itself
	remove := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, repository.table, schema.CatalogGenre.ID)
	tag, err := transaction.Exec(context, remove, id)
	if err != nil {
		return dberr.Wrap(err, "delete_"+string(repository.kind))
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return dberr.Wrap(transaction.Commit(context), "commit_delete_"+string(repository.kind))
}
