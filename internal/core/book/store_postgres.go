// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/internal/platform/postgres"
	"github.com/taibuivan/locallibrary/internal/platform/validate"
)

const (
	aliasBook     = "b"
	aliasAuthor   = "a"
	aliasLanguage = "l"
)

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func column(name string) exp.IdentifierExpression {
	return goqu.T(aliasBook).Col(name)
}

// genreArray selects one column of the book's genres as an array ordered by genre name.
func genreArray(genreColumn string) exp.LiteralExpression {
	return goqu.L(fmt.Sprintf(
		`ARRAY(SELECT g.%s FROM %s bg JOIN %s g ON g.%s = bg.%s WHERE bg.%s = %s.%s ORDER BY g.%s, g.%s)`,
		genreColumn,
		schema.CatalogBookGenre.Table, schema.CatalogGenre.Table,
		schema.CatalogGenre.ID, schema.CatalogBookGenre.GenreID,
		schema.CatalogBookGenre.BookID, aliasBook, schema.CatalogBook.ID,
		schema.CatalogGenre.Name, schema.CatalogGenre.ID,
	))
}

// selectBooks is the base SELECT resolving author, language and genres.
func selectBooks() *goqu.SelectDataset {
	author := goqu.T(aliasAuthor)
	language := goqu.T(aliasLanguage)

	return postgres.Dialect.
		From(goqu.I(schema.CatalogBook.Table).As(aliasBook)).
		LeftJoin(
			goqu.I(schema.CatalogAuthor.Table).As(aliasAuthor),
			goqu.On(author.Col(schema.CatalogAuthor.ID).Eq(column(schema.CatalogBook.AuthorID))),
		).
		LeftJoin(
			goqu.I(schema.CatalogLanguage.Table).As(aliasLanguage),
			goqu.On(language.Col(schema.CatalogLanguage.ID).Eq(column(schema.CatalogBook.LanguageID))),
		).
		Select(
			column(schema.CatalogBook.ID),
			column(schema.CatalogBook.Title),
			column(schema.CatalogBook.AuthorID),
			goqu.L(fmt.Sprintf(`COALESCE(%s.%s || ', ' || %s.%s, '')`,
				aliasAuthor, schema.CatalogAuthor.LastName, aliasAuthor, schema.CatalogAuthor.FirstName)),
			column(schema.CatalogBook.Summary),
			column(schema.CatalogBook.ISBN),
			column(schema.CatalogBook.LanguageID),
			goqu.COALESCE(language.Col(schema.CatalogLanguage.Name), ""),
			genreArray(schema.CatalogGenre.ID),
			genreArray(schema.CatalogGenre.Name),
		).
		Order(column(schema.CatalogBook.Title).Asc(), column(schema.CatalogBook.ID).Asc())
}

/*
List retrieves one page of books ordered by title.

Description: The total is computed with a window count in the same query.
*/
func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Book, int, error) {
	statement := selectBooks().
		SelectAppend(goqu.L("COUNT(*) OVER()")).
		Limit(uint(limit)).
		Offset(uint(offset)).
		Prepared(true)

	query, args, err := postgres.Build(statement)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "build_list_books")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	books := make([]*Book, 0, limit)
	total := 0
	for rows.Next() {
		book, err := scanBook(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		books = append(books, book)
	}

	return books, total, dberr.Wrap(rows.Err(), "list_books")
}

// ListByAuthor returns every book by an author.
func (repository *PostgresRepository) ListByAuthor(context context.Context, authorID int64) ([]*Book, error) {
	statement := selectBooks().
		Where(column(schema.CatalogBook.AuthorID).Eq(authorID)).
		Prepared(true)

	query, args, err := postgres.Build(statement)
	if err != nil {
		return nil, dberr.Wrap(err, "build_list_author_books")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_author_books")
	}

	books, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Book, error) {
		return scanBook(row)
	})
	return books, dberr.Wrap(err, "scan_author_books")
}

// FindByID returns a single book.
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Book, error) {
	statement := selectBooks().
		Where(column(schema.CatalogBook.ID).Eq(id)).
		Prepared(true)

	query, args, err := postgres.Build(statement)
	if err != nil {
		return nil, dberr.Wrap(err, "build_get_book")
	}

	book, err := scanBook(repository.db.QueryRow(context, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, "get_book")
	}
	return book, nil
}

/*
Create inserts a book and its genre links in one transaction.

Returns:
  - error: Conflict on a duplicate ISBN, Validation for an unknown
    author, language or genre
*/
func (repository *PostgresRepository) Create(context context.Context, book *Book) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_book")
	}
	defer transaction.Rollback(context)

	statement := postgres.Dialect.
		Insert(goqu.I(schema.CatalogBook.Table)).
		Rows(record(book)).
		Returning(goqu.I(schema.CatalogBook.ID)).
		Prepared(true)

	query, args, err := postgres.Build(statement)
	if err != nil {
		return dberr.Wrap(err, "build_create_book")
	}

	if err := transaction.QueryRow(context, query, args...).Scan(&book.ID); err != nil {
		return writeError(err, book, "create_book")
	}

	if err := replaceGenres(context, transaction, book); err != nil {
		return err
	}

	return dberr.Wrap(transaction.Commit(context), "commit_create_book")
}

// Update replaces a book's fields and genre links in one transaction.
func (repository *PostgresRepository) Update(context context.Context, book *Book) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_book")
	}
	defer transaction.Rollback(context)

	statement := postgres.Dialect.
		Update(goqu.I(schema.CatalogBook.Table)).
		Set(record(book)).
		Where(goqu.I(schema.CatalogBook.ID).Eq(book.ID)).
		Prepared(true)

	query, args, err := postgres.Build(statement)
	if err != nil {
		return dberr.Wrap(err, "build_update_book")
	}

	tag, err := transaction.Exec(context, query, args...)
	if err != nil {
		return writeError(err, book, "update_book")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	if err := replaceGenres(context, transaction, book); err != nil {
		return err
	}

	return dberr.Wrap(transaction.Commit(context), "commit_update_book")
}

// Delete removes a book; genre links cascade, copies restrict.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogBook.Table, schema.CatalogBook.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_book")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Helpers

func record(book *Book) goqu.Record {
	return goqu.Record{
		schema.CatalogBook.Title:      book.Title,
		schema.CatalogBook.AuthorID:   book.AuthorID,
		schema.CatalogBook.Summary:    book.Summary,
		schema.CatalogBook.ISBN:       book.ISBN,
		schema.CatalogBook.LanguageID: book.LanguageID,
	}
}

// replaceGenres rewrites the book's genre links inside transaction.
func replaceGenres(context context.Context, transaction pgx.Tx, book *Book) error {
	unlink := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogBookGenre.Table, schema.CatalogBookGenre.BookID)
	if _, err := transaction.Exec(context, unlink, book.ID); err != nil {
		return dberr.Wrap(err, "clear_book_genres")
	}

	if len(book.GenreIDs) == 0 {
		return nil
	}

	rows := make([]any, 0, len(book.GenreIDs))
	for _, genreID := range book.GenreIDs {
		rows = append(rows, goqu.Record{
			schema.CatalogBookGenre.BookID:  book.ID,
			schema.CatalogBookGenre.GenreID: genreID,
		})
	}

	statement := postgres.Dialect.
		Insert(goqu.I(schema.CatalogBookGenre.Table)).
		Rows(rows...).
		Prepared(true)

	query, args, err := postgres.Build(statement)
	if err != nil {
		return dberr.Wrap(err, "build_link_book_genres")
	}

	if _, err := transaction.Exec(context, query, args...); err != nil {
		return writeError(err, book, "link_book_genres")
	}
	return nil
}

func scanBook(row pgx.Row, extra ...any) (*Book, error) {
	book := &Book{}
	targets := []any{
		&book.ID,
		&book.Title,
		&book.AuthorID,
		&book.AuthorName,
		&book.Summary,
		&book.ISBN,
		&book.LanguageID,
		&book.LanguageName,
		&book.GenreIDs,
		&book.Genres,
	}
	if err := row.Scan(append(targets, extra...)...); err != nil {
		return nil, err
	}
	return book, nil
}

// writeError classifies constraint failures raised by an insert or update.
func writeError(err error, book *Book, action string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return dberr.Wrap(err, action)
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		conflict := apperr.Conflict(fmt.Sprintf("A book with ISBN %s already exists", book.ISBN))
		conflict.Cause = err
		return conflict

	case pgerrcode.ForeignKeyViolation:
		switch {
		case strings.Contains(pgErr.ConstraintName, schema.CatalogBook.AuthorID):
			return validate.FieldError(FieldAuthorID, "Select a valid author", "")
		case strings.Contains(pgErr.ConstraintName, schema.CatalogBook.LanguageID):
			return validate.FieldError(FieldLanguageID, "Select a valid language", "")
		case strings.Contains(pgErr.ConstraintName, schema.CatalogBookGenre.GenreID):
			return validate.FieldError(FieldGenreIDs, "Select a valid genre", "")
		}
	}

	return dberr.Wrap(err, action)
}
