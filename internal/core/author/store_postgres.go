package author

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/internal/platform/postgres"
	"github.com/taibuivan/locallibrary/pkg/date"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Author, int, error) {
	statement := postgres.Dialect.
		From(goqu.I(schema.CatalogAuthor.Table)).
		Select(
			goqu.I(schema.CatalogAuthor.ID),
			goqu.I(schema.CatalogAuthor.FirstName),
			goqu.I(schema.CatalogAuthor.LastName),
			goqu.I(schema.CatalogAuthor.DateOfBirth),
			goqu.I(schema.CatalogAuthor.DateOfDeath),
			goqu.L("COUNT(*) OVER()"),
		).
		Order(
			goqu.I(schema.CatalogAuthor.LastName).Asc(),
			goqu.I(schema.CatalogAuthor.FirstName).Asc(),
			goqu.I(schema.CatalogAuthor.ID).Asc(),
		).
		Limit(uint(limit)).
		Offset(uint(offset)).
		Prepared(true)

	query, args, err := postgres.Build(statement)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "build_list_authors")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_authors")
	}
	defer rows.Close()

	authors := make([]*Author, 0, limit)
	total := 0
	for rows.Next() {
		a := &Author{}
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.DateOfBirth, &a.DateOfDeath, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_author")
		}
		authors = append(authors, a)
	}

	return authors, total, dberr.Wrap(rows.Err(), "list_authors")
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Author, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CatalogAuthor.ID, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.LastName,
		schema.CatalogAuthor.DateOfBirth, schema.CatalogAuthor.DateOfDeath,
		schema.CatalogAuthor.Table, schema.CatalogAuthor.ID,
	)
	a := &Author{}

	err := repository.db.QueryRow(context, query, id).Scan(
		&a.ID, &a.FirstName, &a.LastName, &a.DateOfBirth, &a.DateOfDeath,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_author")
	}
	return a, nil
}

func (repository *PostgresRepository) Create(context context.Context, a *Author) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`,
		schema.CatalogAuthor.Table, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.LastName,
		schema.CatalogAuthor.DateOfBirth, schema.CatalogAuthor.DateOfDeath,
		schema.CatalogAuthor.ID,
	)

	err := repository.db.QueryRow(context, query,
		a.FirstName, a.LastName, nullable(a.DateOfBirth), nullable(a.DateOfDeath),
	).Scan(&a.ID)
	return dberr.Wrap(err, "create_author")
}

func (repository *PostgresRepository) Update(context context.Context, a *Author) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1
	`,
		schema.CatalogAuthor.Table, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.LastName,
		schema.CatalogAuthor.DateOfBirth, schema.CatalogAuthor.DateOfDeath, schema.CatalogAuthor.ID,
	)

	cmd, err := repository.db.Exec(context, query,
		a.ID, a.FirstName, a.LastName, nullable(a.DateOfBirth), nullable(a.DateOfDeath),
	)
	if err != nil {
		return dberr.Wrap(err, "update_author")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_author")
	}
	defer transaction.Rollback(context)

	detach := fmt.Sprintf(`UPDATE %s SET %s = NULL WHERE %s = $1`,
		schema.CatalogBook.Table, schema.CatalogBook.AuthorID, schema.CatalogBook.AuthorID,
	)
	if _, err := transaction.Exec(context, detach, id); err != nil {
		return dberr.Wrap(err, "detach_author_books")
	}

	remove := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogAuthor.Table, schema.CatalogAuthor.ID)
	cmd, err := transaction.Exec(context, remove, id)
	if err != nil {
		return dberr.Wrap(err, "delete_author")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return dberr.Wrap(transaction.Commit(context), "commit_delete_author")
}

func nullable(d date.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.Time()
}
