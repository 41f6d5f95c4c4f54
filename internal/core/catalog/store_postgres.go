// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/locallibrary/internal/core/loan"
	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/internal/platform/postgres"
)

// PostgresCounter implements [Counter] with a single snapshot query.
type PostgresCounter struct {
	db *pgxpool.Pool
}

// NewPostgresCounter returns a fully wired postgres implementation.
func NewPostgresCounter(db *pgxpool.Pool) *PostgresCounter {
	return &PostgresCounter{db: db}
}

func count(table string) *goqu.SelectDataset {
	return postgres.Dialect.From(goqu.I(table)).Select(goqu.COUNT(goqu.Star()))
}

/*
CountAll returns the six home page counts.

Description: Each count is a scalar subquery of one SELECT so the numbers
come from the same snapshot.
*/
func (counter *PostgresCounter) CountAll(context context.Context, titlePrefix string) (*Counts, error) {
	statement := postgres.Dialect.
		Select(
			count(schema.CatalogBook.Table),
			count(schema.CatalogAuthor.Table),
			count(schema.CatalogBookInstance.Table),
			count(schema.CatalogBookInstance.Table).
				Where(goqu.I(schema.CatalogBookInstance.Status).Eq(string(loan.StatusAvailable))),
			count(schema.CatalogGenre.Table),
			count(schema.CatalogBook.Table).
				Where(postgres.Prefix(schema.CatalogBook.Title, titlePrefix)),
		).
		Prepared(true)

	query, args, err := postgres.Build(statement)
	if err != nil {
		return nil, dberr.Wrap(err, "build_catalog_counts")
	}

	counts := &Counts{TitlePrefix: titlePrefix}
	err = counter.db.QueryRow(context, query, args...).Scan(
		&counts.Books,
		&counts.Authors,
		&counts.Instances,
		&counts.AvailableInstances,
		&counts.Genres,
		&counts.TitlesWithPrefix,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "catalog_counts")
	}
	return counts, nil
}
