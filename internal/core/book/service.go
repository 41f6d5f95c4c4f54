// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/locallibrary/internal/core/loan"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/internal/platform/validate"
	"github.com/taibuivan/locallibrary/pkg/pagination"
	"github.com/taibuivan/locallibrary/pkg/slice"
)

// ResourceName labels books in not-found errors.
const ResourceName = "Book"

// Copies is the view of a book's physical copies needed here; [loan.Service] satisfies it.
type Copies interface {
	CopiesOf(ctx context.Context, bookID int64) ([]*loan.BookInstance, error)
	CountCopies(ctx context.Context, bookID int64) (int, error)
}

// # Service Layer

// Service orchestrates business rules for books.
type Service struct {
	repo   Repository
	copies Copies
	logger *slog.Logger
}

// NewService constructs a new book [Service].
func NewService(repo Repository, copies Copies, logger *slog.Logger) *Service {
	return &Service{repo: repo, copies: copies, logger: logger}
}

// List returns one page of books ordered by title.
func (service *Service) List(context context.Context, page pagination.Params) ([]*Book, pagination.Meta, error) {
	books, total, err := service.repo.List(context, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	if err := page.Check(total); err != nil {
		return nil, pagination.Meta{}, err
	}
	return books, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// ListByAuthor returns every book by an author.
func (service *Service) ListByAuthor(context context.Context, authorID int64) ([]*Book, error) {
	return service.repo.ListByAuthor(context, authorID)
}

// Detail returns a book with all of its copies.
func (service *Service) Detail(context context.Context, id int64) (*Detail, error) {
	book, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, dberr.NotFoundAs(err, ResourceName)
	}

	copies, err := service.copies.CopiesOf(context, id)
	if err != nil {
		return nil, err
	}

	return &Detail{Book: book, GenreSummary: book.DisplayGenre(), Copies: copies}, nil
}

// Create validates and persists a new book.
func (service *Service) Create(context context.Context, input Input) (*Book, error) {
	book := fromInput(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, book); err != nil {
		return nil, err
	}

	service.logger.Info("book_created", slog.Int64("book_id", book.ID), slog.String("isbn", book.ISBN))
	return service.reload(context, book)
}

// Update replaces the fields and genres of an existing book.
func (service *Service) Update(context context.Context, id int64, input Input) (*Book, error) {
	book := fromInput(input)
	book.ID = id
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, book); err != nil {
		return nil, dberr.NotFoundAs(err, ResourceName)
	}

	service.logger.Info("book_updated", slog.Int64("book_id", id))
	return service.reload(context, book)
}

/*
Delete removes a book that has no copies.

Description: Copies are counted first so the caller learns how many block
the delete. The store's RESTRICT constraint still guards a copy added
concurrently.

Returns:
  - error: NotFound, or ReferentialConflict when copies reference the book
*/
func (service *Service) Delete(context context.Context, id int64) error {
	if _, err := service.repo.FindByID(context, id); err != nil {
		return dberr.NotFoundAs(err, ResourceName)
	}

	count, err := service.copies.CountCopies(context, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.ReferentialConflict(copiesMessage(count))
	}

	if err := service.repo.Delete(context, id); err != nil {
		return dberr.NotFoundAs(err, ResourceName)
	}

	service.logger.Warn("book_deleted", slog.Int64("book_id", id))
	return nil
}

// # Helpers

func (service *Service) reload(context context.Context, book *Book) (*Book, error) {
	stored, err := service.repo.FindByID(context, book.ID)
	if err != nil {
		return nil, dberr.NotFoundAs(err, ResourceName)
	}
	return stored, nil
}

func fromInput(input Input) *Book {
	return &Book{
		Title:      validate.Name(input.Title),
		AuthorID:   input.AuthorID,
		Summary:    strings.TrimSpace(input.Summary),
		ISBN:       strings.TrimSpace(input.ISBN),
		LanguageID: input.LanguageID,
		GenreIDs:   slice.Unique(input.GenreIDs),
	}
}

func validateInput(input Input) error {
	input.Title = validate.Name(input.Title)
	input.Summary = strings.TrimSpace(input.Summary)
	input.ISBN = strings.TrimSpace(input.ISBN)

	validator := &validate.Validator{}
	return validator.Struct(input).Err()
}

func copiesMessage(count int) string {
	if count == 1 {
		return "Cannot delete book: 1 copy still references it"
	}
	return fmt.Sprintf("Cannot delete book: %d copies still reference it", count)
}
