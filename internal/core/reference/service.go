// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"log/slog"

	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/internal/platform/validate"
	"github.com/taibuivan/locallibrary/pkg/pagination"
)

// # Service Layer

// Service orchestrates business rules for one taxonomy [Kind].
type Service struct {
	kind   Kind
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new reference [Service].
func NewService(kind Kind, repo Repository, logger *slog.Logger) *Service {
	return &Service{kind: kind, repo: repo, logger: logger}
}

// Kind reports which taxonomy the service manages.
func (service *Service) Kind() Kind {
	return service.kind
}

/*
List returns one page of terms ordered by name.

Returns:
  - []*Term: The requested page
  - pagination.Meta: Paging metadata for the response
  - error: pagination.ErrInvalidPage past the last page, or storage errors
*/
func (service *Service) List(context context.Context, page pagination.Params) ([]*Term, pagination.Meta, error) {
	terms, total, err := service.repo.List(context, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	if err := page.Check(total); err != nil {
		return nil, pagination.Meta{}, err
	}
	return terms, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// Detail returns a term with the books that reference it.
func (service *Service) Detail(context context.Context, id int64) (*Detail, error) {
	term, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, dberr.NotFoundAs(err, service.kind.Label())
	}

	books, err := service.repo.Books(context, id)
	if err != nil {
		return nil, err
	}

	return &Detail{Term: term, Books: books}, nil
}

// Create validates and persists a new term.
func (service *Service) Create(context context.Context, input Input) (*Term, error) {
	term := &Term{Name: validate.Name(input.Name)}
	if err := service.validate(term); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, term); err != nil {
		return nil, err
	}

	service.logger.Info(string(service.kind)+"_created", slog.Int64("id", term.ID), slog.String("name", term.Name))
	return term, nil
}

// Update renames an existing term.
func (service *Service) Update(context context.Context, id int64, input Input) (*Term, error) {
	term := &Term{ID: id, Name: validate.Name(input.Name)}
	if err := service.validate(term); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, term); err != nil {
		return nil, dberr.NotFoundAs(err, service.kind.Label())
	}

	service.logger.Info(string(service.kind)+"_updated", slog.Int64("id", term.ID))
	return term, nil
}

// Delete removes a term and detaches it from its books.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return dberr.NotFoundAs(err, service.kind.Label())
	}

	service.logger.Warn(string(service.kind)+"_deleted", slog.Int64("id", id))
	return nil
}

func (service *Service) validate(term *Term) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, term.Name).MaxLen(FieldName, term.Name, MaxNameLength)
	return validator.Err()
}
