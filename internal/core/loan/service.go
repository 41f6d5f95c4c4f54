// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package loan

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/internal/platform/validate"
	"github.com/taibuivan/locallibrary/pkg/date"
	"github.com/taibuivan/locallibrary/pkg/pagination"
	"github.com/taibuivan/locallibrary/pkg/uuid"
)

// ResourceName labels copies in not-found errors.
const ResourceName = "Book instance"

// Service implements the borrowing and renewal workflows.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a loan [Service]. A nil clock defaults to [time.Now].
func NewService(repo Repository, logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, logger: logger, now: now}
}

func (service *Service) today() date.Date {
	return date.Today(service.now)
}

/*
MyLoans lists the copies on loan to the given borrower.

Parameters:
  - borrowerID: The authenticated account's ID
  - page: Requested page with the view's fixed size

Returns:
  - []*BookInstance: Copies ordered by due date
  - pagination.Meta: Paging metadata
  - error: pagination.ErrInvalidPage past the last page, or storage errors
*/
func (service *Service) MyLoans(context context.Context, borrowerID string, page pagination.Params) ([]*BookInstance, pagination.Meta, error) {
	instances, total, err := service.repo.LoanedTo(context, borrowerID, page.Limit, page.Offset())
	return service.finishPage(instances, total, page, err)
}

// AllLoans lists every copy on loan, soonest due first.
func (service *Service) AllLoans(context context.Context, page pagination.Params) ([]*BookInstance, pagination.Meta, error) {
	instances, total, err := service.repo.AllOnLoan(context, page.Limit, page.Offset())
	return service.finishPage(instances, total, page, err)
}

func (service *Service) finishPage(instances []*BookInstance, total int, page pagination.Params, err error) ([]*BookInstance, pagination.Meta, error) {
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	if err := page.Check(total); err != nil {
		return nil, pagination.Meta{}, err
	}

	today := service.today()
	for _, instance := range instances {
		instance.annotate(today)
	}
	return instances, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// CopiesOf lists every copy of a book with status labels and overdue flags.
func (service *Service) CopiesOf(context context.Context, bookID int64) ([]*BookInstance, error) {
	instances, err := service.repo.ListByBook(context, bookID)
	if err != nil {
		return nil, err
	}

	today := service.today()
	for _, instance := range instances {
		instance.annotate(today)
	}
	return instances, nil
}

// CountCopies returns how many copies reference a book.
func (service *Service) CountCopies(context context.Context, bookID int64) (int, error) {
	return service.repo.CountByBook(context, bookID)
}

// # Renewal Workflow

/*
RenewForm loads a copy for the renewal form and proposes today + 21 days.

Returns:
  - *RenewalForm: The copy, the proposed date and the accepted range
  - error: NotFound when the copy does not exist
*/
func (service *Service) RenewForm(context context.Context, id string) (*RenewalForm, error) {
	instance, err := service.find(context, id)
	if err != nil {
		return nil, err
	}

	today := service.today()
	return &RenewalForm{
		Instance:     instance,
		RenewalDate:  ProposedRenewal(today),
		EarliestDate: today,
		LatestDate:   today.AddDays(RenewalWindowDays),
	}, nil
}

/*
Renew validates the submitted date and moves the copy's due date to it.

Description: The copy is loaded first so an unknown id is a 404 even when
the date is also invalid. A rejected date is returned as a validation error
on "renewal_date" echoing the submitted value for correction.

Returns:
  - *BookInstance: The renewed copy
  - error: NotFound, Validation or storage errors
*/
func (service *Service) Renew(context context.Context, id string, submitted string) (*BookInstance, error) {
	instance, err := service.find(context, id)
	if err != nil {
		return nil, err
	}

	raw := strings.TrimSpace(submitted)
	if raw == "" {
		return nil, validate.FieldError(FieldRenewalDate, "This field is required", submitted)
	}

	renewalDate, err := date.Parse(raw)
	if err != nil {
		return nil, validate.FieldError(FieldRenewalDate, "Enter a valid date", submitted)
	}

	today := service.today()
	if err := ValidateRenewalDate(renewalDate, today); err != nil {
		var renewal *RenewalError
		if errors.As(err, &renewal) {
			return nil, validate.FieldError(FieldRenewalDate, renewal.Error(), submitted)
		}
		return nil, err
	}

	if err := service.repo.UpdateDueBack(context, id, renewalDate); err != nil {
		return nil, dberr.NotFoundAs(err, ResourceName)
	}

	instance.DueBack = renewalDate
	instance.annotate(today)

	service.logger.Info("instance_renewed",
		slog.String("instance_id", id),
		slog.String("due_back", renewalDate.String()),
	)
	return instance, nil
}

// # Copy Management

// Create validates and persists a new copy with a random UUID.
func (service *Service) Create(context context.Context, input Input) (*BookInstance, error) {
	instance := &BookInstance{
		ID:         uuid.Random(),
		BookID:     input.BookID,
		Imprint:    strings.TrimSpace(input.Imprint),
		DueBack:    input.DueBack,
		BorrowerID: input.BorrowerID,
		Status:     input.Status,
	}
	if instance.Status == "" {
		instance.Status = DefaultStatus
	}
	input.Imprint = instance.Imprint

	validator := &validate.Validator{}
	validator.Struct(input)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, instance); err != nil {
		return nil, err
	}

	created, err := service.find(context, instance.ID)
	if err != nil {
		return nil, err
	}

	service.logger.Info("instance_created",
		slog.String("instance_id", created.ID),
		slog.Int64("book_id", created.BookID),
	)
	return created, nil
}

func (service *Service) find(context context.Context, id string) (*BookInstance, error) {
	if !uuid.Valid(id) {
		return nil, dberr.NotFoundAs(dberr.ErrNotFound, ResourceName)
	}

	instance, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, dberr.NotFoundAs(err, ResourceName)
	}

	instance.annotate(service.today())
	return instance, nil
}
