package author

import (
	"context"
	"log/slog"

	"github.com/taibuivan/locallibrary/internal/core/book"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/internal/platform/validate"
	"github.com/taibuivan/locallibrary/pkg/pagination"
)

// ResourceName labels authors in not-found errors.
const ResourceName = "Author"

// Books lists the books of an author; [book.Service] satisfies it.
type Books interface {
	ListByAuthor(ctx context.Context, authorID int64) ([]*book.Book, error)
}

// # Service Layer

// Service applies the author rules on top of the repository.
type Service struct {
	repo   Repository
	books  Books
	logger *slog.Logger
}

// NewService constructs a new author [Service].
func NewService(repo Repository, books Books, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		books:  books,
		logger: logger,
	}
}

// List returns one page of authors ordered by last then first name.
func (service *Service) List(context context.Context, page pagination.Params) ([]*Author, pagination.Meta, error) {
	authors, total, err := service.repo.List(context, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	if err := page.Check(total); err != nil {
		return nil, pagination.Meta{}, err
	}
	return authors, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// Detail returns an author with every book they wrote.
func (service *Service) Detail(context context.Context, id int64) (*Detail, error) {
	author, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, dberr.NotFoundAs(err, ResourceName)
	}

	books, err := service.books.ListByAuthor(context, id)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []*book.Book{}
	}

	return &Detail{Author: author, Name: author.String(), Books: books}, nil
}

// Initial returns the pre-filled create form.
func (service *Service) Initial() Input {
	return Input{DateOfDeath: InitialDateOfDeath}
}

// Create validates and persists a new author.
func (service *Service) Create(context context.Context, input Input) (*Author, error) {
	author := fromInput(input)
	if err := validateAuthor(author); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, author); err != nil {
		return nil, err
	}

	service.logger.Info("author_created", slog.Int64("author_id", author.ID), slog.String("name", author.String()))
	return author, nil
}

// Update replaces every editable field of an existing author.
func (service *Service) Update(context context.Context, id int64, input Input) (*Author, error) {
	author := fromInput(input)
	author.ID = id
	if err := validateAuthor(author); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, author); err != nil {
		return nil, dberr.NotFoundAs(err, ResourceName)
	}

	service.logger.Info("author_updated", slog.Int64("author_id", author.ID))
	return author, nil
}

// Delete removes an author; their books stay in the catalog without an author.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return dberr.NotFoundAs(err, ResourceName)
	}

	service.logger.Warn("author_deleted", slog.Int64("author_id", id))
	return nil
}

func fromInput(input Input) *Author {
	return &Author{
		FirstName:   validate.Name(input.FirstName),
		LastName:    validate.Name(input.LastName),
		DateOfBirth: input.DateOfBirth,
		DateOfDeath: input.DateOfDeath,
	}
}

func validateAuthor(author *Author) error {
	validator := &validate.Validator{}

	validator.Required(FieldFirstName, author.FirstName).MaxLen(FieldFirstName, author.FirstName, MaxNameLength)
	validator.Required(FieldLastName, author.LastName).MaxLen(FieldLastName, author.LastName, MaxNameLength)

	bothDated := !author.DateOfBirth.IsZero() && !author.DateOfDeath.IsZero()
	validator.Custom(FieldDateOfDeath, bothDated && author.DateOfDeath.Before(author.DateOfBirth),
		"Must not precede the date of birth")

	return validator.Err()
}
