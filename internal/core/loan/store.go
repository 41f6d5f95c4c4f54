// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package loan

import (
	"context"

	"github.com/taibuivan/locallibrary/pkg/date"
)

// Repository defines the data access contract for book copies.
//
// Every listing orders by due_back ascending with undated copies last, then by id.
type Repository interface {

	// LoanedTo returns one page of copies on loan to borrowerID, and the total.
	LoanedTo(context context.Context, borrowerID string, limit, offset int) ([]*BookInstance, int, error)

	// AllOnLoan returns one page of every copy on loan, and the total.
	AllOnLoan(context context.Context, limit, offset int) ([]*BookInstance, int, error)

	// ListByBook returns every copy of a book.
	ListByBook(context context.Context, bookID int64) ([]*BookInstance, error)

	// CountByBook returns how many copies reference a book.
	CountByBook(context context.Context, bookID int64) (int, error)

	// FindByID returns a single copy or dberr.ErrNotFound.
	FindByID(context context.Context, id string) (*BookInstance, error)

	// Create persists a new copy; ID must already be set.
	Create(context context.Context, instance *BookInstance) error

	// UpdateDueBack sets the due date of a copy.
	UpdateDueBack(context context.Context, id string, dueBack date.Date) error
}
