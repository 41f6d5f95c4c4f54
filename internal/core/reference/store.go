// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import "context"

// # Reference Data Access

// Repository defines the data access contract for one taxonomy [Kind].
type Repository interface {

	/*
		List retrieves one page of terms ordered by name.

		Returns:
		  - []*Term: The requested page
		  - int: Total number of terms
		  - error: Database retrieval failures
	*/
	List(context context.Context, limit, offset int) ([]*Term, int, error)

	// FindByID returns a single term or dberr.ErrNotFound.
	FindByID(context context.Context, id int64) (*Term, error)

	// Books lists the books referencing the term, ordered by title.
	Books(context context.Context, id int64) ([]BookRef, error)

	// Create persists a new term and assigns its ID.
	Create(context context.Context, term *Term) error

	// Update renames an existing term.
	Update(context context.Context, term *Term) error

	/*
		Delete removes a term and detaches it from every book in one transaction.

		Genres are unlinked from their books; languages are cleared from the
		books written in them.
	*/
	Delete(context context.Context, id int64) error
}
