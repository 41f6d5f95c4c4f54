// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "context"

// Repository defines the data access contract for books.
type Repository interface {

	// List returns one page of books ordered by title, and the total.
	List(context context.Context, limit, offset int) ([]*Book, int, error)

	// ListByAuthor returns every book written by an author, ordered by title.
	ListByAuthor(context context.Context, authorID int64) ([]*Book, error)

	// FindByID returns a single book with its author, language and genres resolved.
	FindByID(context context.Context, id int64) (*Book, error)

	// Create inserts the book and its genre links; book.ID is set on success.
	Create(context context.Context, book *Book) error

	// Update replaces the book's fields and genre links.
	Update(context context.Context, book *Book) error

	// Delete removes the book and its genre links.
	Delete(context context.Context, id int64) error
}
