// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book manages catalog titles and their genre links.

# Relationships

  - Author and Language are weak references: deleting either clears the link.
  - Genres are many-to-many through catalog.book_genre.
  - Copies (see package loan) hold a restricting reference: a book with copies
    cannot be deleted.
*/
package book

import (
	"strings"

	"github.com/taibuivan/locallibrary/internal/core/loan"
	"github.com/taibuivan/locallibrary/pkg/slice"
)

// DisplayGenreLimit is how many genre names [Book.DisplayGenre] shows.
const DisplayGenreLimit = 3

// Book is a title in the catalog; physical copies are [loan.BookInstance] values.
type Book struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	AuthorID     *int64   `json:"author_id"`
	AuthorName   string   `json:"author_name,omitempty"`
	Summary      string   `json:"summary"`
	ISBN         string   `json:"isbn"`
	LanguageID   *int64   `json:"language_id"`
	LanguageName string   `json:"language_name,omitempty"`
	GenreIDs     []int64  `json:"genre_ids"`
	Genres       []string `json:"genres"`
}

// String returns the title.
func (book *Book) String() string {
	return book.Title
}

// DisplayGenre joins the first three genre names with ", ".
func (book *Book) DisplayGenre() string {
	return strings.Join(slice.Take(book.Genres, DisplayGenreLimit), ", ")
}

// Detail is a book together with every copy of it.
type Detail struct {
	*Book
	GenreSummary string               `json:"display_genre"`
	Copies       []*loan.BookInstance `json:"copies"`
}

// Input carries the editable fields of a book.
type Input struct {
	Title      string  `json:"title" validate:"required,max=200"`
	AuthorID   *int64  `json:"author_id" validate:"omitempty,gt=0"`
	Summary    string  `json:"summary" validate:"required,max=1000"`
	ISBN       string  `json:"isbn" validate:"required,max=13,isbn"`
	LanguageID *int64  `json:"language_id" validate:"omitempty,gt=0"`
	GenreIDs   []int64 `json:"genre_ids" validate:"dive,gt=0"`
}

// # Field Identifiers

const (
	FieldTitle      = "title"
	FieldAuthorID   = "author_id"
	FieldSummary    = "summary"
	FieldISBN       = "isbn"
	FieldLanguageID = "language_id"
	FieldGenreIDs   = "genre_ids"
)
