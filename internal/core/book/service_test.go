// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/core/book"
	"github.com/taibuivan/locallibrary/internal/core/loan"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/pkg/pagination"
)

type memoryRepository struct {
	next  int64
	books map[int64]*book.Book
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{books: map[int64]*book.Book{}}
}

func (m *memoryRepository) all() []*book.Book {
	out := make([]*book.Book, 0, len(m.books))
	for _, b := range m.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *memoryRepository) List(_ context.Context, limit, offset int) ([]*book.Book, int, error) {
	all := m.all()
	if offset >= len(all) {
		return []*book.Book{}, len(all), nil
	}
	return all[offset:min(offset+limit, len(all))], len(all), nil
}

func (m *memoryRepository) ListByAuthor(_ context.Context, authorID int64) ([]*book.Book, error) {
	var out []*book.Book
	for _, b := range m.all() {
		if b.AuthorID != nil && *b.AuthorID == authorID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memoryRepository) FindByID(_ context.Context, id int64) (*book.Book, error) {
	b, ok := m.books[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return b, nil
}

func (m *memoryRepository) Create(_ context.Context, b *book.Book) error {
	for _, existing := range m.books {
		if existing.ISBN == b.ISBN {
			return apperr.Conflict(fmt.Sprintf("A book with ISBN %s already exists", b.ISBN))
		}
	}
	m.next++
	b.ID = m.next
	m.books[b.ID] = b
	return nil
}

func (m *memoryRepository) Update(_ context.Context, b *book.Book) error {
	if _, ok := m.books[b.ID]; !ok {
		return dberr.ErrNotFound
	}
	m.books[b.ID] = b
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.books[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(m.books, id)
	return nil
}

// copyCounts fakes the loan side with a fixed number of copies per book.
type copyCounts map[int64]int

func (c copyCounts) CopiesOf(_ context.Context, bookID int64) ([]*loan.BookInstance, error) {
	out := make([]*loan.BookInstance, 0, c[bookID])
	for i := 0; i < c[bookID]; i++ {
		out = append(out, &loan.BookInstance{ID: fmt.Sprintf("copy-%d", i), BookID: bookID, Status: loan.StatusAvailable})
	}
	return out, nil
}

func (c copyCounts) CountCopies(_ context.Context, bookID int64) (int, error) {
	return c[bookID], nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validInput(title, isbn string) book.Input {
	return book.Input{Title: title, Summary: "A summary.", ISBN: isbn}
}

/*
TestService_Create normalizes input and surfaces validation and ISBN conflicts.
*/
func TestService_Create(t *testing.T) {
	service := book.NewService(newMemoryRepository(), copyCounts{}, discardLogger())
	ctx := context.Background()

	created, err := service.Create(ctx, book.Input{
		Title: "  Dune ", Summary: "Spice.", ISBN: " 9780441013593 ", GenreIDs: []int64{2, 1, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "Dune", created.Title)
	assert.Equal(t, "9780441013593", created.ISBN)
	assert.Equal(t, []int64{2, 1}, created.GenreIDs)

	_, err = service.Create(ctx, validInput("Dune Messiah", "9780441013593"))
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
	assert.EqualError(t, err, "A book with ISBN 9780441013593 already exists")

	_, err = service.Create(ctx, book.Input{Title: "", Summary: "", ISBN: "12-3"})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	var fields []string
	for _, detail := range ae.Details {
		fields = append(fields, detail.Field)
	}
	assert.ElementsMatch(t, []string{"title", "summary", "isbn"}, fields)
}

/*
TestService_Delete refuses while copies exist and succeeds once they are gone.
*/
func TestService_Delete(t *testing.T) {
	repo := newMemoryRepository()
	copies := copyCounts{}
	service := book.NewService(repo, copies, discardLogger())
	ctx := context.Background()

	created, err := service.Create(ctx, validInput("Dune", "9780441013593"))
	require.NoError(t, err)

	copies[created.ID] = 2
	err = service.Delete(ctx, created.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeReferentialConflict))
	assert.EqualError(t, err, "Cannot delete book: 2 copies still reference it")

	copies[created.ID] = 1
	assert.EqualError(t, service.Delete(ctx, created.ID), "Cannot delete book: 1 copy still references it")

	books, _, err := service.List(ctx, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, books, 1)

	copies[created.ID] = 0
	require.NoError(t, service.Delete(ctx, created.ID))

	books, _, err = service.List(ctx, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, books)

	assert.EqualError(t, service.Delete(ctx, created.ID), "Book not found")
}

/*
TestService_Detail embeds copies and the display genre.
*/
func TestService_Detail(t *testing.T) {
	repo := newMemoryRepository()
	service := book.NewService(repo, copyCounts{1: 2}, discardLogger())

	require.NoError(t, repo.Create(context.Background(), &book.Book{
		Title: "Dune", ISBN: "9780441013593", Genres: []string{"Adventure", "Fantasy", "Politics", "Science Fiction"},
	}))

	detail, err := service.Detail(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, detail.Copies, 2)
	assert.Equal(t, "Adventure, Fantasy, Politics", detail.GenreSummary)
	assert.Equal(t, "Dune", detail.String())

	_, err = service.Detail(context.Background(), 42)
	assert.EqualError(t, err, "Book not found")
}

/*
TestService_List pages by ten and rejects pages past the end.
*/
func TestService_List(t *testing.T) {
	service := book.NewService(newMemoryRepository(), copyCounts{}, discardLogger())
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := service.Create(ctx, validInput(fmt.Sprintf("Title %02d", i), fmt.Sprintf("97800000000%02d", i)))
		require.NoError(t, err)
	}

	books, meta, err := service.List(ctx, pagination.Params{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, books, 2)
	assert.Equal(t, "Title 10", books[0].Title)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrevious)

	_, _, err = service.List(ctx, pagination.Params{Page: 3, Limit: 10})
	assert.ErrorIs(t, err, pagination.ErrInvalidPage)
}
