package reference_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/core/reference"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/pkg/pagination"
)

// memoryRepository is an in-memory [reference.Repository] with book links.
type memoryRepository struct {
	next  int64
	terms map[int64]*reference.Term
	links map[int64][]reference.BookRef
}

func newMemoryRepository(names ...string) *memoryRepository {
	repo := &memoryRepository{terms: map[int64]*reference.Term{}, links: map[int64][]reference.BookRef{}}
	for _, name := range names {
		_ = repo.Create(context.Background(), &reference.Term{Name: name})
	}
	return repo
}

func (m *memoryRepository) List(_ context.Context, limit, offset int) ([]*reference.Term, int, error) {
	all := make([]*reference.Term, 0, len(m.terms))
	for _, term := range m.terms {
		all = append(all, term)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	if offset >= len(all) {
		return []*reference.Term{}, len(all), nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], len(all), nil
}

func (m *memoryRepository) FindByID(_ context.Context, id int64) (*reference.Term, error) {
	term, ok := m.terms[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return term, nil
}

func (m *memoryRepository) Books(_ context.Context, id int64) ([]reference.BookRef, error) {
	return m.links[id], nil
}

func (m *memoryRepository) Create(_ context.Context, term *reference.Term) error {
	for _, existing := range m.terms {
		if existing.Name == term.Name {
			return apperr.Conflict("A record with the same unique value already exists")
		}
	}
	m.next++
	term.ID = m.next
	m.terms[term.ID] = term
	return nil
}

func (m *memoryRepository) Update(_ context.Context, term *reference.Term) error {
	if _, ok := m.terms[term.ID]; !ok {
		return dberr.ErrNotFound
	}
	m.terms[term.ID] = term
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.terms[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(m.links, id)
	delete(m.terms, id)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestService_Create normalizes names and rejects blank or oversized ones.
*/
func TestService_Create(t *testing.T) {
	service := reference.NewService(reference.KindGenre, newMemoryRepository(), discardLogger())

	term, err := service.Create(context.Background(), reference.Input{Name: "  Science Fiction "})
	require.NoError(t, err)
	assert.Equal(t, "Science Fiction", term.Name)
	assert.Equal(t, "Science Fiction", term.String())

	_, err = service.Create(context.Background(), reference.Input{Name: "   "})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.Create(context.Background(), reference.Input{Name: strings.Repeat("x", 201)})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.Create(context.Background(), reference.Input{Name: "Science Fiction"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

/*
TestService_List pages terms and rejects pages past the end.
*/
func TestService_List(t *testing.T) {
	service := reference.NewService(reference.KindLanguage, newMemoryRepository("English", "French", "Swahili"), discardLogger())

	terms, meta, err := service.List(context.Background(), pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, "Swahili", terms[0].Name)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrevious)

	_, _, err = service.List(context.Background(), pagination.Params{Page: 3, Limit: 2})
	assert.ErrorIs(t, err, pagination.ErrInvalidPage)
}

/*
TestService_DetailAndDelete covers book links and kind-specific not-found messages.
*/
func TestService_DetailAndDelete(t *testing.T) {
	repo := newMemoryRepository("Fantasy")
	repo.links[1] = []reference.BookRef{{ID: 7, Title: "The Hobbit"}}
	service := reference.NewService(reference.KindGenre, repo, discardLogger())

	detail, err := service.Detail(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Fantasy", detail.Name)
	assert.Len(t, detail.Books, 1)

	require.NoError(t, service.Delete(context.Background(), 1))

	_, err = service.Detail(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, "Genre not found", err.Error())

	err = service.Delete(context.Background(), 1)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
