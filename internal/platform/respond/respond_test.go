package respond_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
	"github.com/taibuivan/locallibrary/pkg/pagination"
)

func TestError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog/books/9/", nil)

	respond.Error(rec, req, apperr.ReferentialConflict("Cannot delete book: 2 copies still reference it"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	var body respond.ErrorEnvelope
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperr.CodeReferentialConflict, body.Code)
	assert.Equal(t, "Cannot delete book: 2 copies still reference it", body.Error)
}

func TestError_HidesInternalCause(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(rec, req, errors.New("pq: relation does not exist"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "relation")
}

func TestSeeOther(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.SeeOther(rec, "/catalog/authors/", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/catalog/authors/", rec.Header().Get("Location"))
}

func TestPaginated(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.Paginated(rec, []string{"a"}, pagination.NewMeta(1, 5, 8))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_pages":2`)
}
