// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package loan_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/locallibrary/internal/core/loan"
	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
	"github.com/taibuivan/locallibrary/internal/platform/middleware"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
)

func withClaims(claims *sec.AuthClaims) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if claims != nil {
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
			}
			next.ServeHTTP(writer, request)
		})
	}
}

func newRouter(repo *memoryRepository, claims *sec.AuthClaims) http.Handler {
	handler := loan.NewHandler(newService(repo))
	gatekeeper := middleware.NewGatekeeper("/accounts/login/")

	router := chi.NewRouter()
	router.Use(chimw.StripSlashes)
	router.Use(withClaims(claims))
	router.Route("/catalog", func(r chi.Router) {
		handler.RegisterRoutes(r, gatekeeper)
		r.Route("/book", func(r chi.Router) {
			handler.RegisterRenewRoutes(r, gatekeeper)
		})
	})
	return router
}

func member() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: readerID, Role: string(sec.RoleMember)}
}

func librarian() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: otherID, Role: string(sec.RoleLibrarian), Permissions: sec.RoleLibrarian.Permissions()}
}

/*
TestHandler_MyLoans_Anonymous redirects to login with the original path.
*/
func TestHandler_MyLoans_Anonymous(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&memoryRepository{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/mybooks/", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "next=/catalog/mybooks/")
}

/*
TestHandler_MyLoans lists the caller's loans.
*/
func TestHandler_MyLoans(t *testing.T) {
	repo := &memoryRepository{instances: []*loan.BookInstance{
		borrowed("00000000-0000-4000-8000-000000000001", readerID, today.AddDays(3)),
		borrowed("00000000-0000-4000-8000-000000000002", otherID, today.AddDays(1)),
	}}

	rec := httptest.NewRecorder()
	newRouter(repo, member()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/mybooks/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "00000000-0000-4000-8000-000000000001")
	assert.NotContains(t, rec.Body.String(), "00000000-0000-4000-8000-000000000002")
	assert.Contains(t, rec.Body.String(), `"total":1`)
}

/*
TestHandler_AllBorrowed_Gate denies members and admits staff.
*/
func TestHandler_AllBorrowed_Gate(t *testing.T) {
	repo := &memoryRepository{}

	rec := httptest.NewRecorder()
	newRouter(repo, member()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/all-borrowed/", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	newRouter(repo, librarian()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/all-borrowed/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	newRouter(repo, librarian()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/all-borrowed/?page=2", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

/*
TestHandler_Renew covers the form, a rejected date and a successful renewal.
*/
func TestHandler_Renew(t *testing.T) {
	id := "00000000-0000-4000-8000-000000000001"
	repo := &memoryRepository{instances: []*loan.BookInstance{borrowed(id, readerID, today)}}
	router := newRouter(repo, librarian())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/book/"+id+"/renew/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"renewal_date":"`+today.AddDays(21).String()+`"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/book/not-a-uuid/renew/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	body := `{"renewal_date":"` + today.AddDays(30).String() + `"}`
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/catalog/book/"+id+"/renew/", strings.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "renewal more than 4 weeks ahead")

	rec = httptest.NewRecorder()
	body = `{"renewal_date":"` + today.AddDays(7).String() + `"}`
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/catalog/book/"+id+"/renew/", strings.NewReader(body)))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, loan.AllBorrowedURL, rec.Header().Get("Location"))
	assert.Equal(t, today.AddDays(7), repo.instances[0].DueBack)
}

/*
TestHandler_Renew_Member is forbidden without can_mark_returned.
*/
func TestHandler_Renew_Member(t *testing.T) {
	id := "00000000-0000-4000-8000-000000000001"
	repo := &memoryRepository{instances: []*loan.BookInstance{borrowed(id, readerID, today)}}

	rec := httptest.NewRecorder()
	newRouter(repo, member()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/catalog/book/"+id+"/renew/", strings.NewReader(`{"renewal_date":"2026-03-20"}`)))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, today, repo.instances[0].DueBack)
}
