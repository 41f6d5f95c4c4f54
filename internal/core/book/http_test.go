// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/locallibrary/internal/core/book"
	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
	"github.com/taibuivan/locallibrary/internal/platform/middleware"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
)

func newRouter(service *book.Service, claims *sec.AuthClaims) http.Handler {
	handler := book.NewHandler(service)
	gatekeeper := middleware.NewGatekeeper("/accounts/login/")

	router := chi.NewRouter()
	router.Use(chimw.StripSlashes)
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if claims != nil {
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
			}
			next.ServeHTTP(writer, request)
		})
	})
	router.Route("/catalog/books", handler.RegisterRoutes)
	router.Route("/catalog/book", func(r chi.Router) {
		handler.RegisterWriteRoutes(r, gatekeeper)
	})
	return router
}

/*
TestHandler_CreateAndDelete drives the gated writes over HTTP.
*/
func TestHandler_CreateAndDelete(t *testing.T) {
	copies := copyCounts{}
	service := book.NewService(newMemoryRepository(), copies, discardLogger())
	staff := &sec.AuthClaims{UserID: "u1", Role: string(sec.RoleLibrarian), Permissions: sec.RoleLibrarian.Permissions()}
	router := newRouter(service, staff)

	body := `{"title":"Dune","summary":"Spice.","isbn":"9780441013593"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/catalog/book/create/", strings.NewReader(body)))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/catalog/books/1/", rec.Header().Get("Location"))

	copies[1] = 3
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/catalog/book/1/delete/", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "REFERENTIAL_CONFLICT")

	copies[1] = 0
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/catalog/book/1/delete/", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, book.ListURL, rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/books/1/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

/*
TestHandler_ListBooks_Public needs no authentication and 404s bad pages.
*/
func TestHandler_ListBooks_Public(t *testing.T) {
	router := newRouter(book.NewService(newMemoryRepository(), copyCounts{}, discardLogger()), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/books/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"limit":10`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/books/?page=abc", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/catalog/book/create/", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusFound, rec.Code)
}
