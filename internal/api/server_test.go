// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/api"
	"github.com/taibuivan/locallibrary/internal/core/author"
	"github.com/taibuivan/locallibrary/internal/core/book"
	"github.com/taibuivan/locallibrary/internal/core/catalog"
	"github.com/taibuivan/locallibrary/internal/core/loan"
	"github.com/taibuivan/locallibrary/internal/core/reference"
	"github.com/taibuivan/locallibrary/internal/platform/config"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
	"github.com/taibuivan/locallibrary/internal/users/auth"
)

type rejectAllVerifier struct{}

func (rejectAllVerifier) VerifyToken(string) (*sec.AuthClaims, error) {
	return nil, errors.New("no tokens in this test")
}

type fixedCounter struct{}

func (fixedCounter) CountAll(context.Context, string) (*catalog.Counts, error) {
	return &catalog.Counts{Books: 3, Authors: 2}, nil
}

type countingVisits struct{ hits int64 }

func (v *countingVisits) Hit(context.Context, string) (int64, error) {
	v.hits++
	return v.hits - 1, nil
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Environment: "test",
		ServerPort:  "0",
		SessionTTL:  time.Hour,
		LoginURL:    "/accounts/login/",
	}

	// Gated routes never reach these services in the tests below.
	loanService := loan.NewService(nil, log, nil)
	bookService := book.NewService(nil, loanService, log)

	handlers := api.Handlers{
		Liveness:  func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) },
		Readiness: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) },
		Accounts:  auth.NewHandler(auth.NewService(nil, nil, log)),
		Home:      catalog.NewHandler(catalog.NewService(fixedCounter{}, &countingVisits{}, "the", log)),
		Authors:   author.NewHandler(author.NewService(nil, bookService, log)),
		Books:     book.NewHandler(bookService),
		Loans:     loan.NewHandler(loanService),
		Genres:    reference.NewHandler(reference.NewService(reference.KindGenre, nil, log)),
		Languages: reference.NewHandler(reference.NewService(reference.KindLanguage, nil, log)),
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return api.NewServer(ctx, cfg, log, rejectAllVerifier{}, handlers).Handler()
}

/*
TestServer_RootRedirectsToCatalog verifies the bare root hands off to the catalog home.
*/
func TestServer_RootRedirectsToCatalog(t *testing.T) {
	handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/catalog/", rec.Header().Get("Location"))
}

/*
TestServer_CatalogHome serves the summary with and without a trailing slash.
*/
func TestServer_CatalogHome(t *testing.T) {
	handler := newTestServer(t)

	for _, path := range []string{"/catalog/", "/catalog"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), `"num_books":3`)
	}
}

/*
TestServer_GatedRoutesRedirectAnonymous checks that every protected page sends
anonymous callers to the login form with their destination preserved.
*/
func TestServer_GatedRoutesRedirectAnonymous(t *testing.T) {
	handler := newTestServer(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/catalog/mybooks/"},
		{http.MethodGet, "/catalog/all-borrowed/"},
		{http.MethodGet, "/catalog/author/create/"},
		{http.MethodPost, "/catalog/book/create/"},
		{http.MethodGet, "/catalog/book/0e4b1b9a-6a55-4f1e-9d43-3b0d8c2d0a11/renew/"},
		{http.MethodPost, "/catalog/genre/create/"},
		{http.MethodPost, "/catalog/language/create/"},
		{http.MethodPost, "/catalog/bookinstance/create/"},
		{http.MethodGet, "/accounts/profile/"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Contains(t, rec.Header().Get("Location"), "/accounts/login/?next=")
		})
	}
}

/*
TestServer_Health responds without authentication.
*/
func TestServer_Health(t *testing.T) {
	handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
