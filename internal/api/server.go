// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/locallibrary/internal/core/author"
	"github.com/taibuivan/locallibrary/internal/core/book"
	"github.com/taibuivan/locallibrary/internal/core/catalog"
	"github.com/taibuivan/locallibrary/internal/core/loan"
	"github.com/taibuivan/locallibrary/internal/core/reference"
	"github.com/taibuivan/locallibrary/internal/platform/config"
	"github.com/taibuivan/locallibrary/internal/platform/constants"
	"github.com/taibuivan/locallibrary/internal/platform/middleware"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
	"github.com/taibuivan/locallibrary/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness answers /health with 200 while the process runs.
	Liveness http.HandlerFunc

	// Readiness answers /ready with 200 only when every dependency responds.
	Readiness http.HandlerFunc

	// Accounts handles login and the caller's profile.
	Accounts *auth.Handler

	// Home serves the catalog summary and visit counter.
	Home *catalog.Handler

	Authors   *author.Handler
	Books     *book.Handler
	Loans     *loan.Handler
	Genres    *reference.Handler
	Languages *reference.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()
	gatekeeper := middleware.NewGatekeeper(cfg.LoginURL)

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)
	r.Use(chimw.StripSlashes)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	r.Get("/", func(writer http.ResponseWriter, request *http.Request) {
		respond.Found(writer, request, "/catalog/")
	})

	// # Accounts
	r.Route("/accounts", func(accounts chi.Router) {
		h.Accounts.RegisterRoutes(accounts, gatekeeper)
	})

	// # Catalog
	// Browsing sessions are only needed below /catalog.
	r.Route("/catalog", func(catalogRouter chi.Router) {
		catalogRouter.Use(middleware.Session(cfg.SessionTTL, cfg.IsProduction()))

		h.Home.RegisterRoutes(catalogRouter)
		h.Loans.RegisterRoutes(catalogRouter, gatekeeper)

		catalogRouter.Route("/books", h.Books.RegisterRoutes)
		catalogRouter.Route("/book", func(books chi.Router) {
			h.Books.RegisterWriteRoutes(books, gatekeeper)
			h.Loans.RegisterRenewRoutes(books, gatekeeper)
		})

		catalogRouter.Route("/authors", h.Authors.RegisterRoutes)
		catalogRouter.Route("/author", func(authors chi.Router) {
			h.Authors.RegisterWriteRoutes(authors, gatekeeper)
		})

		catalogRouter.Route("/genres", h.Genres.RegisterRoutes)
		catalogRouter.Route("/genre", func(genres chi.Router) {
			h.Genres.RegisterWriteRoutes(genres, gatekeeper)
		})

		catalogRouter.Route("/languages", h.Languages.RegisterRoutes)
		catalogRouter.Route("/language", func(languages chi.Router) {
			h.Languages.RegisterWriteRoutes(languages, gatekeeper)
		})

		catalogRouter.Route("/bookinstance", func(instances chi.Router) {
			h.Loans.RegisterWriteRoutes(instances, gatekeeper)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
