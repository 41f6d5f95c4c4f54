// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/constants"
	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// Defining it here decouples the middleware from [sec.TokenService] so tests
// can inject a stub.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, parse and verify the JWT via [TokenVerifier].
//  4. Inject [*sec.AuthClaims] into the request context for downstream use.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(token)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// Gatekeeper enforces [sec.Requirement] for a route.
//
// Anonymous callers of a gated action are sent to the login entry point with
// the original destination in the "next" parameter. Authenticated callers that
// lack the permission get a 403 and are never redirected.
type Gatekeeper struct {
	LoginURL string
}

// NewGatekeeper creates a Gatekeeper redirecting to loginURL.
func NewGatekeeper(loginURL string) *Gatekeeper {
	return &Gatekeeper{LoginURL: loginURL}
}

// Require builds the middleware for action.
//
// Must be registered in the router AFTER [Authenticate].
func (g *Gatekeeper) Require(action sec.Action) func(http.Handler) http.Handler {
	gate := sec.Requirement(action)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if gate.Authenticated && claims == nil {
				respond.Found(writer, request, g.LoginRedirect(request.URL.RequestURI()))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if gate.Permission != "" && !claims.Has(gate.Permission) {
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "permission_denied",
					slog.String("action", string(action)),
					slog.String("permission", string(gate.Permission)),
				)
				respond.Error(writer, request, apperr.Forbidden("You do not have permission to perform this action"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// LoginRedirect returns the login URL carrying destination as "next".
// Slashes are left literal so the parameter reads like a path.
func (g *Gatekeeper) LoginRedirect(destination string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(destination), "%2F", "/")

	separator := "?"
	if strings.Contains(g.LoginURL, "?") {
		separator = "&"
	}
	return g.LoginURL + separator + constants.LoginRedirectParam + "=" + escaped
}
