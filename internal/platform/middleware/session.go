// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"time"

	"github.com/taibuivan/locallibrary/internal/platform/constants"
	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
	"github.com/taibuivan/locallibrary/pkg/uuid"
)

// Session assigns every browser a session id cookie and exposes it via [ctxutil.GetSessionID].
//
// The id is random (UUID v4) and carries no data; session-scoped values live in
// Redis under that id and expire after ttl. The cookie is refreshed on each
// request so an active session does not lapse.
func Session(ttl time.Duration, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			sessionID := ""
			if cookie, err := request.Cookie(constants.SessionCookieName); err == nil && uuid.Valid(cookie.Value) {
				sessionID = cookie.Value
			}
			if sessionID == "" {
				sessionID = uuid.Random()
			}

			http.SetCookie(writer, &http.Cookie{
				Name:     constants.SessionCookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(ttl.Seconds()),
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := ctxutil.WithSessionID(request.Context(), sessionID)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
