package middleware

import (
	"context"
	"net/http"

	"github.com/gdp/rpg-companion/internal/domain"
	"github.com/gdp/rpg-companion/internal/service"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionCookieName is the cookie carrying the signed session id.
const SessionCookieName = "session"

// Session resolves the session cookie, when present and valid, into a
// domain.Session on the request context. It never rejects: anonymous
// requests pass through and per-route checks decide what they may do.
func Session(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, err := authService.GetSession(r.Context(), cookie.Value)
			if err != nil {
				// Bad signature, unknown id or expired row: treat as
				// anonymous rather than failing the request.
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession returns the authenticated session, or nil for anonymous.
func GetSession(ctx context.Context) *domain.Session {
	session, _ := ctx.Value(sessionKey).(*domain.Session)
	return session
}

// RequireMaster rejects anything but a master session with 403.
func RequireMaster(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := GetSession(r.Context())
		if !session.IsMaster() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":"access denied: masters only"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
