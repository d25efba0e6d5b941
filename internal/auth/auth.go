// Package auth carries request authentication for the HTTP surface: a signed
// session token in a cookie (or bearer header), parsed into the request
// context by Middleware and enforced by RequireAuth.
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Harshverma1208/smartech/internal/httpx"
	"github.com/Harshverma1208/smartech/internal/session"
)

type ctxKey string

const (
	sessionCookieName = "session"
	userCtxKey        = ctxKey("user")
)

// CreateSession sets the session cookie holding the signed token.
func CreateSession(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(ttl),
	})
}

// ClearSession deletes the session cookie.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name: sessionCookieName, Value: "", Path: "/",
		Expires: time.Unix(0, 0), HttpOnly: true, SameSite: http.SameSiteLaxMode,
	})
}

// tokenFrom extracts the session token from the cookie or, failing that, an
// Authorization: Bearer header.
func tokenFrom(r *http.Request) string {
	if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

func WithUser(ctx context.Context, u *session.User) context.Context {
	return context.WithValue(ctx, userCtxKey, u)
}

func UserFromContext(ctx context.Context) (*session.User, bool) {
	u, ok := ctx.Value(userCtxKey).(*session.User)
	return u, ok && u != nil
}

// Middleware attaches the authenticated user to the request context when a
// valid token is present.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := tokenFrom(r); token != "" {
				if u, err := session.ParseToken(secret, token); err == nil {
					r = r.WithContext(WithUser(r.Context(), u))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests without an authenticated user.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", "session invalid or expired")
			return
		}
		next.ServeHTTP(w, r)
	})
}
