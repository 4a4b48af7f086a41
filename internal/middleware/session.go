// Package middleware holds the session gate: loading the session behind the
// signed cookie and guarding routes that need a logged-in user.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"blogapp/internal/auth"
	apperrors "blogapp/internal/errors"
)

const (
	claimsKey    = "user"
	identityKey  = "identity"
	sessionIDKey = "session_id"
)

// SessionCookie verifies the signed session cookie and stores its claims in
// the context. Missing, tampered or expired cookies leave the request anonymous.
func SessionCookie(signer *auth.CookieSigner) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsKey,
		TokenLookup: "cookie:" + signer.Name(),
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return signer.Parse(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}

// LoadSession resolves the session named by the cookie claims and attaches
// its identity to the context.
func LoadSession(store auth.SessionStore, log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(claimsKey).(*auth.SessionClaims)
			if !ok || claims == nil {
				return next(c)
			}
			// The id is kept even when the lookup fails so logout can still
			// reach the store.
			c.Set(sessionIDKey, claims.ID)

			sess, err := store.Get(c.Request().Context(), claims.ID)
			if err != nil {
				if !errors.Is(err, apperrors.ErrNoSession) {
					log.WarnContext(c.Request().Context(), "session lookup failed", "err", err)
				}
				return next(c)
			}
			Attach(c, sess.Identity, sess.ID)
			return next(c)
		}
	}
}

// RequireSession redirects anonymous requests to failurePath without running
// the handler.
func RequireSession(failurePath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := CurrentIdentity(c); !ok {
				return c.Redirect(http.StatusFound, failurePath)
			}
			return next(c)
		}
	}
}

// Attach marks the request as made by identity within the given session.
func Attach(c echo.Context, identity auth.Identity, sessionID string) {
	c.Set(identityKey, identity)
	c.Set(sessionIDKey, sessionID)
}

// CurrentIdentity returns the identity attached by LoadSession.
func CurrentIdentity(c echo.Context) (auth.Identity, bool) {
	id, ok := c.Get(identityKey).(auth.Identity)
	return id, ok
}

// CurrentSessionID returns the session id from a verified cookie, or "".
func CurrentSessionID(c echo.Context) string {
	id, _ := c.Get(sessionIDKey).(string)
	return id
}
