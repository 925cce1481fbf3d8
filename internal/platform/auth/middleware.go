package auth

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserResolver turns a verified token subject into a live account. Resolving
// through the store means a deleted user's outstanding tokens stop working.
type UserResolver interface {
	ResolveUser(ctx context.Context, id uuid.UUID) (*Identity, error)
}

// SessionMiddleware is the request gate: it extracts the session cookie,
// verifies the token's signature and expiry, resolves the user, and attaches
// the identity to the request context. Requests failing any step get 401.
func SessionMiddleware(secret []byte, resolver UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			claims, err := ParseToken(secret, cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			identity, err := resolver.ResolveUser(c.Request().Context(), userID)
			if err != nil || identity == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			ctx := WithIdentity(c.Request().Context(), identity)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
