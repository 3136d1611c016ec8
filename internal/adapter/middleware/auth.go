package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"loan-tracker/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

const (
	ctxUser   = "user"
	ctxUserID = "user_id"
	ctxToken  = "session_token"
)

// Sessions resolves a bearer token to its user.
type Sessions interface {
	CurrentUser(ctx context.Context, token string) (*auth.User, error)
}

// UserID returns the authenticated user id, or "" when the request carries no session.
func UserID(c echo.Context) string {
	v, _ := c.Get(ctxUserID).(string)
	return v
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c echo.Context) *auth.User {
	u, _ := c.Get(ctxUser).(*auth.User)
	return u
}

// Token returns the raw bearer token of the authenticated request.
func Token(c echo.Context) string {
	v, _ := c.Get(ctxToken).(string)
	return v
}

func bearer(req *http.Request) string {
	h := strings.TrimSpace(req.Header.Get(echo.HeaderAuthorization))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// RequireSession rejects requests without a valid session with 401.
func RequireSession(s Sessions) echo.MiddlewareFunc {
	return session(s, true)
}

// OptionalSession attaches the user when a valid session is present and
// otherwise lets the request through anonymously.
func OptionalSession(s Sessions) echo.MiddlewareFunc {
	return session(s, false)
}

func session(s Sessions, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearer(c.Request())
			if token == "" {
				if required {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
				}
				return next(c)
			}

			u, err := s.CurrentUser(c.Request().Context(), token)
			switch {
			case err == nil:
				c.Set(ctxUser, u)
				c.Set(ctxUserID, u.UserID)
				c.Set(ctxToken, token)
			case errors.Is(err, auth.ErrInvalidToken):
				if required {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired session"})
				}
			default:
				log.Printf("session lookup failed: %v", err)
				if required {
					return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "session store unavailable"})
				}
			}
			return next(c)
		}
	}
}
