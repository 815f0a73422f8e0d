package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/ntdm/animal-hospital/internal/core/domain"
	"github.com/ntdm/animal-hospital/internal/core/ports"
)

// Context keys set by Session.
const (
	ContextUser   = "user"
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// Session resolves the session cookie to the current user and injects it
// into the context. A missing, unknown or expired session yields
// domain.ErrUnauthenticated and the stale cookie is cleared.
func Session(auth ports.AuthService, cookie SessionCookie) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := cookie.Read(c)
			if sessionID == "" {
				return domain.ErrUnauthenticated
			}

			user, err := auth.CurrentUser(c.Request().Context(), sessionID)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					cookie.Clear(c)
				}
				return err
			}

			c.Set(ContextUser, user)
			c.Set(ContextUserID, user.ID)
			c.Set(ContextRole, user.Role)

			return next(c)
		}
	}
}
