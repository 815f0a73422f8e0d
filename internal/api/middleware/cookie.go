package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SessionCookie describes the cookie that carries the session id.
type SessionCookie struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// Read returns the session id sent by the client, or "".
func (sc SessionCookie) Read(c echo.Context) string {
	cookie, err := c.Cookie(sc.Name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Set issues the session cookie.
func (sc SessionCookie) Set(c echo.Context, sessionID string) {
	c.SetCookie(&http.Cookie{
		Name:     sc.Name,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(sc.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear tells the client to drop the session cookie.
func (sc SessionCookie) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sc.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
