package middleware // middleware provides shared request processing for handlers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/labstack/echo/v4"
)

// sessionCookie names the booking-session cookie.  It is a session
// cookie (no Max-Age), so the browser drops it when the browsing session
// ends — which is exactly the lifetime a booking intent is allowed to
// have.
const sessionCookie = "booking_session"

// SessionKey is the context key under which the session id is stored.
const SessionKey = "session_id"

// EnsureSession assigns every request a booking session id.  An existing
// cookie is reused; otherwise a fresh random id is generated and set.
// Handlers read the id via SessionID().
func EnsureSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(sessionCookie); err == nil && cookie.Value != "" {
				c.Set(SessionKey, cookie.Value)
				return next(c)
			}
			sid, err := randomHex(16)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create session"})
			}
			c.SetCookie(&http.Cookie{
				Name:     sessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			c.Set(SessionKey, sid)
			return next(c)
		}
	}
}

// SessionID returns the request's booking session id, empty when the
// EnsureSession middleware did not run.
func SessionID(c echo.Context) string {
	if v, ok := c.Get(SessionKey).(string); ok {
		return v
	}
	return ""
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
