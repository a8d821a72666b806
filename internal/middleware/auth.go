package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// AuthenticatedKey is the context key holding whether the request carried
// a valid access token.  UserKey holds the token subject when it did.
const (
	AuthenticatedKey = "authenticated"
	UserKey          = "user_id"
)

// OptionalAuth validates a Bearer access token when one is present and
// records the result in the context.  Unlike a guarding middleware it
// never rejects the request: the booking flow serves anonymous visitors
// too, and the confirm action branches on the outcome — an anonymous
// confirm stores the intent and detours through login instead of
// failing.  The access token is only ever read here, never issued; the
// auth service owns it.
func OptionalAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AuthenticatedKey, false)
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return next(c)
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				// A bad token is treated as anonymous, not as an error.
				return next(c)
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return next(c)
			}
			c.Set(AuthenticatedKey, true)
			if sub, ok := claims["sub"].(string); ok {
				c.Set(UserKey, sub)
			}
			return next(c)
		}
	}
}

// IsAuthenticated reports whether OptionalAuth validated a token on this
// request.
func IsAuthenticated(c echo.Context) bool {
	v, _ := c.Get(AuthenticatedKey).(bool)
	return v
}
