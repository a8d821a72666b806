package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSessionAssignsAndReusesID(t *testing.T) {
	e := echo.New()
	var seen string
	h := EnsureSession()(func(c echo.Context) error {
		seen = SessionID(c)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	require.NotEmpty(t, seen)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "booking_session", cookies[0].Name)
	assert.Equal(t, seen, cookies[0].Value)
	// Session cookie: no Max-Age, the browser drops it with the browsing
	// session, and with it the booking intent's reachability.
	assert.Equal(t, 0, cookies[0].MaxAge)

	// A request carrying the cookie keeps the same id and gets no new one.
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(cookies[0])
	rec2 := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req2, rec2)))
	assert.Equal(t, cookies[0].Value, seen)
	assert.Empty(t, rec2.Result().Cookies())
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestOptionalAuth(t *testing.T) {
	const secret = "test-secret"
	e := echo.New()
	var authed bool
	var user string
	h := OptionalAuth(secret)(func(c echo.Context) error {
		authed = IsAuthenticated(c)
		user, _ = c.Get(UserKey).(string)
		return c.NoContent(http.StatusOK)
	})

	run := func(authorization string) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		rec := httptest.NewRecorder()
		user = ""
		require.NoError(t, h(e.NewContext(req, rec)))
	}

	// No header: anonymous, never rejected.
	run("")
	assert.False(t, authed)

	// Valid token: authenticated with the subject exposed.
	token := signToken(t, secret, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	run("Bearer " + token)
	assert.True(t, authed)
	assert.Equal(t, "u1", user)

	// Wrong secret: treated as anonymous, not an error.
	run("Bearer " + signToken(t, "other-secret", jwt.MapClaims{"sub": "u1"}))
	assert.False(t, authed)

	// Expired token: anonymous.
	run("Bearer " + signToken(t, secret, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}))
	assert.False(t, authed)
}
