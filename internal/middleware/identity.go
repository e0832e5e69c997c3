package middleware

// identity.go holds the user identity lookup shared by the cache and
// rate limit middlewares. Keys must be stable per user, so the JWT
// claim set by JWTAuth is preferred and "anon" is the guest fallback.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID returns a string identity for the request's user. It
// reads the "user_id" context value stored by JWTAuth; JWT numeric
// claims arrive as float64. Unauthenticated requests map to "anon".
func currentUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case int64:
		return strconv.FormatInt(v, 10)
	}
	if v, ok := c.Get("userID").(string); ok && v != "" {
		return v
	}
	return "anon"
}
