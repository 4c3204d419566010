package middleware

// identity.go defines helper functions shared across middleware files.
// It provides a userID extraction function used by the cache and rate
// limit key builders. When no user is authenticated, "guest" is
// returned so anonymous traffic shares one bucket per route.

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// userID extracts a user identifier from the request context. JWTAuth
// stores the sub claim under "user_id"; the raw token fallback covers
// handlers mounted with echo's own jwt middleware. Returns "guest"
// when no user is authenticated.
func userID(c echo.Context) string {
	if v := c.Get("user_id"); v != nil {
		return fmt.Sprintf("%v", v)
	}
	if tok, ok := c.Get("user").(*jwt.Token); ok {
		if cl, ok := tok.Claims.(jwt.MapClaims); ok {
			if v, ok := cl["sub"]; ok && v != nil {
				return fmt.Sprintf("%v", v)
			}
		}
	}
	return "guest"
}
