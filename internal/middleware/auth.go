package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"petsynth/internal/auth"
	"petsynth/internal/types"
)

// UserKey is the context-local key the authenticated identity is stored under.
const UserKey = "user"

// AuthCookieName carries the session token for page-flow compatibility.
const AuthCookieName = "auth_token"

// RequireUser validates the bearer token (or the auth cookie) and attaches
// the identity to the request context. Every failure mode produces the same
// uniform 401; no detail about which check failed is leaked.
func RequireUser(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return types.Unauthorized()
		}

		identity, ok := auth.VerifyToken(secret, token)
		if !ok {
			return types.Unauthorized()
		}

		c.Locals(UserKey, identity)
		return c.Next()
	}
}

// CurrentUser returns the identity attached by RequireUser, or nil.
func CurrentUser(c *fiber.Ctx) *auth.Identity {
	identity, _ := c.Locals(UserKey).(*auth.Identity)
	return identity
}

func extractToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		if token := strings.TrimSpace(header[len("Bearer "):]); token != "" {
			return token
		}
	}
	return c.Cookies(AuthCookieName)
}
