package middleware

import (
	"github.com/gofiber/fiber/v2"

	"petsynth/internal/ratelimit"
	"petsynth/internal/types"
)

// RateLimit guards a route group with a token bucket per (scope,
// identifier). The identifier is the authenticated user id when present,
// else the caller network address, so the middleware should run after
// RequireUser on authenticated routes.
func RateLimit(limiter *ratelimit.Limiter, scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := "ip:" + c.IP()
		if user := CurrentUser(c); user != nil {
			identifier = "user:" + user.ID
		}

		if !limiter.Allow(scope + ":" + identifier) {
			return types.RateLimited()
		}

		return c.Next()
	}
}
