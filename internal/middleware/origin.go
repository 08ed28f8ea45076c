package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// OriginPolicy decides which request origins may reach the API.
type OriginPolicy struct {
	allowed map[string]struct{}
}

// NewOriginPolicy creates an OriginPolicy admitting exactly the given origins.
func NewOriginPolicy(origins []string) *OriginPolicy {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return &OriginPolicy{allowed: allowed}
}

// Allow reports whether origin may receive a response. Same-origin requests
// carry no Origin header and are always allowed.
func (p *OriginPolicy) Allow(origin string) bool {
	if origin == "" {
		return true
	}
	_, ok := p.allowed[origin]
	return ok
}

// OriginRequired is a Fiber middleware rejecting requests from origins outside the policy.
func OriginRequired(policy *OriginPolicy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if !policy.Allow(origin) {
			log.Printf("Rejected request from origin %q to %s %s", origin, c.Method(), c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Not allowed by CORS",
			})
		}
		return c.Next()
	}
}
