package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const (
	corsAllowedMethods = "GET,POST,PUT,PATCH,DELETE,OPTIONS"
	corsDefaultHeaders = "Content-Type, Authorization, X-Requested-With"
	corsMaxAge         = "86400"
)

// CORS decorates public routes with cross-origin headers and answers
// preflight requests before any business logic runs.
//
// When a concrete allow-list is configured and the caller's origin is not
// in it, the first configured origin is advertised instead of rejecting
// the request. That mirrors the original deployment and is not a security
// boundary.
func CORS(allowedOrigins []string) fiber.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	wildcard := false
	for _, origin := range allowedOrigins {
		if origin == "*" {
			wildcard = true
			break
		}
	}

	return func(c *fiber.Ctx) error {
		origin := resolveOrigin(c.Get(fiber.HeaderOrigin), allowedOrigins, wildcard)

		c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
		c.Set(fiber.HeaderAccessControlAllowMethods, corsAllowedMethods)
		c.Set(fiber.HeaderAccessControlMaxAge, corsMaxAge)

		// Echo the requested headers on preflight, fall back to the
		// default set otherwise.
		headers := c.Get(fiber.HeaderAccessControlRequestHeaders)
		if headers == "" {
			headers = corsDefaultHeaders
		}
		c.Set(fiber.HeaderAccessControlAllowHeaders, headers)

		if origin != "*" {
			c.Append(fiber.HeaderVary, fiber.HeaderOrigin)
		}

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}

func resolveOrigin(requestOrigin string, allowed []string, wildcard bool) string {
	if wildcard {
		return "*"
	}
	if requestOrigin != "" {
		for _, origin := range allowed {
			if origin == requestOrigin {
				return requestOrigin
			}
		}
	}
	return allowed[0]
}
