package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// LocalsClaimsKey is where RequireAdmin stores the validated claims.
const LocalsClaimsKey = "adminClaims"

// HeaderAPIKey is the header carrying the integration API key.
const HeaderAPIKey = "X-API-Key"

// RequireAdmin guards admin routes with the session cookie.
func RequireAdmin(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(CookieName)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication required",
			})
		}

		claims, err := ValidateToken(secret, token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired session",
			})
		}

		c.Locals(LocalsClaimsKey, claims)

		return c.Next()
	}
}

// RequireAPIKey guards integration routes with a shared API key. The expected
// key is resolved per request so a settings change applies without restart.
func RequireAPIKey(resolve func() string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		expected := resolve()
		provided := c.Get(HeaderAPIKey)

		if expected == "" || provided == "" ||
			subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "invalid API key",
			})
		}

		return c.Next()
	}
}
