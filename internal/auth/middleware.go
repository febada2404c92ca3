package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// LocalsUserID is the fiber.Ctx locals key holding the authenticated user ID.
const LocalsUserID = "userID"

// NewMiddleware returns a Fiber middleware validating Bearer JWTs. On
// success the user ID lands in c.Locals(LocalsUserID).
func NewMiddleware(tokens *TokenGenerator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing Authorization header",
			})
		}

		tokenStr := strings.TrimSpace(authHeader)
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenStr = strings.TrimSpace(parts[1])
		}
		if tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "empty token",
			})
		}

		userID, err := tokens.Parse(tokenStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		c.Locals(LocalsUserID, userID)
		return c.Next()
	}
}

// UserID extracts the authenticated user ID set by the middleware.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(LocalsUserID).(uuid.UUID)
	return id, ok
}
