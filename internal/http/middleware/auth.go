package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"audiosummarizer/internal/auth"
)

// UserIDLocalKey is the key used to store the authenticated user id in
// Fiber's context locals.
const UserIDLocalKey = "user_id"

// Authenticate requires a valid bearer token on every request it guards.
//
// Behavior:
// - Extracts the token from the Authorization: Bearer header.
// - Verifies it against the identity provider.
// - Stores the resulting user id in context locals under UserIDLocalKey.
// - Missing or rejected credentials end the request with 401; a provider
//   outage ends it with 502 so clients can tell the two apart.
func Authenticate(verifier auth.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		userID, err := verifier.Verify(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
			}
			return fiber.NewError(fiber.StatusBadGateway, "identity provider unavailable")
		}

		c.Locals(UserIDLocalKey, userID)
		return c.Next()
	}
}

// UserIDFromCtx extracts the authenticated user id stored by Authenticate.
func UserIDFromCtx(c *fiber.Ctx) string {
	if v, ok := c.Locals(UserIDLocalKey).(string); ok {
		return v
	}
	return ""
}
