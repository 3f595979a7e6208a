// Package middleware holds the request-level plumbing shared by every
// protected route: the authorization gate, the top-level error handler,
// request logging and HTTP metrics.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mile-mijatovic/address-book/internal/apperror"
)

//go:generate mockgen -destination=../mocks/mock_token_verifier.go -package=mocks github.com/mile-mijatovic/address-book/internal/middleware TokenVerifier

const principalKey = "principal"

// TokenVerifier checks a session token and extracts the user id bound
// to it.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Principal is the authenticated identity resolved from the request's
// credentials. It lives for exactly one request.
type Principal struct {
	UserID string
}

// RequireAuth resolves the session cookie (or a bearer Authorization
// header) into a Principal. Missing, malformed, expired and tampered
// tokens are all rejected with the same unauthorized error.
func RequireAuth(verifier TokenVerifier, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			token = bearerToken(c.Get(fiber.HeaderAuthorization))
		}
		if token == "" {
			return apperror.ErrUnauthorized
		}

		userID, err := verifier.Verify(token)
		if err != nil || userID == "" {
			return apperror.ErrUnauthorized
		}

		c.Locals(principalKey, Principal{UserID: userID})

		return c.Next()
	}
}

// UserID returns the authenticated user's id, or "" outside a protected
// route.
func UserID(c *fiber.Ctx) string {
	principal, ok := c.Locals(principalKey).(Principal)
	if !ok {
		return ""
	}
	return principal.UserID
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
