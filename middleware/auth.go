package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/prophesy-fun/prophesy_api/shared"
)

// TokenVerifier turns a bearer access token into the caller's user id.
type TokenVerifier interface {
	VerifyAccessToken(token string) (string, error)
}

// ResolveIdentity attaches the caller's user id when a valid bearer token is
// present. Requests without one, or with a bad one, continue as anonymous.
func ResolveIdentity(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok || verifier == nil {
			return c.Next()
		}

		userID, err := verifier.VerifyAccessToken(token)
		if err != nil || userID == "" {
			logrus.WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err,
			}).Debug("Ignoring invalid access token")
			return c.Next()
		}

		c.Locals(shared.UserID, userID)
		return c.Next()
	}
}

// RequiredAuth rejects callers that did not present a valid access token.
func RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if UserIDFrom(c) == "" {
			return shared.NewUnauthorizedError(nil, "Unauthorized")
		}
		return c.Next()
	}
}

func UserIDFrom(c *fiber.Ctx) string {
	userID, _ := c.Locals(shared.UserID).(string)
	return userID
}

// IdentityFrom returns the rate limit identity for the request.
func IdentityFrom(c *fiber.Ctx) string {
	if userID := UserIDFrom(c); userID != "" {
		return userID
	}
	return shared.AnonymousIdentity
}

func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
