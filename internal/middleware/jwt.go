package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/appdotbuilder/canossa-info-system/internal/auth"
	"github.com/appdotbuilder/canossa-info-system/internal/utils"
)

// Locals keys populated from a verified session token.
const (
	LocalAdminID  = "admin_id"
	LocalRole     = "user_role"
	LocalUsername = "username"
)

// TokenParser verifies administrator session tokens.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// JWTProtected rejects requests without a valid bearer token.
func JWTProtected(parser TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}
		if err := attachClaims(c, parser, tokenString); err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}
		return c.Next()
	}
}

// OptionalJWT attaches the caller's identity when a valid bearer token is
// sent and otherwise lets the request through anonymously.
func OptionalJWT(parser TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenString, ok := bearerToken(c); ok {
			_ = attachClaims(c, parser, tokenString)
		}
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authorization := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	const bearer = "bearer "
	if len(authorization) <= len(bearer) || !strings.EqualFold(authorization[:len(bearer)], bearer) {
		return "", false
	}
	token := strings.TrimSpace(authorization[len(bearer):])
	return token, token != ""
}

func attachClaims(c *fiber.Ctx, parser TokenParser, tokenString string) error {
	if parser == nil {
		return auth.ErrInvalidToken
	}
	claims, err := parser.Parse(tokenString)
	if err != nil {
		return err
	}
	adminID, err := claims.AdminID()
	if err != nil {
		return err
	}

	c.Locals(LocalAdminID, adminID)
	c.Locals(LocalRole, strings.ToLower(strings.TrimSpace(claims.Role)))
	c.Locals(LocalUsername, claims.Username)
	return nil
}

// AdminIDFromContext returns the authenticated administrator id, or zero.
func AdminIDFromContext(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalAdminID).(uint)
	return id
}

// RoleFromContext returns the authenticated role, or an empty string.
func RoleFromContext(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalRole).(string)
	return role
}
