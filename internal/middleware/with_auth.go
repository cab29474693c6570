package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/appdotbuilder/canossa-info-system/internal/auth"
)

// AdminGate guards administrative procedures. When enforce is false the
// procedures stay open and a valid token, if any, only attributes the caller.
func AdminGate(enforce bool, parser TokenParser) []fiber.Handler {
	if !enforce {
		return []fiber.Handler{OptionalJWT(parser)}
	}
	return []fiber.Handler{JWTProtected(parser), RequireRole(auth.RoleAdmin)}
}
