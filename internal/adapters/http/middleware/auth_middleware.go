package middleware

import (
	"errors"
	"strings"

	"campus-assetdesk/internal/config"
	"campus-assetdesk/internal/core/domain"
	"campus-assetdesk/internal/pkg/jwt"
	"campus-assetdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates the session token and stores the caller's
// claims in the request locals. Token validation is stateless; nothing
// is looked up or mutated here.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := c.Cookies("access_token")

		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		role, err := domain.ParseRole(claims.Role)
		if err != nil {
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("username", claims.Username)
		c.Locals("role", role)

		return c.Next()
	}
}

// RequirePermission authorizes the caller's role against the access
// policy for one operation. Runs after AuthMiddleware.
func RequirePermission(op domain.Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(domain.Role)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		if !domain.Can(role, op) {
			return response.Forbidden(c, "You don't have permission to "+op.String())
		}

		return c.Next()
	}
}

// CallerID returns the authenticated user id from locals
func CallerID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// CallerRole returns the authenticated role from locals
func CallerRole(c *fiber.Ctx) domain.Role {
	role, _ := c.Locals("role").(domain.Role)
	return role
}
