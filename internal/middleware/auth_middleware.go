package middleware

import (
	"strings"

	"go-retail-sales/internal/repository"
	"go-retail-sales/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// bearerToken extracts the token from "Authorization: Bearer <token>".
// On failure the second value is the message to send back.
func bearerToken(c *fiber.Ctx) (string, string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", "Missing authorization token"
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", "Invalid authorization format. Use: Bearer <token>"
	}
	return parts[1], ""
}

func setClaims(c *fiber.Ctx, claims *jwt.Claims, token string) {
	c.Locals("user_id", claims.UserID.String())
	c.Locals("user_email", claims.Email)
	c.Locals("user_name", claims.Name)
	c.Locals("token", token)
}

// RequireAuth validates the JWT and the user's current token version, then
// sets the user info in context for downstream handlers
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, problem := bearerToken(c)
		if problem != "" {
			return c.Status(401).JSON(fiber.Map{"error": problem})
		}

		claims, err := jwt.ValidateToken(tokenString)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}

		if !user.IsActive {
			return c.Status(401).JSON(fiber.Map{"error": "User account is inactive"})
		}

		if user.TokenVersion != claims.TokenVersion {
			return c.Status(401).JSON(fiber.Map{"error": "Session expired (logged in on another device)"})
		}

		setClaims(c, claims, tokenString)
		return c.Next()
	}
}

// RequireSession validates the JWT signature and expiry only. The page server
// has no database; the API it forwards the token to does the strict check.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, problem := bearerToken(c)
		if problem != "" {
			return c.Status(401).JSON(fiber.Map{"error": problem})
		}

		claims, err := jwt.ValidateToken(tokenString)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		setClaims(c, claims, tokenString)
		return c.Next()
	}
}

// RequireOwner rejects requests whose :param does not name the authenticated user
func RequireOwner(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("user_id").(string)
		if !ok {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}

		if !strings.EqualFold(c.Params(param), userID) {
			return c.Status(403).JSON(fiber.Map{"error": "Forbidden: records belong to another user"})
		}
		return c.Next()
	}
}
