package middleware

import (
	"strings"

	"github.com/carbonledger/carbonledger/internal/config"
	"github.com/carbonledger/carbonledger/internal/models"
	"github.com/carbonledger/carbonledger/internal/services"
	"github.com/carbonledger/carbonledger/internal/types"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Protected resolves the current user from the access_token cookie or the
// Authorization header and stores it in c.Locals("user"). The cookie value
// carries a literal "Bearer " prefix, mirroring what /api/auth/login sets.
func Protected(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return &types.APIError{Code: fiber.StatusUnauthorized, Message: "not authenticated"}
		}

		userID, err := services.ParseAccessToken(cfg.JWTSecret, token)
		if err != nil {
			return &types.APIError{Code: fiber.StatusUnauthorized, Message: "could not validate credentials"}
		}

		user, err := services.CurrentUser(db, userID)
		if err != nil {
			return &types.APIError{Code: fiber.StatusUnauthorized, Message: "could not validate credentials"}
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// ProtectedPage is the page-route variant of Protected: an unauthenticated
// browser is redirected to /login instead of receiving a JSON 401.
func ProtectedPage(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Redirect("/login", fiber.StatusFound)
		}

		userID, err := services.ParseAccessToken(cfg.JWTSecret, token)
		if err != nil {
			return c.Redirect("/login", fiber.StatusFound)
		}

		user, err := services.CurrentUser(db, userID)
		if err != nil {
			return c.Redirect("/login", fiber.StatusFound)
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// extractToken prefers the login cookie, then the Authorization header.
func extractToken(c *fiber.Ctx) string {
	if cookie := c.Cookies("access_token"); cookie != "" {
		if len(cookie) > 7 && strings.EqualFold(cookie[:7], "bearer ") {
			return cookie[7:]
		}
		return cookie
	}

	auth := c.Get(fiber.HeaderAuthorization)
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return auth[7:]
	}
	return ""
}

// CurrentUser pulls the resolved user out of the request context. Handlers
// behind Protected can rely on it being present.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}
