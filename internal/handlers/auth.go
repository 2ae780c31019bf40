package handlers

import (
	"strings"
	"time"

	"github.com/carbonledger/carbonledger/internal/config"
	"github.com/carbonledger/carbonledger/internal/models"
	"github.com/carbonledger/carbonledger/internal/services"
	"github.com/carbonledger/carbonledger/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthHandler handles registration, login and session endpoints
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

type registerPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	OrgName  string `json:"org_name"`
}

// Register handles POST /api/auth/register
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var payload registerPayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.BadRequestResponse(c, "invalid payload")
	}
	payload.Email = strings.TrimSpace(strings.ToLower(payload.Email))
	if payload.Email == "" || payload.Password == "" {
		return utils.BadRequestResponse(c, "email and password are required")
	}

	var existing models.User
	if err := h.DB.First(&existing, "email = ?", payload.Email).Error; err == nil {
		return utils.BadRequestResponse(c, "email already registered")
	} else if err != gorm.ErrRecordNotFound {
		return serviceError(c, err)
	}

	hash, err := services.HashPassword(payload.Password)
	if err != nil {
		return serviceError(c, err)
	}

	user := models.User{
		Email:        payload.Email,
		FullName:     payload.FullName,
		PasswordHash: hash,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if orgName := strings.TrimSpace(payload.OrgName); orgName != "" {
			var org models.Organization
			err := tx.First(&org, "name = ?", orgName).Error
			if err == gorm.ErrRecordNotFound {
				org = models.Organization{Name: orgName}
				if err := tx.Create(&org).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}
			user.OrgID = &org.OrgID
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login handles POST /api/auth/login (form body: email, password). On
// success it sets the httponly access_token cookie with a "Bearer " prefix
// and returns the same token as JSON.
// @Summary Log in
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := strings.TrimSpace(strings.ToLower(c.FormValue("email")))
	password := c.FormValue("password")
	if email == "" || password == "" {
		return utils.BadRequestResponse(c, "email and password are required")
	}

	var user models.User
	err := h.DB.First(&user, "email = ?", email).Error
	if err != nil || !services.CheckPassword(user.PasswordHash, password) {
		return utils.UnauthorizedResponse(c, "invalid credentials")
	}

	ttl := time.Duration(h.Cfg.TokenExpireMinutes) * time.Minute
	token, err := services.CreateAccessToken(h.Cfg.JWTSecret, user.UserID, ttl)
	if err != nil {
		return serviceError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "Bearer " + token,
		Path:     "/",
		MaxAge:   int((24 * time.Hour).Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Logout handles POST /api/auth/logout by clearing the session cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"ok": true})
}

// Me handles GET /api/auth/me
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}
