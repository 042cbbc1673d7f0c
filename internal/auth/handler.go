package auth

import (
	"strings"

	"kasir-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login operator warung. Hanya ada satu akun, kredensialnya dari env
// (ADMIN_USERNAME + ADMIN_PASSWORD_HASH bcrypt).
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		body.Username = strings.TrimSpace(body.Username)

		if body.Username != cfg.AdminUsername {
			return fiber.NewError(fiber.StatusUnauthorized, "Username atau password salah")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Username atau password salah")
		}

		token, err := GenerateToken(cfg.JWTSecret, body.Username)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token tidak bisa dibuat")
		}

		return c.JSON(fiber.Map{
			"token":    token,
			"username": body.Username,
		})
	}
}

func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, ok := c.Locals(CtxUsernameKey).(string)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Informasi user tidak ditemukan")
		}
		return c.JSON(fiber.Map{"username": username})
	}
}
