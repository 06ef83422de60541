package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/algo-tracker/internal/api/dto"
	"github.com/spec-kit/algo-tracker/internal/domain"
	"github.com/spec-kit/algo-tracker/internal/service"
	apperrors "github.com/spec-kit/algo-tracker/pkg/util"
)

// AuthHandler exposes registration, login and token endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, token, exp, err := h.auth.Register(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": user.PublicView(),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": user.PublicView(),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// ValidateToken handles GET /api/auth/validate-token. The token is read from
// the Authorization header, the request body, or the query string, in that
// order.
func (h *AuthHandler) ValidateToken(c *fiber.Ctx) error {
	token := extractToken(c)
	if token == "" {
		return apperrors.NewValidationError("token is required", nil)
	}

	result := h.auth.TokenStatus(token)
	switch result.Status {
	case domain.TokenStatusValid:
		return c.JSON(fiber.Map{
			"status":               result.Status,
			"message":              "token is valid",
			"seconds_until_expiry": result.SecondsRemaining,
			"user": dto.TokenIdentity{
				UserID: result.Claims.UserID,
				Email:  result.Claims.Email,
			},
		})
	case domain.TokenStatusExpired:
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"status":  result.Status,
			"message": "token has expired",
		})
	default:
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"status":  result.Status,
			"message": "invalid token",
		})
	}
}

// ForgotPassword handles POST /api/auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	message, err := h.auth.ForgotPassword(c.Context(), req.Email)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": message})
}

func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	var body dto.ValidateTokenRequest
	if err := c.BodyParser(&body); err == nil && body.Token != "" {
		return body.Token
	}

	return c.Query("token")
}
