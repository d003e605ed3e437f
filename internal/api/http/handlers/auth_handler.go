package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/api/dto"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/service"
	apperrors "github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/pkg/util/errorutil"
)

// AuthHandler exposes sign-in, sign-out, and session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	cred, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	subject := cred.Subject
	resp := dto.SessionResponse{Authenticated: true, Subject: &subject}
	if !cred.ExpiresAt.IsZero() {
		expires := cred.ExpiresAt
		resp.ExpiresAt = &expires
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": resp})
}

// Logout handles POST /api/v1/auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"signed_out": true, "at": time.Now().UTC()}})
}

// Profile handles GET /api/v1/auth/profile.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	subject, err := h.auth.Profile(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": subject})
}

// Session handles GET /api/v1/auth/session.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	status := h.auth.Status(c.UserContext())
	return c.JSON(fiber.Map{"data": dto.SessionResponse{
		Authenticated: status.Authenticated,
		Subject:       status.Subject,
		ExpiresAt:     status.ExpiresAt,
	}})
}
