package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/service"
)

// TokenizationHandler serves the token registry panel.
type TokenizationHandler struct {
	service *service.TokenizationService
}

// NewTokenizationHandler constructs handler.
func NewTokenizationHandler(tokenizationService *service.TokenizationService) *TokenizationHandler {
	return &TokenizationHandler{service: tokenizationService}
}

// ListAssets GET /tokenization/assets.
func (h *TokenizationHandler) ListAssets(c *fiber.Ctx) error {
	assets, err := h.service.Assets(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": assets})
}

// GetAsset GET /tokenization/assets/:id.
func (h *TokenizationHandler) GetAsset(c *fiber.Ctx) error {
	asset, err := h.service.Asset(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": asset})
}

// ListIssuances GET /tokenization/assets/:id/issuances.
func (h *TokenizationHandler) ListIssuances(c *fiber.Ctx) error {
	issuances, err := h.service.Issuances(c.UserContext(), c.Params("id"), c.QueryInt("limit"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": issuances})
}
