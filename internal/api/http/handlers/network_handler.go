package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/service"
)

// NetworkHandler serves the network-configuration panel.
type NetworkHandler struct {
	service *service.NetworkService
}

// NewNetworkHandler constructs handler.
func NewNetworkHandler(networkService *service.NetworkService) *NetworkHandler {
	return &NetworkHandler{service: networkService}
}

// ListProfiles GET /network/profiles.
func (h *NetworkHandler) ListProfiles(c *fiber.Ctx) error {
	profiles, err := h.service.Profiles(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": profiles})
}

// GetProfile GET /network/profiles/:id.
func (h *NetworkHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.service.Profile(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": profile})
}
