package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/service"
)

// ChannelsHandler serves the data-channel panel.
type ChannelsHandler struct {
	service *service.ChannelService
}

// NewChannelsHandler constructs handler.
func NewChannelsHandler(channelService *service.ChannelService) *ChannelsHandler {
	return &ChannelsHandler{service: channelService}
}

// ListChannels GET /channels.
func (h *ChannelsHandler) ListChannels(c *fiber.Ctx) error {
	channels, err := h.service.Channels(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": channels})
}
