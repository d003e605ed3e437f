package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/service"
)

// AuditHandler exposes the persisted audit trail.
type AuditHandler struct {
	service *service.AuditService
}

// NewAuditHandler constructs handler.
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{service: auditService}
}

// ListEvents GET /audit/events.
func (h *AuditHandler) ListEvents(c *fiber.Ctx) error {
	entries, err := h.service.ListRecent(c.UserContext(), c.QueryInt("limit"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": entries})
}
