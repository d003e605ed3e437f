package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/service"
	apperrors "github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/pkg/util/errorutil"
)

// ComplianceHandler serves the compliance panel.
type ComplianceHandler struct {
	service *service.ComplianceService
}

// NewComplianceHandler constructs handler.
func NewComplianceHandler(complianceService *service.ComplianceService) *ComplianceHandler {
	return &ComplianceHandler{service: complianceService}
}

// ListChecks GET /compliance/checks.
func (h *ComplianceHandler) ListChecks(c *fiber.Ctx) error {
	checks, err := h.service.Checks(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": checks})
}

// Summary GET /compliance/summary.
func (h *ComplianceHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}

// AcknowledgeCheck POST /compliance/checks/:id/acknowledge.
func (h *ComplianceHandler) AcknowledgeCheck(c *fiber.Ctx) error {
	checkID := c.Params("id")
	if checkID == "" {
		return apperrors.NewValidationError("check id required", nil)
	}
	check, err := h.service.Acknowledge(c.UserContext(), checkID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": check})
}
