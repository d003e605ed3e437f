package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/service"
)

// ValidatorsHandler serves the validator dashboard panel.
type ValidatorsHandler struct {
	service *service.ValidatorService
}

// NewValidatorsHandler constructs handler.
func NewValidatorsHandler(validatorService *service.ValidatorService) *ValidatorsHandler {
	return &ValidatorsHandler{service: validatorService}
}

// ListValidators GET /validators.
func (h *ValidatorsHandler) ListValidators(c *fiber.Ctx) error {
	validators, err := h.service.Validators(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": validators})
}

// GetValidator GET /validators/:id.
func (h *ValidatorsHandler) GetValidator(c *fiber.Ctx) error {
	validator, err := h.service.Validator(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": validator})
}

// NetworkSummary GET /validators/summary.
func (h *ValidatorsHandler) NetworkSummary(c *fiber.Ctx) error {
	summary, err := h.service.NetworkSummary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}
