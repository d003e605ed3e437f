package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/service"
	apperrors "github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/pkg/util/errorutil"
)

// ExplorerHandler serves the block and transaction explorer panel.
type ExplorerHandler struct {
	service *service.ExplorerService
}

// NewExplorerHandler constructs handler.
func NewExplorerHandler(explorerService *service.ExplorerService) *ExplorerHandler {
	return &ExplorerHandler{service: explorerService}
}

// ListBlocks GET /explorer/blocks.
func (h *ExplorerHandler) ListBlocks(c *fiber.Ctx) error {
	blocks, err := h.service.LatestBlocks(c.UserContext(), c.QueryInt("limit"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": blocks})
}

// GetBlock GET /explorer/blocks/:height.
func (h *ExplorerHandler) GetBlock(c *fiber.Ctx) error {
	height, err := strconv.ParseUint(c.Params("height"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("height must be a non-negative integer", nil)
	}
	block, err := h.service.BlockByHeight(c.UserContext(), height)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": block})
}

// GetBlockByHash GET /explorer/blocks/hash/:hash.
func (h *ExplorerHandler) GetBlockByHash(c *fiber.Ctx) error {
	block, err := h.service.BlockByHash(c.UserContext(), c.Params("hash"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": block})
}

// ListBlockTransactions GET /explorer/blocks/:height/transactions.
func (h *ExplorerHandler) ListBlockTransactions(c *fiber.Ctx) error {
	height, err := strconv.ParseUint(c.Params("height"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("height must be a non-negative integer", nil)
	}
	txs, err := h.service.BlockTransactions(c.UserContext(), height)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": txs})
}

// Search GET /explorer/search?q=.
func (h *ExplorerHandler) Search(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return apperrors.NewValidationError("q is required", nil)
	}
	results, err := h.service.Search(c.UserContext(), query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": results})
}

// ListTransactions GET /explorer/transactions.
func (h *ExplorerHandler) ListTransactions(c *fiber.Ctx) error {
	txs, err := h.service.RecentTransactions(c.UserContext(), c.QueryInt("limit"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": txs})
}

// GetTransaction GET /explorer/transactions/:id.
func (h *ExplorerHandler) GetTransaction(c *fiber.Ctx) error {
	tx, err := h.service.TransactionByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tx})
}
