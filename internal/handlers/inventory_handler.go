package handlers

import (
	"pasar/internal/middleware"
	"pasar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// InventoryHandler handles HTTP requests for stock management.
type InventoryHandler struct {
	service  *services.InventoryService
	validate *validator.Validate
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(service *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the inventory routes with the Fiber app.
func (h *InventoryHandler) RegisterRoutes(router fiber.Router) {
	inventoryRoutes := router.Group("/inventory")
	inventoryRoutes.Get("/low-stock", h.HandleListLowStock)
	inventoryRoutes.Post("/:id/adjustment", h.HandleAdjustStock)
	inventoryRoutes.Put("/:id/stock", h.HandleSetStock)
	inventoryRoutes.Put("/:id/low-stock-threshold", h.HandleUpdateLowStockThreshold)
}

// AdjustStockRequest is the request body for a relative stock adjustment.
type AdjustStockRequest struct {
	Adjustment int `json:"adjustment" validate:"required"`
}

// HandleAdjustStock applies a signed adjustment to a product's stock.
func (h *InventoryHandler) HandleAdjustStock(c *fiber.Ctx) error {
	var req AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	product, err := h.service.AdjustStock(middleware.ActorID(c), c.Params("id"), req.Adjustment)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// SetStockRequest is the request body for an absolute stock write.
type SetStockRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

// HandleSetStock overwrites a product's stock level.
func (h *InventoryHandler) HandleSetStock(c *fiber.Ctx) error {
	var req SetStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	product, err := h.service.SetStock(middleware.ActorID(c), c.Params("id"), *req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// UpdateThresholdRequest is the request body for a threshold update.
type UpdateThresholdRequest struct {
	Threshold *int `json:"threshold" validate:"required,gte=0"`
}

// HandleUpdateLowStockThreshold updates a product's low-stock threshold.
func (h *InventoryHandler) HandleUpdateLowStockThreshold(c *fiber.Ctx) error {
	var req UpdateThresholdRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	product, err := h.service.UpdateLowStockThreshold(middleware.ActorID(c), c.Params("id"), *req.Threshold)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleListLowStock returns products at or below their threshold, scoped
// to the caller's catalog unless the caller is a platform operator.
func (h *InventoryHandler) HandleListLowStock(c *fiber.Ctx) error {
	products, err := h.service.ListLowStock(middleware.ActorID(c), middleware.ActorRole(c).IsOperator())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}
