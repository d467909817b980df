package handlers

import (
	"pasar/internal/middleware"
	"pasar/internal/models"
	"pasar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app. Buyers
// place and read their own orders, sellers manage orders addressed to
// them, and platform operators may update any order's status.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	buyerRoutes := router.Group("/orders/my", middleware.RequireRoles(models.RoleBuyer))
	buyerRoutes.Post("/", h.HandlePlaceOrder)
	buyerRoutes.Get("/", h.HandleListBuyerOrders)
	buyerRoutes.Get("/:id", h.HandleGetBuyerOrder)

	sellerRoutes := router.Group("/orders/seller", middleware.RequireRoles(models.RoleSeller))
	sellerRoutes.Get("/", h.HandleListSellerOrders)
	sellerRoutes.Get("/:id", h.HandleGetSellerOrder)
	sellerRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)

	adminRoutes := router.Group("/orders/admin", middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin))
	adminRoutes.Patch("/:id/status", h.HandleUpdateOrderStatusAdmin)
}

// PlaceOrderRequest is the request body for placing an order.
type PlaceOrderRequest struct {
	Items []services.OrderLine `json:"items" validate:"required,min=1,dive"`
}

// HandlePlaceOrder places a new order for the authenticated buyer. A cart
// spanning several sellers yields one order per seller.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	var req PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	orders, err := h.service.PlaceOrder(middleware.ActorID(c), req.Items)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(orders)
}

// HandleListBuyerOrders retrieves the authenticated buyer's orders.
func (h *OrderHandler) HandleListBuyerOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetBuyerOrders(middleware.ActorID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetBuyerOrder retrieves one of the authenticated buyer's orders.
func (h *OrderHandler) HandleGetBuyerOrder(c *fiber.Ctx) error {
	order, err := h.service.GetOrderForBuyer(c.Params("id"), middleware.ActorID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleListSellerOrders retrieves the authenticated seller's orders.
func (h *OrderHandler) HandleListSellerOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetSellerOrders(middleware.ActorID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetSellerOrder retrieves one of the authenticated seller's orders.
func (h *OrderHandler) HandleGetSellerOrder(c *fiber.Ctx) error {
	order, err := h.service.GetOrderForSeller(c.Params("id"), middleware.ActorID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// UpdateOrderStatusRequest is the request body for a status transition.
type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

// HandleUpdateOrderStatus updates the status of an order owned by the
// authenticated seller.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	return h.updateStatus(c, false)
}

// HandleUpdateOrderStatusAdmin updates the status of any order; operator
// only.
func (h *OrderHandler) HandleUpdateOrderStatusAdmin(c *fiber.Ctx) error {
	return h.updateStatus(c, true)
}

func (h *OrderHandler) updateStatus(c *fiber.Ctx, isOperator bool) error {
	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	order, err := h.service.UpdateOrderStatus(middleware.ActorID(c), c.Params("id"), req.Status, isOperator)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}
