package handlers

import (
	"pasar/internal/middleware"
	"pasar/internal/models"
	"pasar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", middleware.RequireRoles(models.RoleSeller), h.HandleCreateProduct)
	productRoutes.Put("/:id", middleware.RequireRoles(models.RoleSeller), h.HandleUpdateProduct)
	productRoutes.Delete("/:id", middleware.RequireRoles(models.RoleSeller), h.HandleDeleteProduct)
	productRoutes.Post("/:id/review",
		middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin), h.HandleReviewProduct)
}

// HandleListProducts lists products visible to the caller. A seller_id
// query narrows the listing to one catalog.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(
		c.Query("seller_id"),
		middleware.ActorID(c),
		middleware.ActorRole(c).IsOperator(),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// HandleGetProduct retrieves a single product, hiding unapproved listings
// from everyone but their owner and platform operators.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(
		c.Params("id"),
		middleware.ActorID(c),
		middleware.ActorRole(c).IsOperator(),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a listing owned by the authenticated seller.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input services.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationErrors(c, err)
	}

	product, err := h.service.CreateProduct(middleware.ActorID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies seller edits to an owned listing.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var changes models.Product
	if err := c.BodyParser(&changes); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.service.UpdateProduct(middleware.ActorID(c), c.Params("id"), &changes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct soft-deletes an owned listing.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(middleware.ActorID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}

// ReviewProductRequest is the request body for the operator review
// decision.
type ReviewProductRequest struct {
	Status models.ProductStatus `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

// HandleReviewProduct approves or rejects a listing; operator only.
func (h *ProductHandler) HandleReviewProduct(c *fiber.Ctx) error {
	var req ReviewProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	product, err := h.service.ReviewProduct(c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}
