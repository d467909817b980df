package services

import (
	"pasar/internal/apperrors"
	"pasar/internal/models"
	"pasar/internal/repositories"

	"go.uber.org/zap"
)

// ProductService handles catalog logic: listing creation, updates, soft
// deletion, review and visibility.
type ProductService struct {
	store  repositories.Store
	logger *zap.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(store repositories.Store, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		store:  store,
		logger: logger,
	}
}

// CreateProductInput carries the seller-supplied fields for a new listing.
// LowStockThreshold is a pointer so an explicit zero is distinguishable
// from an omitted value, which falls back to the default.
type CreateProductInput struct {
	Name              string               `json:"name" validate:"required,min=3,max=100"`
	Description       string               `json:"description" validate:"omitempty,max=500"`
	Price             float64              `json:"price" validate:"gte=0"`
	Quantity          int                  `json:"quantity" validate:"gte=0"`
	LowStockThreshold *int                 `json:"low_stock_threshold" validate:"omitempty,gte=0"`
	Status            models.ProductStatus `json:"status" validate:"omitempty,oneof=DRAFT PENDING_REVIEW"`
}

// CreateProduct creates a listing owned by the given seller. Sellers may
// only create listings as DRAFT or PENDING_REVIEW; approval is the
// operator's call.
func (s *ProductService) CreateProduct(sellerID string, in CreateProductInput) (*models.Product, error) {
	if sellerID == "" {
		return nil, apperrors.Validation("seller ID is required")
	}
	status := in.Status
	if status == "" {
		status = models.ProductStatusDraft
	}
	if status != models.ProductStatusDraft && status != models.ProductStatusPendingReview {
		return nil, apperrors.Validation("new products may only be DRAFT or PENDING_REVIEW")
	}
	threshold := models.DefaultLowStockThreshold
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, apperrors.Validation("threshold must be non-negative")
		}
		threshold = *in.LowStockThreshold
	}

	product := &models.Product{
		SellerID:          sellerID,
		Name:              in.Name,
		Description:       in.Description,
		Price:             in.Price,
		Quantity:          in.Quantity,
		LowStockThreshold: threshold,
		Status:            status,
	}
	if err := s.store.Products().Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct applies seller edits to an owned, non-deleted listing.
// Sellers may move status only between DRAFT and PENDING_REVIEW.
func (s *ProductService) UpdateProduct(sellerID, productID string, changes *models.Product) (*models.Product, error) {
	product, err := s.store.Products().GetByIDIncludingDeleted(productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != sellerID {
		return nil, apperrors.Forbidden("not allowed to update product %s", productID)
	}
	if product.DeletedAt.Valid {
		return nil, apperrors.Validation("product %s is deleted", productID)
	}

	if changes.Name != "" {
		product.Name = changes.Name
	}
	if changes.Description != "" {
		product.Description = changes.Description
	}
	if changes.Price > 0 {
		product.Price = changes.Price
	}
	if changes.Status != "" {
		if changes.Status != models.ProductStatusDraft && changes.Status != models.ProductStatusPendingReview {
			return nil, apperrors.Validation("sellers may only set status to DRAFT or PENDING_REVIEW")
		}
		product.Status = changes.Status
	}

	if err := s.store.Products().Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct soft-deletes an owned listing.
func (s *ProductService) DeleteProduct(sellerID, productID string) error {
	product, err := s.store.Products().GetByID(productID)
	if err != nil {
		return err
	}
	if product.SellerID != sellerID {
		return apperrors.Forbidden("not allowed to delete product %s", productID)
	}
	return s.store.Products().Delete(productID)
}

// ReviewProduct is the operator decision on a PENDING_REVIEW listing:
// APPROVED or REJECTED only.
func (s *ProductService) ReviewProduct(productID string, status models.ProductStatus) (*models.Product, error) {
	if status != models.ProductStatusApproved && status != models.ProductStatusRejected {
		return nil, apperrors.Validation("review status must be APPROVED or REJECTED")
	}
	product, err := s.store.Products().GetByID(productID)
	if err != nil {
		return nil, err
	}
	product.Status = status
	if err := s.store.Products().Update(product); err != nil {
		return nil, err
	}
	s.logger.Info("product reviewed",
		zap.String("product_id", productID),
		zap.String("status", string(status)))
	return product, nil
}

// GetProduct retrieves a single listing. Non-owners without operator rights
// only see APPROVED products; everything else reads as not found, so
// unreviewed and rejected listings stay invisible to the public.
func (s *ProductService) GetProduct(productID, actorID string, isOperator bool) (*models.Product, error) {
	product, err := s.store.Products().GetByID(productID)
	if err != nil {
		return nil, err
	}
	if !isOperator && product.SellerID != actorID &&
		product.Status != models.ProductStatusApproved && product.Status != models.ProductStatusOutOfStock {
		return nil, apperrors.NotFound("product with ID %s not found", productID)
	}
	return product, nil
}

// ListProducts retrieves listings visible to the actor: their own catalog
// when sellerID matches or the actor is an operator, otherwise only
// APPROVED (and temporarily OUT_OF_STOCK) listings.
func (s *ProductService) ListProducts(sellerID, actorID string, isOperator bool) ([]models.Product, error) {
	if isOperator || (sellerID != "" && sellerID == actorID) {
		return s.store.Products().List(sellerID)
	}
	return s.store.Products().List(sellerID, models.ProductStatusApproved, models.ProductStatusOutOfStock)
}
