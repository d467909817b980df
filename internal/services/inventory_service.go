package services

import (
	"pasar/internal/apperrors"
	"pasar/internal/models"
	"pasar/internal/repositories"

	"go.uber.org/zap"
)

// InventoryService mutates a single product's stock and keeps its quantity,
// availability status and low-stock view mutually consistent. Stock
// mutation is owner-only: platform operators get no bypass here, even
// though they do elsewhere.
type InventoryService struct {
	store  repositories.Store
	logger *zap.Logger
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(store repositories.Store, logger *zap.Logger) *InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryService{
		store:  store,
		logger: logger,
	}
}

// AdjustStock applies a signed, nonzero delta to a product's quantity. The
// read-modify-write runs in one transaction with the row locked, so two
// racing adjustments never lose an update. A delta that would take the
// quantity below zero fails without mutating anything.
func (s *InventoryService) AdjustStock(actorID, productID string, delta int) (*models.Product, error) {
	if delta == 0 {
		return nil, apperrors.Validation("adjustment must be non-zero")
	}

	var updated *models.Product
	err := s.store.InTx(func(tx repositories.Store) error {
		product, err := s.getOwnedProduct(tx, actorID, productID)
		if err != nil {
			return err
		}

		newQuantity := product.Quantity + delta
		if newQuantity < 0 {
			return apperrors.Conflict("insufficient stock for this operation (current: %d, adjustment: %d)",
				product.Quantity, delta)
		}

		updated, err = s.writeQuantity(tx, product, newQuantity)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock adjusted",
		zap.String("product_id", productID),
		zap.Int("delta", delta),
		zap.Int("quantity", updated.Quantity),
		zap.String("status", string(updated.Status)))
	return updated, nil
}

// SetStock overwrites a product's quantity with an absolute value.
func (s *InventoryService) SetStock(actorID, productID string, quantity int) (*models.Product, error) {
	if quantity < 0 {
		return nil, apperrors.Validation("quantity must be non-negative")
	}

	var updated *models.Product
	err := s.store.InTx(func(tx repositories.Store) error {
		product, err := s.getOwnedProduct(tx, actorID, productID)
		if err != nil {
			return err
		}
		updated, err = s.writeQuantity(tx, product, quantity)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock set",
		zap.String("product_id", productID),
		zap.Int("quantity", updated.Quantity),
		zap.String("status", string(updated.Status)))
	return updated, nil
}

// UpdateLowStockThreshold changes the threshold only. It is pure metadata:
// no quantity or status change is triggered, yet low-stock membership moves
// immediately because the predicate is derived on read.
func (s *InventoryService) UpdateLowStockThreshold(actorID, productID string, threshold int) (*models.Product, error) {
	if threshold < 0 {
		return nil, apperrors.Validation("threshold must be non-negative")
	}

	var updated *models.Product
	err := s.store.InTx(func(tx repositories.Store) error {
		product, err := s.getOwnedProduct(tx, actorID, productID)
		if err != nil {
			return err
		}
		product.LowStockThreshold = threshold
		if err := tx.Products().Update(product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ListLowStock returns products whose quantity is at or below their
// threshold. Sellers see their own catalog; platform operators see every
// seller's.
func (s *InventoryService) ListLowStock(actorID string, isOperator bool) ([]models.Product, error) {
	sellerScope := actorID
	if isOperator {
		sellerScope = ""
	}
	return s.store.Products().ListLowStock(sellerScope)
}

// getOwnedProduct loads a product for mutation, verifying it exists, is not
// deleted and belongs to the actor. The row stays locked until the
// surrounding transaction commits.
func (s *InventoryService) getOwnedProduct(tx repositories.Store, actorID, productID string) (*models.Product, error) {
	product, err := tx.Products().GetByIDForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != actorID {
		return nil, apperrors.Forbidden("not allowed to update inventory for product %s", productID)
	}
	if product.DeletedAt.Valid {
		return nil, apperrors.Validation("product %s is deleted", productID)
	}
	return product, nil
}

// writeQuantity stores the new quantity and applies the shared
// status-derivation rule.
func (s *InventoryService) writeQuantity(tx repositories.Store, product *models.Product, quantity int) (*models.Product, error) {
	product.Quantity = quantity
	product.DeriveStatus()
	if err := tx.Products().Update(product); err != nil {
		return nil, err
	}
	return product, nil
}
