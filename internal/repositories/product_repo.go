package repositories

import (
	"pasar/internal/models"
)

// ProductRepository defines the interface for product data access.
// Soft-deleted products are invisible to every method except
// GetByIDIncludingDeleted and GetByIDForUpdate.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	// List filters by seller and/or status; an empty sellerID and no
	// statuses mean no filter on that axis.
	List(sellerID string, statuses ...models.ProductStatus) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	// GetByIDIncludingDeleted also resolves soft-deleted products, so
	// callers can distinguish "never existed" from "already deleted".
	GetByIDIncludingDeleted(id string) (*models.Product, error)
	// GetByIDForUpdate is the load half of a read-modify-write. It resolves
	// soft-deleted products like GetByIDIncludingDeleted and, inside a
	// transaction, holds the row against concurrent writers until commit.
	GetByIDForUpdate(id string) (*models.Product, error)
	// GetByIDs resolves a set of products in one read. Missing identifiers
	// are simply absent from the result; callers check cardinality.
	GetByIDs(ids []string) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	// DecrementStock atomically subtracts quantity with a floor-at-zero
	// guard. It fails with a CONFLICT error when the remaining stock is
	// insufficient, leaving the row untouched.
	DecrementStock(id string, quantity int) error
	// ListLowStock returns products whose quantity is at or below their own
	// low-stock threshold. The predicate is evaluated against current
	// values on every call, never stored. Empty sellerID returns all
	// sellers' products.
	ListLowStock(sellerID string) ([]models.Product, error)
	Delete(id string) error
}
