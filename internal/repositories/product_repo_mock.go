package repositories

import (
	"sync"
	"time"

	"pasar/internal/apperrors"
	"pasar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// Soft deletion is honored: deleted products stay in the map but are hidden
// from every lookup except GetByIDIncludingDeleted and GetByIDForUpdate.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all non-deleted products.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.DeletedAt.Valid {
			continue
		}
		productList = append(productList, p)
	}
	return productList, nil
}

// List returns non-deleted products filtered by seller and/or status.
func (r *MockProductRepository) List(sellerID string, statuses ...models.ProductStatus) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var productList []models.Product
	for _, p := range r.products {
		if p.DeletedAt.Valid {
			continue
		}
		if sellerID != "" && p.SellerID != sellerID {
			continue
		}
		if len(statuses) > 0 && !containsStatus(statuses, p.Status) {
			continue
		}
		productList = append(productList, p)
	}
	return productList, nil
}

func containsStatus(statuses []models.ProductStatus, s models.ProductStatus) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// GetByID returns a non-deleted product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok || product.DeletedAt.Valid {
		return nil, apperrors.NotFound("product with ID %s not found", id)
	}
	return &product, nil
}

// GetByIDIncludingDeleted returns a product by its ID even if soft-deleted.
func (r *MockProductRepository) GetByIDIncludingDeleted(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.NotFound("product with ID %s not found", id)
	}
	return &product, nil
}

// GetByIDForUpdate returns a product by its ID including soft-deleted ones.
// The in-memory store runs transactions under one mutex, so the lock the
// database implementation takes is already implied here.
func (r *MockProductRepository) GetByIDForUpdate(id string) (*models.Product, error) {
	return r.GetByIDIncludingDeleted(id)
}

// GetByIDs returns the non-deleted products matching the given IDs.
func (r *MockProductRepository) GetByIDs(ids []string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var productList []models.Product
	for _, id := range ids {
		if product, ok := r.products[id]; ok && !product.DeletedAt.Valid {
			productList = append(productList, product)
		}
	}
	return productList, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok || existing.DeletedAt.Valid {
		return apperrors.NotFound("product with ID %s not found for update", product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// DecrementStock subtracts quantity with a floor-at-zero guard, matching the
// guarded UPDATE of the GORM implementation.
func (r *MockProductRepository) DecrementStock(id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok || product.DeletedAt.Valid || product.Quantity < quantity {
		return apperrors.Conflict("insufficient stock for product %s", id)
	}
	product.Quantity -= quantity
	r.products[id] = product
	return nil
}

// ListLowStock returns non-deleted products at or below their own threshold,
// optionally scoped to one seller.
func (r *MockProductRepository) ListLowStock(sellerID string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var productList []models.Product
	for _, p := range r.products {
		if p.DeletedAt.Valid {
			continue
		}
		if sellerID != "" && p.SellerID != sellerID {
			continue
		}
		if p.IsLowStock() {
			productList = append(productList, p)
		}
	}
	return productList, nil
}

// Delete soft-deletes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok || product.DeletedAt.Valid {
		return apperrors.NotFound("product with ID %s not found for deletion", id)
	}
	product.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	r.products[id] = product
	return nil
}

// snapshot copies the current product map; used by MemoryStore to roll back
// failed transactions.
func (r *MockProductRepository) snapshot() map[string]models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	copied := make(map[string]models.Product, len(r.products))
	for id, p := range r.products {
		copied[id] = p
	}
	return copied
}

// restore replaces the product map with a previously taken snapshot.
func (r *MockProductRepository) restore(snapshot map[string]models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = snapshot
}
