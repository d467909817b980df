package services_test

import (
	"sync"
	"testing"

	"pasar/internal/apperrors"
	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestInventoryService_AdjustStock_StatusDerivation(t *testing.T) {
	store := repositories.NewMemoryStore()
	service := services.NewInventoryService(store, nil)

	seedProduct(t, store, models.Product{
		ID: "prod-1", SellerID: "seller-a", Name: "Laptop", Price: 1200.00,
		Quantity: 10, LowStockThreshold: 5, Status: models.ProductStatusApproved,
	})

	// Draining an APPROVED product marks it OUT_OF_STOCK.
	product, err := service.AdjustStock("seller-a", "prod-1", -10)
	assert.NoError(t, err)
	assert.Equal(t, 0, product.Quantity)
	assert.Equal(t, models.ProductStatusOutOfStock, product.Status)

	// Restocking reverts it to APPROVED.
	product, err = service.AdjustStock("seller-a", "prod-1", +5)
	assert.NoError(t, err)
	assert.Equal(t, 5, product.Quantity)
	assert.Equal(t, models.ProductStatusApproved, product.Status)

	// At quantity 5 with threshold 5 the product is low-stock.
	lowStock, err := service.ListLowStock("seller-a", false)
	assert.NoError(t, err)
	assert.Len(t, lowStock, 1)
	assert.Equal(t, "prod-1", lowStock[0].ID)
}

func TestInventoryService_AdjustStock_RejectedStaysRejected(t *testing.T) {
	store := repositories.NewMemoryStore()
	service := services.NewInventoryService(store, nil)

	seedProduct(t, store, models.Product{
		ID: "prod-1", SellerID: "seller-a", Name: "Laptop", Price: 1200.00,
		Quantity: 4, LowStockThreshold: 5, Status: models.ProductStatusRejected,
	})

	// Stock changes never resurrect or demote a rejected listing.
	product, err := service.AdjustStock("seller-a", "prod-1", -4)
	assert.NoError(t, err)
	assert.Equal(t, 0, product.Quantity)
	assert.Equal(t, models.ProductStatusRejected, product.Status)

	product, err = service.AdjustStock("seller-a", "prod-1", +7)
	assert.NoError(t, err)
	assert.Equal(t, 7, product.Quantity)
	assert.Equal(t, models.ProductStatusRejected, product.Status)
}

func TestInventoryService_AdjustStock_Guards(t *testing.T) {
	store := repositories.NewMemoryStore()
	service := services.NewInventoryService(store, nil)

	seedProduct(t, store, models.Product{
		ID: "prod-1", SellerID: "seller-a", Name: "Laptop", Price: 1200.00,
		Quantity: 3, Status: models.ProductStatusApproved,
	})

	// Zero delta is malformed input.
	_, err := service.AdjustStock("seller-a", "prod-1", 0)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	// A delta below the floor is a business-rule conflict; the quantity is
	// untouched.
	_, err = service.AdjustStock("seller-a", "prod-1", -4)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
	product, err := store.Products().GetByID("prod-1")
	assert.NoError(t, err)
	assert.Equal(t, 3, product.Quantity)

	// Ownership is enforced regardless of stock validity, with no operator
	// bypass.
	_, err = service.AdjustStock("seller-b", "prod-1", +1)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
	_, err = service.AdjustStock("admin-1", "prod-1", +1)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))

	// Unknown product.
	_, err = service.AdjustStock("seller-a", "prod-missing", +1)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestInventoryService_AdjustStock_DeletedProduct(t *testing.T) {
	store := repositories.NewMemoryStore()
	service := services.NewInventoryService(store, nil)

	seedProduct(t, store, models.Product{
		ID: "prod-1", SellerID: "seller-a", Name: "Laptop", Price: 1200.00,
		Quantity: 3, Status: models.ProductStatusApproved,
	})
	assert.NoError(t, store.Products().Delete("prod-1"))

	_, err := service.AdjustStock("seller-a", "prod-1", +1)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
	assert.Contains(t, err.Error(), "deleted")
}

func TestInventoryService_SetStock(t *testing.T) {
	store := repositories.NewMemoryStore()
	service := services.NewInventoryService(store, nil)

	seedProduct(t, store, models.Product{
		ID: "prod-1", SellerID: "seller-a", Name: "Laptop", Price: 1200.00,
		Quantity: 10, Status: models.ProductStatusApproved,
	})

	// Absolute overwrite applies the same derivation rule.
	product, err := service.SetStock("seller-a", "prod-1", 0)
	assert.NoError(t, err)
	assert.Equal(t, 0, product.Quantity)
	assert.Equal(t, models.ProductStatusOutOfStock, product.Status)

	product, err = service.SetStock("seller-a", "prod-1", 40)
	assert.NoError(t, err)
	assert.Equal(t, 40, product.Quantity)
	assert.Equal(t, models.ProductStatusApproved, product.Status)

	_, err = service.SetStock("seller-a", "prod-1", -1)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	_, err = service.SetStock("seller-b", "prod-1", 5)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
}

func TestInventoryService_ConcurrentAdjustmentsDoNotLoseUpdates(t *testing.T) {
	store := repositories.NewMemoryStore()
	service := services.NewInventoryService(store, nil)

	seedProduct(t, store, models.Product{
		ID: "prod-1", SellerID: "seller-a", Name: "Laptop", Price: 1200.00,
		Quantity: 0, Status: models.ProductStatusApproved,
	})

	const adjusters = 20
	var wg sync.WaitGroup
	for i := 0; i < adjusters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.AdjustStock("seller-a", "prod-1", +1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	product, err := store.Products().GetByID("prod-1")
	assert.NoError(t, err)
	assert.Equal(t, adjusters, product.Quantity)
}

func TestInventoryService_ThresholdDrivesMembershipWithoutStockMutation(t *testing.T) {
	store := repositories.NewMemoryStore()
	service := services.NewInventoryService(store, nil)

	seedProduct(t, store, models.Product{
		ID: "prod-1", SellerID: "seller-a", Name: "Laptop", Price: 1200.00,
		Quantity: 5, LowStockThreshold: 5, Status: models.ProductStatusApproved,
	})

	lowStock, err := service.ListLowStock("seller-a", false)
	assert.NoError(t, err)
	assert.Len(t, lowStock, 1)

	// Lowering the threshold removes the product from the view; quantity
	// and status never moved.
	product, err := service.UpdateLowStockThreshold("seller-a", "prod-1", 4)
	assert.NoError(t, err)
	assert.Equal(t, 4, product.LowStockThreshold)
	assert.Equal(t, 5, product.Quantity)
	assert.Equal(t, models.ProductStatusApproved, product.Status)

	lowStock, err = service.ListLowStock("seller-a", false)
	assert.NoError(t, err)
	assert.Empty(t, lowStock)

	_, err = service.UpdateLowStockThreshold("seller-a", "prod-1", -1)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
	_, err = service.UpdateLowStockThreshold("seller-b", "prod-1", 2)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
}

func TestInventoryService_ListLowStock_Scoping(t *testing.T) {
	store := repositories.NewMemoryStore()
	service := services.NewInventoryService(store, nil)

	seedProduct(t, store, models.Product{
		ID: "prod-1", SellerID: "seller-a", Name: "Laptop", Price: 1200.00,
		Quantity: 2, LowStockThreshold: 5, Status: models.ProductStatusApproved,
	})
	seedProduct(t, store, models.Product{
		ID: "prod-2", SellerID: "seller-b", Name: "Mouse", Price: 25.00,
		Quantity: 1, LowStockThreshold: 5, Status: models.ProductStatusApproved,
	})
	seedProduct(t, store, models.Product{
		ID: "prod-3", SellerID: "seller-b", Name: "Monitor", Price: 200.00,
		Quantity: 50, LowStockThreshold: 5, Status: models.ProductStatusApproved,
	})

	// A seller sees only their own catalog.
	lowStock, err := service.ListLowStock("seller-a", false)
	assert.NoError(t, err)
	assert.Len(t, lowStock, 1)
	assert.Equal(t, "prod-1", lowStock[0].ID)

	// A platform operator sees every seller's low-stock products.
	lowStock, err = service.ListLowStock("admin-1", true)
	assert.NoError(t, err)
	assert.Len(t, lowStock, 2)
}
