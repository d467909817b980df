package repositories

import (
	"pasar/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// GetByID returns the order with its line items attached.
	GetByID(id string) (*models.Order, error)
	ListBySeller(sellerID string) ([]models.Order, error)
	ListByBuyer(buyerID string) ([]models.Order, error)
	// Create persists the order together with its items.
	Create(order *models.Order) error
	UpdateStatus(id string, status models.OrderStatus) error
	// Delete(id string) error // Deletion of orders might be complex, so we'll omit for now.
}
