package repositories

import (
	"sort"
	"sync"
	"time"

	"pasar/internal/apperrors"
	"pasar/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex

	// CreateErr, when set, is consulted before each Create. Tests use it to
	// force a failure partway through a multi-order transaction.
	CreateErr func(order *models.Order) error
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, apperrors.NotFound("order with ID %s not found", id)
	}
	return &order, nil
}

// ListBySeller returns all orders for a seller, newest first.
func (r *MockOrderRepository) ListBySeller(sellerID string) ([]models.Order, error) {
	return r.list(func(o models.Order) bool { return o.SellerID == sellerID })
}

// ListByBuyer returns all orders placed by a buyer, newest first.
func (r *MockOrderRepository) ListByBuyer(buyerID string) ([]models.Order, error) {
	return r.list(func(o models.Order) bool { return o.BuyerID == buyerID })
}

func (r *MockOrderRepository) list(match func(models.Order) bool) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orderList []models.Order
	for _, order := range r.orders {
		if match(order) {
			orderList = append(orderList, order)
		}
	}
	sort.Slice(orderList, func(i, j int) bool {
		return orderList[i].CreatedAt.After(orderList[j].CreatedAt)
	})
	return orderList, nil
}

// Create adds a new order with its items.
func (r *MockOrderRepository) Create(order *models.Order) error {
	if r.CreateErr != nil {
		if err := r.CreateErr(order); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(id string, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return apperrors.NotFound("order with ID %s not found for status update", id)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// snapshot copies the current order map; used by MemoryStore to roll back
// failed transactions.
func (r *MockOrderRepository) snapshot() map[string]models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	copied := make(map[string]models.Order, len(r.orders))
	for id, order := range r.orders {
		items := make([]models.OrderItem, len(order.Items))
		copy(items, order.Items)
		order.Items = items
		copied[id] = order
	}
	return copied
}

// restore replaces the order map with a previously taken snapshot.
func (r *MockOrderRepository) restore(snapshot map[string]models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = snapshot
}
