package repositories

import "sync"

// MemoryStore is an in-memory implementation of Store built on the mock
// repositories. Transactions are serialized by a single mutex and rolled
// back by restoring map snapshots, which gives tests the same
// all-or-nothing and no-lost-update guarantees as the database store.
type MemoryStore struct {
	mu       sync.Mutex
	products *MockProductRepository
	orders   *MockOrderRepository
}

// NewMemoryStore creates a new instance of MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: NewMockProductRepository(),
		orders:   NewMockOrderRepository(),
	}
}

// Products returns the in-memory product repository.
func (s *MemoryStore) Products() ProductRepository {
	return s.products
}

// Orders returns the in-memory order repository.
func (s *MemoryStore) Orders() OrderRepository {
	return s.orders
}

// ProductMock exposes the concrete product repository for test seeding.
func (s *MemoryStore) ProductMock() *MockProductRepository {
	return s.products
}

// OrderMock exposes the concrete order repository for failure injection.
func (s *MemoryStore) OrderMock() *MockOrderRepository {
	return s.orders
}

// InTx runs fn under the store-wide mutex. On error the product and order
// maps are restored to their pre-transaction snapshots.
func (s *MemoryStore) InTx(fn func(tx Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	productSnapshot := s.products.snapshot()
	orderSnapshot := s.orders.snapshot()

	if err := fn(s); err != nil {
		s.products.restore(productSnapshot)
		s.orders.restore(orderSnapshot)
		return err
	}
	return nil
}
