package repositories

import "gorm.io/gorm"

// GORMStore is the GORM implementation of Store. The same type serves both
// the root session and the per-transaction view, holding either the base
// *gorm.DB or a transaction handle.
type GORMStore struct {
	db *gorm.DB
}

// NewGORMStore creates a new instance of GORMStore.
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{
		db: db,
	}
}

// Products returns a product repository bound to this session.
func (s *GORMStore) Products() ProductRepository {
	return NewGORMProductRepository(s.db)
}

// Orders returns an order repository bound to this session.
func (s *GORMStore) Orders() OrderRepository {
	return NewGORMOrderRepository(s.db)
}

// InTx runs fn inside one database transaction. An error from fn rolls
// everything back, so partial work is never durable.
func (s *GORMStore) InTx(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GORMStore{db: tx})
	})
}
