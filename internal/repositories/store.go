package repositories

// Store bundles the repositories that share one storage session and opens
// transactions over it. Engines receive a Store explicitly instead of
// reaching for a shared connection, which keeps the transaction boundary
// visible and testable.
type Store interface {
	Products() ProductRepository
	Orders() OrderRepository
	// InTx runs fn inside a single transaction. Repositories obtained from
	// the Store passed to fn see and mutate only that transaction's state;
	// a non-nil error from fn rolls the whole transaction back.
	InTx(fn func(tx Store) error) error
}
