package services

import (
	"encoding/json"
	"fmt"

	"pasar/internal/apperrors"
	"pasar/internal/models"
	"pasar/internal/repositories"

	"go.uber.org/zap"
)

// OrderEventPublisher publishes order lifecycle events to the message
// broker. Implemented by the RabbitMQ client; nil disables publication.
type OrderEventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// OrderLine is one requested cart line.
type OrderLine struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// OrderService handles order placement and lifecycle.
type OrderService struct {
	store  repositories.Store
	events OrderEventPublisher
	logger *zap.Logger
}

// NewOrderService creates a new OrderService. events may be nil, in which
// case no messages are published.
func NewOrderService(store repositories.Store, events OrderEventPublisher, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		store:  store,
		events: events,
		logger: logger,
	}
}

// PlaceOrder turns a buyer's cart into one order per seller. All stock
// decrements and order inserts run inside a single transaction: the cart
// either yields its full set of per-seller orders or nothing at all. Line
// prices are snapshotted from the catalog at validation time, so later
// price edits never change what was agreed.
func (s *OrderService) PlaceOrder(buyerID string, lines []OrderLine) ([]models.Order, error) {
	if buyerID == "" {
		return nil, apperrors.Validation("buyer ID is required")
	}
	if len(lines) == 0 {
		return nil, apperrors.Validation("order must contain at least one item")
	}

	var productIDs []string
	seen := make(map[string]bool)
	for _, line := range lines {
		if line.ProductID == "" {
			return nil, apperrors.Validation("product ID is required on every order line")
		}
		if line.Quantity <= 0 {
			return nil, apperrors.Validation("quantity for product %s must be positive", line.ProductID)
		}
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			productIDs = append(productIDs, line.ProductID)
		}
	}

	var created []models.Order
	err := s.store.InTx(func(tx repositories.Store) error {
		products, err := tx.Products().GetByIDs(productIDs)
		if err != nil {
			return fmt.Errorf("failed to resolve order products: %w", err)
		}
		// Cardinality check: every distinct requested ID must have resolved.
		if len(products) != len(productIDs) {
			return apperrors.NotFound("one or more products not found")
		}
		productByID := make(map[string]models.Product, len(products))
		for _, p := range products {
			productByID[p.ID] = p
		}

		// Partition the cart by the owning seller, preserving line order.
		var sellerIDs []string
		itemsBySeller := make(map[string][]models.OrderItem)
		for _, line := range lines {
			product := productByID[line.ProductID]
			if product.Quantity < line.Quantity {
				return apperrors.Conflict("insufficient stock for product %s (requested: %d, available: %d)",
					product.Name, line.Quantity, product.Quantity)
			}
			if _, ok := itemsBySeller[product.SellerID]; !ok {
				sellerIDs = append(sellerIDs, product.SellerID)
			}
			itemsBySeller[product.SellerID] = append(itemsBySeller[product.SellerID], models.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     product.Price, // snapshot, never recomputed
			})
		}

		for _, sellerID := range sellerIDs {
			items := itemsBySeller[sellerID]

			var totalAmount float64
			for _, item := range items {
				totalAmount += item.Price * float64(item.Quantity)
				// The guarded decrement is the authoritative stock check;
				// it refuses to go below zero even when concurrent carts
				// passed the read above against the same quantity.
				if err := tx.Products().DecrementStock(item.ProductID, item.Quantity); err != nil {
					return err
				}
			}

			order := models.Order{
				BuyerID:       buyerID,
				SellerID:      sellerID,
				TotalAmount:   totalAmount,
				Status:        models.OrderStatusNew,
				PaymentStatus: models.PaymentStatusPending,
				Items:         items,
			}
			if err := tx.Orders().Create(&order); err != nil {
				return fmt.Errorf("failed to create order for seller %s: %w", sellerID, err)
			}
			created = append(created, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, order := range created {
		s.publishOrderCreated(order)
	}
	return created, nil
}

// publishOrderCreated emits an order.created event. Publication is
// best-effort: a broker failure is logged, never surfaced to the buyer.
func (s *OrderService) publishOrderCreated(order models.Order) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"orderID":  order.ID,
		"buyerID":  order.BuyerID,
		"sellerID": order.SellerID,
		"status":   order.Status,
		"total":    order.TotalAmount,
	})
	if err != nil {
		s.logger.Warn("failed to marshal order created event", zap.String("order_id", order.ID), zap.Error(err))
		return
	}
	if err := s.events.Publish("order.created", body); err != nil {
		s.logger.Warn("failed to publish order created event", zap.String("order_id", order.ID), zap.Error(err))
		return
	}
	s.logger.Info("published order created event", zap.String("order_id", order.ID))
}

// GetSellerOrders retrieves all orders belonging to a seller.
func (s *OrderService) GetSellerOrders(sellerID string) ([]models.Order, error) {
	return s.store.Orders().ListBySeller(sellerID)
}

// GetBuyerOrders retrieves all orders placed by a buyer.
func (s *OrderService) GetBuyerOrders(buyerID string) ([]models.Order, error) {
	return s.store.Orders().ListByBuyer(buyerID)
}

// GetOrderForSeller retrieves a single order, enforcing seller ownership.
func (s *OrderService) GetOrderForSeller(orderID, sellerID string) (*models.Order, error) {
	order, err := s.store.Orders().GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.SellerID != sellerID {
		return nil, apperrors.Forbidden("not allowed to view order %s", orderID)
	}
	return order, nil
}

// GetOrderForBuyer retrieves a single order, enforcing buyer ownership.
func (s *OrderService) GetOrderForBuyer(orderID, buyerID string) (*models.Order, error) {
	order, err := s.store.Orders().GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, apperrors.Forbidden("not allowed to view order %s", orderID)
	}
	return order, nil
}

// UpdateOrderStatus transitions an order's status. The owning seller may
// transition their own orders; a platform operator may transition any
// order. Any known status is reachable from any other — the platform
// deliberately carries no forbidden-transition table. Payment status is
// never touched here.
func (s *OrderService) UpdateOrderStatus(actorID, orderID string, status models.OrderStatus, isOperator bool) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, apperrors.Validation("invalid order status: %s", status)
	}

	order, err := s.store.Orders().GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !isOperator && order.SellerID != actorID {
		return nil, apperrors.Forbidden("not allowed to update order %s", orderID)
	}

	if err := s.store.Orders().UpdateStatus(orderID, status); err != nil {
		return nil, err
	}
	order.Status = status
	s.logger.Info("order status updated",
		zap.String("order_id", orderID),
		zap.String("status", string(status)),
		zap.Bool("operator", isOperator))
	return order, nil
}
