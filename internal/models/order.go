package models

import "gorm.io/gorm"

// OrderStatus is the fulfillment state of an order. Any status may follow
// any other; the platform deliberately does not restrict transitions.
type OrderStatus string

const (
	OrderStatusNew               OrderStatus = "NEW"
	OrderStatusProcessing        OrderStatus = "PROCESSING"
	OrderStatusReadyForWarehouse OrderStatus = "READY_FOR_WAREHOUSE"
	OrderStatusShipped           OrderStatus = "SHIPPED"
	OrderStatusDelivered         OrderStatus = "DELIVERED"
	OrderStatusCancelled         OrderStatus = "CANCELLED"
)

// ValidOrderStatus reports whether s is a known order status value.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusNew, OrderStatusProcessing, OrderStatusReadyForWarehouse,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentStatus tracks payment separately from fulfillment. It is owned by
// the payment integration and never mutated by the order core.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// OrderItem represents a single line within an order. Price is the unit
// price snapshotted when the order was placed; later catalog price edits
// never touch it.
type OrderItem struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string  `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36)"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order represents one buyer's purchase from one seller. A cart spanning
// several sellers is split into one order per seller, so ownership checks
// stay unambiguous. BuyerID, SellerID and TotalAmount are fixed at
// creation; Status is the only field lifecycle updates touch.
type Order struct {
	ID            string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	BuyerID       string        `json:"buyer_id" gorm:"index;type:varchar(36)"`
	SellerID      string        `json:"seller_id" gorm:"index;type:varchar(36)"`
	TotalAmount   float64       `json:"total_amount"`
	Status        OrderStatus   `json:"status" gorm:"type:varchar(25);default:NEW"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(20);default:PENDING"`
	Items         []OrderItem   `json:"items" gorm:"foreignKey:OrderID"`
	gorm.Model                  // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
